package repository

import (
	"context"

	"github.com/salesgo/backend/domain"
)

// SaleRepository persists Sale aggregates. Implementations must keep the item
// collection attached: reads return the sale with its items eagerly loaded, and
// deleting a sale removes its items with it.
type SaleRepository interface {
	Create(ctx context.Context, sale *domain.Sale) (*domain.Sale, error)
	GetByID(ctx context.Context, id string) (*domain.Sale, error)
	GetAll(ctx context.Context) ([]domain.Sale, error)
	Update(ctx context.Context, sale *domain.Sale) (*domain.Sale, error)
	Delete(ctx context.Context, id string) error
}
