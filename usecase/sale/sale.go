package sale

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/salesgo/backend/domain"
	"github.com/salesgo/backend/repository"
	"github.com/salesgo/backend/usecase"
)

// UseCase orchestrates sale operations against the persistence and messaging
// ports.
type UseCase struct {
	sales  repository.SaleRepository
	events usecase.EventPublisher
	logger *zap.Logger
}

func New(sales repository.SaleRepository, events usecase.EventPublisher, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		sales:  sales,
		events: events,
		logger: logger,
	}
}

// CreateSale runs the creation workflow: validate, construct the aggregate,
// persist, publish the creation event, and map the outcome into a uniform
// result. Validation failures short-circuit with no side effect. Any failure
// after validation is caught and reported as a failed result; persistence and
// publication are not coordinated, so a sale may remain persisted even when
// the caller is told creation failed. Only context cancellation is propagated
// as an error.
func (uc *UseCase) CreateSale(ctx context.Context, cmd *CreateSaleCommand) (*CreateSaleResult, error) {
	if res := cmd.Validate(); !res.Valid {
		return &CreateSaleResult{
			Success:    false,
			SaleNumber: cmd.SaleNumber,
			Errors:     res.Messages(),
		}, nil
	}

	// The cancellation flag is copied as-is; the aggregate rule forbidding
	// cancelled-at-creation is not re-run here.
	sale := &domain.Sale{
		SaleNumber:  cmd.SaleNumber,
		BranchID:    cmd.BranchID,
		CustomerID:  cmd.CustomerID,
		IsCancelled: cmd.IsCancelled,
		CreatedAt:   time.Now().UTC(),
	}
	for i := range cmd.Items {
		item := &domain.SaleItem{
			ProductID: cmd.Items[i].ProductID,
			Quantity:  cmd.Items[i].Quantity,
			UnitPrice: cmd.Items[i].UnitPrice,
			Discount:  cmd.Items[i].Discount,
		}
		if err := sale.AddItem(item); err != nil {
			return uc.failCreate(cmd.SaleNumber, err), nil
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	created, err := uc.sales.Create(ctx, sale)
	if err != nil {
		if isContextError(err) {
			return nil, err
		}
		uc.logger.Error("sale persistence failed", zap.String("sale_number", cmd.SaleNumber), zap.Error(err))
		return uc.failCreate(cmd.SaleNumber, err), nil
	}

	event := domain.NewSaleCreatedEvent(created)
	if err := uc.events.Publish(ctx, event); err != nil {
		if isContextError(err) {
			return nil, err
		}
		uc.logger.Error("sale created event publication failed",
			zap.String("sale_id", created.ID), zap.Error(err))
		return uc.failCreate(cmd.SaleNumber, err), nil
	}

	uc.logger.Info("sale created",
		zap.String("sale_id", created.ID),
		zap.String("sale_number", created.SaleNumber),
		zap.String("total_amount", created.TotalAmount.String()))

	return &CreateSaleResult{
		Success:     true,
		SaleID:      created.ID,
		SaleNumber:  created.SaleNumber,
		TotalAmount: created.TotalAmount,
		CreatedAt:   created.CreatedAt,
	}, nil
}

// GetSale loads a sale with its items.
func (uc *UseCase) GetSale(ctx context.Context, id string) (*domain.Sale, error) {
	return uc.sales.GetByID(ctx, id)
}

// ListSales returns every sale with items attached.
func (uc *UseCase) ListSales(ctx context.Context) ([]domain.Sale, error) {
	return uc.sales.GetAll(ctx)
}

// CancelSale marks an existing sale as cancelled and persists the change.
func (uc *UseCase) CancelSale(ctx context.Context, id string) (*domain.Sale, error) {
	sale, err := uc.sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sale.Cancel()
	return uc.sales.Update(ctx, sale)
}

// ActivateSale clears the cancellation flag on an existing sale.
func (uc *UseCase) ActivateSale(ctx context.Context, id string) (*domain.Sale, error) {
	sale, err := uc.sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sale.Activate()
	return uc.sales.Update(ctx, sale)
}

// DeleteSale removes a sale and, with it, all of its items.
func (uc *UseCase) DeleteSale(ctx context.Context, id string) error {
	return uc.sales.Delete(ctx, id)
}

func (uc *UseCase) failCreate(saleNumber string, err error) *CreateSaleResult {
	return &CreateSaleResult{
		Success:    false,
		SaleNumber: saleNumber,
		Errors:     []string{"Erro ao criar a venda: " + err.Error()},
	}
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
