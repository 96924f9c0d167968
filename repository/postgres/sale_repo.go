package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salesgo/backend/domain"
	"github.com/salesgo/backend/repository"
)

type saleRepository struct {
	pool *pgxpool.Pool
}

// NewSaleRepository returns a Postgres-backed implementation of SaleRepository.
func NewSaleRepository(pool *pgxpool.Pool) repository.SaleRepository {
	return &saleRepository{pool: pool}
}

// Create inserts the sale and its items in one transaction. This is where the
// aggregate receives its permanent identity.
func (r *saleRepository) Create(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	if sale == nil {
		return nil, domain.ErrInvalidPayload
	}
	if sale.ID == "" {
		sale.ID = uuid.NewString()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const saleQuery = `
	INSERT INTO sales (id, sale_number, branch_id, customer_id, total_amount, is_cancelled, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if _, err := tx.Exec(ctx, saleQuery,
		sale.ID,
		sale.SaleNumber,
		sale.BranchID,
		sale.CustomerID,
		sale.TotalAmount,
		sale.IsCancelled,
		sale.CreatedAt,
		sale.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := insertItems(ctx, tx, sale); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return sale, nil
}

func (r *saleRepository) GetByID(ctx context.Context, id string) (*domain.Sale, error) {
	const query = `
	SELECT id, sale_number, branch_id, customer_id, total_amount, is_cancelled, created_at, updated_at
	FROM sales
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	sale, err := scanSale(row)
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, sale.ID)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return sale, nil
}

func (r *saleRepository) GetAll(ctx context.Context) ([]domain.Sale, error) {
	const query = `
	SELECT id, sale_number, branch_id, customer_id, total_amount, is_cancelled, created_at, updated_at
	FROM sales
	ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []domain.Sale
	index := make(map[string]int)
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		index[sale.ID] = len(sales)
		sales = append(sales, *sale)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return sales, nil
	}

	const itemQuery = `
	SELECT id, sale_id, product_id, quantity, unit_price, discount
	FROM sale_items
	ORDER BY sale_id, id
	`
	itemRows, err := r.pool.Query(ctx, itemQuery)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item domain.SaleItem
		if err := itemRows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.Discount); err != nil {
			return nil, err
		}
		if i, ok := index[item.SaleID]; ok {
			sales[i].Items = append(sales[i].Items, item)
		}
	}
	return sales, itemRows.Err()
}

// Update rewrites the sale row and replaces its item collection.
func (r *saleRepository) Update(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	if sale == nil {
		return nil, domain.ErrInvalidPayload
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const query = `
	UPDATE sales
	SET sale_number = $2,
		branch_id = $3,
		customer_id = $4,
		total_amount = $5,
		is_cancelled = $6,
		updated_at = $7
	WHERE id = $1
	`
	tag, err := tx.Exec(ctx, query,
		sale.ID,
		sale.SaleNumber,
		sale.BranchID,
		sale.CustomerID,
		sale.TotalAmount,
		sale.IsCancelled,
		sale.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrSaleNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM sale_items WHERE sale_id = $1`, sale.ID); err != nil {
		return nil, err
	}
	if err := insertItems(ctx, tx, sale); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return sale, nil
}

// Delete removes the sale; its items go with it via the cascading foreign key.
func (r *saleRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSaleNotFound
	}
	return nil
}

func (r *saleRepository) loadItems(ctx context.Context, saleID string) ([]domain.SaleItem, error) {
	const query = `
	SELECT id, sale_id, product_id, quantity, unit_price, discount
	FROM sale_items
	WHERE sale_id = $1
	ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, saleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.SaleItem
	for rows.Next() {
		var item domain.SaleItem
		if err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.Discount); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func insertItems(ctx context.Context, tx pgx.Tx, sale *domain.Sale) error {
	const query = `
	INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, discount)
	VALUES ($1, $2, $3, $4, $5, $6)
	`
	for i := range sale.Items {
		item := &sale.Items[i]
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		item.SaleID = sale.ID
		if _, err := tx.Exec(ctx, query,
			item.ID,
			item.SaleID,
			item.ProductID,
			item.Quantity,
			item.UnitPrice,
			item.Discount,
		); err != nil {
			return err
		}
	}
	return nil
}

func scanSale(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Sale, error) {
	var sale domain.Sale
	if err := row.Scan(
		&sale.ID,
		&sale.SaleNumber,
		&sale.BranchID,
		&sale.CustomerID,
		&sale.TotalAmount,
		&sale.IsCancelled,
		&sale.CreatedAt,
		&sale.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSaleNotFound
		}
		return nil, err
	}
	return &sale, nil
}
