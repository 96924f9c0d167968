package transport

import "github.com/shopspring/decimal"

// CreateSaleRequest is the JSON body accepted by POST /api/v1/sales. The total
// is caller-supplied; the aggregate recomputes its own during construction.
type CreateSaleRequest struct {
	SaleNumber  string                  `json:"sale_number"`
	TotalAmount decimal.Decimal         `json:"total_amount"`
	BranchID    string                  `json:"branch_id"`
	CustomerID  string                  `json:"customer_id"`
	IsCancelled bool                    `json:"is_cancelled"`
	Items       []CreateSaleItemRequest `json:"items"`
}

// CreateSaleItemRequest is one item in a sale creation request.
type CreateSaleItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
}
