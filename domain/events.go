package domain

import "github.com/shopspring/decimal"

// Event is an immutable fact broadcast after a state-changing operation
// succeeds. Subscribers are external and unspecified.
type Event interface {
	EventName() string
}

// SaleCreatedEvent announces a successfully persisted sale. Item discounts are
// deliberately not part of the event payload.
type SaleCreatedEvent struct {
	SaleID      string            `json:"sale_id"`
	SaleNumber  string            `json:"sale_number"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	BranchID    string            `json:"branch_id"`
	CustomerID  string            `json:"customer_id"`
	Items       []SaleCreatedItem `json:"items"`
}

// SaleCreatedItem is the flattened item view carried by SaleCreatedEvent.
type SaleCreatedItem struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// NewSaleCreatedEvent builds the creation event from a persisted sale.
func NewSaleCreatedEvent(sale *Sale) *SaleCreatedEvent {
	items := make([]SaleCreatedItem, 0, len(sale.Items))
	for i := range sale.Items {
		items = append(items, SaleCreatedItem{
			ProductID: sale.Items[i].ProductID,
			Quantity:  sale.Items[i].Quantity,
			Price:     sale.Items[i].UnitPrice,
		})
	}
	return &SaleCreatedEvent{
		SaleID:      sale.ID,
		SaleNumber:  sale.SaleNumber,
		TotalAmount: sale.TotalAmount,
		BranchID:    sale.BranchID,
		CustomerID:  sale.CustomerID,
		Items:       items,
	}
}

func (*SaleCreatedEvent) EventName() string { return "sale.created" }
