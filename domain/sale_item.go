package domain

import (
	"github.com/shopspring/decimal"

	"github.com/salesgo/backend/pkg/validation"
)

// SaleItem is an entity owned by a Sale. SaleID is a weak back-reference for
// the persistence layer; in memory the item lives as a plain element of the
// sale's item sequence.
type SaleItem struct {
	ID        string          `json:"id"`
	SaleID    string          `json:"sale_id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
}

// TotalItemAmount is the per-item total: quantity × unitPrice − discount.
func (i *SaleItem) TotalItemAmount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity))).Sub(i.Discount)
}

// Validate runs the item rule set against the current state.
func (i *SaleItem) Validate() validation.Result {
	return saleItemRules(i).Validate()
}

// matches reports whether other refers to the same item: by identity when both
// sides carry one, by field equality otherwise.
func (i *SaleItem) matches(other *SaleItem) bool {
	if i.ID != "" && other.ID != "" {
		return i.ID == other.ID
	}
	return i.ProductID == other.ProductID &&
		i.Quantity == other.Quantity &&
		i.UnitPrice.Equal(other.UnitPrice) &&
		i.Discount.Equal(other.Discount)
}
