package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/salesgo/backend/pkg/validation"
)

// Sale is the aggregate root for a commercial sales transaction. It owns its
// item collection exclusively: items never outlive the sale and are persisted
// and deleted together with it.
type Sale struct {
	ID          string          `json:"id"`
	SaleNumber  string          `json:"sale_number"`
	BranchID    string          `json:"branch_id"`
	CustomerID  string          `json:"customer_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	IsCancelled bool            `json:"is_cancelled"`
	Items       []SaleItem      `json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

// AddItem appends an item to the sale and recomputes the total, so the
// aggregate is consistent immediately after return.
func (s *Sale) AddItem(item *SaleItem) error {
	if item == nil {
		return ErrItemRequired
	}
	s.Items = append(s.Items, *item)
	s.recalculateTotal()
	return nil
}

// RemoveItem removes the first matching item. A non-member item leaves the
// sequence unchanged; the total is recomputed either way.
func (s *Sale) RemoveItem(item *SaleItem) error {
	if item == nil {
		return ErrItemRequired
	}
	for i := range s.Items {
		if s.Items[i].matches(item) {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			break
		}
	}
	s.recalculateTotal()
	return nil
}

// Cancel marks the sale as cancelled and stamps UpdatedAt.
func (s *Sale) Cancel() {
	s.IsCancelled = true
	now := time.Now().UTC()
	s.UpdatedAt = &now
}

// Activate clears the cancellation flag and stamps UpdatedAt.
func (s *Sale) Activate() {
	s.IsCancelled = false
	now := time.Now().UTC()
	s.UpdatedAt = &now
}

// Validate runs the aggregate rule set against the current state. It never
// fails with an error; violations are reported in the result.
func (s *Sale) Validate() validation.Result {
	return saleRules(s).Validate()
}

// The aggregate total sums quantity times unit price only; per-item
// discounts stay on the items and do not reduce it.
func (s *Sale) recalculateTotal() {
	total := decimal.Zero
	for i := range s.Items {
		total = total.Add(s.Items[i].UnitPrice.Mul(decimal.NewFromInt(int64(s.Items[i].Quantity))))
	}
	s.TotalAmount = total
}
