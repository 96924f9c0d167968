package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salesgo/backend/pkg/validation"
)

// saleRules is the aggregate-level rule set. It is intentionally stricter than
// the creation-request rules on the sale number (20 vs 50 chars); the two rule
// sets predate this service and are kept separate on purpose.
func saleRules(s *Sale) validation.RuleSet {
	rules := validation.RuleSet{
		validation.Check("saleNumber", s.SaleNumber != "", "Sale number cannot be empty."),
		validation.Check("saleNumber", len(s.SaleNumber) <= 20, "Sale number cannot be longer than 20 characters."),
		validation.Check("createdAt", !s.CreatedAt.After(time.Now().UTC()), "Sale date cannot be in the future."),
		validation.Check("totalAmount", s.TotalAmount.GreaterThan(decimal.Zero), "Total amount must be greater than zero."),
		validation.Check("branchId", s.BranchID != "", "Branch ID cannot be empty."),
		validation.Check("customerId", s.CustomerID != "", "Customer ID cannot be empty."),
		validation.Check("isCancelled", !s.IsCancelled, "Sale cannot be cancelled at creation."),
	}
	for i := range s.Items {
		item := &s.Items[i]
		rules = append(rules,
			validation.Check(itemField(i, "productId"), item.ProductID != "", "O ID do produto é obrigatório."),
			validation.Check(itemField(i, "quantity"), item.Quantity > 0, "A quantidade do item deve ser maior que zero."),
			validation.Check(itemField(i, "unitPrice"), item.UnitPrice.GreaterThan(decimal.Zero), "O preço unitário do item deve ser maior que zero."),
		)
	}
	return rules
}

// saleItemRules validates a single item, including the persisted back-reference
// and the derived per-item total.
func saleItemRules(i *SaleItem) validation.RuleSet {
	return validation.RuleSet{
		validation.Check("saleId", i.SaleID != "", "Sale ID cannot be empty."),
		validation.Check("productId", i.ProductID != "", "Product ID cannot be empty."),
		validation.Check("quantity", i.Quantity > 0, "Quantity must be greater than zero."),
		validation.Check("unitPrice", i.UnitPrice.GreaterThan(decimal.Zero), "Unit price must be greater than zero."),
		validation.Check("discount", i.Discount.GreaterThanOrEqual(decimal.Zero), "Discount cannot be negative."),
		validation.Check("totalItemAmount", i.TotalItemAmount().GreaterThan(decimal.Zero), "Total item amount must be greater than zero."),
	}
}

func itemField(index int, field string) string {
	return fmt.Sprintf("items[%d].%s", index, field)
}
