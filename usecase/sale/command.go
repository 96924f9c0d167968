package sale

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salesgo/backend/pkg/validation"
)

// CreateSaleCommand is the inbound creation request, already deserialized by
// the boundary layer. TotalAmount is supplied by the caller; the aggregate
// recomputes its own total during construction.
type CreateSaleCommand struct {
	SaleNumber  string
	TotalAmount decimal.Decimal
	BranchID    string
	CustomerID  string
	IsCancelled bool
	Items       []CreateSaleItem
}

// CreateSaleItem is one item spec inside a creation request.
type CreateSaleItem struct {
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
}

// Validate runs the creation-request rule set. Note the 50-char sale number
// bound; the aggregate rule set applies a narrower 20-char bound.
func (c *CreateSaleCommand) Validate() validation.Result {
	rules := validation.RuleSet{
		validation.Check("saleNumber", c.SaleNumber != "", "O número da venda é obrigatório."),
		validation.Check("saleNumber", len(c.SaleNumber) <= 50, "O número da venda deve ter no máximo 50 caracteres."),
		validation.Check("totalAmount", c.TotalAmount.GreaterThan(decimal.Zero), "O valor total da venda deve ser maior que zero."),
		validation.Check("branchId", c.BranchID != "", "O ID da filial é obrigatório."),
		validation.Check("customerId", c.CustomerID != "", "O ID do cliente é obrigatório."),
		validation.Check("items", len(c.Items) > 0, "A venda deve conter pelo menos um item."),
	}
	for i := range c.Items {
		item := &c.Items[i]
		rules = append(rules,
			validation.Check(itemField(i, "productId"), item.ProductID != "", "O ID do produto é obrigatório."),
			validation.Check(itemField(i, "quantity"), item.Quantity > 0, "A quantidade do item deve ser maior que zero."),
			validation.Check(itemField(i, "unitPrice"), item.UnitPrice.GreaterThan(decimal.Zero), "O preço unitário do item deve ser maior que zero."),
		)
	}
	return rules.Validate()
}

func itemField(index int, field string) string {
	return fmt.Sprintf("items[%d].%s", index, field)
}

// CreateSaleResult is the uniform outcome of the creation workflow. Errors is
// populated only when Success is false.
type CreateSaleResult struct {
	Success     bool            `json:"success"`
	SaleID      string          `json:"sale_id,omitempty"`
	SaleNumber  string          `json:"sale_number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	Errors      []string        `json:"errors,omitempty"`
}
