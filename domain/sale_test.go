package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItem(productID string, quantity int, unitPrice int64) *SaleItem {
	return &SaleItem{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: decimal.NewFromInt(unitPrice),
	}
}

func validSale() *Sale {
	sale := &Sale{
		SaleNumber: "S-1001",
		BranchID:   "B1",
		CustomerID: "C1",
		CreatedAt:  time.Now().UTC().Add(-time.Minute),
	}
	_ = sale.AddItem(newItem("P1", 2, 50))
	return sale
}

func TestAddItemRecalculatesTotalAfterEveryCall(t *testing.T) {
	sale := &Sale{}

	require.NoError(t, sale.AddItem(newItem("P1", 2, 50)))
	assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(100)), "total after first item: %s", sale.TotalAmount)

	require.NoError(t, sale.AddItem(newItem("P2", 3, 10)))
	assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(130)), "total after second item: %s", sale.TotalAmount)

	require.NoError(t, sale.AddItem(newItem("P3", 1, 1)))
	assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(131)), "total after third item: %s", sale.TotalAmount)
	assert.Len(t, sale.Items, 3)
}

func TestAddItemNilFails(t *testing.T) {
	sale := &Sale{}
	err := sale.AddItem(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrItemRequired)
	assert.Empty(t, sale.Items)
}

func TestAddItemTotalExcludesDiscount(t *testing.T) {
	sale := &Sale{}
	item := newItem("P1", 2, 50)
	item.Discount = decimal.NewFromInt(30)

	require.NoError(t, sale.AddItem(item))

	// The per-item total honors the discount, the aggregate total does not.
	assert.True(t, sale.Items[0].TotalItemAmount().Equal(decimal.NewFromInt(70)))
	assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(100)))
}

func TestRemoveItemRecalculatesTotal(t *testing.T) {
	sale := &Sale{}
	first := newItem("P1", 2, 50)
	second := newItem("P2", 1, 25)
	require.NoError(t, sale.AddItem(first))
	require.NoError(t, sale.AddItem(second))

	require.NoError(t, sale.RemoveItem(first))

	assert.Len(t, sale.Items, 1)
	assert.Equal(t, "P2", sale.Items[0].ProductID)
	assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(25)))
}

func TestRemoveItemNonMemberIsNoOp(t *testing.T) {
	sale := &Sale{}
	require.NoError(t, sale.AddItem(newItem("P1", 2, 50)))

	require.NoError(t, sale.RemoveItem(newItem("P9", 1, 5)))

	assert.Len(t, sale.Items, 1)
	assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(100)))
}

func TestRemoveItemNilFails(t *testing.T) {
	sale := validSale()
	assert.ErrorIs(t, sale.RemoveItem(nil), ErrItemRequired)
	assert.Len(t, sale.Items, 1)
}

func TestCancelThenActivate(t *testing.T) {
	sale := validSale()
	require.Nil(t, sale.UpdatedAt)

	before := time.Now().UTC()
	sale.Cancel()
	require.NotNil(t, sale.UpdatedAt)
	cancelledAt := *sale.UpdatedAt
	assert.True(t, sale.IsCancelled)
	assert.False(t, cancelledAt.Before(before))

	sale.Activate()
	require.NotNil(t, sale.UpdatedAt)
	assert.False(t, sale.IsCancelled)
	assert.False(t, sale.UpdatedAt.Before(cancelledAt))
}

func TestValidateAcceptsValidSale(t *testing.T) {
	result := validSale().Validate()
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateRejectsLongSaleNumber(t *testing.T) {
	// 30 chars: within the 50-char creation-request bound but past the
	// stricter 20-char aggregate bound.
	sale := validSale()
	sale.SaleNumber = strings.Repeat("S", 30)

	result := sale.Validate()

	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "saleNumber", result.Errors[0].Field)
	assert.Equal(t, "Sale number cannot be longer than 20 characters.", result.Errors[0].Message)
}

func TestValidateRejectsFutureCreatedAt(t *testing.T) {
	sale := validSale()
	sale.CreatedAt = time.Now().UTC().Add(time.Hour)

	result := sale.Validate()

	require.False(t, result.Valid)
	assert.Contains(t, result.Messages(), "Sale date cannot be in the future.")
}

func TestValidateRejectsCancelledAtCreation(t *testing.T) {
	sale := validSale()
	sale.IsCancelled = true

	result := sale.Validate()

	require.False(t, result.Valid)
	assert.Contains(t, result.Messages(), "Sale cannot be cancelled at creation.")
}

func TestValidateRejectsInvalidItems(t *testing.T) {
	sale := validSale()
	require.NoError(t, sale.AddItem(&SaleItem{ProductID: "", Quantity: -1, UnitPrice: decimal.Zero}))

	result := sale.Validate()

	require.False(t, result.Valid)
	messages := result.Messages()
	assert.Contains(t, messages, "O ID do produto é obrigatório.")
	assert.Contains(t, messages, "A quantidade do item deve ser maior que zero.")
	assert.Contains(t, messages, "O preço unitário do item deve ser maior que zero.")
}

func TestValidateCollectsErrorsInRuleOrder(t *testing.T) {
	sale := &Sale{}

	result := sale.Validate()

	require.False(t, result.Valid)
	fields := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		fields = append(fields, e.Field)
	}
	assert.Equal(t, []string{"saleNumber", "totalAmount", "branchId", "customerId"}, fields)
}

func TestSaleItemValidate(t *testing.T) {
	item := &SaleItem{
		ID:        "i1",
		SaleID:    "s1",
		ProductID: "P1",
		Quantity:  2,
		UnitPrice: decimal.NewFromInt(50),
		Discount:  decimal.NewFromInt(10),
	}
	assert.True(t, item.Validate().Valid)

	item.Discount = decimal.NewFromInt(-1)
	result := item.Validate()
	require.False(t, result.Valid)
	assert.Contains(t, result.Messages(), "Discount cannot be negative.")

	// A discount swallowing the whole item value fails the derived-total rule.
	item.Discount = decimal.NewFromInt(100)
	result = item.Validate()
	require.False(t, result.Valid)
	assert.Contains(t, result.Messages(), "Total item amount must be greater than zero.")
}

func TestSaleItemValidateRequiresSaleID(t *testing.T) {
	item := &SaleItem{ProductID: "P1", Quantity: 1, UnitPrice: decimal.NewFromInt(10)}
	result := item.Validate()
	require.False(t, result.Valid)
	assert.Contains(t, result.Messages(), "Sale ID cannot be empty.")
}
