// Package cart holds the session cart that feeds checkout totals.
package cart

import (
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/glow24organics/storefront-backend/pkg/errors"
)

// Item is a single cart line. Price is the unit price in rupees.
type Item struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Subtotal is quantity times unit price.
func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Subtotal sums line subtotals across the cart.
func Subtotal(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// ValidateItems rejects lines that could never have come from the storefront.
func ValidateItems(items []Item) error {
	for i, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart item name is required").
				WithDetails(map[string]any{"index": i})
		}
		if item.Quantity <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart item quantity must be positive").
				WithDetails(map[string]any{"index": i, "name": item.Name})
		}
		if item.Price.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart item price cannot be negative").
				WithDetails(map[string]any{"index": i, "name": item.Name})
		}
	}
	return nil
}
