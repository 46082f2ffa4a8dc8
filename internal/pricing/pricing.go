// Package pricing holds the derived-value arithmetic over cart and order
// lines. Every page that shows a total goes through these functions so the
// numbers agree everywhere; nothing here is ever stored.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/Manu2954/Buildora-sub000/internal/domain"
)

// Buildora currently ships free and untaxed. These are placeholders for
// real rate tables, not business guarantees.
const (
	ShippingPrice float64 = 0
	TaxPrice      float64 = 0
)

// Count returns the total number of units across all cart lines.
func Count(items []domain.CartItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

// Total returns the sum of unitPrice * quantity over all cart lines.
// Decimal arithmetic keeps paise exact regardless of how many lines
// accumulate.
func Total(items []domain.CartItem) float64 {
	sum := decimal.Zero
	for _, it := range items {
		line := decimal.NewFromFloat(it.UnitPrice).Mul(decimal.NewFromInt(int64(it.Quantity)))
		sum = sum.Add(line)
	}
	f, _ := sum.Float64()
	return f
}

// Subtotal returns unitPrice * quantity for a single line.
func Subtotal(it domain.CartItem) float64 {
	f, _ := decimal.NewFromFloat(it.UnitPrice).
		Mul(decimal.NewFromInt(int64(it.Quantity))).
		Float64()
	return f
}

// OrderTotal combines the item total with the (currently zero) shipping
// and tax components.
func OrderTotal(itemsPrice float64) float64 {
	f, _ := decimal.NewFromFloat(itemsPrice).
		Add(decimal.NewFromFloat(ShippingPrice)).
		Add(decimal.NewFromFloat(TaxPrice)).
		Float64()
	return f
}
