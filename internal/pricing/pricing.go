// Package pricing computes cart totals. All discount math floors to whole
// credits; at most one discount source applies.
package pricing

import (
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

// OneTimeDiscountRate is the flat override granted by a minigame reward.
var OneTimeDiscountRate = decimal.RequireFromString("0.5")

// Totals is the derived price projection of a cart.
type Totals struct {
	Subtotal int64 `json:"subtotal"`
	Discount int64 `json:"discount"`
	Total    int64 `json:"total"`
}

// Subtotal sums raw unit prices of all lines.
func Subtotal(lines []domain.CartLine) int64 {
	var sum int64
	for _, l := range lines {
		sum += l.Product.UnitPrice
	}
	return sum
}

// Compute prices a cart. When override is set the one-time rate replaces the
// tier rate entirely.
func Compute(lines []domain.CartLine, tierRate decimal.Decimal, override bool) Totals {
	sub := Subtotal(lines)
	rate := tierRate
	if override {
		rate = OneTimeDiscountRate
	}
	disc := Discount(sub, rate)
	return Totals{Subtotal: sub, Discount: disc, Total: sub - disc}
}

// Discount returns floor(subtotal * rate), clamped to [0, subtotal].
func Discount(subtotal int64, rate decimal.Decimal) int64 {
	if subtotal <= 0 || !rate.IsPositive() {
		return 0
	}
	d := decimal.NewFromInt(subtotal).Mul(rate).Floor().IntPart()
	if d > subtotal {
		return subtotal
	}
	return d
}
