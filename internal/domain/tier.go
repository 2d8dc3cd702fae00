package domain

import "github.com/shopspring/decimal"

// Tier is one subscription level. Tier 0 is the free default.
type Tier struct {
	Index          int             `json:"index"`
	Name           string          `json:"name"`
	ActivationCost int64           `json:"activation_cost"`
	DiscountRate   decimal.Decimal `json:"discount_rate"`
	Perks          []string        `json:"perks"`
	Badge          string          `json:"badge,omitempty"`
}
