package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

// TierTable is the ordered list of subscription tiers, lowest privilege first.
type TierTable struct {
	tiers []domain.Tier
}

// NewTierTable copies tiers and stamps each with its position.
func NewTierTable(tiers []domain.Tier) *TierTable {
	t := &TierTable{tiers: make([]domain.Tier, len(tiers))}
	for i, tier := range tiers {
		tier.Index = i
		tier.Perks = append([]string(nil), tier.Perks...)
		t.tiers[i] = tier
	}
	return t
}

// Get returns the tier at index or domain.ErrOutOfRange.
func (t *TierTable) Get(index int) (domain.Tier, error) {
	if !t.Valid(index) {
		return domain.Tier{}, fmt.Errorf("tier %d: %w", index, domain.ErrOutOfRange)
	}
	return t.tiers[index], nil
}

// DiscountFor returns the discount rate of the tier at index.
func (t *TierTable) DiscountFor(index int) (decimal.Decimal, error) {
	tier, err := t.Get(index)
	if err != nil {
		return decimal.Zero, err
	}
	return tier.DiscountRate, nil
}

// Valid reports whether index names a tier.
func (t *TierTable) Valid(index int) bool {
	return index >= 0 && index < len(t.tiers)
}

// Len returns the number of tiers.
func (t *TierTable) Len() int { return len(t.tiers) }

// All returns a copy of every tier in order.
func (t *TierTable) All() []domain.Tier {
	return append([]domain.Tier(nil), t.tiers...)
}
