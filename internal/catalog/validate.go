package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

// ValidateRaw checks semantic constraints of a RawConfig and reports every
// violation in a single error.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	// tiers
	if len(cfg.Tiers) == 0 {
		errs = append(errs, "tiers must not be empty")
	}
	for i, t := range cfg.Tiers {
		if strings.TrimSpace(t.Name) == "" {
			errs = append(errs, fmt.Sprintf("tiers[%d].name is required", i))
		}
		if t.Cost < 0 {
			errs = append(errs, fmt.Sprintf("tiers[%d].cost must be >= 0", i))
		}
		rate, err := parseRate(t.Discount)
		if err != nil {
			errs = append(errs, fmt.Sprintf("tiers[%d].discount: %v", i, err))
			continue
		}
		if i == 0 && (t.Cost != 0 || !rate.IsZero()) {
			errs = append(errs, "tiers[0] must have zero cost and zero discount")
		}
	}

	// products
	seen := make(map[int]bool, len(cfg.Products))
	for i, p := range cfg.Products {
		if seen[p.ID] {
			errs = append(errs, fmt.Sprintf("products[%d].id %d is duplicated", i, p.ID))
		}
		seen[p.ID] = true
		if !domain.Category(p.Category).Valid() {
			errs = append(errs, fmt.Sprintf("products[%d].category must be one of: hardware, software", i))
		}
		if strings.TrimSpace(p.Name) == "" {
			errs = append(errs, fmt.Sprintf("products[%d].name is required", i))
		}
		if p.Price < 0 {
			errs = append(errs, fmt.Sprintf("products[%d].price must be >= 0", i))
		}
		if p.MinTier < 0 || p.MinTier >= len(cfg.Tiers) {
			errs = append(errs, fmt.Sprintf("products[%d].min_tier %d does not reference a tier", i, p.MinTier))
		}
	}

	// packages (optional)
	names := make(map[string]bool, len(cfg.Packages))
	for i, p := range cfg.Packages {
		key := strings.ToUpper(strings.TrimSpace(p.Name))
		if key == "" {
			errs = append(errs, fmt.Sprintf("packages[%d].name is required", i))
		} else if names[key] {
			errs = append(errs, fmt.Sprintf("packages[%d].name %q is duplicated", i, p.Name))
		}
		names[key] = true
		if p.Amount <= 0 {
			errs = append(errs, fmt.Sprintf("packages[%d].amount must be > 0", i))
		}
		if p.Bonus < 0 {
			errs = append(errs, fmt.Sprintf("packages[%d].bonus must be >= 0", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// parseRate parses a discount rate and requires it to lie in [0,1].
func parseRate(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	rate, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid decimal %q", s)
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.Zero, fmt.Errorf("must be in [0,1], got %s", s)
	}
	return rate, nil
}
