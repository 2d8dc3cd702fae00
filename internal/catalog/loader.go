package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"storefront/internal/domain"
)

//go:embed defaults.yaml
var defaultYAML []byte

// Data bundles everything a storefront needs at process start.
type Data struct {
	Version  string
	Catalog  *Catalog
	Tiers    *TierTable
	Packages *Packages
}

// Default returns the built-in storefront data.
func Default() (*Data, error) {
	return Parse(defaultYAML)
}

// LoadFile reads and validates a catalog YAML file. An empty path falls back
// to the built-in data.
func LoadFile(path string) (*Data, error) {
	if path == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML, validates it and builds typed lookups.
func Parse(b []byte) (*Data, error) {
	var raw RawConfig
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return Build(raw)
}

// Build converts a RawConfig into typed lookups after validation.
func Build(raw RawConfig) (*Data, error) {
	if err := ValidateRaw(raw); err != nil {
		return nil, err
	}

	tiers := make([]domain.Tier, len(raw.Tiers))
	for i, t := range raw.Tiers {
		rate, _ := parseRate(t.Discount) // validated above
		tiers[i] = domain.Tier{
			Name:           t.Name,
			ActivationCost: t.Cost,
			DiscountRate:   rate,
			Perks:          t.Perks,
			Badge:          t.Badge,
		}
	}

	products := make([]domain.Product, len(raw.Products))
	for i, p := range raw.Products {
		products[i] = domain.Product{
			ID:          p.ID,
			Category:    domain.Category(p.Category),
			Name:        p.Name,
			UnitPrice:   p.Price,
			Description: p.Description,
			MinTier:     p.MinTier,
			Exclusive:   p.Exclusive,
		}
	}
	cat, err := NewCatalog(products)
	if err != nil {
		return nil, err
	}

	pkgs := make([]domain.CreditPackage, len(raw.Packages))
	for i, p := range raw.Packages {
		pkgs[i] = domain.CreditPackage{Name: p.Name, Amount: p.Amount, Price: p.Price, Bonus: p.Bonus}
	}

	return &Data{
		Version:  raw.Version,
		Catalog:  cat,
		Tiers:    NewTierTable(tiers),
		Packages: NewPackages(pkgs),
	}, nil
}
