package catalog

// RawConfig mirrors the YAML catalog file.
type RawConfig struct {
	Version  string       `yaml:"version"`
	Tiers    []RawTier    `yaml:"tiers"`
	Products []RawProduct `yaml:"products"`
	Packages []RawPackage `yaml:"packages,omitempty"`
}

type RawTier struct {
	Name     string   `yaml:"name"`
	Cost     int64    `yaml:"cost"`
	Discount string   `yaml:"discount"` // decimal string, e.g. "0.05"
	Perks    []string `yaml:"perks,omitempty"`
	Badge    string   `yaml:"badge,omitempty"`
}

type RawProduct struct {
	ID          int    `yaml:"id"`
	Category    string `yaml:"category"`
	Name        string `yaml:"name"`
	Price       int64  `yaml:"price"`
	Description string `yaml:"description"`
	MinTier     int    `yaml:"min_tier"`
	Exclusive   bool   `yaml:"exclusive,omitempty"`
}

type RawPackage struct {
	Name   string `yaml:"name"`
	Amount int64  `yaml:"amount"`
	Price  string `yaml:"price"`
	Bonus  int64  `yaml:"bonus,omitempty"`
}
