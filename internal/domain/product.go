package domain

// Category enumerates product kinds sold in the storefront.
type Category string

const (
	CategoryHardware Category = "hardware"
	CategorySoftware Category = "software"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return c == CategoryHardware || c == CategorySoftware
}

// Product is an immutable catalog entry. UnitPrice is expressed in credits.
type Product struct {
	ID          int      `json:"id"`
	Category    Category `json:"category"`
	Name        string   `json:"name"`
	UnitPrice   int64    `json:"unit_price"`
	Description string   `json:"description"`
	MinTier     int      `json:"min_tier"`
	Exclusive   bool     `json:"exclusive"`
}

// PurchasableAt reports whether the product may be bought at the given tier.
func (p Product) PurchasableAt(tierIndex int) bool {
	return p.MinTier <= tierIndex
}

// CreditPackage is a wallet top-up option. Bonus is advertised only and is
// not credited on purchase.
type CreditPackage struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
	Price  string `json:"price"`
	Bonus  int64  `json:"bonus,omitempty"`
}
