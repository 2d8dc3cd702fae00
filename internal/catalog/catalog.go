package catalog

import (
	"fmt"

	"storefront/internal/domain"
)

// Filter narrows a product listing. Zero values match everything.
type Filter struct {
	Category      domain.Category
	ExclusiveOnly bool
}

func (f Filter) match(p domain.Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.ExclusiveOnly && !p.Exclusive {
		return false
	}
	return true
}

// Catalog is the read-only product list. It knows nothing about accounts;
// tier gating is left to callers.
type Catalog struct {
	products []domain.Product
	byID     map[int]int
}

// NewCatalog indexes products by id. Duplicate ids are rejected.
func NewCatalog(products []domain.Product) (*Catalog, error) {
	c := &Catalog{
		products: append([]domain.Product(nil), products...),
		byID:     make(map[int]int, len(products)),
	}
	for i, p := range c.products {
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate product id %d", p.ID)
		}
		c.byID[p.ID] = i
	}
	return c, nil
}

// FindByID returns the product with the given id or domain.ErrNotFound.
func (c *Catalog) FindByID(id int) (domain.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	return c.products[i], nil
}

// List returns products matching the filter in catalog order.
func (c *Catalog) List(f Filter) []domain.Product {
	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if f.match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Partition splits a filtered listing into products purchasable at tierIndex
// and products still locked behind a higher tier.
func (c *Catalog) Partition(tierIndex int, f Filter) (accessible, locked []domain.Product) {
	for _, p := range c.List(f) {
		if p.PurchasableAt(tierIndex) {
			accessible = append(accessible, p)
		} else {
			locked = append(locked, p)
		}
	}
	return accessible, locked
}

// Len returns the number of products.
func (c *Catalog) Len() int { return len(c.products) }
