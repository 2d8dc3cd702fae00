package catalog

import (
	"fmt"
	"strings"

	"storefront/internal/domain"
)

// Packages holds the wallet top-up options keyed by upper-case name.
type Packages struct {
	ordered []domain.CreditPackage
	byName  map[string]int
}

func NewPackages(pkgs []domain.CreditPackage) *Packages {
	p := &Packages{
		ordered: append([]domain.CreditPackage(nil), pkgs...),
		byName:  make(map[string]int, len(pkgs)),
	}
	for i, pkg := range p.ordered {
		p.byName[strings.ToUpper(pkg.Name)] = i
	}
	return p
}

// Find looks a package up by name, case-insensitively.
func (p *Packages) Find(name string) (domain.CreditPackage, error) {
	i, ok := p.byName[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return domain.CreditPackage{}, fmt.Errorf("credit package %q: %w", name, domain.ErrNotFound)
	}
	return p.ordered[i], nil
}

func (p *Packages) All() []domain.CreditPackage {
	return append([]domain.CreditPackage(nil), p.ordered...)
}
