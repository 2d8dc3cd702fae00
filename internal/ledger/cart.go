package ledger

import (
	"context"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/pricing"
)

// AddToCart appends a line for productID. Products above the current tier
// are rejected with ErrBlocked and leave the cart untouched.
func (l *Ledger) AddToCart(ctx context.Context, productID int) (domain.CartLine, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireAuth(); err != nil {
		return domain.CartLine{}, err
	}
	p, err := l.data.Catalog.FindByID(productID)
	if err != nil {
		return domain.CartLine{}, err
	}
	if !p.PurchasableAt(l.acct.CurrentTier) {
		l.log.Info().Int("product", p.ID).Int("min_tier", p.MinTier).Int("tier", l.acct.CurrentTier).Msg("add to cart blocked")
		return domain.CartLine{}, fmt.Errorf("product %d requires tier %d: %w", p.ID, p.MinTier, domain.ErrBlocked)
	}
	line := domain.CartLine{Product: p}
	l.acct.Cart = append(l.acct.Cart, line)
	l.log.Debug().Int("product", p.ID).Int("lines", len(l.acct.Cart)).Msg("added to cart")
	return line, nil
}

// RemoveFromCart drops the line at index.
func (l *Ledger) RemoveFromCart(ctx context.Context, index int) (domain.CartLine, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireAuth(); err != nil {
		return domain.CartLine{}, err
	}
	if index < 0 || index >= len(l.acct.Cart) {
		return domain.CartLine{}, fmt.Errorf("index %d of %d: %w", index, len(l.acct.Cart), domain.ErrIndexOutOfRange)
	}
	removed := l.acct.Cart[index]
	cart := make([]domain.CartLine, 0, len(l.acct.Cart)-1)
	cart = append(cart, l.acct.Cart[:index]...)
	l.acct.Cart = append(cart, l.acct.Cart[index+1:]...)
	l.log.Debug().Int("index", index).Int("lines", len(l.acct.Cart)).Msg("removed from cart")
	return removed, nil
}

// ClearCart empties the cart without recording a purchase.
func (l *Ledger) ClearCart() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.acct.Cart = nil
}

// ComputeTotals prices the current cart. It has no side effects.
func (l *Ledger) ComputeTotals() pricing.Totals {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totals()
}

func (l *Ledger) totals() pricing.Totals {
	rate, err := l.data.Tiers.DiscountFor(l.acct.CurrentTier)
	if err != nil {
		// unreachable while invariants hold
		l.log.Error().Err(err).Msg("discount lookup failed")
	}
	return pricing.Compute(l.acct.Cart, rate, l.acct.OneTimeDiscountActive)
}
