package ledger

import (
	"context"
	"fmt"

	"storefront/internal/domain"
)

// CompletePurchase snapshots the cart into a new history entry and clears
// the cart. It does not move credits; callers pair it with DeductCredits,
// or use Checkout which does both.
func (l *Ledger) CompletePurchase(ctx context.Context) domain.Purchase {
	l.mu.Lock()
	defer l.mu.Unlock()

	p := l.recordPurchase()
	l.persist(ctx)
	return p
}

// Checkout performs the whole purchase in one step: check funds, deduct the
// total, record the purchase, clear the cart and reset the one-time
// discount. On any failure nothing changes.
func (l *Ledger) Checkout(ctx context.Context) (domain.Purchase, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireAuth(); err != nil {
		return domain.Purchase{}, err
	}
	if len(l.acct.Cart) == 0 {
		return domain.Purchase{}, domain.ErrEmptyCart
	}
	if err := l.deduct(l.totals().Total); err != nil {
		return domain.Purchase{}, err
	}
	p := l.recordPurchase()
	l.acct.OneTimeDiscountActive = false
	l.log.Info().Str("purchase", p.ID).Int64("total", p.Total).Int("items", len(p.Items)).Int64("credits", l.acct.CreditBalance).Msg("checkout completed")
	l.persist(ctx)
	return p, nil
}

func (l *Ledger) recordPurchase() domain.Purchase {
	t := l.totals()
	p := domain.Purchase{
		ID:             l.newID(),
		Items:          append([]domain.CartLine(nil), l.acct.Cart...),
		Timestamp:      l.now().UTC(),
		Subtotal:       t.Subtotal,
		Discount:       t.Discount,
		Total:          t.Total,
		TierAtPurchase: l.acct.CurrentTier,
	}
	history := make([]domain.Purchase, 0, len(l.acct.PurchaseHistory)+1)
	history = append(history, p)
	l.acct.PurchaseHistory = append(history, l.acct.PurchaseHistory...)
	l.acct.Cart = nil
	return p
}

// ActivateTier upgrades the account to tierIndex, paying its activation
// cost. Only strictly higher tiers may be activated.
func (l *Ledger) ActivateTier(ctx context.Context, tierIndex int) (domain.Tier, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireAuth(); err != nil {
		return domain.Tier{}, err
	}
	tier, err := l.data.Tiers.Get(tierIndex)
	if err != nil {
		return domain.Tier{}, err
	}
	if tierIndex <= l.acct.CurrentTier {
		return domain.Tier{}, fmt.Errorf("already at tier %d: %w", l.acct.CurrentTier, domain.ErrInvalidTier)
	}
	if err := l.deduct(tier.ActivationCost); err != nil {
		return domain.Tier{}, err
	}
	l.acct.CurrentTier = tierIndex
	l.log.Info().Int("tier", tierIndex).Str("name", tier.Name).Int64("credits", l.acct.CreditBalance).Msg("tier activated")
	l.persist(ctx)
	return tier, nil
}
