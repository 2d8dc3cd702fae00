package ledger

import (
	"context"
	"fmt"
	"math"

	"storefront/internal/domain"
)

// DeductCredits subtracts amount when the balance covers it. Otherwise the
// balance is untouched and ErrInsufficientCredits is returned.
func (l *Ledger) DeductCredits(ctx context.Context, amount int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.deduct(amount); err != nil {
		return err
	}
	l.persist(ctx)
	return nil
}

// AddCredits increases the balance. Negative amounts and amounts that would
// overflow are rejected with ErrInvalidAmount.
func (l *Ledger) AddCredits(ctx context.Context, amount int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.add(amount); err != nil {
		return err
	}
	l.persist(ctx)
	return nil
}

// CanAfford reports whether the balance covers the current cart total.
func (l *Ledger) CanAfford() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.acct.CreditBalance >= l.totals().Total
}

func (l *Ledger) deduct(amount int64) error {
	if amount < 0 {
		return fmt.Errorf("deduct %d: %w", amount, domain.ErrInvalidAmount)
	}
	if l.acct.CreditBalance < amount {
		l.log.Info().Int64("amount", amount).Int64("credits", l.acct.CreditBalance).Msg("deduction rejected")
		return fmt.Errorf("need %d, have %d: %w", amount, l.acct.CreditBalance, domain.ErrInsufficientCredits)
	}
	l.acct.CreditBalance -= amount
	l.log.Debug().Int64("amount", amount).Int64("credits", l.acct.CreditBalance).Msg("credits deducted")
	return nil
}

func (l *Ledger) add(amount int64) error {
	if amount < 0 || amount > math.MaxInt64-l.acct.CreditBalance {
		return fmt.Errorf("add %d: %w", amount, domain.ErrInvalidAmount)
	}
	l.acct.CreditBalance += amount
	l.log.Debug().Int64("amount", amount).Int64("credits", l.acct.CreditBalance).Msg("credits added")
	return nil
}

// BuyPackage credits a wallet package. Only the package amount is credited;
// the advertised bonus is not.
func (l *Ledger) BuyPackage(ctx context.Context, name string) (domain.CreditPackage, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireAuth(); err != nil {
		return domain.CreditPackage{}, err
	}
	pkg, err := l.data.Packages.Find(name)
	if err != nil {
		return domain.CreditPackage{}, err
	}
	if err := l.add(pkg.Amount); err != nil {
		return domain.CreditPackage{}, err
	}
	l.log.Info().Str("package", pkg.Name).Int64("credits", l.acct.CreditBalance).Msg("credit package purchased")
	l.persist(ctx)
	return pkg, nil
}
