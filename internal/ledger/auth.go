package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/infra/credentials"
)

// Signup registers the store's single credential and starts a fresh,
// logged-in account.
func (l *Ledger) Signup(ctx context.Context, identifier, secret string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	identifier = credentials.NormalizeIdentifier(identifier)
	if identifier == "" || strings.TrimSpace(secret) == "" {
		return domain.ErrInvalidCredential
	}
	if _, err := l.creds.Get(ctx); err == nil {
		return domain.ErrAlreadyRegistered
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("ledger: lookup credential: %w", err)
	}

	digest, err := l.hasher.Hash(secret)
	if err != nil {
		return fmt.Errorf("ledger: hash secret: %w", err)
	}
	cred := domain.Credential{Identifier: identifier, Secret: digest, CreatedAt: l.now().UTC()}
	if err := l.creds.Save(ctx, cred); err != nil {
		return fmt.Errorf("ledger: save credential: %w", err)
	}

	l.acct = l.freshAccount()
	l.acct.HasRegisteredCredential = true
	l.acct.LoggedIn = true
	l.log.Info().Str("identifier", identifier).Msg("account registered")
	l.persist(ctx)
	return nil
}

// Login checks the credential and restores the persisted session.
func (l *Ledger) Login(ctx context.Context, identifier, secret string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cred, err := l.creds.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNoSuchAccount
		}
		return fmt.Errorf("ledger: lookup credential: %w", err)
	}
	l.acct.HasRegisteredCredential = true
	if cred.Identifier != credentials.NormalizeIdentifier(identifier) || !l.hasher.Compare(cred.Secret, secret) {
		l.log.Info().Msg("login rejected")
		return domain.ErrInvalidCredential
	}

	sess, err := l.sessions.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		fresh := l.freshAccount()
		l.acct.CreditBalance, l.acct.CurrentTier, l.acct.PurchaseHistory = fresh.CreditBalance, fresh.CurrentTier, nil
	case err != nil:
		return fmt.Errorf("ledger: load session: %w", err)
	default:
		l.applySession(*sess)
	}
	l.acct.LoggedIn = true
	l.log.Info().Str("identifier", cred.Identifier).Int64("credits", l.acct.CreditBalance).Int("tier", l.acct.CurrentTier).Msg("logged in")
	l.persist(ctx)
	return nil
}

// Logout ends the session and clears the cart. Balance, tier and history
// stay persisted for the next login.
func (l *Ledger) Logout(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.acct.LoggedIn {
		return
	}
	l.acct.LoggedIn = false
	l.acct.Cart = nil
	if err := l.sessions.Save(ctx, l.session()); err != nil {
		l.log.Error().Err(err).Msg("persist logout failed")
	}
	l.log.Info().Msg("logged out")
}
