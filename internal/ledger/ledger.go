// Package ledger owns account state for a single storefront session: credit
// balance, tier, cart, purchase history and the one-time discount flag.
// Every mutation goes through a Ledger method; durable fields are mirrored to
// the session repository after each change while logged in.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/infra/credentials"
)

// DefaultStartingCredits is the balance granted to a fresh account.
const DefaultStartingCredits int64 = 5000

// Options configures a Ledger. Catalog data and both repositories are required.
type Options struct {
	Data            *catalog.Data
	Credentials     domain.CredentialRepository
	Sessions        domain.SessionRepository
	Hasher          credentials.Hasher
	Logger          zerolog.Logger
	StartingCredits int64
	Now             func() time.Time
	NewID           func() string
}

// Ledger is the single mutator of account state. It is safe for concurrent
// use; operations are serialized.
type Ledger struct {
	mu sync.Mutex

	data     *catalog.Data
	creds    domain.CredentialRepository
	sessions domain.SessionRepository
	hasher   credentials.Hasher
	log      zerolog.Logger

	startingCredits int64
	now             func() time.Time
	newID           func() string

	acct domain.Account
}

// New builds an anonymous ledger. Call Restore to pick up persisted state.
func New(opts Options) (*Ledger, error) {
	if opts.Data == nil || opts.Data.Catalog == nil || opts.Data.Tiers == nil || opts.Data.Tiers.Len() == 0 {
		return nil, errors.New("ledger: catalog data is required")
	}
	if opts.Credentials == nil || opts.Sessions == nil {
		return nil, errors.New("ledger: credential and session repositories are required")
	}
	if opts.Data.Packages == nil {
		opts.Data.Packages = catalog.NewPackages(nil)
	}
	if opts.Hasher == nil {
		opts.Hasher = credentials.NewBcryptHasher(0)
	}
	if opts.StartingCredits <= 0 {
		opts.StartingCredits = DefaultStartingCredits
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	l := &Ledger{
		data:            opts.Data,
		creds:           opts.Credentials,
		sessions:        opts.Sessions,
		hasher:          opts.Hasher,
		log:             opts.Logger.With().Str("component", "ledger").Logger(),
		startingCredits: opts.StartingCredits,
		now:             opts.Now,
		newID:           opts.NewID,
	}
	l.acct = l.freshAccount()
	return l, nil
}

// Restore reads persisted state. A registered credential sets
// HasRegisteredCredential; a session saved as logged in is resumed.
func (l *Ledger) Restore(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.creds.Get(ctx); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("ledger: restore credential: %w", err)
	}
	l.acct.HasRegisteredCredential = true

	sess, err := l.sessions.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("ledger: restore session: %w", err)
	}
	if sess.LoggedIn {
		l.applySession(*sess)
		l.acct.LoggedIn = true
		l.log.Info().Int64("credits", l.acct.CreditBalance).Int("tier", l.acct.CurrentTier).Msg("session resumed")
	}
	return nil
}

// Account returns a snapshot of the full account state.
func (l *Ledger) Account() domain.Account {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.acct.Clone()
}

func (l *Ledger) LoggedIn() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.acct.LoggedIn
}

func (l *Ledger) Balance() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.acct.CreditBalance
}

// CurrentTier returns the tier the account is on.
func (l *Ledger) CurrentTier() domain.Tier {
	l.mu.Lock()
	defer l.mu.Unlock()
	tier, _ := l.data.Tiers.Get(l.acct.CurrentTier)
	return tier
}

func (l *Ledger) Cart() []domain.CartLine {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.CartLine(nil), l.acct.Cart...)
}

// History returns purchases, most recent first.
func (l *Ledger) History() []domain.Purchase {
	l.mu.Lock()
	defer l.mu.Unlock()
	return domain.ClonePurchases(l.acct.PurchaseHistory)
}

func (l *Ledger) OneTimeDiscountActive() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.acct.OneTimeDiscountActive
}

func (l *Ledger) HasAccount() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.acct.HasRegisteredCredential
}

func (l *Ledger) Catalog() *catalog.Catalog   { return l.data.Catalog }
func (l *Ledger) Tiers() *catalog.TierTable   { return l.data.Tiers }
func (l *Ledger) Packages() *catalog.Packages { return l.data.Packages }

func (l *Ledger) freshAccount() domain.Account {
	return domain.Account{
		CreditBalance: l.startingCredits,
		CurrentTier:   0,
	}
}

// applySession copies durable fields into the account. Corrupt values are
// repaired rather than trusted.
func (l *Ledger) applySession(s domain.Session) {
	l.acct.CreditBalance = s.CreditBalance
	if l.acct.CreditBalance < 0 {
		l.log.Warn().Int64("credits", s.CreditBalance).Msg("negative persisted balance reset to zero")
		l.acct.CreditBalance = 0
	}
	l.acct.CurrentTier = s.CurrentTier
	if !l.data.Tiers.Valid(s.CurrentTier) {
		l.log.Warn().Int("tier", s.CurrentTier).Msg("persisted tier out of range, falling back to tier 0")
		l.acct.CurrentTier = 0
	}
	l.acct.PurchaseHistory = domain.ClonePurchases(s.PurchaseHistory)
}

func (l *Ledger) session() domain.Session {
	return domain.Session{
		LoggedIn:        l.acct.LoggedIn,
		CreditBalance:   l.acct.CreditBalance,
		CurrentTier:     l.acct.CurrentTier,
		PurchaseHistory: domain.ClonePurchases(l.acct.PurchaseHistory),
	}
}

// persist mirrors durable fields while logged in. Failures are logged and
// swallowed: the in-memory state stays authoritative.
func (l *Ledger) persist(ctx context.Context) {
	l.checkInvariants()
	if !l.acct.LoggedIn {
		return
	}
	if err := l.sessions.Save(ctx, l.session()); err != nil {
		l.log.Error().Err(err).Msg("persist session failed")
	}
}

func (l *Ledger) requireAuth() error {
	if !l.acct.LoggedIn {
		return domain.ErrNotAuthenticated
	}
	return nil
}

// checkInvariants panics on states no public operation can produce.
func (l *Ledger) checkInvariants() {
	if l.acct.CreditBalance < 0 {
		panic(fmt.Sprintf("ledger: negative balance %d", l.acct.CreditBalance))
	}
	if !l.data.Tiers.Valid(l.acct.CurrentTier) {
		panic(fmt.Sprintf("ledger: invalid tier %d", l.acct.CurrentTier))
	}
}
