package ledger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/infra/credentials"
)

type memCredentials struct {
	cred  *domain.Credential
	err   error
	saves int
}

func (m *memCredentials) Get(context.Context) (*domain.Credential, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.cred == nil {
		return nil, domain.ErrNotFound
	}
	c := *m.cred
	return &c, nil
}

func (m *memCredentials) Save(_ context.Context, cred domain.Credential) error {
	if m.err != nil {
		return m.err
	}
	m.saves++
	m.cred = &cred
	return nil
}

type memSessions struct {
	sess    *domain.Session
	saveErr error
	saves   int
}

func (m *memSessions) Load(context.Context) (*domain.Session, error) {
	if m.sess == nil {
		return nil, domain.ErrNotFound
	}
	s := *m.sess
	s.PurchaseHistory = domain.ClonePurchases(m.sess.PurchaseHistory)
	return &s, nil
}

func (m *memSessions) Save(_ context.Context, s domain.Session) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.sess = &s
	return nil
}

// testData mirrors the storefront shape with a 20% second tier so the
// documented scenarios can be replayed exactly.
func testData(t *testing.T) *catalog.Data {
	t.Helper()
	data, err := catalog.Build(catalog.RawConfig{
		Tiers: []catalog.RawTier{
			{Name: "NEOPHYTE", Cost: 0, Discount: "0"},
			{Name: "OPERATIVE", Cost: 29, Discount: "0.20"},
			{Name: "ARCHITECT", Cost: 99, Discount: "0.30"},
		},
		Products: []catalog.RawProduct{
			{ID: 1, Category: "hardware", Name: "NEURAL JACK", Price: 2400},
			{ID: 2, Category: "software", Name: "CORTEX OS", Price: 5000},
			{ID: 3, Category: "hardware", Name: "QUANTUM CORE", Price: 9000, MinTier: 2, Exclusive: true},
			{ID: 4, Category: "software", Name: "STEALTH CLOAK", Price: 1200, MinTier: 1, Exclusive: true},
		},
		Packages: []catalog.RawPackage{
			{Name: "STARTER", Amount: 1000, Price: "$4.99"},
			{Name: "RUNNER", Amount: 5000, Price: "$19.99", Bonus: 500},
		},
	})
	if err != nil {
		t.Fatalf("catalog.Build error: %v", err)
	}
	return data
}

type fixture struct {
	ledger   *Ledger
	creds    *memCredentials
	sessions *memSessions
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{creds: &memCredentials{}, sessions: &memSessions{}}
	f.ledger = f.open(t)
	return f
}

// open builds a new ledger over the fixture's repositories, simulating a
// page reload.
func (f *fixture) open(t *testing.T) *Ledger {
	t.Helper()
	ids := 0
	l, err := New(Options{
		Data:        testData(t),
		Credentials: f.creds,
		Sessions:    f.sessions,
		Hasher:      credentials.NewBcryptHasher(bcrypt.MinCost),
		Logger:      zerolog.Nop(),
		Now:         func() time.Time { return time.Date(2077, 1, 2, 3, 4, 5, 0, time.UTC) },
		NewID: func() string {
			ids++
			return fmt.Sprintf("purchase-%d", ids)
		},
	})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return l
}

func signedUp(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t)
	if err := f.ledger.Signup(context.Background(), "runner@night.city", "chrome"); err != nil {
		t.Fatalf("Signup error: %v", err)
	}
	return f
}
