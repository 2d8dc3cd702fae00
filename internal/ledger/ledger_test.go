package ledger

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/pricing"
)

func TestNewRequiresDependencies(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatal("expected error without catalog data")
	}
	if _, err := New(Options{Data: testData(t)}); err == nil {
		t.Fatal("expected error without repositories")
	}
}

func TestFreshAccountDefaults(t *testing.T) {
	f := signedUp(t)
	acct := f.ledger.Account()
	if !acct.LoggedIn || !acct.HasRegisteredCredential {
		t.Fatalf("expected logged-in registered account, got %+v", acct)
	}
	if acct.CreditBalance != 5000 || acct.CurrentTier != 0 {
		t.Fatalf("expected 5000 credits at tier 0, got %d at %d", acct.CreditBalance, acct.CurrentTier)
	}
	if len(acct.Cart) != 0 || len(acct.PurchaseHistory) != 0 || acct.OneTimeDiscountActive {
		t.Fatalf("expected empty cart/history and no override, got %+v", acct)
	}
	if f.sessions.sess == nil || !f.sessions.sess.LoggedIn || f.sessions.sess.CreditBalance != 5000 {
		t.Fatalf("expected session persisted on signup, got %+v", f.sessions.sess)
	}
	if f.creds.cred.Secret == "chrome" {
		t.Fatal("credential secret stored in plain text")
	}
}

func TestScenarioPurchaseTierAndOverride(t *testing.T) {
	ctx := context.Background()
	f := signedUp(t)
	l := f.ledger

	// scenario 1
	if _, err := l.AddToCart(ctx, 1); err != nil {
		t.Fatalf("AddToCart error: %v", err)
	}
	if got := l.ComputeTotals(); got != (pricing.Totals{Subtotal: 2400, Discount: 0, Total: 2400}) {
		t.Fatalf("totals = %+v", got)
	}
	if err := l.DeductCredits(ctx, 2400); err != nil {
		t.Fatalf("DeductCredits error: %v", err)
	}
	if l.Balance() != 2600 {
		t.Fatalf("balance = %d, want 2600", l.Balance())
	}
	p := l.CompletePurchase(ctx)
	if p.Total != 2400 || p.TierAtPurchase != 0 || len(p.Items) != 1 {
		t.Fatalf("unexpected purchase %+v", p)
	}
	if len(l.History()) != 1 || len(l.Cart()) != 0 {
		t.Fatalf("history=%d cart=%d", len(l.History()), len(l.Cart()))
	}

	// scenario 2
	tier, err := l.ActivateTier(ctx, 1)
	if err != nil {
		t.Fatalf("ActivateTier error: %v", err)
	}
	if tier.ActivationCost != 29 || l.Balance() != 2571 || l.CurrentTier().Index != 1 {
		t.Fatalf("tier=%+v balance=%d current=%d", tier, l.Balance(), l.CurrentTier().Index)
	}
	if _, err := l.AddToCart(ctx, 2); err != nil {
		t.Fatalf("AddToCart error: %v", err)
	}
	if got := l.ComputeTotals(); got != (pricing.Totals{Subtotal: 5000, Discount: 1000, Total: 4000}) {
		t.Fatalf("tier totals = %+v", got)
	}

	// scenario 3
	if _, err := l.GrantReward(ctx, RewardDiscount); err != nil {
		t.Fatalf("GrantReward error: %v", err)
	}
	if !l.OneTimeDiscountActive() {
		t.Fatal("expected override active")
	}
	if got := l.ComputeTotals(); got != (pricing.Totals{Subtotal: 5000, Discount: 2500, Total: 2500}) {
		t.Fatalf("override totals = %+v", got)
	}
	purchase, err := l.Checkout(ctx)
	if err != nil {
		t.Fatalf("Checkout error: %v", err)
	}
	if purchase.Total != 2500 || purchase.Discount != 2500 || purchase.TierAtPurchase != 1 {
		t.Fatalf("unexpected purchase %+v", purchase)
	}
	if l.OneTimeDiscountActive() {
		t.Fatal("override should reset after checkout")
	}
	if l.Balance() != 71 {
		t.Fatalf("balance = %d, want 71", l.Balance())
	}
	if _, err := l.AddToCart(ctx, 2); err != nil {
		t.Fatalf("AddToCart error: %v", err)
	}
	if got := l.ComputeTotals(); got != (pricing.Totals{Subtotal: 5000, Discount: 1000, Total: 4000}) {
		t.Fatalf("totals after reset = %+v", got)
	}
	history := l.History()
	if len(history) != 2 || history[0].ID != purchase.ID {
		t.Fatalf("expected newest purchase first, got %+v", history)
	}
}

func TestAddToCartTierGate(t *testing.T) {
	ctx := context.Background()
	f := signedUp(t)
	_, err := f.ledger.AddToCart(ctx, 3)
	if !errors.Is(err, domain.ErrBlocked) {
		t.Fatalf("expected ErrBlocked, got %v", err)
	}
	if len(f.ledger.Cart()) != 0 {
		t.Fatal("cart changed on blocked add")
	}
	if _, err := f.ledger.AddToCart(ctx, 42); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddToCartDuplicatesStaySeparate(t *testing.T) {
	ctx := context.Background()
	f := signedUp(t)
	for i := 0; i < 2; i++ {
		if _, err := f.ledger.AddToCart(ctx, 1); err != nil {
			t.Fatalf("AddToCart error: %v", err)
		}
	}
	if got := len(f.ledger.Cart()); got != 2 {
		t.Fatalf("expected 2 lines, got %d", got)
	}
	if got := f.ledger.ComputeTotals().Subtotal; got != 4800 {
		t.Fatalf("subtotal = %d, want 4800", got)
	}
}

func TestRemoveFromCart(t *testing.T) {
	ctx := context.Background()
	f := signedUp(t)
	l := f.ledger
	for _, id := range []int{1, 2, 1} {
		if _, err := l.AddToCart(ctx, id); err != nil {
			t.Fatalf("AddToCart(%d) error: %v", id, err)
		}
	}
	removed, err := l.RemoveFromCart(ctx, 1)
	if err != nil {
		t.Fatalf("RemoveFromCart error: %v", err)
	}
	if removed.Product.ID != 2 {
		t.Fatalf("removed product %d, want 2", removed.Product.ID)
	}
	cart := l.Cart()
	if len(cart) != 2 || cart[0].Product.ID != 1 || cart[1].Product.ID != 1 {
		t.Fatalf("unexpected cart %+v", cart)
	}
	for _, idx := range []int{2, 5, -1} {
		if _, err := l.RemoveFromCart(ctx, idx); !errors.Is(err, domain.ErrIndexOutOfRange) {
			t.Fatalf("RemoveFromCart(%d) expected ErrIndexOutOfRange, got %v", idx, err)
		}
	}
	if len(l.Cart()) != 2 {
		t.Fatal("cart changed on invalid remove")
	}
	if l.Balance() != 5000 || len(l.History()) != 0 {
		t.Fatal("remove touched balance or history")
	}
}

func TestComputeTotalsEmptyAndPure(t *testing.T) {
	f := signedUp(t)
	if got := f.ledger.ComputeTotals(); got != (pricing.Totals{}) {
		t.Fatalf("empty cart totals = %+v", got)
	}
	if _, err := f.ledger.AddToCart(context.Background(), 2); err != nil {
		t.Fatalf("AddToCart error: %v", err)
	}
	a := f.ledger.ComputeTotals()
	b := f.ledger.ComputeTotals()
	if a != b {
		t.Fatalf("ComputeTotals not stable: %+v vs %+v", a, b)
	}
	if f.ledger.Balance() != 5000 || len(f.ledger.Cart()) != 1 {
		t.Fatal("ComputeTotals mutated state")
	}
}

func TestDeductCreditsBoundaries(t *testing.T) {
	ctx := context.Background()
	f := signedUp(t)
	l := f.ledger

	if err := l.DeductCredits(ctx, 5001); !errors.Is(err, domain.ErrInsufficientCredits) {
		t.Fatalf("expected ErrInsufficientCredits, got %v", err)
	}
	if l.Balance() != 5000 || len(l.History()) != 0 {
		t.Fatalf("failed deduction changed state: balance=%d", l.Balance())
	}
	if err := l.DeductCredits(ctx, 5000); err != nil {
		t.Fatalf("exact deduction error: %v", err)
	}
	if l.Balance() != 0 {
		t.Fatalf("balance = %d, want 0", l.Balance())
	}
	if err := l.DeductCredits(ctx, -1); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if f.sessions.sess.CreditBalance != 0 {
		t.Fatalf("persisted balance = %d, want 0", f.sessions.sess.CreditBalance)
	}
}

func TestBalanceNeverNegative(t *testing.T) {
	ctx := context.Background()
	f := signedUp(t)
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		amount := rng.Int63n(3000)
		before := f.ledger.Balance()
		err := f.ledger.DeductCredits(ctx, amount)
		after := f.ledger.Balance()
		if after < 0 {
			t.Fatalf("balance went negative: %d", after)
		}
		if err != nil && after != before {
			t.Fatalf("failed deduction changed balance %d -> %d", before, after)
		}
		if i%7 == 0 {
			if err := f.ledger.AddCredits(ctx, rng.Int63n(1000)); err != nil {
				t.Fatalf("AddCredits error: %v", err)
			}
		}
	}
}

func TestAddCreditsGuards(t *testing.T) {
	ctx := context.Background()
	f := signedUp(t)
	if err := f.ledger.AddCredits(ctx, -5); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative, got %v", err)
	}
	if err := f.ledger.AddCredits(ctx, math.MaxInt64); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for overflow, got %v", err)
	}
	if f.ledger.Balance() != 5000 {
		t.Fatalf("balance = %d, want 5000", f.ledger.Balance())
	}
	if err := f.ledger.AddCredits(ctx, 0); err != nil {
		t.Fatalf("AddCredits(0) error: %v", err)
	}
}

func TestCheckoutFailuresChangeNothing(t *testing.T) {
	ctx := context.Background()
	f := signedUp(t)
	l := f.ledger

	if _, err := l.Checkout(ctx); !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := l.AddToCart(ctx, 1); err != nil {
			t.Fatalf("AddToCart error: %v", err)
		}
	}
	l.ActivateOneTimeDiscount()
	l.ActivateOneTimeDiscount()
	if err := l.DeductCredits(ctx, 4000); err != nil {
		t.Fatalf("DeductCredits error: %v", err)
	}
	// 7200 * 0.5 = 3600 > 1000
	if _, err := l.Checkout(ctx); !errors.Is(err, domain.ErrInsufficientCredits) {
		t.Fatalf("expected ErrInsufficientCredits, got %v", err)
	}
	if l.Balance() != 1000 || len(l.Cart()) != 3 || len(l.History()) != 0 || !l.OneTimeDiscountActive() {
		t.Fatalf("failed checkout changed state: %+v", l.Account())
	}
	if l.CanAfford() {
		t.Fatal("CanAfford should be false")
	}
}

func TestCompletePurchaseSnapshot(t *testing.T) {
	ctx := context.Background()
	f := signedUp(t)
	l := f.ledger
	if _, err := l.AddToCart(ctx, 2); err != nil {
		t.Fatalf("AddToCart error: %v", err)
	}
	want := l.ComputeTotals().Total
	p := l.CompletePurchase(ctx)
	if p.Total != want {
		t.Fatalf("purchase total %d, want %d", p.Total, want)
	}
	if len(l.Cart()) != 0 || len(l.History()) != 1 {
		t.Fatalf("cart=%d history=%d", len(l.Cart()), len(l.History()))
	}
	if _, err := l.AddToCart(ctx, 1); err != nil {
		t.Fatalf("AddToCart error: %v", err)
	}
	if got := l.History()[0].Items; len(got) != 1 || got[0].Product.ID != 2 {
		t.Fatalf("history snapshot changed: %+v", got)
	}
	if p.ID != "purchase-1" || p.Timestamp.Year() != 2077 {
		t.Fatalf("unexpected id/timestamp: %+v", p)
	}
}

func TestActivateTierPolicy(t *testing.T) {
	ctx := context.Background()
	f := signedUp(t)
	l := f.ledger

	if _, err := l.ActivateTier(ctx, 7); !errors.Is(err, domain.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if _, err := l.ActivateTier(ctx, 0); !errors.Is(err, domain.ErrInvalidTier) {
		t.Fatalf("expected ErrInvalidTier for current tier, got %v", err)
	}
	if _, err := l.ActivateTier(ctx, 2); err != nil {
		t.Fatalf("ActivateTier(2) error: %v", err)
	}
	if _, err := l.ActivateTier(ctx, 1); !errors.Is(err, domain.ErrInvalidTier) {
		t.Fatalf("expected ErrInvalidTier for downgrade, got %v", err)
	}
	if l.Balance() != 4901 || l.CurrentTier().Index != 2 {
		t.Fatalf("balance=%d tier=%d", l.Balance(), l.CurrentTier().Index)
	}
	if _, err := l.AddToCart(ctx, 3); err != nil {
		t.Fatalf("tier 2 product should be unlocked: %v", err)
	}
}

func TestActivateTierInsufficient(t *testing.T) {
	ctx := context.Background()
	f := signedUp(t)
	l := f.ledger
	if err := l.DeductCredits(ctx, 4950); err != nil {
		t.Fatalf("DeductCredits error: %v", err)
	}
	if _, err := l.ActivateTier(ctx, 2); !errors.Is(err, domain.ErrInsufficientCredits) {
		t.Fatalf("expected ErrInsufficientCredits, got %v", err)
	}
	if l.Balance() != 50 || l.CurrentTier().Index != 0 {
		t.Fatalf("failed activation changed state: balance=%d tier=%d", l.Balance(), l.CurrentTier().Index)
	}
}

func TestAnonymousCartIsRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	l := f.ledger
	if _, err := l.AddToCart(ctx, 1); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("AddToCart expected ErrNotAuthenticated, got %v", err)
	}
	if _, err := l.RemoveFromCart(ctx, 0); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("RemoveFromCart expected ErrNotAuthenticated, got %v", err)
	}
	if _, err := l.Checkout(ctx); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("Checkout expected ErrNotAuthenticated, got %v", err)
	}
	if _, err := l.ActivateTier(ctx, 1); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("ActivateTier expected ErrNotAuthenticated, got %v", err)
	}
	if _, err := l.BuyPackage(ctx, "starter"); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("BuyPackage expected ErrNotAuthenticated, got %v", err)
	}
	if f.sessions.saves != 0 {
		t.Fatalf("anonymous ledger persisted %d times", f.sessions.saves)
	}
}

func TestRewards(t *testing.T) {
	ctx := context.Background()
	f := signedUp(t)
	r, err := f.ledger.GrantReward(ctx, RewardCredits)
	if err != nil {
		t.Fatalf("GrantReward error: %v", err)
	}
	if r.Credits != MinigameCreditReward || f.ledger.Balance() != 6000 {
		t.Fatalf("reward=%+v balance=%d", r, f.ledger.Balance())
	}
	if _, err := f.ledger.GrantReward(ctx, "jackpot"); !errors.Is(err, ErrUnknownReward) {
		t.Fatalf("expected ErrUnknownReward, got %v", err)
	}
	f.ledger.GrantDiscountReward()
	f.ledger.GrantDiscountReward()
	if !f.ledger.OneTimeDiscountActive() {
		t.Fatal("expected discount active")
	}
	f.ledger.ClearOneTimeDiscount()
	if f.ledger.OneTimeDiscountActive() {
		t.Fatal("expected discount cleared")
	}
}

func TestBuyPackage(t *testing.T) {
	ctx := context.Background()
	f := signedUp(t)
	pkg, err := f.ledger.BuyPackage(ctx, "Runner")
	if err != nil {
		t.Fatalf("BuyPackage error: %v", err)
	}
	if pkg.Amount != 5000 || f.ledger.Balance() != 10000 {
		t.Fatalf("package=%+v balance=%d", pkg, f.ledger.Balance())
	}
	if _, err := f.ledger.BuyPackage(ctx, "whale"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	f := signedUp(t)
	l := f.ledger
	if _, err := l.ActivateTier(ctx, 1); err != nil {
		t.Fatalf("ActivateTier error: %v", err)
	}
	for _, id := range []int{1, 4} {
		if _, err := l.AddToCart(ctx, id); err != nil {
			t.Fatalf("AddToCart error: %v", err)
		}
	}
	if _, err := l.Checkout(ctx); err != nil {
		t.Fatalf("Checkout error: %v", err)
	}
	got := l.Stats()
	want := Stats{Orders: 1, Items: 2, TotalSpent: 2880, Saved: 720}
	if got != want {
		t.Fatalf("Stats() = %+v, want %+v", got, want)
	}
}

func TestPersistFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	f := signedUp(t)
	f.sessions.saveErr = errors.New("disk full")
	if err := f.ledger.AddCredits(ctx, 10); err != nil {
		t.Fatalf("AddCredits should ignore persistence errors, got %v", err)
	}
	if f.ledger.Balance() != 5010 {
		t.Fatalf("balance = %d, want 5010", f.ledger.Balance())
	}
}
