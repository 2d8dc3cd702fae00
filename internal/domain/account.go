package domain

import "time"

// CartLine is one product placed in the cart. Duplicate products occupy
// separate lines.
type CartLine struct {
	Product Product `json:"product"`
}

// Purchase records one completed checkout. Items is a snapshot of the cart.
type Purchase struct {
	ID             string     `json:"id"`
	Items          []CartLine `json:"items"`
	Timestamp      time.Time  `json:"timestamp"`
	Subtotal       int64      `json:"subtotal"`
	Discount       int64      `json:"discount"`
	Total          int64      `json:"total"`
	TierAtPurchase int        `json:"tier"`
}

// Account is the in-memory session state owned by the ledger.
type Account struct {
	LoggedIn                bool       `json:"logged_in"`
	CreditBalance           int64      `json:"credits"`
	CurrentTier             int        `json:"tier"`
	Cart                    []CartLine `json:"cart"`
	PurchaseHistory         []Purchase `json:"purchase_history"`
	OneTimeDiscountActive   bool       `json:"one_time_discount_active"`
	HasRegisteredCredential bool       `json:"has_account"`
}

// Clone returns a deep copy so callers cannot mutate ledger-owned slices.
func (a Account) Clone() Account {
	out := a
	out.Cart = append([]CartLine(nil), a.Cart...)
	out.PurchaseHistory = ClonePurchases(a.PurchaseHistory)
	return out
}

// ClonePurchases copies a purchase history including each item snapshot.
func ClonePurchases(in []Purchase) []Purchase {
	if in == nil {
		return nil
	}
	out := make([]Purchase, len(in))
	for i, p := range in {
		p.Items = append([]CartLine(nil), p.Items...)
		out[i] = p
	}
	return out
}

// Credential is the single registered login for a store. Secret holds a
// password hash, never the plain secret.
type Credential struct {
	Identifier string    `json:"identifier"`
	Secret     string    `json:"secret"`
	CreatedAt  time.Time `json:"created_at"`
}

// Session is the durable subset of Account. The cart is intentionally absent.
type Session struct {
	LoggedIn        bool       `json:"logged_in"`
	CreditBalance   int64      `json:"credits"`
	CurrentTier     int        `json:"tier"`
	PurchaseHistory []Purchase `json:"purchase_history"`
}
