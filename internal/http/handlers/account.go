package handlers

import (
	"net/http"

	"storefront/internal/domain"
	"storefront/internal/ledger"
)

type accountResponse struct {
	domain.Account
	CreditsDisplay string       `json:"credits_display"`
	TierName       string       `json:"tier_name"`
	Badge          string       `json:"badge,omitempty"`
	Stats          ledger.Stats `json:"stats"`
}

func (a *App) account(r *http.Request) accountResponse {
	acct := a.Ledger.Account()
	acct.Cart = nonNil(acct.Cart)
	acct.PurchaseHistory = nonNil(acct.PurchaseHistory)
	tier := a.Ledger.CurrentTier()
	return accountResponse{
		Account:        acct,
		CreditsDisplay: a.formatCredits(r, acct.CreditBalance),
		TierName:       tier.Name,
		Badge:          tier.Badge,
		Stats:          a.Ledger.Stats(),
	}
}

func (a *App) Account(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, a.account(r))
}
