package handlers

import (
	"net/http"

	"storefront/internal/ledger"
)

func (a *App) RewardCredits(w http.ResponseWriter, r *http.Request) {
	a.grant(w, r, ledger.RewardCredits)
}

func (a *App) RewardDiscount(w http.ResponseWriter, r *http.Request) {
	a.grant(w, r, ledger.RewardDiscount)
}

func (a *App) grant(w http.ResponseWriter, r *http.Request, kind ledger.RewardKind) {
	reward, err := a.Ledger.GrantReward(r.Context(), kind)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"reward":                   reward,
		"credits":                  a.Ledger.Balance(),
		"one_time_discount_active": a.Ledger.OneTimeDiscountActive(),
	})
}
