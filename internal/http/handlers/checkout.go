package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (a *App) Checkout(w http.ResponseWriter, r *http.Request) {
	p, err := a.Ledger.Checkout(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	balance := a.Ledger.Balance()
	a.json(w, http.StatusCreated, map[string]any{
		"purchase":        p,
		"credits":         balance,
		"credits_display": a.formatCredits(r, balance),
	})
}

func (a *App) ActivateTier(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid tier index")
		return
	}
	tier, err := a.Ledger.ActivateTier(r.Context(), index)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"tier": tier, "credits": a.Ledger.Balance()})
}

func (a *App) BuyPackage(w http.ResponseWriter, r *http.Request) {
	pkg, err := a.Ledger.BuyPackage(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	balance := a.Ledger.Balance()
	a.json(w, http.StatusOK, map[string]any{
		"package":         pkg,
		"credits":         balance,
		"credits_display": a.formatCredits(r, balance),
	})
}
