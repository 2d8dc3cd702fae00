package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type addToCartRequest struct {
	ProductID int `json:"product_id"`
}

func (a *App) cartBody() map[string]any {
	return map[string]any{
		"lines":                    nonNil(a.Ledger.Cart()),
		"totals":                   a.Ledger.ComputeTotals(),
		"can_afford":               a.Ledger.CanAfford(),
		"one_time_discount_active": a.Ledger.OneTimeDiscountActive(),
	}
}

func (a *App) CartList(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, a.cartBody())
}

func (a *App) CartAdd(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if !a.decode(w, r, &req) {
		return
	}
	line, err := a.Ledger.AddToCart(r.Context(), req.ProductID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	body := a.cartBody()
	body["added"] = line
	a.json(w, http.StatusCreated, body)
}

func (a *App) CartRemove(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid cart index")
		return
	}
	line, err := a.Ledger.RemoveFromCart(r.Context(), index)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	body := a.cartBody()
	body["removed"] = line
	a.json(w, http.StatusOK, body)
}
