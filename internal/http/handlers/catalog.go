package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"storefront/internal/catalog"
	"storefront/internal/domain"
)

type productDTO struct {
	domain.Product
	Purchasable bool `json:"purchasable"`
}

// Catalog lists products split into those the current tier can buy and
// those it cannot. Query: category=hardware|software, exclusive=true.
func (a *App) Catalog(w http.ResponseWriter, r *http.Request) {
	var f catalog.Filter
	if c := strings.TrimSpace(r.URL.Query().Get("category")); c != "" {
		f.Category = domain.Category(strings.ToLower(c))
		if !f.Category.Valid() {
			a.error(w, http.StatusBadRequest, "bad_request", "category must be hardware or software")
			return
		}
	}
	if v := r.URL.Query().Get("exclusive"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "exclusive must be a boolean")
			return
		}
		f.ExclusiveOnly = b
	}
	tier := a.Ledger.CurrentTier()
	accessible, locked := a.Ledger.Catalog().Partition(tier.Index, f)
	a.json(w, http.StatusOK, map[string]any{
		"tier":       tier.Index,
		"accessible": nonNil(accessible),
		"locked":     nonNil(locked),
	})
}

func (a *App) CatalogItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid product id")
		return
	}
	p, err := a.Ledger.Catalog().FindByID(id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, productDTO{Product: p, Purchasable: p.PurchasableAt(a.Ledger.CurrentTier().Index)})
}

func (a *App) Tiers(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"current": a.Ledger.CurrentTier().Index,
		"tiers":   a.Ledger.Tiers().All(),
	})
}

func (a *App) Packages(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"packages": nonNil(a.Ledger.Packages().All())})
}
