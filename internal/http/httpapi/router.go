package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"storefront/internal/http/handlers"
	"storefront/internal/middleware"
)

// Options tunes the cross-cutting middleware.
type Options struct {
	CORSOrigins     []string
	RateLimitPerMin int
	DefaultLocale   string
	CountryLookup   middleware.CountryLookup
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	if opts.RateLimitPerMin <= 0 {
		opts.RateLimitPerMin = 30
	}

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS(opts.CORSOrigins),
		middleware.I18N(opts.DefaultLocale, opts.CountryLookup),
	)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthz", app.Health)

		// public storefront data
		r.Get("/catalog", app.Catalog)
		r.Get("/catalog/{id}", app.CatalogItem)
		r.Get("/tiers", app.Tiers)
		r.Get("/packages", app.Packages)

		r.Post("/auth/signup", app.Signup)
		r.Post("/auth/login", app.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthJWT(app.JWTSecret, app.Namespace), app.RequireSession)

			r.Post("/auth/logout", app.Logout)
			r.Get("/account", app.Account)

			r.Get("/cart", app.CartList)
			r.Post("/cart", app.CartAdd)
			r.Delete("/cart/{index}", app.CartRemove)
			r.Post("/checkout", app.Checkout)

			r.Post("/tiers/{index}/activate", app.ActivateTier)
			r.Post("/wallet/packages/{name}", app.BuyPackage)

			r.Get("/history", app.History)
			r.Get("/history/export", app.HistoryExport)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
				r.Post("/rewards/credits", app.RewardCredits)
				r.Post("/rewards/discount", app.RewardDiscount)
			})
		})
	})

	return r
}
