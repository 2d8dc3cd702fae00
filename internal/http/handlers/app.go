package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"storefront/internal/domain"
	"storefront/internal/ledger"
	"storefront/internal/middleware"
)

const defaultTokenTTL = 24 * time.Hour

// App holds the dependencies shared by all handlers.
type App struct {
	Ledger    *ledger.Ledger
	Logger    zerolog.Logger
	JWTSecret string
	Namespace string
	TokenTTL  time.Duration
	Now       func() time.Time
}

func NewApp(l *ledger.Ledger, logger zerolog.Logger, jwtSecret, namespace string) *App {
	return &App{
		Ledger:    l,
		Logger:    logger.With().Str("component", "http").Logger(),
		JWTSecret: jwtSecret,
		Namespace: namespace,
		TokenTTL:  defaultTokenTTL,
		Now:       time.Now,
	}
}

// errorStatus maps ledger errors onto HTTP responses. Order matters only
// for errors that wrap more than one sentinel.
var errorStatus = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrBlocked, http.StatusForbidden, "blocked"},
	{domain.ErrIndexOutOfRange, http.StatusBadRequest, "index_out_of_range"},
	{domain.ErrOutOfRange, http.StatusBadRequest, "out_of_range"},
	{domain.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount"},
	{domain.ErrEmptyCart, http.StatusBadRequest, "empty_cart"},
	{ledger.ErrUnknownReward, http.StatusBadRequest, "unknown_reward"},
	{domain.ErrInsufficientCredits, http.StatusPaymentRequired, "insufficient_credits"},
	{domain.ErrInvalidTier, http.StatusConflict, "invalid_tier"},
	{domain.ErrAlreadyRegistered, http.StatusConflict, "already_registered"},
	{domain.ErrNoSuchAccount, http.StatusNotFound, "no_such_account"},
	{domain.ErrNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrInvalidCredential, http.StatusUnauthorized, "invalid_credential"},
	{domain.ErrNotAuthenticated, http.StatusUnauthorized, "not_authenticated"},
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}

// fail writes the response for a ledger error. Unknown errors are logged and
// reported as 500 without leaking details.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			a.error(w, e.status, e.code, err.Error())
			return
		}
	}
	a.Logger.Error().Err(err).Str("request_id", middleware.RequestIDFromContext(r.Context())).Str("path", r.URL.Path).Msg("request failed")
	a.error(w, http.StatusInternalServerError, "internal", "internal error")
}

func (a *App) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(v); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return false
	}
	return true
}

// RequireSession rejects requests while the ledger is logged out, which
// also invalidates tokens issued before a logout.
func (a *App) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.Ledger.LoggedIn() {
			a.fail(w, r, domain.ErrNotAuthenticated)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *App) formatCredits(r *http.Request, n int64) string {
	return middleware.Printer(r.Context()).Sprintf("%d CR", n)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
