package handlers

import (
	"net/http"

	"storefront/internal/infra/credentials"
	"storefront/internal/middleware"
)

type credentialsRequest struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
}

type sessionResponse struct {
	Token   string          `json:"token"`
	Account accountResponse `json:"account"`
}

func (a *App) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !a.decode(w, r, &req) {
		return
	}
	if err := a.Ledger.Signup(r.Context(), req.Identifier, req.Secret); err != nil {
		a.fail(w, r, err)
		return
	}
	a.issueSession(w, r, http.StatusCreated, req.Identifier)
}

func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !a.decode(w, r, &req) {
		return
	}
	if err := a.Ledger.Login(r.Context(), req.Identifier, req.Secret); err != nil {
		a.fail(w, r, err)
		return
	}
	a.issueSession(w, r, http.StatusOK, req.Identifier)
}

func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	a.Ledger.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) issueSession(w http.ResponseWriter, r *http.Request, status int, identifier string) {
	locale := middleware.LocaleFromContext(r.Context())
	token, err := middleware.SignToken(a.JWTSecret, credentials.NormalizeIdentifier(identifier), a.Namespace, locale, a.TokenTTL, a.Now())
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign token failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}
	a.json(w, status, sessionResponse{Token: token, Account: a.account(r)})
}
