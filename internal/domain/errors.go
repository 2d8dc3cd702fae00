package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrBlocked             = errors.New("blocked by tier requirement")
	ErrIndexOutOfRange     = errors.New("cart index out of range")
	ErrOutOfRange          = errors.New("tier index out of range")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrInvalidTier         = errors.New("invalid tier")
	ErrAlreadyRegistered   = errors.New("account already registered")
	ErrNoSuchAccount       = errors.New("no such account")
	ErrInvalidCredential   = errors.New("invalid credential")
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrInvalidAmount       = errors.New("invalid credit amount")
	ErrEmptyCart           = errors.New("cart is empty")
)
