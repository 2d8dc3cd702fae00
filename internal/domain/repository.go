package domain

import "context"

// CredentialRepository persists the single credential record of a store.
// Get returns ErrNotFound when nothing has been registered.
type CredentialRepository interface {
	Get(ctx context.Context) (*Credential, error)
	Save(ctx context.Context, cred Credential) error
}

// SessionRepository persists the durable session fields.
// Load returns ErrNotFound when no session was ever written.
type SessionRepository interface {
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, session Session) error
}
