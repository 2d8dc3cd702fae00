package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"

	"storefront/internal/domain"
	"storefront/internal/storage"
)

const (
	credentialFile = "user.json"
	sessionFile    = "session.json"
)

// LocalCredentialRepository keeps the credential as <namespace>/user.json.
type LocalCredentialRepository struct {
	store *storage.FileStore
	key   string
}

func NewLocalCredentialRepository(store *storage.FileStore, namespace string) *LocalCredentialRepository {
	return &LocalCredentialRepository{store: store, key: path.Join(namespace, credentialFile)}
}

func (r *LocalCredentialRepository) Get(ctx context.Context) (*domain.Credential, error) {
	var c domain.Credential
	if err := readJSON(ctx, r.store, r.key, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *LocalCredentialRepository) Save(ctx context.Context, cred domain.Credential) error {
	return writeJSON(ctx, r.store, r.key, cred)
}

// LocalSessionRepository keeps the session as <namespace>/session.json.
type LocalSessionRepository struct {
	store *storage.FileStore
	key   string
}

func NewLocalSessionRepository(store *storage.FileStore, namespace string) *LocalSessionRepository {
	return &LocalSessionRepository{store: store, key: path.Join(namespace, sessionFile)}
}

func (r *LocalSessionRepository) Load(ctx context.Context) (*domain.Session, error) {
	var s domain.Session
	if err := readJSON(ctx, r.store, r.key, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *LocalSessionRepository) Save(ctx context.Context, s domain.Session) error {
	if s.PurchaseHistory == nil {
		s.PurchaseHistory = []domain.Purchase{}
	}
	return writeJSON(ctx, r.store, r.key, s)
}

// SetTier overwrites the tier and, when credits is non-nil, the balance.
func (r *LocalSessionRepository) SetTier(ctx context.Context, tier int, credits *int64) (*domain.Session, error) {
	s, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.CurrentTier = tier
	if credits != nil {
		s.CreditBalance = *credits
	}
	if err := r.Save(ctx, *s); err != nil {
		return nil, err
	}
	return s, nil
}

func readJSON(ctx context.Context, store *storage.FileStore, key string, v any) error {
	b, err := store.Read(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func writeJSON(ctx context.Context, store *storage.FileStore, key string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	_, err = store.Write(ctx, key, b)
	return err
}

var (
	_ domain.CredentialRepository = (*LocalCredentialRepository)(nil)
	_ domain.SessionRepository    = (*LocalSessionRepository)(nil)
)
