package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"storefront/internal/domain"
	"storefront/internal/infra"
	"storefront/internal/sqlinline"
)

// CredentialRepositoryPG implements domain.CredentialRepository backed by
// PostgreSQL. One row per namespace.
type CredentialRepositoryPG struct {
	db        infra.SQLExecutor
	namespace string
}

// NewCredentialRepository creates a credential repository scoped to namespace.
func NewCredentialRepository(db infra.SQLExecutor, namespace string) *CredentialRepositoryPG {
	return &CredentialRepositoryPG{db: db, namespace: namespace}
}

// Get fetches the registered credential.
func (r *CredentialRepositoryPG) Get(ctx context.Context) (*domain.Credential, error) {
	var c domain.Credential
	err := r.db.QueryRow(ctx, sqlinline.QSelectCredential, r.namespace).Scan(&c.Identifier, &c.Secret, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select credential: %w", err)
	}
	return &c, nil
}

// Save inserts or replaces the credential.
func (r *CredentialRepositoryPG) Save(ctx context.Context, cred domain.Credential) error {
	if _, err := r.db.Exec(ctx, sqlinline.QUpsertCredential, r.namespace, cred.Identifier, cred.Secret, cred.CreatedAt); err != nil {
		return fmt.Errorf("upsert credential: %w", err)
	}
	return nil
}

var _ domain.CredentialRepository = (*CredentialRepositoryPG)(nil)
