package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"storefront/internal/domain"
	"storefront/internal/infra"
	"storefront/internal/sqlinline"
)

// SessionRepositoryPG implements domain.SessionRepository. Purchase history
// is stored as a JSONB array.
type SessionRepositoryPG struct {
	db        infra.SQLExecutor
	namespace string
}

// NewSessionRepository creates a session repository scoped to namespace.
func NewSessionRepository(db infra.SQLExecutor, namespace string) *SessionRepositoryPG {
	return &SessionRepositoryPG{db: db, namespace: namespace}
}

// Load fetches the persisted session.
func (r *SessionRepositoryPG) Load(ctx context.Context) (*domain.Session, error) {
	var (
		s       domain.Session
		history []byte
	)
	err := r.db.QueryRow(ctx, sqlinline.QSelectSession, r.namespace).Scan(&s.LoggedIn, &s.CreditBalance, &s.CurrentTier, &history)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select session: %w", err)
	}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &s.PurchaseHistory); err != nil {
			return nil, fmt.Errorf("decode purchase history: %w", err)
		}
	}
	return &s, nil
}

// Save upserts the session row.
func (r *SessionRepositoryPG) Save(ctx context.Context, s domain.Session) error {
	history, err := encodeHistory(s.PurchaseHistory)
	if err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, sqlinline.QUpsertSession, r.namespace, s.LoggedIn, s.CreditBalance, s.CurrentTier, string(history)); err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

// SetTier overwrites the tier and, when credits is non-nil, the balance.
func (r *SessionRepositoryPG) SetTier(ctx context.Context, tier int, credits *int64) (*domain.Session, error) {
	var s domain.Session
	err := r.db.QueryRow(ctx, sqlinline.QSetSessionTier, r.namespace, tier, credits).Scan(&s.CurrentTier, &s.CreditBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("set session tier: %w", err)
	}
	return &s, nil
}

func encodeHistory(history []domain.Purchase) ([]byte, error) {
	if history == nil {
		history = []domain.Purchase{}
	}
	b, err := json.Marshal(history)
	if err != nil {
		return nil, fmt.Errorf("encode purchase history: %w", err)
	}
	return b, nil
}

var _ domain.SessionRepository = (*SessionRepositoryPG)(nil)
