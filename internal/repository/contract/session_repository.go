package contract

import (
	"context"

	"rag-symptom-be/pkg/store"
)

// SessionRepository persists consultation sessions between turns.
// Get returns rag.ErrSessionNotFound for unknown or expired ids.
type SessionRepository interface {
	Save(ctx context.Context, session *store.Session) error
	Get(ctx context.Context, sessionID string) (*store.Session, error)
	Delete(ctx context.Context, sessionID string) error
}
