package memory

import (
	"context"
	"time"

	"rag-symptom-be/internal/repository/contract"
	"rag-symptom-be/pkg/rag"
	"rag-symptom-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

var _ contract.SessionRepository = (*SessionRepository)(nil)

// NewSessionRepository keeps sessions for ttl after their last save and
// purges expired items every ttl/6.
func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionRepository{
		cache: cache.New(ttl, ttl/6),
	}
}

func (r *SessionRepository) Save(ctx context.Context, session *store.Session) error {
	r.cache.Set(session.ID, session.Clone(), cache.DefaultExpiration)
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*store.Session, error) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session).Clone(), nil
	}
	return nil, rag.ErrSessionNotFound
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	if _, found := r.cache.Get(sessionID); !found {
		return rag.ErrSessionNotFound
	}
	r.cache.Delete(sessionID)
	return nil
}
