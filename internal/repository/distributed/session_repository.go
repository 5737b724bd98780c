package distributed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"rag-symptom-be/internal/repository/contract"
	"rag-symptom-be/pkg/rag"
	"rag-symptom-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "consultation:session:"

// SessionRepository stores sessions as JSON in Redis so several API
// instances can serve the same consultation.
type SessionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ contract.SessionRepository = (*SessionRepository)(nil)

func NewSessionRepository(rdb *redis.Client, ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionRepository{rdb: rdb, ttl: ttl}
}

func (r *SessionRepository) Save(ctx context.Context, session *store.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.rdb.Set(ctx, keyPrefix+session.ID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*store.Session, error) {
	data, err := r.rdb.Get(ctx, keyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, rag.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var session store.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	n, err := r.rdb.Del(ctx, keyPrefix+sessionID).Result()
	if err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	if n == 0 {
		return rag.ErrSessionNotFound
	}
	return nil
}
