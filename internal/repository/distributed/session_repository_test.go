package distributed

import (
	"context"
	"os"
	"testing"
	"time"

	"rag-symptom-be/pkg/rag"
	"rag-symptom-be/pkg/store"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redisClient(t *testing.T) *redis.Client {
	t.Helper()
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis unreachable: %v", err)
	}
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func TestRedisSessionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(redisClient(t), time.Minute)

	id := uuid.NewString()
	s := &store.Session{
		ID:              id,
		State:           store.StateClarifying,
		ActiveCondition: "flu",
		QuestionsAsked:  []string{"Do you have fever?"},
		ChatHistory:     []store.ChatMessage{{Speaker: store.SpeakerUser, Content: "fever", CreatedAt: time.Now().UTC()}},
	}
	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "flu", got.ActiveCondition)
	assert.Equal(t, s.QuestionsAsked, got.QuestionsAsked)
	require.Len(t, got.ChatHistory, 1)

	require.NoError(t, repo.Delete(ctx, id))
	_, err = repo.Get(ctx, id)
	assert.ErrorIs(t, err, rag.ErrSessionNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, id), rag.ErrSessionNotFound)
}
