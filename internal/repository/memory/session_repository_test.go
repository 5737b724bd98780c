package memory

import (
	"context"
	"testing"
	"time"

	"rag-symptom-be/pkg/rag"
	"rag-symptom-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(time.Minute)

	s := &store.Session{ID: "s1", State: store.StateClarifying, QuestionsAsked: []string{"q1"}}
	require.NoError(t, repo.Save(ctx, s))

	// mutating the caller's copy must not leak into the repository
	s.QuestionsAsked[0] = "changed"

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"q1"}, got.QuestionsAsked)
	assert.Equal(t, store.StateClarifying, got.State)

	require.NoError(t, repo.Delete(ctx, "s1"))
	_, err = repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, rag.ErrSessionNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "s1"), rag.ErrSessionNotFound)
}

func TestSessionRepositoryExpires(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(20 * time.Millisecond)
	require.NoError(t, repo.Save(ctx, &store.Session{ID: "s1"}))

	time.Sleep(40 * time.Millisecond)
	_, err := repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, rag.ErrSessionNotFound)
}
