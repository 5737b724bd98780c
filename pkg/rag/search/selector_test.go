package search

import (
	"context"
	"errors"
	"testing"

	"rag-symptom-be/internal/pkg/logger"
	"rag-symptom-be/pkg/rag/index"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	s.calls++
	return s.vector, s.err
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = s.vector
	}
	return out, s.err
}

type stubIndex struct {
	hits  []index.Hit
	err   error
	gotK  int
	count int64
}

func (s *stubIndex) Query(ctx context.Context, vector []float32, k int) ([]index.Hit, error) {
	s.gotK = k
	return s.hits, s.err
}

func (s *stubIndex) Replace(ctx context.Context, entries []index.Entry) error { return nil }
func (s *stubIndex) Count(ctx context.Context) (int64, error)                 { return s.count, nil }
func (s *stubIndex) Backend() string                                          { return "stub" }

func hit(id, condition string, distance float64) index.Hit {
	return index.Hit{
		ID:       id,
		Document: condition + " doc",
		Metadata: map[string]string{index.MetadataCondition: condition},
		Distance: distance,
	}
}

func TestSelectOrdersAndNormalizes(t *testing.T) {
	idx := &stubIndex{hits: []index.Hit{
		hit("cond_2", "Migraine", 0.7),
		hit("cond_0", " Flu ", 0.1),
		hit("cond_1", "common cold", 0.3),
	}}
	s := NewSelector(&stubEmbedder{vector: []float32{1, 0}}, idx, logger.NewNopLogger())

	got, err := s.Select(context.Background(), "fever and body ache", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "flu", got[0].Condition)
	assert.Equal(t, "common cold", got[1].Condition)
	assert.Equal(t, "cond_0", got[0].ID)
	assert.Equal(t, 2, idx.gotK)
}

func TestSelectDefaultK(t *testing.T) {
	idx := &stubIndex{}
	s := NewSelector(&stubEmbedder{vector: []float32{1}}, idx, logger.NewNopLogger())

	got, err := s.Select(context.Background(), "headache", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, DefaultTopK, idx.gotK)
}

func TestSelectErrors(t *testing.T) {
	tests := []struct {
		name     string
		embedder *stubEmbedder
		index    *stubIndex
	}{
		{"embedding", &stubEmbedder{err: errors.New("ollama down")}, &stubIndex{}},
		{"index", &stubEmbedder{vector: []float32{1}}, &stubIndex{err: errors.New("db down")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelector(tt.embedder, tt.index, logger.NewNopLogger())
			got, err := s.Select(context.Background(), "fever", 3)
			assert.Error(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestSelectBreaksTiesByID(t *testing.T) {
	idx := &stubIndex{hits: []index.Hit{
		hit("cond_10", "rash", 0.2),
		hit("cond_3", "cold", 0.2),
		hit("cond_1", "flu", 0.1),
	}}
	sel := NewSelector(&stubEmbedder{vector: []float32{1}}, idx, logger.NewNopLogger())

	got, err := sel.Select(context.Background(), "itchy", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"cond_1", "cond_3", "cond_10"}, []string{got[0].ID, got[1].ID, got[2].ID})
}
