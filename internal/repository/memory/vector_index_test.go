package memory

import (
	"context"
	"testing"

	"rag-symptom-be/pkg/rag/index"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(id, condition string, vec ...float32) index.Entry {
	return index.Entry{
		ID:       id,
		Document: condition + " doc",
		Metadata: map[string]string{index.MetadataCondition: condition},
		Vector:   vec,
	}
}

func TestVectorIndexQueryOrdersByDistance(t *testing.T) {
	ctx := context.Background()
	idx := NewVectorIndex()

	require.NoError(t, idx.Replace(ctx, []index.Entry{
		entry("cond_0", "flu", 1, 0),
		entry("cond_1", "migraine", 0, 1),
		entry("cond_2", "cold", 0.8, 0.6),
	}))

	count, err := idx.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	hits, err := idx.Query(ctx, []float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "flu", hits[0].Metadata[index.MetadataCondition])
	assert.Equal(t, "cold", hits[1].Metadata[index.MetadataCondition])
	assert.InDelta(t, 0.0, hits[0].Distance, 1e-9)
	assert.InDelta(t, 0.2, hits[1].Distance, 1e-6)
}

func TestVectorIndexBreaksTiesByNaturalID(t *testing.T) {
	ctx := context.Background()
	idx := NewVectorIndex()

	require.NoError(t, idx.Replace(ctx, []index.Entry{
		entry("cond_10", "rash", 1, 0),
		entry("cond_2", "flu", 1, 0),
		entry("cond_1", "cold", 0, 1),
	}))

	hits, err := idx.Query(ctx, []float32{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, "cond_2", hits[0].ID)
	assert.Equal(t, "cond_10", hits[1].ID)
	assert.Equal(t, "cond_1", hits[2].ID)
}

func TestVectorIndexEmpty(t *testing.T) {
	hits, err := NewVectorIndex().Query(context.Background(), []float32{1}, 3)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestVectorIndexErrors(t *testing.T) {
	ctx := context.Background()
	idx := NewVectorIndex()

	assert.Error(t, idx.Replace(ctx, []index.Entry{{ID: "x"}}))

	require.NoError(t, idx.Replace(ctx, []index.Entry{entry("a", "flu", 1, 0)}))
	_, err := idx.Query(ctx, []float32{1, 0, 0}, 1)
	assert.Error(t, err)

	_, err = idx.Query(ctx, nil, 1)
	assert.Error(t, err)
}

func TestVectorIndexReplaceSwapsContent(t *testing.T) {
	ctx := context.Background()
	idx := NewVectorIndex()
	require.NoError(t, idx.Replace(ctx, []index.Entry{entry("a", "flu", 1, 0), entry("b", "cold", 0, 1)}))
	require.NoError(t, idx.Replace(ctx, []index.Entry{entry("c", "migraine", 1, 0)}))

	hits, err := idx.Query(ctx, []float32{0, 1}, 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "c", hits[0].ID)
	assert.Equal(t, "memory", idx.Backend())
}
