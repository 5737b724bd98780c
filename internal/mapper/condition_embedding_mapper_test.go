package mapper

import (
	"testing"
	"time"

	"rag-symptom-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionEmbeddingMapperRoundTrip(t *testing.T) {
	m := NewConditionEmbeddingMapper()
	now := time.Now().UTC()

	in := &entity.ConditionEmbedding{
		Id:             uuid.New(),
		EntryId:        "cond_1",
		Condition:      "flu",
		Document:       "flu. Symptoms: fever",
		EmbeddingValue: []float32{0.6, 0.8},
		CreatedAt:      now,
		UpdatedAt:      &now,
	}

	out := m.ToEntity(m.ToModel(in))
	require.NotNil(t, out)
	assert.Equal(t, in.EntryId, out.EntryId)
	assert.Equal(t, in.Condition, out.Condition)
	assert.Equal(t, in.EmbeddingValue, out.EmbeddingValue)
	require.NotNil(t, out.UpdatedAt)
	assert.True(t, now.Equal(*out.UpdatedAt))

	assert.Nil(t, m.ToEntity(nil))
	assert.Nil(t, m.ToModel(nil))
	assert.Len(t, m.ToModels([]*entity.ConditionEmbedding{in, in}), 2)
}
