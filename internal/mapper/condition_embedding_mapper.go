package mapper

import (
	"time"

	"rag-symptom-be/internal/entity"
	"rag-symptom-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type ConditionEmbeddingMapper struct{}

func NewConditionEmbeddingMapper() *ConditionEmbeddingMapper {
	return &ConditionEmbeddingMapper{}
}

func (m *ConditionEmbeddingMapper) ToEntity(e *model.ConditionEmbedding) *entity.ConditionEmbedding {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.ConditionEmbedding{
		Id:             e.Id,
		EntryId:        e.EntryId,
		Condition:      e.Condition,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *ConditionEmbeddingMapper) ToModel(e *entity.ConditionEmbedding) *model.ConditionEmbedding {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.ConditionEmbedding{
		Id:             e.Id,
		EntryId:        e.EntryId,
		Condition:      e.Condition,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *ConditionEmbeddingMapper) ToModels(embeddings []*entity.ConditionEmbedding) []*model.ConditionEmbedding {
	models := make([]*model.ConditionEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = m.ToModel(e)
	}
	return models
}
