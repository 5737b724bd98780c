package implementation

import (
	"context"

	"rag-symptom-be/internal/entity"
	"rag-symptom-be/internal/mapper"
	"rag-symptom-be/internal/model"
	"rag-symptom-be/internal/repository/contract"
	"rag-symptom-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ConditionEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConditionEmbeddingMapper
}

func NewConditionEmbeddingRepository(db *gorm.DB) contract.ConditionEmbeddingRepository {
	return &ConditionEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewConditionEmbeddingMapper(),
	}
}

func (r *ConditionEmbeddingRepositoryImpl) ReplaceAll(ctx context.Context, embeddings []*entity.ConditionEmbedding) error {
	models := r.mapper.ToModels(embeddings)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.ConditionEmbedding{}).Error; err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}
		return tx.Create(models).Error
	})
}

func (r *ConditionEmbeddingRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ConditionEmbedding{}).Count(&count).Error
	return count, err
}

// SearchSimilarWithScore orders by pgvector cosine distance (embedding_value <=> query)
func (r *ConditionEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*contract.ScoredConditionEmbedding, error) {
	if limit <= 0 {
		limit = 3
	}

	type result struct {
		model.ConditionEmbedding
		Distance float64
	}
	var results []result

	err := r.db.WithContext(ctx).
		Table("condition_embeddings").
		Scopes(specification.Scopes(
			specification.WithDistance{Vector: embedding},
			specification.OrderBy{Field: "distance"},
			specification.OrderBy{Field: "length(entry_id)"},
			specification.OrderBy{Field: "entry_id"},
			specification.Limit{N: limit},
		)...).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredConditionEmbedding, len(results))
	for i := range results {
		scored[i] = &contract.ScoredConditionEmbedding{
			Embedding: r.mapper.ToEntity(&results[i].ConditionEmbedding),
			Distance:  results[i].Distance,
		}
	}
	return scored, nil
}
