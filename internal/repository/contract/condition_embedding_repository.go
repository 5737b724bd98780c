package contract

import (
	"context"

	"rag-symptom-be/internal/entity"
)

// ScoredConditionEmbedding wraps ConditionEmbedding with its cosine distance
type ScoredConditionEmbedding struct {
	Embedding *entity.ConditionEmbedding
	Distance  float64 // 0.0 = identical
}

type ConditionEmbeddingRepository interface {
	// ReplaceAll swaps the whole table content in one transaction
	ReplaceAll(ctx context.Context, embeddings []*entity.ConditionEmbedding) error
	Count(ctx context.Context) (int64, error)
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*ScoredConditionEmbedding, error)
}
