package implementation

import (
	"context"
	"fmt"

	"rag-symptom-be/internal/entity"
	"rag-symptom-be/internal/repository/contract"
	"rag-symptom-be/pkg/rag/index"
)

// ConditionVectorIndex exposes the pgvector table as a retrieval index
type ConditionVectorIndex struct {
	repo contract.ConditionEmbeddingRepository
}

var _ index.Index = (*ConditionVectorIndex)(nil)

func NewConditionVectorIndex(repo contract.ConditionEmbeddingRepository) *ConditionVectorIndex {
	return &ConditionVectorIndex{repo: repo}
}

func (i *ConditionVectorIndex) Backend() string {
	return "pgvector"
}

func (i *ConditionVectorIndex) Query(ctx context.Context, vector []float32, k int) ([]index.Hit, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("query vector cannot be empty")
	}
	scored, err := i.repo.SearchSimilarWithScore(ctx, vector, k)
	if err != nil {
		return nil, err
	}

	hits := make([]index.Hit, 0, len(scored))
	for _, s := range scored {
		hits = append(hits, index.Hit{
			ID:       s.Embedding.EntryId,
			Document: s.Embedding.Document,
			Metadata: map[string]string{index.MetadataCondition: s.Embedding.Condition},
			Distance: s.Distance,
		})
	}
	return hits, nil
}

func (i *ConditionVectorIndex) Replace(ctx context.Context, entries []index.Entry) error {
	embeddings := make([]*entity.ConditionEmbedding, 0, len(entries))
	for _, e := range entries {
		if len(e.Vector) == 0 {
			return fmt.Errorf("entry %s has no vector", e.ID)
		}
		embeddings = append(embeddings, &entity.ConditionEmbedding{
			EntryId:        e.ID,
			Condition:      e.Metadata[index.MetadataCondition],
			Document:       e.Document,
			EmbeddingValue: e.Vector,
		})
	}
	return i.repo.ReplaceAll(ctx, embeddings)
}

func (i *ConditionVectorIndex) Count(ctx context.Context) (int64, error) {
	return i.repo.Count(ctx)
}
