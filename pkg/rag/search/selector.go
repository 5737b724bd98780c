package search

import (
	"context"
	"fmt"
	"sort"

	"rag-symptom-be/internal/pkg/logger"
	"rag-symptom-be/pkg/embedding"
	"rag-symptom-be/pkg/knowledge"
	"rag-symptom-be/pkg/rag/index"
	"rag-symptom-be/pkg/store"
)

// DefaultTopK is used when the caller passes k <= 0
const DefaultTopK = 3

// Selector turns a free-text query into ranked condition candidates
type Selector struct {
	embeddingProvider embedding.EmbeddingProvider
	index             index.Index
	logger            logger.ILogger
}

// NewSelector creates a new candidate selector
func NewSelector(embeddingProvider embedding.EmbeddingProvider, idx index.Index, logger logger.ILogger) *Selector {
	return &Selector{
		embeddingProvider: embeddingProvider,
		index:             idx,
		logger:            logger,
	}
}

// Select returns at most k candidates, closest first. An empty result is not
// an error; the caller decides how to answer "no candidate".
func (s *Selector) Select(ctx context.Context, query string, k int) ([]store.Candidate, error) {
	if k <= 0 {
		k = DefaultTopK
	}

	vector, err := s.embeddingProvider.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}

	hits, err := s.index.Query(ctx, vector, k)
	if err != nil {
		s.logger.Error("SELECTOR", "Vector search failed", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	candidates := make([]store.Candidate, 0, len(hits))
	for _, h := range hits {
		candidates = append(candidates, store.Candidate{
			ID:        h.ID,
			Condition: knowledge.Normalize(h.Metadata[index.MetadataCondition]),
			Document:  h.Document,
			Distance:  h.Distance,
		})
	}

	// Backends already order this way; keep the contract even if one does not
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Distance != candidates[j].Distance {
			return candidates[i].Distance < candidates[j].Distance
		}
		return index.LessID(candidates[i].ID, candidates[j].ID)
	})
	if len(candidates) > k {
		candidates = candidates[:k]
	}

	for i, c := range candidates {
		s.logger.Debug("SELECTOR", "Candidate", map[string]interface{}{
			"rank":      i + 1,
			"condition": c.Condition,
			"distance":  c.Distance,
		})
	}

	return candidates, nil
}
