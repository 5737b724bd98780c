package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"rag-symptom-be/pkg/rag/index"
)

// VectorIndex is an in-memory index used when no Postgres is configured.
// Its content lives for the process lifetime and is rebuilt at startup.
type VectorIndex struct {
	mu      sync.RWMutex
	entries []index.Entry
}

var _ index.Index = (*VectorIndex)(nil)

func NewVectorIndex() *VectorIndex {
	return &VectorIndex{}
}

func (v *VectorIndex) Backend() string {
	return "memory"
}

func (v *VectorIndex) Replace(ctx context.Context, entries []index.Entry) error {
	copied := make([]index.Entry, len(entries))
	for i, e := range entries {
		if len(e.Vector) == 0 {
			return fmt.Errorf("entry %s has no vector", e.ID)
		}
		copied[i] = e
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.entries = copied
	return nil
}

func (v *VectorIndex) Count(ctx context.Context) (int64, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return int64(len(v.entries)), nil
}

func (v *VectorIndex) Query(ctx context.Context, vector []float32, k int) ([]index.Hit, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("query vector cannot be empty")
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	hits := make([]index.Hit, 0, len(v.entries))
	for _, e := range v.entries {
		if len(e.Vector) != len(vector) {
			return nil, fmt.Errorf("dimension mismatch: index %d, query %d", len(e.Vector), len(vector))
		}
		hits = append(hits, index.Hit{
			ID:       e.ID,
			Document: e.Document,
			Metadata: e.Metadata,
			Distance: 1 - cosineSimilarity(vector, e.Vector),
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		return index.LessHit(hits[i], hits[j])
	})

	if k > 0 && len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
