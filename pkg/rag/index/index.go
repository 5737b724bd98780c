// Package index defines the retrieval index capability shared by the
// pgvector and in-memory backends.
package index

import "context"

// MetadataCondition is the metadata key holding the normalized condition name
const MetadataCondition = "condition"

// Entry is one pre-embedded document to store
type Entry struct {
	ID       string
	Document string
	Metadata map[string]string
	Vector   []float32
}

// Hit is one query result. Distance is cosine distance: lower = closer.
type Hit struct {
	ID       string
	Document string
	Metadata map[string]string
	Distance float64
}

// Index is a nearest-neighbour store over condition descriptions
type Index interface {
	// Query returns at most k hits ordered by ascending distance
	Query(ctx context.Context, vector []float32, k int) ([]Hit, error)

	// Replace atomically swaps the whole index content
	Replace(ctx context.Context, entries []Entry) error

	Count(ctx context.Context) (int64, error)

	// Backend names the implementation, e.g. "pgvector" or "memory"
	Backend() string
}

// LessID orders entry IDs naturally for IDs sharing a prefix: shorter
// first, then lexically, so "cond_2" sorts before "cond_10".
func LessID(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

// LessHit orders by ascending distance, then by ID
func LessHit(a, b Hit) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return LessID(a.ID, b.ID)
}
