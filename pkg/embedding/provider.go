package embedding

import "context"

// EmbeddingProvider turns text into fixed-length vectors.
// Implementations return unit-length vectors so cosine distance is meaningful.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
