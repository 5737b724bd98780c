package indexer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rag-symptom-be/internal/pkg/logger"
	"rag-symptom-be/pkg/embedding"
	"rag-symptom-be/pkg/knowledge"
	"rag-symptom-be/pkg/rag"
	"rag-symptom-be/pkg/rag/index"
)

// Builder embeds the knowledge base into the retrieval index
type Builder struct {
	kb                *knowledge.Base
	embeddingProvider embedding.EmbeddingProvider
	index             index.Index
	logger            logger.ILogger
}

func NewBuilder(kb *knowledge.Base, embeddingProvider embedding.EmbeddingProvider, idx index.Index, logger logger.ILogger) *Builder {
	return &Builder{
		kb:                kb,
		embeddingProvider: embeddingProvider,
		index:             idx,
		logger:            logger,
	}
}

// Describe builds the canonical text embedded for a condition:
// name, symptoms, clarifying questions and remedy names with dosages.
func Describe(c knowledge.Condition) string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteString(". Symptoms: ")
	b.WriteString(strings.Join(c.Symptoms, "; "))
	b.WriteString(". Questions: ")
	b.WriteString(strings.Join(c.Questions, " | "))

	var meds []string
	for _, r := range append(append([]knowledge.Remedy{}, c.AyurvedicRemedies...), c.EnglishRemedies...) {
		meds = append(meds, fmt.Sprintf("%s (%s)", r.Medicine, r.Dosage))
	}
	if len(meds) > 0 {
		b.WriteString(". Treatments: ")
		b.WriteString(strings.Join(meds, "; "))
	}
	return b.String()
}

// Entries returns unembedded index entries in knowledge-base order
func Entries(kb *knowledge.Base) []index.Entry {
	entries := make([]index.Entry, 0, kb.Len())
	kb.Each(func(c knowledge.Condition) {
		entries = append(entries, index.Entry{
			ID:       fmt.Sprintf("cond_%d", len(entries)),
			Document: Describe(c),
			Metadata: map[string]string{index.MetadataCondition: c.Name},
		})
	})
	return entries
}

// Build re-embeds every condition and replaces the index content
func (b *Builder) Build(ctx context.Context) (int, error) {
	start := time.Now()
	entries := Entries(b.kb)

	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Document
	}

	b.logger.Info("INDEXER", "Encoding embeddings", map[string]interface{}{"conditions": len(texts)})
	vectors, err := b.embeddingProvider.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed knowledge base: %w", err)
	}
	if len(vectors) != len(entries) {
		return 0, fmt.Errorf("embed knowledge base: got %d vectors for %d conditions", len(vectors), len(entries))
	}
	for i := range entries {
		entries[i].Vector = vectors[i]
	}

	if err := b.index.Replace(ctx, entries); err != nil {
		return 0, fmt.Errorf("store index: %w", err)
	}

	b.logger.Info("INDEXER", "Indexed conditions", map[string]interface{}{
		"conditions": len(entries),
		"backend":    b.index.Backend(),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return len(entries), nil
}

// Ensure rebuilds synchronously when the index is empty. Any failure is
// reported as rag.ErrIndexUnavailable; the caller must not serve requests.
func (b *Builder) Ensure(ctx context.Context) error {
	count, err := b.index.Count(ctx)
	if err != nil {
		return fmt.Errorf("%w: count documents: %v", rag.ErrIndexUnavailable, err)
	}
	if count > 0 {
		b.logger.Info("INDEXER", "Using existing index", map[string]interface{}{
			"documents": count,
			"backend":   b.index.Backend(),
		})
		return nil
	}

	if _, err := b.Build(ctx); err != nil {
		return fmt.Errorf("%w: %v", rag.ErrIndexUnavailable, err)
	}
	return nil
}
