package main

import (
	"context"
	"flag"
	"os"
	"time"

	"rag-symptom-be/internal/config"
	"rag-symptom-be/internal/model"
	"rag-symptom-be/internal/pkg/logger"
	"rag-symptom-be/internal/repository/implementation"
	"rag-symptom-be/internal/repository/memory"
	"rag-symptom-be/pkg/database"
	"rag-symptom-be/pkg/embedding"
	"rag-symptom-be/pkg/knowledge"
	"rag-symptom-be/pkg/rag/index"
	"rag-symptom-be/pkg/rag/indexer"

	"github.com/fatih/color"
)

// Rebuilds the retrieval index from the knowledge-base file.
// Without DB_CONNECTION_STRING the build runs against an in-memory index,
// which only checks that every condition embeds.
func main() {
	query := flag.String("query", "", "symptom text to query after the build")
	flag.Parse()

	cfg := config.Load()
	color.Cyan("Rebuilding condition index from %s\n", cfg.Knowledge.Path)

	kb, err := knowledge.Load(cfg.Knowledge.Path)
	if err != nil {
		fail("Load knowledge base: %v", err)
	}
	color.Green("Loaded %d conditions", kb.Len())

	embeddingProvider, err := embedding.NewProvider(
		cfg.Ai.EmbeddingProvider,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OllamaModel,
		cfg.Keys.OpenAI,
		cfg.Ai.OpenAIEmbeddingModel,
	)
	if err != nil {
		fail("Embedding provider: %v", err)
	}

	var idx index.Index
	if cfg.Database.Connection != "" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			fail("Connect database: %v", err)
		}
		if err := database.Migrate(db, &model.ConditionEmbedding{}); err != nil {
			fail("Migrate: %v", err)
		}
		idx = implementation.NewConditionVectorIndex(implementation.NewConditionEmbeddingRepository(db))
	} else {
		color.Yellow("DB_CONNECTION_STRING not set, building in memory (dry run)")
		idx = memory.NewVectorIndex()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	builder := indexer.NewBuilder(kb, embeddingProvider, idx, logger.NewNopLogger())
	start := time.Now()
	n, err := builder.Build(ctx)
	if err != nil {
		fail("Build: %v", err)
	}
	color.Green("Indexed %d conditions into %s in %s", n, idx.Backend(), time.Since(start).Round(time.Millisecond))

	if *query == "" {
		return
	}

	vec, err := embeddingProvider.Embed(ctx, *query)
	if err != nil {
		fail("Embed query: %v", err)
	}
	results, err := idx.Query(ctx, vec, 3)
	if err != nil {
		fail("Query: %v", err)
	}
	color.Yellow("\nTop matches for %q", *query)
	for i, r := range results {
		color.White("%d. %s (distance %.4f)", i+1, r.Metadata[index.MetadataCondition], r.Distance)
	}
}

func fail(format string, args ...interface{}) {
	color.Red(format, args...)
	os.Exit(1)
}
