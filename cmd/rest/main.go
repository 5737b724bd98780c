package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"rag-symptom-be/internal/bootstrap"
	"rag-symptom-be/internal/config"
	"rag-symptom-be/internal/model"
	"rag-symptom-be/internal/server"
	"rag-symptom-be/internal/tracer"
	"rag-symptom-be/pkg/database"
	"rag-symptom-be/pkg/rag"

	"gorm.io/gorm"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 1a. Initialize Tracer
	shutdownTracer := tracer.InitTracer(cfg.Tracing)
	defer shutdownTracer(context.Background())

	// 2. Initialize Database (optional, selects the pgvector index)
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Fatalf("Unable to connect to GORM DB: %v", err)
		}
		if err := database.Migrate(db, &model.ConditionEmbedding{}); err != nil {
			log.Fatalf("Unable to migrate condition embeddings: %v", err)
		}
		gormDB = db
	}

	// 3. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(gormDB, cfg)
	if err != nil {
		log.Fatalf("Bootstrap failed: %v", err)
	}
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Cold start: the process must not serve without an index
	if err := container.IndexBuilder.Ensure(ctx); err != nil {
		if errors.Is(err, rag.ErrIndexUnavailable) {
			log.Fatalf("Retrieval index unavailable: %v", err)
		}
		log.Fatalf("Index check failed: %v", err)
	}

	// 5. Start Background Services
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(ctx); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()
	go container.WebSocketHub.Run(ctx)

	// 6. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		log.Println("Shutting down server...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	// 7. Run Server
	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
