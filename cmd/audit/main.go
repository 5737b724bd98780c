package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"rag-symptom-be/internal/config"
	"rag-symptom-be/internal/pkg/logger"
	"rag-symptom-be/internal/service"
	pktNats "rag-symptom-be/pkg/nats"
)

// Listens to consultation events and writes them to logs/audit.log
func main() {
	cfg := config.Load()
	if cfg.App.NatsURL == "" {
		log.Fatal("Error: NATS_URL is not set")
	}

	sub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS Subscriber: %v", err)
	}
	defer sub.Close()

	auditLogger := logger.NewIsolatedLogger(filepath.Join(filepath.Dir(cfg.App.LogFilePath), "audit.log"))
	defer auditLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	audit := service.NewAuditService(sub, auditLogger)
	if err := audit.Start(ctx); err != nil {
		log.Fatalf("Audit service failed: %v", err)
	}

	<-ctx.Done()
	log.Printf("Audit stopped, recorded: %v", audit.Counts())
}
