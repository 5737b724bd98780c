package main

import (
	"log"
	"os"

	"rag-symptom-be/internal/model"
	"rag-symptom-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Step 1: Enabling extensions and migrating condition_embeddings...")
	if err := database.Migrate(db, &model.ConditionEmbedding{}); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 3. Post-Migration: ANN index for cosine distance
	log.Println("Step 2: Creating vector index...")
	postMigrationSQL := []string{
		`CREATE INDEX IF NOT EXISTS idx_condition_embeddings_hnsw
		 ON condition_embeddings USING hnsw (embedding_value vector_cosine_ops);`,
	}
	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
