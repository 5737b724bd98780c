package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// ConditionEmbedding is one indexed knowledge-base condition. The vector
// column has no fixed dimension so the embedding model can be swapped by
// rebuilding the index.
type ConditionEmbedding struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EntryId        string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	Condition      string          `gorm:"type:varchar(255);not null;index"`
	Document       string          `gorm:"type:text"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
}

func (ConditionEmbedding) TableName() string {
	return "condition_embeddings"
}
