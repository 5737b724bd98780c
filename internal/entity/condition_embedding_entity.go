package entity

import (
	"time"

	"github.com/google/uuid"
)

type ConditionEmbedding struct {
	Id             uuid.UUID
	EntryId        string
	Condition      string
	Document       string
	EmbeddingValue []float32
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
