package specification

import (
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// WithDistance selects every condition row plus its cosine distance to
// Vector as column "distance"
type WithDistance struct {
	Vector []float32
}

func (s WithDistance) Apply(db *gorm.DB) *gorm.DB {
	return db.Select("condition_embeddings.*, embedding_value <=> ? as distance", pgvector.NewVector(s.Vector))
}
