package model

import (
	"time"

	"github.com/google/uuid"
)

// DocumentModel is the GORM-specific struct for the 'documents' table.
// Every ledger collection is stored as ordered rows of JSON bodies.
type DocumentModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Collection string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_documents_collection_position,priority:1"`
	Position   int       `gorm:"not null;uniqueIndex:idx_documents_collection_position,priority:2"`
	DocID      *int64    `gorm:"index"` // the body's numeric "id", when present
	Body       string    `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (DocumentModel) TableName() string {
	return "documents"
}
