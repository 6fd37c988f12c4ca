package models

import (
	"time"

	"github.com/google/uuid"
)

// File is attachment metadata. Binary content lives in the blob store,
// addressed by ID; OriginalName is kept for display and download only.
type File struct {
	ID           uuid.UUID `db:"id" json:"id"`
	RowID        uuid.UUID `db:"row_id" json:"row_id"`
	Kind         string    `db:"kind" json:"kind"`
	OriginalName string    `db:"original_name" json:"original_name"`
	Size         int64     `db:"size" json:"size"`
	ContentType  string    `db:"content_type" json:"content_type"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
