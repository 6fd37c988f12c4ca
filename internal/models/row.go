package models

import (
	"time"

	"github.com/google/uuid"
)

// Row is a tracked document record. Files are bucketed by attachment
// kind; kinds with no uploads are simply absent from the map.
type Row struct {
	ID        uuid.UUID         `db:"id" json:"id"`
	Title     string            `db:"title" json:"title"`
	Category  string            `db:"category" json:"category"`
	Note      string            `db:"note" json:"note"`
	CreatedAt time.Time         `db:"created_at" json:"created_at"`
	Files     map[string][]File `db:"-" json:"files"`
}

// FileCount sums the per-kind buckets.
func (r Row) FileCount() int {
	n := 0
	for _, bucket := range r.Files {
		n += len(bucket)
	}
	return n
}
