package dto

import (
	"github.com/google/uuid"
)

type FileUploadResponse struct {
	ID           uuid.UUID `json:"id"`
	RowID        uuid.UUID `json:"row_id"`
	Kind         string    `json:"kind"`
	OriginalName string    `json:"original_name"`
	Size         int64     `json:"size"`
}
