package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"doctrack/internal/blob"
	"doctrack/internal/database"
	"doctrack/internal/kinds"
	"doctrack/internal/models"
)

type FileService struct {
	db    *database.DB
	blobs *blob.LocalStorage
}

func NewFileService(db *database.DB, blobs *blob.LocalStorage) *FileService {
	return &FileService{db: db, blobs: blobs}
}

// Upload stores the content and metadata of a new attachment. The kind
// must be registered and the owning row must exist.
func (s *FileService) Upload(ctx context.Context, rowID uuid.UUID, kind, originalName, contentType string, content io.Reader) (*models.File, error) {
	if !kinds.Valid(kind) {
		return nil, ErrInvalidKind
	}

	var exists bool
	if err := s.db.GetContext(ctx, &exists, `select exists(select 1 from rows where id = $1)`, rowID); err != nil {
		return nil, fmt.Errorf("failed to check row: %w", err)
	}
	if !exists {
		return nil, ErrRowNotFound
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	file := &models.File{
		ID:           uuid.New(),
		RowID:        rowID,
		Kind:         kind,
		OriginalName: originalName,
		ContentType:  contentType,
		CreatedAt:    time.Now().UTC(),
	}

	size, err := s.blobs.Save(file.ID, content)
	if err != nil {
		return nil, fmt.Errorf("failed to store file content: %w", err)
	}
	file.Size = size

	query := `
		insert into files (id, row_id, kind, original_name, size, content_type, created_at)
		values ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := s.db.ExecContext(ctx, query,
		file.ID, file.RowID, file.Kind, file.OriginalName, file.Size, file.ContentType, file.CreatedAt); err != nil {
		// content without metadata is unreachable, drop it
		s.blobs.Delete(file.ID)
		return nil, fmt.Errorf("failed to save file metadata: %w", err)
	}

	return file, nil
}

// Delete removes a single attachment, metadata first.
func (s *FileService) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `delete from files where id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return ErrFileNotFound
	}

	return s.blobs.Delete(id)
}

// Open returns the stored content and metadata for a download.
func (s *FileService) Open(ctx context.Context, id uuid.UUID) (io.ReadCloser, *models.File, error) {
	var file models.File
	query := `
		select id, row_id, kind, original_name, size, content_type, created_at
		from files where id = $1
	`
	if err := s.db.GetContext(ctx, &file, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrFileNotFound
		}
		return nil, nil, fmt.Errorf("failed to get file: %w", err)
	}

	reader, err := s.blobs.Open(id)
	if err != nil {
		return nil, nil, err
	}
	return reader, &file, nil
}
