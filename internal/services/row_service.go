package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"doctrack/internal/blob"
	"doctrack/internal/database"
	"doctrack/internal/models"
)

var (
	ErrEmptyTitle   = errors.New("title must not be empty")
	ErrRowNotFound  = errors.New("row not found")
	ErrFileNotFound = errors.New("file not found")
	ErrInvalidKind  = errors.New("unknown attachment kind")
)

type RowService struct {
	db    *database.DB
	blobs *blob.LocalStorage
}

func NewRowService(db *database.DB, blobs *blob.LocalStorage) *RowService {
	return &RowService{db: db, blobs: blobs}
}

// List returns all rows with their files bucketed by kind, newest row
// first. A non-empty search term filters on title, category and note.
func (s *RowService) List(ctx context.Context, search string) ([]models.Row, error) {
	var rows []models.Row

	query := `
		select id, title, category, note, created_at from rows
		order by created_at desc, id
	`
	args := []interface{}{}
	if search != "" {
		query = `
			select id, title, category, note, created_at from rows
			where title ilike $1 or category ilike $1 or note ilike $1
			order by created_at desc, id
		`
		args = append(args, "%"+search+"%")
	}

	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list rows: %w", err)
	}

	index := make(map[uuid.UUID]int, len(rows))
	for i := range rows {
		rows[i].Files = map[string][]models.File{}
		index[rows[i].ID] = i
	}

	var files []models.File
	filesQuery := `
		select id, row_id, kind, original_name, size, content_type, created_at
		from files
		order by created_at, id
	`
	if err := s.db.SelectContext(ctx, &files, filesQuery); err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	for _, f := range files {
		i, ok := index[f.RowID]
		if !ok {
			continue
		}
		rows[i].Files[f.Kind] = append(rows[i].Files[f.Kind], f)
	}

	return rows, nil
}

// Create inserts a new row with no attachments. Title is required;
// category and note default to the empty string.
func (s *RowService) Create(ctx context.Context, title, category, note string) (*models.Row, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	row := &models.Row{
		ID:        uuid.New(),
		Title:     title,
		Category:  strings.TrimSpace(category),
		Note:      strings.TrimSpace(note),
		CreatedAt: time.Now().UTC(),
		Files:     map[string][]models.File{},
	}

	query := `
		insert into rows (id, title, category, note, created_at)
		values ($1, $2, $3, $4, $5)
	`
	if _, err := s.db.ExecContext(ctx, query, row.ID, row.Title, row.Category, row.Note, row.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to create row: %w", err)
	}

	return row, nil
}

// Delete removes the row and all its files. Metadata goes in a single
// transaction, so reads never observe a half-deleted row; blob cleanup
// runs after commit with failures aggregated.
func (s *RowService) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var fileIDs []uuid.UUID
	if err := tx.SelectContext(ctx, &fileIDs, `select id from files where row_id = $1`, id); err != nil {
		return fmt.Errorf("failed to collect row files: %w", err)
	}

	// files rows go with the row via ON DELETE CASCADE
	res, err := tx.ExecContext(ctx, `delete from rows where id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete row: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return ErrRowNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit row delete: %w", err)
	}

	var cleanup *multierror.Error
	for _, fileID := range fileIDs {
		if err := s.blobs.Delete(fileID); err != nil {
			cleanup = multierror.Append(cleanup, err)
		}
	}
	return cleanup.ErrorOrNil()
}
