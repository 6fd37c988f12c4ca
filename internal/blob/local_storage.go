// Package blob stores attachment content on local disk, addressed by
// file id. Metadata lives in the database; this layer only ever sees
// opaque bytes.
package blob

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

type LocalStorage struct {
	basePath string
}

func NewLocalStorage(basePath string) *LocalStorage {
	return &LocalStorage{basePath: basePath}
}

// Save writes the content for fileID and returns the number of bytes
// stored. The write is atomic: content lands in a temp file first and
// is renamed into place.
func (s *LocalStorage) Save(fileID uuid.UUID, data io.Reader) (int64, error) {
	if err := os.MkdirAll(s.basePath, 0755); err != nil {
		return 0, err
	}
	tmpPath := filepath.Join(s.basePath, fmt.Sprintf("temp-%d", time.Now().UnixNano()))
	defer os.Remove(tmpPath)

	f, err := os.Create(tmpPath)
	if err != nil {
		return 0, err
	}

	buf := make([]byte, 1*1024*1024) // 1MB
	size, err := io.CopyBuffer(f, data, buf)
	f.Close()
	if err != nil {
		return 0, err
	}

	finalPath := s.filePath(fileID)
	if err := os.MkdirAll(filepath.Dir(finalPath), 0755); err != nil {
		return 0, err
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return 0, err
	}

	return size, nil
}

// Open returns a reader over the stored content for fileID.
func (s *LocalStorage) Open(fileID uuid.UUID) (io.ReadCloser, error) {
	f, err := os.Open(s.filePath(fileID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no content stored for file %s", fileID)
		}
		return nil, err
	}
	return f, nil
}

// Delete removes the stored content. Deleting content that does not
// exist is not an error, so cascade deletes can retry safely.
func (s *LocalStorage) Delete(fileID uuid.UUID) error {
	if err := os.Remove(s.filePath(fileID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file content: %w", err)
	}
	return nil
}

func (s *LocalStorage) filePath(fileID uuid.UUID) string {
	id := fileID.String()
	return filepath.Join(s.basePath, "data", id[:2], fmt.Sprintf("%s.dat", id))
}
