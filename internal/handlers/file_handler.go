package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"doctrack/internal/dto"
	"doctrack/internal/models"
	"doctrack/internal/services"
	"doctrack/utils/response"
)

// FileStore is the slice of the file service the handler needs.
type FileStore interface {
	Upload(ctx context.Context, rowID uuid.UUID, kind, originalName, contentType string, content io.Reader) (*models.File, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Open(ctx context.Context, id uuid.UUID) (io.ReadCloser, *models.File, error)
}

type FileHandler struct {
	store FileStore
}

func NewFileHandler(store FileStore) *FileHandler {
	return &FileHandler{store: store}
}

func (h *FileHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 100*1024*1024) // 100MB limit

	if err := r.ParseMultipartForm(32 * 1024 * 1024); err != nil {
		response.Error(w, http.StatusBadRequest, fmt.Sprintf("Failed to parse multipart form: %v", err))
		return
	}

	rowID, err := uuid.Parse(r.FormValue("row_id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid row_id")
		return
	}
	kind := r.FormValue("kind")

	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, http.StatusBadRequest, fmt.Sprintf("Failed to get file from form: %v", err))
		return
	}
	defer file.Close()

	created, err := h.store.Upload(r.Context(), rowID, kind, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidKind):
			response.Error(w, http.StatusBadRequest, fmt.Sprintf("Unknown attachment kind %q", kind))
		case errors.Is(err, services.ErrRowNotFound):
			response.Error(w, http.StatusNotFound, "Row not found")
		default:
			response.Error(w, http.StatusInternalServerError, "Failed to save file")
		}
		return
	}

	response.JSON(w, http.StatusCreated, dto.FileUploadResponse{
		ID:           created.ID,
		RowID:        created.RowID,
		Kind:         created.Kind,
		OriginalName: created.OriginalName,
		Size:         created.Size,
	})
}

func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid file id")
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrFileNotFound) {
			response.Error(w, http.StatusNotFound, "File not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to delete file")
		return
	}

	response.JSON(w, http.StatusOK, dto.DeleteResponse{Status: "deleted", ID: id})
}

func (h *FileHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid file id")
		return
	}

	reader, file, err := h.store.Open(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrFileNotFound) {
			response.Error(w, http.StatusNotFound, "File not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to retrieve file")
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.OriginalName))
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", file.Size))

	w.WriteHeader(http.StatusOK)
	io.Copy(w, reader)
}
