package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"doctrack/internal/dto"
	"doctrack/internal/models"
	"doctrack/internal/services"
	"doctrack/internal/view"
	"doctrack/utils/response"
)

// RowStore is the slice of the row service the handler needs.
type RowStore interface {
	List(ctx context.Context, search string) ([]models.Row, error)
	Create(ctx context.Context, title, category, note string) (*models.Row, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type RowHandler struct {
	store RowStore
}

func NewRowHandler(store RowStore) *RowHandler {
	return &RowHandler{store: store}
}

func (h *RowHandler) ListRows(w http.ResponseWriter, r *http.Request) {
	mode, err := view.ParseMode(r.URL.Query().Get("group"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := h.store.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to list rows")
		return
	}

	proj := view.Project(rows, mode)

	if mode == view.ModeCategory {
		groups := make(dto.GroupList, 0, len(proj.Groups))
		for _, g := range proj.Groups {
			groups = append(groups, dto.RowGroup{Key: g.Key, Rows: g.Rows})
		}
		response.JSON(w, http.StatusOK, dto.GroupedRowsResponse{
			Mode:   string(mode),
			Groups: groups,
		})
		return
	}

	if proj.Rows == nil {
		proj.Rows = []models.Row{}
	}
	response.JSON(w, http.StatusOK, dto.RowListResponse{
		Mode: string(mode),
		Rows: proj.Rows,
	})
}

func (h *RowHandler) CreateRow(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	row, err := h.store.Create(r.Context(), req.Title, req.Category, req.Note)
	if err != nil {
		if errors.Is(err, services.ErrEmptyTitle) {
			response.Error(w, http.StatusBadRequest, "Title must not be empty")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to create row")
		return
	}

	response.JSON(w, http.StatusCreated, row)
}

func (h *RowHandler) DeleteRow(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid row id")
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrRowNotFound) {
			response.Error(w, http.StatusNotFound, "Row not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to delete row")
		return
	}

	response.JSON(w, http.StatusOK, dto.DeleteResponse{Status: "deleted", ID: id})
}
