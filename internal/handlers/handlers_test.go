package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doctrack/internal/kinds"
	"doctrack/internal/models"
	"doctrack/internal/services"
)

type fakeRowStore struct {
	rows       []models.Row
	created    []models.Row
	deleted    []uuid.UUID
	listErr    error
	missingRow bool
}

func (f *fakeRowStore) List(ctx context.Context, search string) ([]models.Row, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if search == "" {
		return f.rows, nil
	}
	var out []models.Row
	for _, r := range f.rows {
		if strings.Contains(r.Title, search) || strings.Contains(r.Category, search) || strings.Contains(r.Note, search) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRowStore) Create(ctx context.Context, title, category, note string) (*models.Row, error) {
	if strings.TrimSpace(title) == "" {
		return nil, services.ErrEmptyTitle
	}
	row := models.Row{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(title),
		Category:  category,
		Note:      note,
		CreatedAt: time.Now().UTC(),
		Files:     map[string][]models.File{},
	}
	f.created = append(f.created, row)
	return &row, nil
}

func (f *fakeRowStore) Delete(ctx context.Context, id uuid.UUID) error {
	if f.missingRow {
		return services.ErrRowNotFound
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeFileStore struct {
	uploaded    []models.File
	deleted     []uuid.UUID
	content     map[uuid.UUID][]byte
	missingFile bool
}

func (f *fakeFileStore) Upload(ctx context.Context, rowID uuid.UUID, kind, originalName, contentType string, content io.Reader) (*models.File, error) {
	if !kinds.Valid(kind) {
		return nil, services.ErrInvalidKind
	}
	data, _ := io.ReadAll(content)
	file := models.File{
		ID:           uuid.New(),
		RowID:        rowID,
		Kind:         kind,
		OriginalName: originalName,
		Size:         int64(len(data)),
		ContentType:  contentType,
		CreatedAt:    time.Now().UTC(),
	}
	f.uploaded = append(f.uploaded, file)
	return &file, nil
}

func (f *fakeFileStore) Delete(ctx context.Context, id uuid.UUID) error {
	if f.missingFile {
		return services.ErrFileNotFound
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeFileStore) Open(ctx context.Context, id uuid.UUID) (io.ReadCloser, *models.File, error) {
	data, ok := f.content[id]
	if !ok {
		return nil, nil, services.ErrFileNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), &models.File{
		ID:           id,
		OriginalName: "report.pdf",
		Size:         int64(len(data)),
		ContentType:  "application/pdf",
	}, nil
}

// newTestRouter mirrors the cmd/api route table so PathValue works.
func newTestRouter(rows RowStore, files FileStore) http.Handler {
	rowHandler := NewRowHandler(rows)
	fileHandler := NewFileHandler(files)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/rows", rowHandler.ListRows)
	mux.HandleFunc("POST /api/rows", rowHandler.CreateRow)
	mux.HandleFunc("DELETE /api/rows/{id}", rowHandler.DeleteRow)
	mux.HandleFunc("POST /api/upload", fileHandler.UploadFile)
	mux.HandleFunc("DELETE /api/files/{id}", fileHandler.DeleteFile)
	mux.HandleFunc("GET /api/download/{id}", fileHandler.DownloadFile)
	return mux
}

func testRow(title, category string, createdAt time.Time) models.Row {
	return models.Row{
		ID:        uuid.New(),
		Title:     title,
		Category:  category,
		CreatedAt: createdAt,
		Files:     map[string][]models.File{},
	}
}

func TestListRows_TimeMode(t *testing.T) {
	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	store := &fakeRowStore{rows: []models.Row{
		testRow("old", "", base),
		testRow("new", "", base.Add(time.Hour)),
	}}
	router := newTestRouter(store, &fakeFileStore{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/rows?group=time", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Mode string       `json:"mode"`
		Rows []models.Row `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "time", resp.Mode)
	require.Len(t, resp.Rows, 2)
	assert.Equal(t, "new", resp.Rows[0].Title)
	assert.Equal(t, "old", resp.Rows[1].Title)
}

func TestListRows_DefaultsToTimeMode(t *testing.T) {
	router := newTestRouter(&fakeRowStore{}, &fakeFileStore{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/rows", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"mode":"time"`)
	assert.Contains(t, rec.Body.String(), `"rows":[]`)
}

func TestListRows_CategoryMode_FirstSeenOrder(t *testing.T) {
	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	store := &fakeRowStore{rows: []models.Row{
		testRow("r1", "zulu", base),
		testRow("r2", "alpha", base),
		testRow("r3", "zulu", base),
		testRow("r4", "", base),
	}}
	router := newTestRouter(store, &fakeFileStore{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/rows?group=category", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `"mode":"category"`)

	// keys must appear in first-seen order, not sorted
	zulu := strings.Index(body, `"zulu"`)
	alpha := strings.Index(body, `"alpha"`)
	empty := strings.Index(body, `"":`)
	require.True(t, zulu >= 0 && alpha >= 0 && empty >= 0, "all group keys present: %s", body)
	assert.Less(t, zulu, alpha)
	assert.Less(t, alpha, empty)

	// partition check: every row lands in exactly one group
	var resp struct {
		Groups map[string][]models.Row `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	total := 0
	for _, g := range resp.Groups {
		total += len(g)
	}
	assert.Equal(t, 4, total)
}

func TestListRows_InvalidMode(t *testing.T) {
	router := newTestRouter(&fakeRowStore{}, &fakeFileStore{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/rows?group=alphabetical", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)
}

func TestListRows_StoreFailure(t *testing.T) {
	store := &fakeRowStore{listErr: fmt.Errorf("connection refused")}
	router := newTestRouter(store, &fakeFileStore{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/rows", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)
}

func TestCreateRow(t *testing.T) {
	store := &fakeRowStore{}
	router := newTestRouter(store, &fakeFileStore{})

	body := strings.NewReader(`{"title":"Invoice March","category":"shipping","note":""}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/rows", body))

	require.Equal(t, http.StatusCreated, rec.Code)

	var row models.Row
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &row))
	assert.Equal(t, "Invoice March", row.Title)
	assert.NotEqual(t, uuid.Nil, row.ID)
	require.Len(t, store.created, 1)
}

func TestCreateRow_EmptyTitle(t *testing.T) {
	store := &fakeRowStore{}
	router := newTestRouter(store, &fakeFileStore{})

	body := strings.NewReader(`{"title":"   ","category":"x","note":"y"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/rows", body))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)
	assert.Empty(t, store.created)
}

func TestCreateRow_BadBody(t *testing.T) {
	router := newTestRouter(&fakeRowStore{}, &fakeFileStore{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/rows", strings.NewReader("{not json")))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteRow(t *testing.T) {
	store := &fakeRowStore{}
	router := newTestRouter(store, &fakeFileStore{})

	id := uuid.New()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/rows/"+id.String(), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, store.deleted, 1)
	assert.Equal(t, id, store.deleted[0])
}

func TestDeleteRow_NotFound(t *testing.T) {
	router := newTestRouter(&fakeRowStore{missingRow: true}, &fakeFileStore{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/rows/"+uuid.NewString(), nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)
}

func TestDeleteRow_BadID(t *testing.T) {
	router := newTestRouter(&fakeRowStore{}, &fakeFileStore{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/rows/not-a-uuid", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func uploadRequest(t *testing.T, rowID uuid.UUID, kind, filename string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	require.NoError(t, form.WriteField("row_id", rowID.String()))
	require.NoError(t, form.WriteField("kind", kind))
	part, err := form.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	return req
}

func TestUploadFile(t *testing.T) {
	files := &fakeFileStore{}
	router := newTestRouter(&fakeRowStore{}, files)

	rowID := uuid.New()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, rowID, "invoice", "march.pdf", []byte("pdf bytes")))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, files.uploaded, 1)
	assert.Equal(t, rowID, files.uploaded[0].RowID)
	assert.Equal(t, "invoice", files.uploaded[0].Kind)
	assert.Equal(t, "march.pdf", files.uploaded[0].OriginalName)

	assert.Contains(t, rec.Body.String(), `"original_name":"march.pdf"`)
}

func TestUploadFile_InvalidKind(t *testing.T) {
	files := &fakeFileStore{}
	router := newTestRouter(&fakeRowStore{}, files)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, uuid.New(), "passport", "p.pdf", []byte("x")))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)
	assert.Empty(t, files.uploaded)
}

func TestUploadFile_BadRowID(t *testing.T) {
	router := newTestRouter(&fakeRowStore{}, &fakeFileStore{})

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	require.NoError(t, form.WriteField("row_id", "nope"))
	require.NoError(t, form.WriteField("kind", "invoice"))
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteFile_NotFound(t *testing.T) {
	router := newTestRouter(&fakeRowStore{}, &fakeFileStore{missingFile: true})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/files/"+uuid.NewString(), nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDownloadFile(t *testing.T) {
	id := uuid.New()
	files := &fakeFileStore{content: map[uuid.UUID][]byte{id: []byte("raw file bytes")}}
	router := newTestRouter(&fakeRowStore{}, files)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/download/"+id.String(), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "raw file bytes", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `"report.pdf"`)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
}

func TestDownloadFile_NotFound(t *testing.T) {
	router := newTestRouter(&fakeRowStore{}, &fakeFileStore{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/download/"+uuid.NewString(), nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
}
