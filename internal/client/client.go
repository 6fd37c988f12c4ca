// Package client talks to the row/file store API. Every mutation
// returns only after the store has acknowledged it, so callers can
// re-fetch an authoritative snapshot immediately afterwards.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"doctrack/internal/dto"
	"doctrack/internal/models"
)

// requestTimeout bounds every store request so a hung request cannot
// leave its control disabled forever.
const requestTimeout = 30 * time.Second

type Client struct {
	baseURL string
	httpc   *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: requestTimeout},
	}
}

// ListRows fetches the flat snapshot (time mode). Grouping is computed
// locally by the view projector. A non-empty search term is passed
// through to the store.
func (c *Client) ListRows(ctx context.Context, search string) ([]models.Row, error) {
	endpoint := c.baseURL + "/api/rows?group=time"
	if search != "" {
		endpoint += "&q=" + url.QueryEscape(search)
	}

	body, err := c.do(ctx, http.MethodGet, endpoint, "", nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var resp dto.RowListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ParseError{Raw: string(body)}
	}
	return resp.Rows, nil
}

// CreateRow validates the title locally, then creates the row. An
// empty title never reaches the network.
func (c *Client) CreateRow(ctx context.Context, title, category, note string) (*models.Row, error) {
	if strings.TrimSpace(title) == "" {
		return nil, &ValidationError{Field: "title", Reason: "must not be empty"}
	}

	payload, err := json.Marshal(dto.CreateRowRequest{Title: title, Category: category, Note: note})
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodPost, c.baseURL+"/api/rows", "application/json", bytes.NewReader(payload), http.StatusCreated)
	if err != nil {
		return nil, err
	}

	var row models.Row
	if err := json.Unmarshal(body, &row); err != nil {
		return nil, &ParseError{Raw: string(body)}
	}
	return &row, nil
}

// UploadFile attaches content to a row under the given kind.
func (c *Client) UploadFile(ctx context.Context, rowID uuid.UUID, kind, filename string, content io.Reader) (*models.File, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	if err := form.WriteField("row_id", rowID.String()); err != nil {
		return nil, err
	}
	if err := form.WriteField("kind", kind); err != nil {
		return nil, err
	}
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, err
	}
	if err := form.Close(); err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodPost, c.baseURL+"/api/upload", form.FormDataContentType(), &buf, http.StatusCreated)
	if err != nil {
		return nil, err
	}

	var file models.File
	if err := json.Unmarshal(body, &file); err != nil {
		return nil, &ParseError{Raw: string(body)}
	}
	return &file, nil
}

func (c *Client) DeleteRow(ctx context.Context, id uuid.UUID) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/api/rows/%s", c.baseURL, id), "", nil, http.StatusOK)
	return err
}

func (c *Client) DeleteFile(ctx context.Context, id uuid.UUID) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/api/files/%s", c.baseURL, id), "", nil, http.StatusOK)
	return err
}

// DownloadURL is the direct link for a stored file; the store serves
// the bytes with the original filename attached.
func (c *Client) DownloadURL(id uuid.UUID) string {
	return fmt.Sprintf("%s/api/download/%s", c.baseURL, id)
}

// do performs one request and returns the body when the status matches
// wantStatus. Any other status becomes a RequestError built from the
// {error} body, falling back to "HTTP {status}".
func (c *Client) do(ctx context.Context, method, endpoint, contentType string, body io.Reader, wantStatus int) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &RequestError{Status: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Status: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode != wantStatus {
		return nil, apiError(resp.StatusCode, data)
	}
	return data, nil
}

func apiError(status int, body []byte) error {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return &RequestError{Status: status, Message: e.Error}
	}
	return &RequestError{Status: status, Message: fmt.Sprintf("HTTP %d", status)}
}
