// Package web renders the row tracker UI. Every page load re-fetches
// the full snapshot from the store and rebuilds the view from scratch;
// mutations are plain form posts that redirect back to a fresh GET, so
// the store mutation always completes before the refresh is issued.
package web

import (
	"context"
	"errors"
	"html/template"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"doctrack/internal/client"
	"doctrack/internal/kinds"
	"doctrack/internal/models"
	"doctrack/internal/view"
)

// Store is what the mutation coordinator needs from the store client.
type Store interface {
	ListRows(ctx context.Context, search string) ([]models.Row, error)
	CreateRow(ctx context.Context, title, category, note string) (*models.Row, error)
	UploadFile(ctx context.Context, rowID uuid.UUID, kind, filename string, content io.Reader) (*models.File, error)
	DeleteRow(ctx context.Context, id uuid.UUID) error
	DeleteFile(ctx context.Context, id uuid.UUID) error
	DownloadURL(id uuid.UUID) string
}

type Server struct {
	store Store
	tmpl  *template.Template
}

func NewServer(store Store) (*Server, error) {
	tmpl, err := template.New("index").Parse(indexHTML)
	if err != nil {
		return nil, err
	}
	return &Server{store: store, tmpl: tmpl}, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /rows", s.handleCreateRow)
	mux.HandleFunc("POST /rows/{id}/delete", s.handleDeleteRow)
	mux.HandleFunc("POST /rows/{id}/upload", s.handleUpload)
	mux.HandleFunc("POST /files/{id}/delete", s.handleDeleteFile)
	mux.HandleFunc("GET /static/app.css", s.handleCSS)
	return mux
}

type pageModel struct {
	Mode   view.Mode
	Query  string
	Alert  string
	Total  int
	Kinds  []kinds.Kind
	Tables []tableModel
	Empty  bool
}

type tableModel struct {
	Label     string
	ShowLabel bool
	Rows      []rowModel
}

type rowModel struct {
	ID        uuid.UUID
	CreatedAt string
	Title     string
	Note      string
	Category  string
	Cells     []cellModel
}

type cellModel struct {
	Kind  kinds.Kind
	Files []fileModel
}

type fileModel struct {
	ID          uuid.UUID
	Name        string
	DownloadURL string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	mode, err := view.ParseMode(r.URL.Query().Get("group"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	query := r.URL.Query().Get("q")

	rows, err := s.store.ListRows(r.Context(), query)
	if err != nil {
		// No recovery within this cycle; the user reloads to retry.
		http.Error(w, "Failed to load rows: "+err.Error(), http.StatusBadGateway)
		return
	}

	proj := view.Project(rows, mode)

	model := pageModel{
		Mode:  mode,
		Query: query,
		Alert: r.URL.Query().Get("err"),
		Total: proj.TotalFiles,
		Kinds: kinds.All(),
	}

	if mode == view.ModeCategory {
		for _, g := range proj.Groups {
			model.Tables = append(model.Tables, tableModel{
				Label:     g.Label,
				ShowLabel: true,
				Rows:      s.rowModels(g.Rows),
			})
		}
	} else if len(proj.Rows) > 0 {
		model.Tables = append(model.Tables, tableModel{Rows: s.rowModels(proj.Rows)})
	}
	model.Empty = len(model.Tables) == 0

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = s.tmpl.Execute(w, model)
}

func (s *Server) rowModels(rows []models.Row) []rowModel {
	out := make([]rowModel, 0, len(rows))
	for _, row := range rows {
		rm := rowModel{
			ID:        row.ID,
			CreatedAt: row.CreatedAt.Local().Format("2006-01-02 15:04"),
			Title:     row.Title,
			Note:      row.Note,
			Category:  row.Category,
		}
		// one cell per registry kind, in registry order
		for _, kind := range kinds.All() {
			cell := cellModel{Kind: kind}
			for _, f := range row.Files[kind.Key] {
				cell.Files = append(cell.Files, fileModel{
					ID:          f.ID,
					Name:        f.OriginalName,
					DownloadURL: s.store.DownloadURL(f.ID),
				})
			}
			rm.Cells = append(rm.Cells, cell)
		}
		out = append(out, rm)
	}
	return out
}

func (s *Server) handleCreateRow(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.redirectBack(w, r, "Invalid form submission")
		return
	}

	_, err := s.store.CreateRow(r.Context(),
		r.PostFormValue("title"),
		r.PostFormValue("category"),
		r.PostFormValue("note"))
	if err != nil {
		s.redirectBack(w, r, errorMessage(err))
		return
	}

	s.redirectBack(w, r, "")
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	rowID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.redirectBack(w, r, "Invalid row id")
		return
	}

	if err := r.ParseMultipartForm(32 * 1024 * 1024); err != nil {
		s.redirectBack(w, r, "Invalid upload form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		// nothing selected: no request is sent
		s.redirectBack(w, r, "")
		return
	}
	defer file.Close()

	if _, err := s.store.UploadFile(r.Context(), rowID, r.FormValue("kind"), header.Filename, file); err != nil {
		s.redirectBack(w, r, errorMessage(err))
		return
	}

	s.redirectBack(w, r, "")
}

func (s *Server) handleDeleteRow(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.redirectBack(w, r, "Invalid row id")
		return
	}

	if err := s.store.DeleteRow(r.Context(), id); err != nil {
		s.redirectBack(w, r, errorMessage(err))
		return
	}

	s.redirectBack(w, r, "")
}

func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.redirectBack(w, r, "Invalid file id")
		return
	}

	if err := s.store.DeleteFile(r.Context(), id); err != nil {
		s.redirectBack(w, r, errorMessage(err))
		return
	}

	s.redirectBack(w, r, "")
}

// redirectBack sends the browser to a fresh index GET, preserving the
// grouping mode and search term and carrying an optional error banner.
func (s *Server) redirectBack(w http.ResponseWriter, r *http.Request, errMsg string) {
	q := url.Values{}
	if group := r.FormValue("group"); group != "" {
		q.Set("group", group)
	}
	if search := r.FormValue("q"); search != "" {
		q.Set("q", search)
	}
	if errMsg != "" {
		q.Set("err", errMsg)
	}

	target := "/"
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func errorMessage(err error) string {
	var vErr *client.ValidationError
	if errors.As(err, &vErr) {
		return "Validation failed: " + vErr.Error()
	}
	return err.Error()
}

func (s *Server) handleCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(appCSS))
}
