package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/quimbayaeval/internal/core"
	"github.com/JonMunkholm/quimbayaeval/internal/logging"
	"github.com/go-chi/chi/v5"
)

// sessionTable resolves the {table} URL parameter to a table mounted in the
// caller's session. Tables only exist after the page showing them loaded.
func (s *Server) sessionTable(r *http.Request) (*session, tableHandle, error) {
	name := chi.URLParam(r, "table")
	ss, ok := sessionFromContext(r.Context())
	if !ok {
		return nil, nil, fmt.Errorf("table %s: %w", name, core.ErrUnauthenticated)
	}
	t, ok := ss.table(name)
	if !ok {
		return nil, nil, fmt.Errorf("table %s: %w", name, core.ErrNotFound)
	}
	return ss, t, nil
}

// handleTableSort toggles the sort on a column header and returns the table
// at page 1.
func (s *Server) handleTableSort(w http.ResponseWriter, r *http.Request) {
	_, t, err := s.sessionTable(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	// Clicks on unknown or non-sortable columns re-render unchanged.
	t.toggle(pathKey(r, "column"))
	s.render(w, r, t.fragment(r, 1))
}

// handleTablePage returns one page of the table with its current sort.
func (s *Server) handleTablePage(w http.ResponseWriter, r *http.Request) {
	_, t, err := s.sessionTable(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil {
		page = 1
	}
	s.render(w, r, t.fragment(r, page))
}

// handleTableRow activates a row. Row callbacks usually navigate to a
// detail page; otherwise the response is empty.
func (s *Server) handleTableRow(w http.ResponseWriter, r *http.Request) {
	ss, t, err := s.sessionTable(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	key := pathKey(r, "key")
	if !t.activate(r, key) {
		s.respondError(w, r, fmt.Errorf("row %s: %w", key, core.ErrNotFound), http.StatusNotFound)
		return
	}

	if path := ss.takeRedirect(); path != "" {
		redirect(w, r, path)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleTableExport downloads the table as CSV with its current sort and the
// filters given in the query string.
func (s *Server) handleTableExport(w http.ResponseWriter, r *http.Request) {
	_, t, err := s.sessionTable(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	if err := s.exports.Acquire(r.Context()); err != nil {
		w.Header().Set("Retry-After", "5")
		s.respondError(w, r, err, http.StatusServiceUnavailable)
		return
	}
	defer s.exports.Release()

	name := chi.URLParam(r, "table")
	filename := fmt.Sprintf("%s_%s.csv", name, s.service.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	// Headers are already sent, so failures can only be logged.
	if err := t.export(w, r); err != nil && r.Context().Err() == nil {
		logging.FromContext(r.Context()).Error("export table", "table", name, "error", err)
	}
}
