package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/quimbayaeval/internal/core"
	"github.com/JonMunkholm/quimbayaeval/internal/logging"
	"github.com/JonMunkholm/quimbayaeval/internal/web/templates"
	"github.com/a-h/templ"
)

// render writes c with a 200 status.
func (s *Server) render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	s.renderStatus(w, r, http.StatusOK, c)
}

func (s *Server) renderStatus(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render failed", "path", r.URL.Path, "error", err)
	}
}

// renderPage renders body inside the layout for the signed-in user and
// drains the session's pending toasts.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, p templates.Page) {
	s.renderPageStatus(w, r, http.StatusOK, p)
}

func (s *Server) renderPageStatus(w http.ResponseWriter, r *http.Request, status int, p templates.Page) {
	if u, ok := core.UserFromContext(r.Context()); ok {
		p.User = u
	}
	if ss, ok := sessionFromContext(r.Context()); ok {
		p.Toasts = append(p.Toasts, ss.takeFlash()...)
	}
	if p.Active == "" {
		p.Active = r.URL.Path
	}
	s.renderStatus(w, r, status, templates.Layout(p))
}

// triggerToast asks the HTMX client to show t through the showToast event.
func triggerToast(w http.ResponseWriter, t templates.Toast) {
	payload, err := json.Marshal(map[string]templates.Toast{"showToast": t})
	if err != nil {
		slog.Error("toast encode error", "error", err)
		return
	}
	w.Header().Set("HX-Trigger", string(payload))
}

// notify shows t now for HTMX requests, or on the next page for full
// navigations.
func (s *Server) notify(w http.ResponseWriter, r *http.Request, t templates.Toast) {
	if isHTMX(r) {
		triggerToast(w, t)
		return
	}
	flash(r, t)
}

// flash queues t for the next full page render.
func flash(r *http.Request, t templates.Toast) {
	if ss, ok := sessionFromContext(r.Context()); ok {
		ss.addFlash(t)
	}
}

// redirect navigates the client to path, through HX-Redirect for HTMX
// requests.
func redirect(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

func success(title, message string) templates.Toast {
	return templates.Toast{Kind: "success", Title: title, Message: message}
}
