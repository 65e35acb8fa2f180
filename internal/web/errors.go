package web

// errors.go provides unified error response handling for the web layer.
//
// The error flow:
//  1. Handler encounters an error
//  2. Calls respondError(w, r, err, statusCode)
//  3. Error is mapped via core.MapError to get a user-facing message
//  4. Technical error is logged with the request id for correlation
//  5. User message is rendered as an HTMX fragment, JSON or a full page

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/quimbayaeval/internal/core"
	"github.com/JonMunkholm/quimbayaeval/internal/logging"
	"github.com/JonMunkholm/quimbayaeval/internal/web/templates"
)

// ErrorResponse represents the JSON structure for API error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs err and writes a user-facing response in the format the
// client expects.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	log := logging.FromContext(r.Context())
	args := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
	}
	if statusCode >= http.StatusInternalServerError {
		log.Error("request error", args...)
	} else {
		log.Warn("request error", args...)
	}

	switch {
	case isHTMX(r):
		// HTMX does not swap error responses by default; the toast carries
		// the message and the alert is there for hx-target-error setups.
		triggerToast(w, templates.Toast{Kind: "error", Title: userMsg.Message, Message: userMsg.Action})
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(statusCode)
		_ = templates.ErrorAlert(userMsg.Message, userMsg.Action, userMsg.Code).Render(r.Context(), w)
	case wantsJSON(r):
		respondErrorJSON(w, userMsg, statusCode)
	default:
		s.respondErrorPage(w, r, userMsg, statusCode)
	}
}

// respondErrorJSON writes a JSON error response.
func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// respondErrorPage renders the error inside the layout for signed-in users
// and on the login page for anonymous ones.
func (s *Server) respondErrorPage(w http.ResponseWriter, r *http.Request, msg core.UserMessage, statusCode int) {
	alert := templates.ErrorAlert(msg.Message, msg.Action, msg.Code)

	u, ok := core.UserFromContext(r.Context())
	if !ok {
		s.renderStatus(w, r, statusCode, templates.Login(templates.FormState{}, alert))
		return
	}

	body := alert
	if statusCode == http.StatusForbidden {
		body = templates.AccessDenied(msg.Message)
	}
	s.renderStatus(w, r, statusCode, templates.Layout(templates.Page{
		Title: "Error",
		User:  u,
		Body:  body,
	}))
}

// denyAccess is the role gate's response: 401 for anonymous requests and
// 403 for signed-in users of another role.
func (s *Server) denyAccess(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusForbidden
	if errors.Is(err, core.ErrUnauthenticated) {
		status = http.StatusUnauthorized
	}
	s.respondError(w, r, err, status)
}

// isHTMX checks if the request is an HTMX request.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// wantsJSON checks if the client prefers a JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	return strings.HasPrefix(r.URL.Path, "/api/")
}
