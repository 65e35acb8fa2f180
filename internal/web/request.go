package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/JonMunkholm/quimbayaeval/internal/core"
	"github.com/JonMunkholm/quimbayaeval/internal/web/templates"
	"github.com/go-chi/chi/v5"
)

// pathID parses a positive integer URL parameter.
func pathID(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%s %q: invalid number: %w", name, raw, core.ErrInvalidInput)
	}
	return id, nil
}

// pathKey returns an unescaped URL parameter.
func pathKey(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// parseIntParam parses a positive integer form or query value with a
// default.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.FormValue(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// formValue returns a trimmed form or query value.
func formValue(r *http.Request, name string) string {
	return strings.TrimSpace(r.FormValue(name))
}

// formState captures the submitted values of names for re-rendering a form.
func formState(r *http.Request, names ...string) templates.FormState {
	f := templates.FormState{Values: make(map[string]string, len(names))}
	for _, n := range names {
		f.Values[n] = r.FormValue(n)
	}
	return f
}

// withErrors attaches validation messages from err to f. It reports false
// when err carries no field errors.
func withErrors(f templates.FormState, err error) (templates.FormState, bool) {
	var fe core.FieldErrors
	if !errors.As(err, &fe) {
		return f, false
	}
	f.Errors = fe
	return f, true
}
