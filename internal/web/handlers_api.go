package web

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/JonMunkholm/quimbayaeval/internal/core"
	"github.com/JonMunkholm/quimbayaeval/internal/datatable"
	mw "github.com/JonMunkholm/quimbayaeval/internal/web/middleware"
	"github.com/go-chi/chi/v5"
)

// APIPage is one sorted page of a resource.
type APIPage struct {
	Resource   string           `json:"resource"`
	Sort       string           `json:"sort,omitempty"`
	Dir        string           `json:"dir,omitempty"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalRows  int              `json:"totalRows"`
	TotalPages int              `json:"totalPages"`
	Data       []map[string]any `json:"data"`
}

// apiResource lists one resource for the JSON API. roles limits session
// callers; API-key callers see every resource.
type apiResource struct {
	roles []core.Role
	list  func(s *Server, r *http.Request) (APIPage, error)
}

var apiResources = map[string]apiResource{
	"users": {
		roles: []core.Role{core.RoleCoordinator},
		list: func(s *Server, r *http.Request) (APIPage, error) {
			return apiList(r, s.service.Users(userFilter(r)), userColumns(), userKey, s.cfg.Table.PageSize)
		},
	},
	"evaluations": {
		list: func(s *Server, r *http.Request) (APIPage, error) {
			return apiList(r, s.service.Evaluations(evaluationFilter(r)), s.studentEvaluationColumns(), evalKey, s.cfg.Table.PageSize)
		},
	},
	"courses": {
		roles: []core.Role{core.RoleStudent},
		list: func(s *Server, r *http.Request) (APIPage, error) {
			return apiList(r, s.service.Courses(formValue(r, "q")), courseColumns(), courseKey, s.cfg.Table.PageSize)
		},
	},
	"grades": {
		roles: []core.Role{core.RoleStudent},
		list: func(s *Server, r *http.Request) (APIPage, error) {
			return apiList(r, s.service.Grades(formValue(r, "curso")), gradeColumns(), gradeKey, s.cfg.Table.PageSize)
		},
	},
	"tickets": {
		list: func(s *Server, r *http.Request) (APIPage, error) {
			return apiList(r, s.service.Tickets(ticketFilter(r)), ticketColumns(), ticketKey, s.cfg.Table.PageSize)
		},
	},
	"submissions": {
		roles: []core.Role{core.RoleTeacher},
		list: func(s *Server, r *http.Request) (APIPage, error) {
			return apiList(r, s.service.Submissions(parseIntParam(r, "evaluacion", 0)), submissionColumns(), submissionKey, s.cfg.Table.PageSize)
		},
	},
	"performance": {
		roles: []core.Role{core.RoleTeacher, core.RoleCoordinator},
		list: func(s *Server, r *http.Request) (APIPage, error) {
			return apiList(r, s.service.Performance(formValue(r, "curso")), performanceColumns(), perfKey, s.cfg.Table.PageSize)
		},
	},
	"audit": {
		roles: []core.Role{core.RoleCoordinator},
		list: func(s *Server, r *http.Request) (APIPage, error) {
			return apiList(r, s.service.AuditLog(auditFilter(r)), auditColumns(), auditKey, s.cfg.Table.PageSize)
		},
	},
}

// apiAuth admits API-key callers when keys are required, and signed-in
// sessions otherwise.
func (s *Server) apiAuth(next http.Handler) http.Handler {
	if s.cfg.Security.RequireAPIKey {
		return mw.APIKeyAuth(s.cfg.Security)(next)
	}
	return mw.RequireRole(s.denyAccess)(next)
}

// handleAPIList serves GET /api/{resource}?sort=&dir=&page=&pageSize=.
func (s *Server) handleAPIList(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "resource")
	res, ok := apiResources[name]
	if !ok {
		s.respondError(w, r, fmt.Errorf("resource %s: %w", name, core.ErrNotFound), http.StatusNotFound)
		return
	}

	if u, signedIn := core.UserFromContext(r.Context()); signedIn && len(res.roles) > 0 && !slices.Contains(res.roles, u.Role) {
		s.respondError(w, r, fmt.Errorf("resource %s for %s: %w", name, u.Role, core.ErrForbidden), http.StatusForbidden)
		return
	}

	page, err := res.list(s, r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	page.Resource = name
	writeJSON(w, page)
}

// apiList sorts and pages rows with a fresh table instance. Records are
// emitted as column key to raw value; missing values are omitted.
func apiList[T any](r *http.Request, rows []T, columns []datatable.Column[T], key datatable.KeyFunc[T], pageSize int) (APIPage, error) {
	t := datatable.New(key)

	sortKey := formValue(r, "sort")
	dir := datatable.ParseDirection(formValue(r, "dir"))
	if sortKey != "" {
		if dir == datatable.DirNone {
			dir = datatable.DirAsc
		}
		if !t.SortBy(columns, sortKey, dir) {
			return APIPage{}, fmt.Errorf("sort column %q: %w", sortKey, core.ErrInvalidInput)
		}
	}

	v := t.View(rows, columns, datatable.Options[T]{
		Page:     parseIntParam(r, "page", 1),
		PageSize: parseIntParam(r, "pageSize", pageSize),
	})

	state := t.State()
	out := APIPage{
		Sort:       state.Column(),
		Dir:        state.Direction().String(),
		Page:       v.Pagination.Page,
		PageSize:   v.Pagination.PageSize,
		TotalRows:  v.Pagination.TotalRows,
		TotalPages: v.Pagination.TotalPages,
		Data:       make([]map[string]any, len(v.Rows)),
	}
	for i, row := range v.Rows {
		rec := map[string]any{"key": row.Key}
		for j, cell := range row.Cells {
			if cell.Present {
				rec[v.Headers[j].Key] = cell.Value
			}
		}
		out.Data[i] = rec
	}
	return out, nil
}
