package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/quimbayaeval/internal/core"
	"github.com/JonMunkholm/quimbayaeval/internal/web/templates"
)

func userFilter(r *http.Request) core.UserFilter {
	f := core.UserFilter{
		Status: core.UserStatus(formValue(r, "estado")),
		Search: formValue(r, "q"),
	}
	if role, ok := core.ParseRole(formValue(r, "rol")); ok {
		f.Role = role
	}
	return f
}

// handleUsers lists accounts with role and status filters.
func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	t := mount(pageSession(r), tableDef[core.User]{
		name:     "usuarios",
		key:      userKey,
		columns:  userColumns(),
		rows:     func(r *http.Request) []core.User { return s.service.Users(userFilter(r)) },
		empty:    "No se encontraron usuarios",
		icon:     "users",
		pageSize: s.cfg.Table.PageSize,
		filters:  true,
	})

	roles := []templates.Option{{Value: "", Label: "Todos los roles"}}
	for _, role := range core.AllRoles {
		roles = append(roles, templates.Option{Value: string(role), Label: role.DisplayName()})
	}
	statuses := templates.StringOptions("Todos los estados", []core.UserStatus{core.UserActive, core.UserBlocked})

	total := len(s.service.Users(core.UserFilter{}))
	s.renderPage(w, r, templates.Page{
		Title:  "Usuarios",
		Crumbs: []templates.Crumb{{Label: "Dashboard", Href: "/dashboard"}, {Label: "Usuarios"}},
		Body: templates.Stack(
			templates.Header("Gestión de Usuarios", fmt.Sprintf("%s usuarios registrados", core.FormatNumber(total)), templates.ButtonLink(exportHref("usuarios", r), "Exportar CSV", "download")),
			templates.Filters(templates.FilterBar{
				ID:          filtersID("usuarios"),
				Action:      pageURL("usuarios", 1),
				Target:      tableID("usuarios"),
				Search:      formValue(r, "q"),
				Placeholder: "Buscar por nombre o correo",
				Selects: []templates.Select{
					{Name: "rol", Label: "Rol", Options: roles, Selected: formValue(r, "rol")},
					{Name: "estado", Label: "Estado", Options: statuses, Selected: formValue(r, "estado")},
				},
			}),
			t.fragment(r, 1),
		),
	})
}

func (s *Server) handleBlockUser(w http.ResponseWriter, r *http.Request) {
	s.setUserStatus(w, r, core.UserBlocked)
}

func (s *Server) handleUnblockUser(w http.ResponseWriter, r *http.Request) {
	s.setUserStatus(w, r, core.UserActive)
}

func (s *Server) setUserStatus(w http.ResponseWriter, r *http.Request, status core.UserStatus) {
	id, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	u, err := s.service.SetUserStatus(r.Context(), id, status)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	title := "Usuario bloqueado"
	if status == core.UserActive {
		title = "Usuario desbloqueado"
	}
	s.userChanged(w, r, success(title, u.Name))
}

// handleDeleteUser removes an account.
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	u, err := s.service.DeleteUser(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	s.userChanged(w, r, success("Usuario eliminado", u.Name))
}

// userChanged answers a user mutation: the refreshed table for HTMX, a
// redirect back to the list otherwise.
func (s *Server) userChanged(w http.ResponseWriter, r *http.Request, toast templates.Toast) {
	s.notify(w, r, toast)
	if isHTMX(r) {
		if ss, ok := sessionFromContext(r.Context()); ok {
			if t, ok := ss.table("usuarios"); ok {
				s.render(w, r, t.fragment(r, 1))
				return
			}
		}
	}
	redirect(w, r, "/usuarios")
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, core.ErrUnauthenticated):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
