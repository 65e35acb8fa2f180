package web

import (
	"net/http"

	"github.com/JonMunkholm/quimbayaeval/internal/core"
	"github.com/JonMunkholm/quimbayaeval/internal/logging"
	"github.com/JonMunkholm/quimbayaeval/internal/web/templates"
)

// handleLoginPage shows the sign-in form, or the dashboard for a live
// session.
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := core.UserFromContext(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	s.render(w, r, templates.Login(templates.FormState{}, nil))
}

// handleLogin signs in as the demo user of the chosen role.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	form := core.LoginForm{
		Email:    formValue(r, "email"),
		Password: r.FormValue("password"),
		Role:     formValue(r, "role"),
	}

	u, err := s.service.Login(r.Context(), form)
	if err != nil {
		state, ok := withErrors(templates.FormState{Values: map[string]string{
			"email": form.Email,
			"role":  form.Role,
		}}, err)
		if !ok {
			s.respondError(w, r, err, http.StatusInternalServerError)
			return
		}
		s.renderStatus(w, r, http.StatusUnprocessableEntity, templates.Login(state, nil))
		return
	}

	if old, ok := sessionFromContext(r.Context()); ok {
		s.sessions.delete(old.ID)
	}
	ss := s.sessions.create(u)
	s.setSessionCookie(w, ss)
	ss.addFlash(success("Bienvenido, "+u.Name, "Sesión iniciada como "+u.Role.DisplayName()))

	logging.FromContext(r.Context()).Info("login", "role", u.Role, "session", ss.ID)
	redirect(w, r, "/dashboard")
}

// handleLogout ends the session and returns to the sign-in page.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if ss, ok := sessionFromContext(r.Context()); ok {
		s.sessions.delete(ss.ID)
	}
	s.clearSessionCookie(w)
	redirect(w, r, "/")
}
