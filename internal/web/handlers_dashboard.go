package web

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/JonMunkholm/quimbayaeval/internal/core"
	"github.com/JonMunkholm/quimbayaeval/internal/web/templates"
	"github.com/a-h/templ"
)

// pageSession returns the caller's session. Gated pages always have one;
// the detached fallback keeps table mounting safe if that ever changes.
func pageSession(r *http.Request) *session {
	if ss, ok := sessionFromContext(r.Context()); ok {
		return ss
	}
	return &session{tables: make(map[string]tableHandle)}
}

func currentUser(r *http.Request) core.User {
	u, _ := core.UserFromContext(r.Context())
	return u
}

var dashboardSubtitles = map[core.Role]string{
	core.RoleStudent:     "Revisa tus evaluaciones pendientes y tu progreso",
	core.RoleTeacher:     "Gestiona tus evaluaciones y califica a tus estudiantes",
	core.RoleCoordinator: "Supervisa el rendimiento académico de la institución",
}

// handleDashboard renders the role's summary cards and its main table.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	ss := pageSession(r)

	body := []templ.Component{
		templates.Header("Bienvenido, "+u.Name, dashboardSubtitles[u.Role], nil),
		templates.StatCards(s.service.Stats(u.Role)),
	}

	switch u.Role {
	case core.RoleStudent:
		open := mount(ss, tableDef[core.Evaluation]{
			name:    "pendientes",
			key:     evalKey,
			columns: s.studentEvaluationColumns(),
			rows:    func(*http.Request) []core.Evaluation { return s.service.OpenEvaluations() },
			onClick: func(e core.Evaluation) { ss.redirectTo(takeEvaluationURL(e.ID)) },
			empty:   "No tienes evaluaciones pendientes",
			icon:    "check-circle",
		})
		courses := mount(ss, tableDef[core.Course]{
			name:    "progreso",
			key:     courseKey,
			columns: courseColumns(),
			rows:    func(*http.Request) []core.Course { return s.service.Courses("") },
			onClick: func(c core.Course) { ss.redirectTo("/mis-evaluaciones?curso=" + url.QueryEscape(c.Code)) },
		})
		body = append(body,
			templates.Section("Evaluaciones pendientes", "Evaluaciones abiertas de tus cursos", open.fragment(r, 1)),
			templates.Section("Progreso por curso", "", courses.fragment(r, 1)),
		)

	case core.RoleTeacher:
		recent := mount(ss, tableDef[core.Evaluation]{
			name:    "recientes",
			key:     evalKey,
			columns: s.evaluationColumns(),
			rows:    func(*http.Request) []core.Evaluation { return s.service.RecentEvaluations(5) },
			onClick: func(e core.Evaluation) { ss.redirectTo("/evaluaciones/" + strconv.Itoa(e.ID)) },
			empty:   "Aún no has creado evaluaciones",
		})
		body[0] = templates.Header("Bienvenido, "+u.Name, dashboardSubtitles[u.Role],
			templates.ButtonLink("/evaluaciones/nueva", "Nueva evaluación", "plus"))
		body = append(body, templates.Section("Evaluaciones recientes", "", recent.fragment(r, 1)))

	case core.RoleCoordinator:
		perf := mount(ss, tableDef[core.CoursePerformance]{
			name:    "rendimiento",
			key:     perfKey,
			columns: performanceColumns(),
			rows:    func(*http.Request) []core.CoursePerformance { return s.service.Performance("") },
			onClick: func(p core.CoursePerformance) { ss.redirectTo("/reportes?curso=" + url.QueryEscape(p.Course)) },
		})
		body = append(body, templates.Section("Rendimiento por curso", "Promedios y tasas de aprobación", perf.fragment(r, 1)))
	}

	s.renderPage(w, r, templates.Page{
		Title:  "Dashboard",
		Crumbs: []templates.Crumb{{Label: "Dashboard"}},
		Body:   templates.Stack(body...),
	})
}
