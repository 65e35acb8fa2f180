package web

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/JonMunkholm/quimbayaeval/internal/core"
	"github.com/JonMunkholm/quimbayaeval/internal/web/templates"
	"github.com/a-h/templ"
)

// handleMyCourses lists the student's courses with their progress.
func (s *Server) handleMyCourses(w http.ResponseWriter, r *http.Request) {
	ss := pageSession(r)
	t := mount(ss, tableDef[core.Course]{
		name:    "cursos",
		key:     courseKey,
		columns: courseColumns(),
		rows: func(r *http.Request) []core.Course {
			return s.service.Courses(formValue(r, "q"))
		},
		onClick:  func(c core.Course) { ss.redirectTo("/mis-evaluaciones?curso=" + url.QueryEscape(c.Code)) },
		empty:    "No se encontraron cursos",
		icon:     "book-open",
		pageSize: s.cfg.Table.PageSize,
		filters:  true,
	})

	s.renderPage(w, r, templates.Page{
		Title:  "Mis Cursos",
		Crumbs: []templates.Crumb{{Label: "Dashboard", Href: "/dashboard"}, {Label: "Mis Cursos"}},
		Body: templates.Stack(
			templates.Header("Mis Cursos", "Cursos en los que estás inscrito", nil),
			templates.Filters(templates.FilterBar{
				ID:          filtersID("cursos"),
				Action:      pageURL("cursos", 1),
				Target:      tableID("cursos"),
				Search:      formValue(r, "q"),
				Placeholder: "Buscar por código o nombre",
			}),
			t.fragment(r, 1),
		),
	})
}

// handleMyEvaluations lists the evaluations of the student's courses.
func (s *Server) handleMyEvaluations(w http.ResponseWriter, r *http.Request) {
	ss := pageSession(r)
	t := mount(ss, tableDef[core.Evaluation]{
		name:    "mis-evaluaciones",
		key:     evalKey,
		columns: s.studentEvaluationColumns(),
		rows: func(r *http.Request) []core.Evaluation {
			return s.service.Evaluations(evaluationFilter(r))
		},
		onClick: func(e core.Evaluation) {
			if e.Status == core.EvalActive {
				ss.redirectTo(takeEvaluationURL(e.ID))
			}
		},
		empty:    "No hay evaluaciones que coincidan",
		pageSize: s.cfg.Table.PageSize,
		filters:  true,
	})

	s.renderPage(w, r, templates.Page{
		Title:  "Mis Evaluaciones",
		Crumbs: []templates.Crumb{{Label: "Dashboard", Href: "/dashboard"}, {Label: "Mis Evaluaciones"}},
		Body: templates.Stack(
			templates.Header("Mis Evaluaciones", "Selecciona una evaluación activa para presentarla", nil),
			s.evaluationFilters("mis-evaluaciones", r),
			t.fragment(r, 1),
		),
	})
}

// handleHistory lists the student's graded evaluations.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	ss := pageSession(r)
	t := mount(ss, tableDef[core.GradeRecord]{
		name:    "historial",
		key:     gradeKey,
		columns: gradeColumns(),
		rows: func(r *http.Request) []core.GradeRecord {
			return s.service.Grades(formValue(r, "curso"))
		},
		onClick:  func(g core.GradeRecord) { ss.redirectTo("/historial/" + strconv.Itoa(g.ID)) },
		empty:    "Aún no tienes calificaciones",
		icon:     "clipboard-list",
		pageSize: s.cfg.Table.PageSize,
		filters:  true,
	})

	var courses []string
	for _, c := range s.service.Courses("") {
		courses = append(courses, c.Code)
	}

	s.renderPage(w, r, templates.Page{
		Title:  "Historial",
		Crumbs: []templates.Crumb{{Label: "Dashboard", Href: "/dashboard"}, {Label: "Historial"}},
		Body: templates.Stack(
			templates.Header("Historial de Calificaciones", "Selecciona una evaluación para ver el detalle", nil),
			templates.Filters(templates.FilterBar{
				ID:     filtersID("historial"),
				Action: pageURL("historial", 1),
				Target: tableID("historial"),
				Selects: []templates.Select{{
					Name:     "curso",
					Label:    "Curso",
					Options:  templates.StringOptions("Todos los cursos", courses),
					Selected: formValue(r, "curso"),
				}},
			}),
			t.fragment(r, 1),
		),
	})
}

// handleHistoryDetail shows one graded evaluation with its breakdown.
func (s *Server) handleHistoryDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	g, err := s.service.GradeByID(id)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	s.renderPage(w, r, templates.Page{
		Title:  g.Name,
		Active: "/historial",
		Crumbs: []templates.Crumb{
			{Label: "Dashboard", Href: "/dashboard"},
			{Label: "Historial", Href: "/historial"},
			{Label: g.Name},
		},
		Body: templates.Stack(
			templates.Header(g.Name, fmt.Sprintf("%s · %s", g.Course, core.FormatDate(g.Date)), nil),
			templates.GradeDetail(g),
		),
	})
}

// evaluationFilter reads the evaluation filter bar.
func evaluationFilter(r *http.Request) core.EvaluationFilter {
	return core.EvaluationFilter{
		Status: core.EvaluationStatus(formValue(r, "estado")),
		Type:   core.EvaluationType(formValue(r, "tipo")),
		Course: formValue(r, "curso"),
		Search: formValue(r, "q"),
	}
}

func (s *Server) evaluationFilters(name string, r *http.Request) templ.Component {
	return templates.Filters(templates.FilterBar{
		ID:          filtersID(name),
		Action:      pageURL(name, 1),
		Target:      tableID(name),
		Search:      formValue(r, "q"),
		Placeholder: "Buscar evaluación",
		Selects: []templates.Select{
			{Name: "estado", Label: "Estado", Options: templates.StringOptions("Todos los estados", core.EvaluationStatuses), Selected: formValue(r, "estado")},
			{Name: "tipo", Label: "Tipo", Options: templates.StringOptions("Todos los tipos", core.EvaluationTypes), Selected: formValue(r, "tipo")},
			{Name: "curso", Label: "Curso", Options: templates.StringOptions("Todos los cursos", s.service.EvaluationCourses()), Selected: formValue(r, "curso")},
		},
	})
}
