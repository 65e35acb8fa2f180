package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/JonMunkholm/quimbayaeval/internal/core"
	"github.com/JonMunkholm/quimbayaeval/internal/web/templates"
	"github.com/a-h/templ"
)

// deadlineLayout is the value format of datetime-local inputs.
const deadlineLayout = "2006-01-02T15:04"

var (
	errInvalidDate   = errors.New("invalid date")
	errInvalidNumber = errors.New("invalid number")
)

var evaluationFields = []string{"nombre", "curso", "tipo", "deadline", "duracion", "intentos", "publicar"}

// handleEvaluations lists evaluations with status, type and course filters.
func (s *Server) handleEvaluations(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	ss := pageSession(r)
	t := mount(ss, tableDef[core.Evaluation]{
		name:    "evaluaciones",
		key:     evalKey,
		columns: s.evaluationColumns(),
		rows: func(r *http.Request) []core.Evaluation {
			return s.service.Evaluations(evaluationFilter(r))
		},
		onClick:  func(e core.Evaluation) { ss.redirectTo("/evaluaciones/" + strconv.Itoa(e.ID)) },
		empty:    "No hay evaluaciones que coincidan",
		pageSize: s.cfg.Table.PageSize,
		filters:  true,
	})

	var actions templ.Component
	if u.Role == core.RoleTeacher {
		actions = templates.ButtonLink("/evaluaciones/nueva", "Nueva evaluación", "plus")
	}

	s.renderPage(w, r, templates.Page{
		Title:  "Evaluaciones",
		Crumbs: []templates.Crumb{{Label: "Dashboard", Href: "/dashboard"}, {Label: "Evaluaciones"}},
		Body: templates.Stack(
			templates.Header("Evaluaciones", "Gestiona las evaluaciones de tus cursos", actions),
			s.evaluationFilters("evaluaciones", r),
			t.fragment(r, 1),
		),
	})
}

// handleEvaluationDetail shows one evaluation and its submissions.
// Teachers can open a submission to grade it.
func (s *Server) handleEvaluationDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	e, err := s.service.EvaluationByID(id)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	ss := pageSession(r)
	def := tableDef[core.Submission]{
		name:    "entregas-evaluacion",
		key:     submissionKey,
		columns: submissionColumns(),
		rows:    func(*http.Request) []core.Submission { return s.service.Submissions(e.ID) },
		empty:   "Aún no hay entregas",
		icon:    "clipboard-list",
	}
	if currentUser(r).Role == core.RoleTeacher {
		def.onClick = func(sub core.Submission) { ss.redirectTo(gradingURL(e.ID, sub.ID)) }
	}
	t := mount(ss, def)

	s.renderPage(w, r, templates.Page{
		Title:  e.Name,
		Active: "/evaluaciones",
		Crumbs: []templates.Crumb{
			{Label: "Dashboard", Href: "/dashboard"},
			{Label: "Evaluaciones", Href: "/evaluaciones"},
			{Label: e.Name},
		},
		Body: templates.Stack(
			templates.Header(e.Name, e.Course, nil),
			templates.EvaluationDetail(e, s.service.Now(), templates.Section("Entregas", "", t.fragment(r, 1))),
		),
	})
}

// handleNewEvaluation shows the create-evaluation form.
func (s *Server) handleNewEvaluation(w http.ResponseWriter, r *http.Request) {
	f := templates.FormState{Values: map[string]string{
		"duracion": "60",
		"intentos": "1",
		"deadline": s.service.Now().Add(7 * 24 * time.Hour).Format(deadlineLayout),
	}}
	s.renderNewEvaluation(w, r, http.StatusOK, f)
}

func (s *Server) renderNewEvaluation(w http.ResponseWriter, r *http.Request, status int, f templates.FormState) {
	form := templates.EvaluationForm(f, s.service.EvaluationCourses())
	if isHTMX(r) {
		s.renderStatus(w, r, status, form)
		return
	}

	s.renderPageStatus(w, r, status, templates.Page{
		Title:  "Nueva evaluación",
		Active: "/evaluaciones",
		Crumbs: []templates.Crumb{
			{Label: "Dashboard", Href: "/dashboard"},
			{Label: "Evaluaciones", Href: "/evaluaciones"},
			{Label: "Nueva"},
		},
		Body: templates.Stack(templates.Header("Nueva evaluación", "Completa los datos de la evaluación", nil), form),
	})
}

// handleCreateEvaluation validates and stores a new evaluation, then opens it.
func (s *Server) handleCreateEvaluation(w http.ResponseWriter, r *http.Request) {
	f := formState(r, evaluationFields...)
	in, errs := parseNewEvaluation(r, s.service.Now().Location())
	if len(errs) > 0 {
		f.Errors = errs
		s.renderNewEvaluation(w, r, http.StatusUnprocessableEntity, f)
		return
	}

	e, err := s.service.CreateEvaluation(r.Context(), in)
	if err != nil {
		if state, ok := withErrors(f, err); ok {
			s.renderNewEvaluation(w, r, http.StatusUnprocessableEntity, state)
			return
		}
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	flash(r, success("Evaluación creada", fmt.Sprintf("%s quedó en estado %s", e.Name, e.Status)))
	redirect(w, r, "/evaluaciones/"+strconv.Itoa(e.ID))
}

// parseNewEvaluation converts the form's strings. Conversion problems are
// reported per field the same way validation problems are.
func parseNewEvaluation(r *http.Request, loc *time.Location) (core.NewEvaluation, core.FieldErrors) {
	errs := core.FieldErrors{}
	in := core.NewEvaluation{
		Name:    formValue(r, "nombre"),
		Course:  formValue(r, "curso"),
		Type:    formValue(r, "tipo"),
		Publish: r.FormValue("publicar") != "",
	}

	if raw := formValue(r, "deadline"); raw != "" {
		d, err := time.ParseInLocation(deadlineLayout, raw, loc)
		if err != nil {
			errs["deadline"] = core.MapError(errInvalidDate).Message
		} else {
			in.Deadline = d
		}
	}

	intField := func(name string, dst *int) {
		raw := formValue(r, name)
		if raw == "" {
			return
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs[name] = core.MapError(errInvalidNumber).Message
			return
		}
		*dst = n
	}
	intField("duracion", &in.DurationMinutes)
	intField("intentos", &in.Attempts)

	return in, errs
}

// handleReports shows per-course performance.
func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	ss := pageSession(r)
	t := mount(ss, tableDef[core.CoursePerformance]{
		name:    "reportes",
		key:     perfKey,
		columns: performanceColumns(),
		rows: func(r *http.Request) []core.CoursePerformance {
			return s.service.Performance(formValue(r, "curso"))
		},
		empty:    "No hay datos de rendimiento para ese curso",
		icon:     "bar-chart",
		pageSize: s.cfg.Table.PageSize,
		filters:  true,
	})

	var courses []string
	for _, p := range s.service.Performance("") {
		courses = append(courses, p.Course)
	}

	s.renderPage(w, r, templates.Page{
		Title:  "Reportes",
		Crumbs: []templates.Crumb{{Label: "Dashboard", Href: "/dashboard"}, {Label: "Reportes"}},
		Body: templates.Stack(
			templates.Header("Reportes", "Rendimiento académico por curso", nil),
			templates.Filters(templates.FilterBar{
				ID:     filtersID("reportes"),
				Action: pageURL("reportes", 1),
				Target: tableID("reportes"),
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
