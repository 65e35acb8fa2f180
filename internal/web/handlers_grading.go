package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/quimbayaeval/internal/core"
	"github.com/JonMunkholm/quimbayaeval/internal/web/templates"
	"github.com/a-h/templ"
)

const submissionsRegion = "entregas-region"

func gradingURL(evaluationID, submissionID int) string {
	return fmt.Sprintf("/calificar?evaluacion=%d&entrega=%d", evaluationID, submissionID)
}

// gradingEvaluation picks the evaluation whose submissions are listed: the
// requested one, else the first with pending submissions, else the first.
func (s *Server) gradingEvaluation(r *http.Request, evals []core.Evaluation) int {
	if id := parseIntParam(r, "evaluacion", 0); id > 0 {
		return id
	}
	for _, e := range evals {
		if e.Pending > 0 {
			return e.ID
		}
	}
	if len(evals) > 0 {
		return evals[0].ID
	}
	return 0
}

// handleGrading lists submissions of one evaluation and, when a submission
// is selected, its grading form.
func (s *Server) handleGrading(w http.ResponseWriter, r *http.Request) {
	evals := s.service.Evaluations(core.EvaluationFilter{})
	selected := s.gradingEvaluation(r, evals)

	ss := pageSession(r)
	t := mount(ss, tableDef[core.Submission]{
		name:    "entregas",
		key:     submissionKey,
		columns: submissionColumns(),
		rows: func(r *http.Request) []core.Submission {
			return s.service.Submissions(s.gradingEvaluation(r, evals))
		},
		onClick:  func(sub core.Submission) { ss.redirectTo(gradingURL(sub.EvaluationID, sub.ID)) },
		empty:    "Esta evaluación no tiene entregas",
		icon:     "clipboard-list",
		pageSize: s.cfg.Table.PageSize,
		filters:  true,
	})

	options := make([]templates.Option, 0, len(evals))
	for _, e := range evals {
		options = append(options, templates.Option{
			Value: strconv.Itoa(e.ID),
			Label: fmt.Sprintf("%s · %s (%d por calificar)", e.Name, e.Course, e.Pending),
		})
	}

	var form templ.Component = templates.Muted("Selecciona una entrega de la tabla para calificarla.")
	if id := parseIntParam(r, "entrega", 0); id > 0 {
		sub, err := s.service.SubmissionByID(id)
		if err != nil {
			s.respondError(w, r, err, http.StatusNotFound)
			return
		}
		form = templates.GradeForm(sub, templates.FormState{})
		if sub.StudentID > 0 {
			form = templates.Stack(form, templates.SubmissionAnswers(s.service.Questions(sub.EvaluationID), sub.Answers))
		}
	}

	s.renderPage(w, r, templates.Page{
		Title:  "Calificar",
		Crumbs: []templates.Crumb{{Label: "Dashboard", Href: "/dashboard"}, {Label: "Calificar"}},
		Body: templates.Stack(
			templates.Header("Calificar", "Revisa y califica las entregas de tus estudiantes", nil),
			templates.Filters(templates.FilterBar{
				ID:     filtersID("entregas"),
				Action: pageURL("entregas", 1),
				Target: tableID("entregas"),
				Selects: []templates.Select{{
					Name:     "evaluacion",
					Label:    "Evaluación",
					Options:  options,
					Selected: strconv.Itoa(selected),
				}},
			}),
			templates.Columns(
				templates.Section("Entregas", "", templates.Region(submissionsRegion, t.fragment(r, 1))),
				templates.Section("Calificación", "", form),
			),
		),
	})
}

// handleGradeSubmission stores a grade. HTMX clients get the refreshed form
// and submissions table in one response.
func (s *Server) handleGradeSubmission(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	sub, err := s.service.SubmissionByID(id)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	f := formState(r, "calificacion", "comentario")
	score, err := strconv.ParseFloat(formValue(r, "calificacion"), 64)
	if err != nil {
		f.Errors = core.FieldErrors{"calificacion": core.MapError(errInvalidNumber).Message}
		s.renderGradeForm(w, r, http.StatusUnprocessableEntity, sub, f)
		return
	}

	graded, err := s.service.GradeSubmission(r.Context(), id, core.GradeInput{
		Score:   score,
		Comment: formValue(r, "comentario"),
	})
	if err != nil {
		if state, ok := withErrors(f, err); ok {
			s.renderGradeForm(w, r, http.StatusUnprocessableEntity, sub, state)
			return
		}
		status := http.StatusInternalServerError
		if errors.Is(err, core.ErrNotFound) {
			status = http.StatusNotFound
		}
		s.respondError(w, r, err, status)
		return
	}

	toast := success("Calificación guardada", fmt.Sprintf("%s: %s", graded.Student, core.FormatGrade(score, 5)))
	if !isHTMX(r) {
		flash(r, toast)
		redirect(w, r, gradingURL(graded.EvaluationID, graded.ID))
		return
	}

	triggerToast(w, toast)
	parts := []templ.Component{templates.GradeForm(graded, templates.FormState{})}
	if ss, ok := sessionFromContext(r.Context()); ok {
		if t, ok := ss.table("entregas"); ok {
			parts = append(parts, templates.OutOfBand(submissionsRegion, t.fragment(r, 1)))
		}
	}
	s.render(w, r, templates.Stack(parts...))
}

func (s *Server) renderGradeForm(w http.ResponseWriter, r *http.Request, status int, sub core.Submission, f templates.FormState) {
	if isHTMX(r) {
		s.renderStatus(w, r, status, templates.GradeForm(sub, f))
		return
	}
	s.renderPageStatus(w, r, status, templates.Page{
		Title:  "Calificar",
		Active: "/calificar",
		Crumbs: []templates.Crumb{{Label: "Dashboard", Href: "/dashboard"}, {Label: "Calificar", Href: "/calificar"}, {Label: sub.Student}},
		Body:   templates.Section("Calificación", "", templates.GradeForm(sub, f)),
	})
}
