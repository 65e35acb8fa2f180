package web

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/JonMunkholm/quimbayaeval/internal/core"
	"github.com/JonMunkholm/quimbayaeval/internal/web/templates"
)

// examStatus picks the response status for an exam flow error.
func examStatus(err error) int {
	switch {
	case errors.Is(err, core.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, core.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrAttemptClosed), errors.Is(err, core.ErrEvaluationUnavailable):
		return http.StatusConflict
	case errors.Is(err, core.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) examView(e core.Evaluation, a core.Attempt, current int) templates.ExamView {
	qs := s.service.Questions(e.ID)
	return templates.ExamView{
		Evaluation: e,
		Questions:  qs,
		Attempt:    a,
		Current:    max(0, min(current, len(qs)-1)),
		Now:        s.service.Now(),
	}
}

// handleTakeEvaluation opens or resumes the student's attempt. HTMX
// navigation between questions gets the question and the quick navigation
// only.
func (s *Server) handleTakeEvaluation(w http.ResponseWriter, r *http.Request) {
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
	a, err := s.service.StartAttempt(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err, examStatus(err))
		return
	}

	v := s.examView(e, a, parseIntParam(r, "pregunta", 1)-1)
	if isHTMX(r) {
		s.render(w, r, templates.Stack(
			templates.ExamQuestion(v),
			templates.OutOfBand(templates.ExamNavID, templates.ExamNav(v)),
		))
		return
	}

	s.renderPage(w, r, templates.Page{
		Title:  e.Name,
		Active: "/mis-evaluaciones",
		Crumbs: []templates.Crumb{
			{Label: "Dashboard", Href: "/dashboard"},
			{Label: "Mis Evaluaciones", Href: "/mis-evaluaciones"},
			{Label: e.Name},
		},
		Body: templates.ExamPage(v),
	})
}

// handleSaveAnswer autosaves one response and refreshes the progress and
// quick navigation.
func (s *Server) handleSaveAnswer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	qid, err := pathID(r, "q")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	a, err := s.service.SaveAnswer(r.Context(), id, qid, core.AnswerInput{Response: r.FormValue("respuesta")})
	if err != nil {
		var fe core.FieldErrors
		if errors.As(err, &fe) {
			s.renderStatus(w, r, http.StatusUnprocessableEntity, templates.ExamSaveError(fe["respuesta"]))
			return
		}
		s.respondError(w, r, err, examStatus(err))
		return
	}
	e, err := s.service.EvaluationByID(id)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	v := s.examView(e, a, 0)
	v.Current = slices.IndexFunc(v.Questions, func(q core.Question) bool { return q.ID == qid })
	s.render(w, r, templates.Stack(
		templates.ExamSaved(a.SavedAt),
		templates.OutOfBand(templates.ExamNavID, templates.ExamNav(v)),
		templates.OutOfBand(templates.ExamProgressID, templates.ExamProgress(v)),
	))
}

// handleSubmitEvaluation sends the attempt for grading and returns the
// student to their evaluations. The timer posts here when it runs out.
func (s *Server) handleSubmitEvaluation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	sub, err := s.service.SubmitAttempt(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err, examStatus(err))
		return
	}

	total := len(s.service.Questions(id))
	flash(r, success("Evaluación enviada", fmt.Sprintf("%d de %d preguntas respondidas", len(sub.Answers), total)))
	redirect(w, r, "/mis-evaluaciones")
}

func takeEvaluationURL(id int) string {
	return "/realizar-evaluacion/" + strconv.Itoa(id)
}
