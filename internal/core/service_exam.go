package core

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Questions returns an evaluation's questions in order.
func (s *Service) Questions(evaluationID int) []Question {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneQuestionList(s.questions[evaluationID])
}

func examStudent(ctx context.Context) (User, error) {
	u, ok := UserFromContext(ctx)
	if !ok {
		return User{}, ErrUnauthenticated
	}
	if u.Role != RoleStudent {
		return User{}, fmt.Errorf("role %s cannot take evaluations: %w", u.Role, ErrForbidden)
	}
	return u, nil
}

// StartAttempt opens the signed-in student's attempt at an evaluation, or
// returns the one already open. The attempt closes after the evaluation's
// duration or at its deadline, whichever comes first.
func (s *Service) StartAttempt(ctx context.Context, evaluationID int) (Attempt, error) {
	u, err := examStudent(ctx)
	if err != nil {
		return Attempt{}, err
	}
	now := s.now()

	s.mu.Lock()
	key := attemptKey{evaluationID, u.ID}
	if a, ok := s.attempts[key]; ok {
		defer s.mu.Unlock()
		if a.Submitted() {
			return Attempt{}, fmt.Errorf("evaluation %d: %w", evaluationID, ErrAttemptClosed)
		}
		return a.clone(), nil
	}

	i := slices.IndexFunc(s.evaluations, func(e Evaluation) bool { return e.ID == evaluationID })
	if i < 0 {
		s.mu.Unlock()
		return Attempt{}, fmt.Errorf("evaluation %d: %w", evaluationID, ErrNotFound)
	}
	e := s.evaluations[i]
	switch {
	case e.Status != EvalActive:
		s.mu.Unlock()
		return Attempt{}, fmt.Errorf("evaluation %d is %s: %w", e.ID, e.Status, ErrEvaluationUnavailable)
	case !now.Before(e.Deadline):
		s.mu.Unlock()
		return Attempt{}, fmt.Errorf("evaluation %d closed at %s: %w", e.ID, e.Deadline.Format(time.RFC3339), ErrEvaluationUnavailable)
	case len(s.questions[e.ID]) == 0:
		s.mu.Unlock()
		return Attempt{}, fmt.Errorf("evaluation %d has no questions: %w", e.ID, ErrEvaluationUnavailable)
	}

	limit := DefaultExamDuration
	if e.DurationMinutes > 0 {
		limit = time.Duration(e.DurationMinutes) * time.Minute
	}
	a := &Attempt{
		EvaluationID: e.ID,
		StudentID:    u.ID,
		Student:      u.Name,
		StartedAt:    now,
		Deadline:     now.Add(limit),
		Answers:      make(map[int]string),
	}
	if e.Deadline.Before(a.Deadline) {
		a.Deadline = e.Deadline
	}
	s.attempts[key] = a
	out := a.clone()
	s.mu.Unlock()

	s.LogAudit(ctx, AuditLogParams{
		Action:   ActionAttemptStart,
		Entity:   "evaluation",
		EntityID: strconv.Itoa(e.ID),
		NewValue: out.Deadline.Format(time.RFC3339),
	})
	return out, nil
}

// AttemptFor returns the signed-in student's attempt at an evaluation.
func (s *Service) AttemptFor(ctx context.Context, evaluationID int) (Attempt, bool) {
	u, ok := UserFromContext(ctx)
	if !ok {
		return Attempt{}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.attempts[attemptKey{evaluationID, u.ID}]
	if !ok {
		return Attempt{}, false
	}
	return a.clone(), true
}

// SaveAnswer stores one response of an open attempt. A blank response
// clears the question. Choice questions only accept one of their options.
func (s *Service) SaveAnswer(ctx context.Context, evaluationID, questionID int, in AnswerInput) (Attempt, error) {
	u, err := examStudent(ctx)
	if err != nil {
		return Attempt{}, err
	}
	if err := Validate(in); err != nil {
		return Attempt{}, err
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.attempts[attemptKey{evaluationID, u.ID}]
	if !ok {
		return Attempt{}, fmt.Errorf("attempt at evaluation %d: %w", evaluationID, ErrNotFound)
	}
	if a.Submitted() || a.Expired(now) {
		return Attempt{}, fmt.Errorf("evaluation %d: %w", evaluationID, ErrAttemptClosed)
	}
	qs := s.questions[evaluationID]
	qi := slices.IndexFunc(qs, func(q Question) bool { return q.ID == questionID })
	if qi < 0 {
		return Attempt{}, fmt.Errorf("question %d: %w", questionID, ErrNotFound)
	}

	answer := strings.TrimSpace(in.Response)
	switch {
	case answer == "":
		delete(a.Answers, questionID)
	case !qs[qi].Accepts(answer):
		return Attempt{}, FieldErrors{"respuesta": "Selecciona una de las opciones"}
	default:
		a.Answers[questionID] = answer
	}
	a.SavedAt = now
	return a.clone(), nil
}

// SubmitAttempt sends the attempt for grading as a pending submission.
// Sending after the time limit is accepted; answers stopped saving then.
func (s *Service) SubmitAttempt(ctx context.Context, evaluationID int) (Submission, error) {
	u, err := examStudent(ctx)
	if err != nil {
		return Submission{}, err
	}

	s.mu.Lock()
	a, ok := s.attempts[attemptKey{evaluationID, u.ID}]
	if !ok {
		s.mu.Unlock()
		return Submission{}, fmt.Errorf("attempt at evaluation %d: %w", evaluationID, ErrNotFound)
	}
	if a.Submitted() {
		s.mu.Unlock()
		return Submission{}, fmt.Errorf("evaluation %d: %w", evaluationID, ErrAttemptClosed)
	}

	sub := Submission{
		ID:           nextID(s.submissions, func(sub Submission) int { return sub.ID }),
		Student:      a.Student,
		StudentID:    a.StudentID,
		EvaluationID: evaluationID,
		Status:       SubmissionPending,
		SubmittedAt:  s.now(),
		Answers:      maps.Clone(a.Answers),
	}
	s.submissions = append(s.submissions, sub)
	if i := slices.IndexFunc(s.evaluations, func(e Evaluation) bool { return e.ID == evaluationID }); i >= 0 {
		s.evaluations[i].Pending++
	}
	a.SubmissionID = sub.ID
	total := len(s.questions[evaluationID])
	out := sub.clone()
	s.mu.Unlock()

	s.LogAudit(ctx, AuditLogParams{
		Action:   ActionAttemptSubmit,
		Entity:   "submission",
		EntityID: strconv.Itoa(sub.ID),
		NewValue: fmt.Sprintf("%d/%d respondidas", len(sub.Answers), total),
	})
	return out, nil
}
