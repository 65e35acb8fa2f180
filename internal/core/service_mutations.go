package core

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Login validates the sign-in form and returns the demo user for the chosen
// role. No credentials are checked.
func (s *Service) Login(ctx context.Context, form LoginForm) (User, error) {
	if err := Validate(form); err != nil {
		return User{}, err
	}
	role, _ := ParseRole(form.Role)

	email := strings.TrimSpace(form.Email)
	if email == "" {
		email = string(role) + "@universidad.edu"
	}
	u := User{
		ID:         1000 + slices.Index(AllRoles, role),
		Name:       demoNames[role],
		Email:      email,
		Role:       role,
		Status:     UserActive,
		LastAccess: s.now(),
	}

	s.LogAudit(ContextWithUser(ctx, u), AuditLogParams{
		Action:   ActionLogin,
		Entity:   "session",
		NewValue: string(role),
	})
	return u, nil
}

// SetUserStatus blocks or unblocks a user.
func (s *Service) SetUserStatus(ctx context.Context, id int, status UserStatus) (User, error) {
	if status != UserActive && status != UserBlocked {
		return User{}, fmt.Errorf("user status %q: %w", status, ErrInvalidInput)
	}

	s.mu.Lock()
	i := slices.IndexFunc(s.users, func(u User) bool { return u.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return User{}, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	old := s.users[i].Status
	s.users[i].Status = status
	u := s.users[i]
	s.mu.Unlock()

	action := ActionUserUnblock
	if status == UserBlocked {
		action = ActionUserBlock
	}
	s.LogAudit(ctx, AuditLogParams{
		Action:   action,
		Entity:   "user",
		EntityID: strconv.Itoa(id),
		OldValue: string(old),
		NewValue: string(status),
	})
	return u, nil
}

// DeleteUser removes a user and returns the removed record.
func (s *Service) DeleteUser(ctx context.Context, id int) (User, error) {
	s.mu.Lock()
	i := slices.IndexFunc(s.users, func(u User) bool { return u.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return User{}, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	u := s.users[i]
	s.users = slices.Delete(s.users, i, i+1)
	s.mu.Unlock()

	s.LogAudit(ctx, AuditLogParams{
		Action:   ActionUserDelete,
		Entity:   "user",
		EntityID: strconv.Itoa(id),
		OldValue: u.Email,
	})
	return u, nil
}

// CreateEvaluation validates and stores a new evaluation. It is published
// as Activa when requested, otherwise saved as Borrador.
func (s *Service) CreateEvaluation(ctx context.Context, in NewEvaluation) (Evaluation, error) {
	if err := Validate(in); err != nil {
		return Evaluation{}, err
	}
	if IsDatePast(in.Deadline, s.now()) {
		return Evaluation{}, FieldErrors{"deadline": "La fecha de cierre debe ser futura"}
	}

	typ, _ := ParseEvaluationType(in.Type)
	status := EvalDraft
	if in.Publish {
		status = EvalActive
	}
	e := Evaluation{
		Name:            strings.TrimSpace(in.Name),
		Course:          strings.ToUpper(strings.TrimSpace(in.Course)),
		Deadline:        in.Deadline,
		Status:          status,
		Type:            typ,
		Attempts:        in.Attempts,
		DurationMinutes: in.DurationMinutes,
	}
	if u, ok := UserFromContext(ctx); ok && u.Role == RoleTeacher {
		e.Professor = u.Name
	}

	s.mu.Lock()
	e.ID = nextID(s.evaluations, func(e Evaluation) int { return e.ID })
	s.evaluations = slices.Insert(s.evaluations, 0, e)
	s.mu.Unlock()

	s.LogAudit(ctx, AuditLogParams{
		Action:   ActionEvaluationCreate,
		Entity:   "evaluation",
		EntityID: strconv.Itoa(e.ID),
		NewValue: e.Name,
	})
	return e, nil
}

// CreateTicket files a new PQRS ticket as Pendiente.
func (s *Service) CreateTicket(ctx context.Context, in NewTicket) (Ticket, error) {
	if err := Validate(in); err != nil {
		return Ticket{}, err
	}

	typ, _ := ParseTicketType(in.Type)
	course := strings.TrimSpace(in.Course)
	if course == "" || strings.EqualFold(course, "general") {
		course = "General"
	}
	t := Ticket{
		Type:        typ,
		Subject:     strings.TrimSpace(in.Subject),
		Description: strings.TrimSpace(in.Description),
		Status:      TicketPending,
		FiledAt:     s.now(),
		Course:      course,
	}

	s.mu.Lock()
	t.ID = nextID(s.tickets, func(t Ticket) int { return t.ID })
	s.tickets = slices.Insert(s.tickets, 0, t)
	s.mu.Unlock()

	s.LogAudit(ctx, AuditLogParams{
		Action:   ActionTicketCreate,
		Entity:   "ticket",
		EntityID: strconv.Itoa(t.ID),
		NewValue: string(t.Type),
	})
	return t, nil
}

// GradeSubmission records a score for a submission. Grading a pending
// submission decrements its evaluation's pending count.
func (s *Service) GradeSubmission(ctx context.Context, id int, in GradeInput) (Submission, error) {
	if err := Validate(in); err != nil {
		return Submission{}, err
	}

	s.mu.Lock()
	i := slices.IndexFunc(s.submissions, func(sub Submission) bool { return sub.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return Submission{}, fmt.Errorf("submission %d: %w", id, ErrNotFound)
	}
	sub := &s.submissions[i]
	old := ""
	if sub.Score != nil {
		old = strconv.FormatFloat(*sub.Score, 'f', 1, 64)
	}
	if sub.Status == SubmissionPending {
		if j := slices.IndexFunc(s.evaluations, func(e Evaluation) bool { return e.ID == sub.EvaluationID }); j >= 0 && s.evaluations[j].Pending > 0 {
			s.evaluations[j].Pending--
		}
	}
	score := in.Score
	sub.Score = &score
	sub.Comment = strings.TrimSpace(in.Comment)
	sub.Status = SubmissionGraded
	out := sub.clone()
	s.mu.Unlock()

	s.LogAudit(ctx, AuditLogParams{
		Action:   ActionSubmissionGrade,
		Entity:   "submission",
		EntityID: strconv.Itoa(id),
		OldValue: old,
		NewValue: strconv.FormatFloat(score, 'f', 1, 64),
	})
	return out, nil
}
