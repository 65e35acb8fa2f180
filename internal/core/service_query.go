package core

import (
	"fmt"
	"slices"
	"strings"
)

// UserFilter narrows the user list. Zero values match everything.
type UserFilter struct {
	Role   Role
	Status UserStatus
	Search string // name or email
}

// EvaluationFilter narrows the evaluation list. Zero values match everything.
type EvaluationFilter struct {
	Status EvaluationStatus
	Course string
	Type   EvaluationType
	Search string // name or course
}

// TicketFilter narrows the PQRS list. Zero values match everything.
type TicketFilter struct {
	Status     TicketStatus
	Type       TicketType
	Search     string // subject or description
	OnlyActive bool   // exclude resolved tickets
}

// Users returns users matching f in seed order.
func (s *Service) Users(f UserFilter) []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return filter(s.users, func(u User) bool {
		if f.Role != "" && u.Role != f.Role {
			return false
		}
		if f.Status != "" && u.Status != f.Status {
			return false
		}
		return matchesSearch(f.Search, u.Name, u.Email)
	})
}

// UserByID returns a single user.
func (s *Service) UserByID(id int) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.users, func(u User) bool { return u.ID == id })
	if i < 0 {
		return User{}, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return s.users[i], nil
}

// Evaluations returns evaluations matching f, newest first.
func (s *Service) Evaluations(f EvaluationFilter) []Evaluation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return filter(s.evaluations, func(e Evaluation) bool {
		if f.Status != "" && e.Status != f.Status {
			return false
		}
		if f.Course != "" && !equalFold(e.Course, f.Course) {
			return false
		}
		if f.Type != "" && e.Type != f.Type {
			return false
		}
		return matchesSearch(f.Search, e.Name, e.Course)
	})
}

// EvaluationByID returns a single evaluation.
func (s *Service) EvaluationByID(id int) (Evaluation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.evaluations, func(e Evaluation) bool { return e.ID == id })
	if i < 0 {
		return Evaluation{}, fmt.Errorf("evaluation %d: %w", id, ErrNotFound)
	}
	return s.evaluations[i], nil
}

// EvaluationCourses returns the distinct course codes that have evaluations,
// sorted.
func (s *Service) EvaluationCourses() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	codes := make([]string, 0, len(s.evaluations))
	for _, e := range s.evaluations {
		codes = append(codes, e.Course)
	}
	slices.Sort(codes)
	return slices.Compact(codes)
}

// OpenEvaluations returns the evaluations students can currently take.
func (s *Service) OpenEvaluations() []Evaluation {
	return s.Evaluations(EvaluationFilter{Status: EvalActive})
}

// RecentEvaluations returns at most n evaluations, newest first.
func (s *Service) RecentEvaluations(n int) []Evaluation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n = min(max(n, 0), len(s.evaluations))
	return slices.Clone(s.evaluations[:n])
}

// Courses returns the enrolled courses whose code or name contains search.
func (s *Service) Courses(search string) []Course {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return filter(s.courses, func(c Course) bool {
		return matchesSearch(search, c.Code, c.Name)
	})
}

// CourseByCode returns a single course.
func (s *Service) CourseByCode(code string) (Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.courses, func(c Course) bool { return equalFold(c.Code, code) })
	if i < 0 {
		return Course{}, fmt.Errorf("course %q: %w", code, ErrNotFound)
	}
	return s.courses[i], nil
}

// Tickets returns PQRS tickets matching f, newest first.
func (s *Service) Tickets(f TicketFilter) []Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return filter(s.tickets, func(t Ticket) bool {
		if f.OnlyActive && t.Status == TicketResolved {
			return false
		}
		if f.Status != "" && t.Status != f.Status {
			return false
		}
		if f.Type != "" && t.Type != f.Type {
			return false
		}
		return matchesSearch(f.Search, t.Subject, t.Description)
	})
}

// TicketByID returns a single ticket.
func (s *Service) TicketByID(id int) (Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.tickets, func(t Ticket) bool { return t.ID == id })
	if i < 0 {
		return Ticket{}, fmt.Errorf("ticket %d: %w", id, ErrNotFound)
	}
	return s.tickets[i], nil
}

// Grades returns the grade history, optionally limited to one course.
func (s *Service) Grades(course string) []GradeRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return filter(s.grades, func(g GradeRecord) bool {
		return course == "" || equalFold(g.Course, course)
	})
}

// GradeByID returns a single graded evaluation with its breakdown.
func (s *Service) GradeByID(id int) (GradeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.grades, func(g GradeRecord) bool { return g.ID == id })
	if i < 0 {
		return GradeRecord{}, fmt.Errorf("grade %d: %w", id, ErrNotFound)
	}
	return s.grades[i], nil
}

// Submissions returns the submissions of one evaluation, or all of them
// when evaluationID is 0.
func (s *Service) Submissions(evaluationID int) []Submission {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := filter(s.submissions, func(sub Submission) bool {
		return evaluationID == 0 || sub.EvaluationID == evaluationID
	})
	for i := range out {
		out[i] = out[i].clone()
	}
	return out
}

// SubmissionByID returns a single submission.
func (s *Service) SubmissionByID(id int) (Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.submissions, func(sub Submission) bool { return sub.ID == id })
	if i < 0 {
		return Submission{}, fmt.Errorf("submission %d: %w", id, ErrNotFound)
	}
	return s.submissions[i].clone(), nil
}

// Performance returns per-course results, optionally for one course.
func (s *Service) Performance(course string) []CoursePerformance {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return filter(s.performance, func(p CoursePerformance) bool {
		return course == "" || strings.EqualFold(p.Course, course)
	})
}
