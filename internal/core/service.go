package core

import (
	"slices"
	"sync"
	"time"
)

// Service provides the dashboard's business logic over in-memory data.
// It is safe for concurrent use.
type Service struct {
	now func() time.Time

	mu          sync.RWMutex
	users       []User
	evaluations []Evaluation
	courses     []Course
	tickets     []Ticket
	grades      []GradeRecord
	submissions []Submission
	performance []CoursePerformance
	audit       []AuditEntry
	questions   map[int][]Question
	attempts    map[attemptKey]*Attempt
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for timestamps and date checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithDataset replaces the seed data.
func WithDataset(d Dataset) Option {
	return func(s *Service) { s.load(d) }
}

// NewService creates a Service seeded with SeedData.
func NewService(opts ...Option) *Service {
	s := &Service{now: time.Now}
	s.load(SeedData())
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) load(d Dataset) {
	s.users = slices.Clone(d.Users)
	s.evaluations = slices.Clone(d.Evaluations)
	s.courses = slices.Clone(d.Courses)
	s.tickets = slices.Clone(d.Tickets)
	s.grades = slices.Clone(d.Grades)
	s.submissions = make([]Submission, len(d.Submissions))
	for i, sub := range d.Submissions {
		s.submissions[i] = sub.clone()
	}
	s.performance = slices.Clone(d.Performance)
	s.questions = cloneQuestions(d.Questions)
	s.attempts = make(map[attemptKey]*Attempt)
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time {
	return s.now()
}

// filter returns the elements of items for which keep is true, as a new slice.
func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func nextID[T any](items []T, id func(T) int) int {
	highest := 0
	for _, it := range items {
		highest = max(highest, id(it))
	}
	return highest + 1
}
