package core

import (
	"maps"
	"slices"
	"time"
)

// QuestionType is how a question is answered.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "seleccion-multiple"
	QuestionTrueFalse      QuestionType = "verdadero-falso"
	QuestionShortAnswer    QuestionType = "respuesta-corta"
)

// Label is the badge text shown next to the question number.
func (t QuestionType) Label() string {
	switch t {
	case QuestionMultipleChoice:
		return "Selección Múltiple"
	case QuestionTrueFalse:
		return "Verdadero/Falso"
	case QuestionShortAnswer:
		return "Respuesta Corta"
	}
	return string(t)
}

// Question is one item of an evaluation. Options is empty for short
// answers.
type Question struct {
	ID      int
	Type    QuestionType
	Prompt  string
	Options []string
}

// Accepts reports whether answer is a legal response. Choice questions only
// take one of their options.
func (q Question) Accepts(answer string) bool {
	if q.Type == QuestionShortAnswer {
		return true
	}
	return slices.Contains(q.Options, answer)
}

var trueFalse = []string{"Verdadero", "Falso"}

const (
	// DefaultExamDuration applies when an evaluation sets no duration.
	DefaultExamDuration = 60 * time.Minute
	// LowTimeWarning is when the timer turns red and the page warns.
	LowTimeWarning = 5 * time.Minute
)

// Attempt is a student's open answer sheet for one evaluation.
type Attempt struct {
	EvaluationID int
	StudentID    int
	Student      string
	StartedAt    time.Time
	Deadline     time.Time
	SavedAt      time.Time // zero until the first answer
	Answers      map[int]string
	SubmissionID int // set once sent
}

// Submitted reports whether the attempt has been sent for grading.
func (a Attempt) Submitted() bool { return a.SubmissionID > 0 }

// Remaining is the time left at now, never negative.
func (a Attempt) Remaining(now time.Time) time.Duration {
	return max(0, a.Deadline.Sub(now))
}

// Expired reports whether answers can no longer be saved.
func (a Attempt) Expired(now time.Time) bool {
	return !now.Before(a.Deadline)
}

// Answered counts questions with a response.
func (a Attempt) Answered() int { return len(a.Answers) }

// Progress is the share of total questions answered, in percent.
func (a Attempt) Progress(total int) int {
	if total <= 0 {
		return 0
	}
	return a.Answered() * 100 / total
}

func (a Attempt) clone() Attempt {
	a.Answers = maps.Clone(a.Answers)
	return a
}

type attemptKey struct {
	evaluationID int
	studentID    int
}

func cloneQuestions(qs map[int][]Question) map[int][]Question {
	out := make(map[int][]Question, len(qs))
	for id, list := range qs {
		out[id] = cloneQuestionList(list)
	}
	return out
}

func cloneQuestionList(qs []Question) []Question {
	if qs == nil {
		return nil
	}
	out := make([]Question, len(qs))
	for i, q := range qs {
		q.Options = slices.Clone(q.Options)
		out[i] = q
	}
	return out
}
