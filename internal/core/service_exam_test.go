package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var student = User{ID: 1001, Name: "Ana López", Role: RoleStudent}

func studentCtx() context.Context {
	return ContextWithUser(context.Background(), student)
}

func TestService_Questions(t *testing.T) {
	svc := newTestService()

	qs := svc.Questions(1)
	if len(qs) != 15 {
		t.Fatalf("Questions(1) = %d, want 15", len(qs))
	}
	if qs[2].Type != QuestionTrueFalse || !cmp.Equal(qs[2].Options, []string{"Verdadero", "Falso"}) {
		t.Errorf("question 3 = %+v", qs[2])
	}
	qs[0].Options[0] = "cambiada"
	if got := svc.Questions(1)[0].Options[0]; got == "cambiada" {
		t.Error("Questions returned shared options")
	}
	if got := svc.Questions(3); got != nil {
		t.Errorf("Questions(3) = %v, want none", got)
	}
}

func TestQuestion_Accepts(t *testing.T) {
	tests := []struct {
		name   string
		q      Question
		answer string
		want   bool
	}{
		{"listed option", Question{Type: QuestionMultipleChoice, Options: []string{"a", "b"}}, "b", true},
		{"unlisted option", Question{Type: QuestionMultipleChoice, Options: []string{"a", "b"}}, "c", false},
		{"true false", Question{Type: QuestionTrueFalse, Options: trueFalse}, "Falso", true},
		{"free text", Question{Type: QuestionShortAnswer}, "cualquier cosa", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.Accepts(tt.answer); got != tt.want {
				t.Errorf("Accepts(%q) = %v, want %v", tt.answer, got, tt.want)
			}
		})
	}
}

func TestService_StartAttempt(t *testing.T) {
	svc := newTestService()
	ctx := studentCtx()

	a, err := svc.StartAttempt(ctx, 1)
	if err != nil {
		t.Fatalf("StartAttempt error = %v", err)
	}
	// 120 minute exam, well before the 20 Oct deadline.
	if want := testNow.Add(120 * time.Minute); !a.Deadline.Equal(want) {
		t.Errorf("deadline = %v, want %v", a.Deadline, want)
	}
	if a.Student != "Ana López" || a.Answered() != 0 {
		t.Errorf("attempt = %+v", a)
	}

	again, err := svc.StartAttempt(ctx, 1)
	if err != nil || !again.StartedAt.Equal(a.StartedAt) {
		t.Errorf("second start = %+v, %v; want the open attempt", again, err)
	}

	entries := svc.AuditLog(AuditLogFilter{Action: ActionAttemptStart})
	if len(entries) != 1 {
		t.Errorf("start audit entries = %d, want 1", len(entries))
	}
}

func TestService_StartAttempt_CappedByDeadline(t *testing.T) {
	now := time.Date(2025, time.October, 20, 23, 0, 0, 0, bogota)
	svc := NewService(WithClock(func() time.Time { return now }))

	a, err := svc.StartAttempt(studentCtx(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if want := at(2025, 10, 20, 23, 59); !a.Deadline.Equal(want) {
		t.Errorf("deadline = %v, want the evaluation deadline %v", a.Deadline, want)
	}
	if got := a.Remaining(now); got != 59*time.Minute {
		t.Errorf("Remaining = %v, want 59m", got)
	}
}

func TestService_StartAttempt_Errors(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name string
		ctx  context.Context
		id   int
		want error
	}{
		{"no session", context.Background(), 1, ErrUnauthenticated},
		{"teacher", ContextWithUser(context.Background(), User{ID: 1000, Role: RoleTeacher}), 1, ErrForbidden},
		{"unknown evaluation", studentCtx(), 99, ErrNotFound},
		{"closed", studentCtx(), 3, ErrEvaluationUnavailable},
		{"scheduled", studentCtx(), 4, ErrEvaluationUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.StartAttempt(tt.ctx, tt.id); !errors.Is(err, tt.want) {
				t.Errorf("StartAttempt error = %v, want %v", err, tt.want)
			}
		})
	}

	// Active but without questions.
	e, err := svc.CreateEvaluation(context.Background(), NewEvaluation{
		Name: "Quiz 4", Course: "MAT-301", Type: "Quiz", Deadline: testNow.Add(48 * time.Hour), Publish: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.StartAttempt(studentCtx(), e.ID); !errors.Is(err, ErrEvaluationUnavailable) {
		t.Errorf("no questions: error = %v, want ErrEvaluationUnavailable", err)
	}
}

func TestService_SaveAnswer(t *testing.T) {
	now := testNow
	svc := NewService(WithClock(func() time.Time { return now }))
	ctx := studentCtx()

	if _, err := svc.SaveAnswer(ctx, 1, 1, AnswerInput{Response: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("save before start: error = %v, want ErrNotFound", err)
	}
	if _, err := svc.StartAttempt(ctx, 1); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		question int
		response string
		want     error
	}{
		{"choice", 1, "El área bajo la curva entre x=a y x=b", nil},
		{"true false", 3, "Falso", nil},
		{"short answer trimmed", 5, "  Una integral con límite infinito.  ", nil},
		{"not an option", 2, "x⁴ + C", ErrInvalidInput},
		{"unknown question", 16, "Falso", ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SaveAnswer(ctx, 1, tt.question, AnswerInput{Response: tt.response})
			if !errors.Is(err, tt.want) {
				t.Errorf("SaveAnswer error = %v, want %v", err, tt.want)
			}
		})
	}

	a, _ := svc.AttemptFor(ctx, 1)
	want := map[int]string{
		1: "El área bajo la curva entre x=a y x=b",
		3: "Falso",
		5: "Una integral con límite infinito.",
	}
	if diff := cmp.Diff(want, a.Answers); diff != "" {
		t.Errorf("answers mismatch (-want +got):\n%s", diff)
	}
	if a.Progress(15) != 20 {
		t.Errorf("Progress = %d, want 20", a.Progress(15))
	}

	// Blank clears.
	a, err := svc.SaveAnswer(ctx, 1, 3, AnswerInput{Response: " "})
	if err != nil || a.Answered() != 2 {
		t.Errorf("clear: answered = %d, err = %v", a.Answered(), err)
	}

	now = now.Add(121 * time.Minute)
	if _, err := svc.SaveAnswer(ctx, 1, 3, AnswerInput{Response: "Verdadero"}); !errors.Is(err, ErrAttemptClosed) {
		t.Errorf("save after time limit: error = %v, want ErrAttemptClosed", err)
	}
}

func TestService_SubmitAttempt(t *testing.T) {
	svc := newTestService()
	ctx := studentCtx()

	if _, err := svc.StartAttempt(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SaveAnswer(ctx, 1, 11, AnswerInput{Response: "Verdadero"}); err != nil {
		t.Fatal(err)
	}

	sub, err := svc.SubmitAttempt(ctx, 1)
	if err != nil {
		t.Fatalf("SubmitAttempt error = %v", err)
	}
	if sub.ID != 5 || sub.Status != SubmissionPending || sub.Student != "Ana López" || sub.StudentID != 1001 {
		t.Errorf("submission = %+v", sub)
	}
	if diff := cmp.Diff(map[int]string{11: "Verdadero"}, sub.Answers); diff != "" {
		t.Errorf("answers mismatch (-want +got):\n%s", diff)
	}
	if e, _ := svc.EvaluationByID(1); e.Pending != 4 {
		t.Errorf("pending = %d, want 4", e.Pending)
	}
	if got := len(svc.Submissions(1)); got != 5 {
		t.Errorf("Submissions(1) = %d, want 5", got)
	}

	// The sent sheet is gradable.
	graded, err := svc.GradeSubmission(context.Background(), sub.ID, GradeInput{Score: 4})
	if err != nil || graded.Status != SubmissionGraded {
		t.Errorf("grading the sent sheet = %+v, %v", graded, err)
	}

	if _, err := svc.SubmitAttempt(ctx, 1); !errors.Is(err, ErrAttemptClosed) {
		t.Errorf("second submit: error = %v, want ErrAttemptClosed", err)
	}
	if _, err := svc.StartAttempt(ctx, 1); !errors.Is(err, ErrAttemptClosed) {
		t.Errorf("restart after submit: error = %v, want ErrAttemptClosed", err)
	}
	if _, err := svc.SaveAnswer(ctx, 1, 11, AnswerInput{Response: "Falso"}); !errors.Is(err, ErrAttemptClosed) {
		t.Errorf("save after submit: error = %v, want ErrAttemptClosed", err)
	}
	if _, err := svc.SubmitAttempt(ctx, 2); !errors.Is(err, ErrNotFound) {
		t.Errorf("submit without attempt: error = %v, want ErrNotFound", err)
	}

	entries := svc.AuditLog(AuditLogFilter{Action: ActionAttemptSubmit})
	if len(entries) != 1 || entries[0].NewValue != "1/15 respondidas" {
		t.Errorf("submit audit = %+v", entries)
	}
}

func TestAttempt_Remaining(t *testing.T) {
	a := Attempt{Deadline: testNow.Add(10 * time.Minute)}
	if got := a.Remaining(testNow); got != 10*time.Minute {
		t.Errorf("Remaining = %v", got)
	}
	if got := a.Remaining(testNow.Add(time.Hour)); got != 0 {
		t.Errorf("Remaining past deadline = %v, want 0", got)
	}
	if a.Expired(testNow) || !a.Expired(a.Deadline) {
		t.Error("Expired boundary wrong")
	}
}
