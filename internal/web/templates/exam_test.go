package templates

import (
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/quimbayaeval/internal/core"
)

func examView(now time.Time, answers map[int]string) ExamView {
	start := time.Date(2025, 10, 17, 9, 0, 0, 0, time.UTC)
	return ExamView{
		Evaluation: core.Evaluation{ID: 1, Name: "Parcial 2", Course: "MAT-301", Professor: "Dr. Ruiz"},
		Questions: []core.Question{
			{ID: 10, Type: core.QuestionTrueFalse, Prompt: "¿2 > 1?", Options: []string{"Verdadero", "Falso"}},
			{ID: 11, Type: core.QuestionShortAnswer, Prompt: "Explica <b>x</b>"},
		},
		Attempt: core.Attempt{EvaluationID: 1, StartedAt: start, Deadline: start.Add(30 * time.Minute), Answers: answers},
		Now:     now,
	}
}

func TestExamPage(t *testing.T) {
	start := time.Date(2025, 10, 17, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		now     time.Time
		clock   string
		lowTime bool
	}{
		{"plenty of time", start, "30:00", false},
		{"low time", start.Add(27*time.Minute + 30*time.Second), "02:30", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderString(t, ExamPage(examView(tt.now, map[int]string{10: "Falso"})))
			if !strings.Contains(got, `<span class="exam-clock">`+tt.clock+`</span>`) {
				t.Errorf("clock %s not rendered", tt.clock)
			}
			if low := strings.Contains(got, `class="exam-timer low"`); low != tt.lowTime {
				t.Errorf("timer low = %v, want %v", low, tt.lowTime)
			}
			if hidden := strings.Contains(got, `exam-low-time" role="alert" hidden`); hidden == tt.lowTime {
				t.Errorf("warning hidden = %v, want %v", hidden, !tt.lowTime)
			}
			if !strings.Contains(got, `data-deadline="2025-10-17T09:30:00Z"`) {
				t.Error("deadline attribute missing")
			}
			if !strings.Contains(got, "Progreso: 1 de 2") {
				t.Error("progress missing")
			}
		})
	}
}

func TestExamQuestion(t *testing.T) {
	v := examView(time.Date(2025, 10, 17, 9, 0, 0, 0, time.UTC), map[int]string{10: "Falso"})

	got := renderString(t, ExamQuestion(v))
	if !strings.Contains(got, `<input type="radio" name="respuesta" value="Falso" checked>`) {
		t.Errorf("saved option not checked: %s", got)
	}
	if !strings.Contains(got, `hx-post="/realizar-evaluacion/1/respuestas/10"`) {
		t.Error("answer form posts to the wrong URL")
	}
	if !strings.Contains(got, "Siguiente") || strings.Contains(got, "Finalizar y Enviar") {
		t.Error("first question should offer Siguiente only")
	}

	v.Current = 1
	got = renderString(t, ExamQuestion(v))
	if !strings.Contains(got, "Explica &lt;b&gt;x&lt;/b&gt;") {
		t.Error("prompt not escaped")
	}
	if !strings.Contains(got, "<textarea") || !strings.Contains(got, "Finalizar y Enviar") {
		t.Error("last short-answer question should show a textarea and the submit button")
	}
}

func TestExamNav(t *testing.T) {
	v := examView(time.Date(2025, 10, 17, 9, 0, 0, 0, time.UTC), map[int]string{11: "porque sí"})

	got := renderString(t, ExamNav(v))
	for _, want := range []string{
		`class="exam-nav-item current"`,
		`class="exam-nav-item answered"`,
		`hx-get="/realizar-evaluacion/1?pregunta=2"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("nav missing %s", want)
		}
	}
}

func TestSubmissionAnswers(t *testing.T) {
	qs := []core.Question{{ID: 1, Prompt: "Uno"}, {ID: 2, Prompt: "Dos"}}

	got := renderString(t, SubmissionAnswers(qs, map[int]string{1: "a & b"}))
	if !strings.Contains(got, `<p class="answer">a &amp; b</p>`) {
		t.Errorf("answer not rendered: %s", got)
	}
	if !strings.Contains(got, `<p class="answer text-muted">Sin responder</p>`) {
		t.Error("unanswered question not marked")
	}
}
