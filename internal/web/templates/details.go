package templates

import (
	"strconv"
	"time"

	"github.com/JonMunkholm/quimbayaeval/internal/core"
	"github.com/a-h/templ"
)

func definition(hw *htmlWriter, term string, value templ.Component) {
	hw.printf(`<div><dt>%s</dt><dd>`, esc(term))
	hw.render(value)
	hw.raw(`</dd></div>`)
}

// GradeDetail renders one graded evaluation with its per-question breakdown.
func GradeDetail(g core.GradeRecord) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<div class="card detail"><dl class="details">`)
		definition(hw, "Curso", Text(g.Course))
		definition(hw, "Fecha", Text(core.FormatDate(g.Date)))
		definition(hw, "Calificación", Grade(g.Score, g.MaxScore))
		definition(hw, "Porcentaje", Text(core.FormatPercentage(g.Percent(), 0)))
		definition(hw, "Intentos", Text(strconv.Itoa(g.Attempts)))
		hw.raw(`</dl>`)
		if g.Feedback != "" {
			hw.printf(`<div class="feedback"><h3>Retroalimentación</h3><p>%s</p></div>`, esc(g.Feedback))
		}
		if len(g.Breakdown) > 0 {
			hw.raw(`<table class="table"><thead><tr><th>Pregunta</th><th>Puntaje</th><th>Comentario</th></tr></thead><tbody>`)
			for _, q := range g.Breakdown {
				hw.printf(`<tr><td>%s</td><td>`, esc(q.Question))
				hw.render(Grade(q.Earned, q.Max))
				hw.printf(`</td><td>%s</td></tr>`, esc(q.Comment))
			}
			hw.raw(`</tbody></table>`)
		}
		hw.raw(`</div>`)
	})
}

// EvaluationDetail renders an evaluation summary followed by extra content.
func EvaluationDetail(e core.Evaluation, now time.Time, extra templ.Component) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<div class="card detail"><dl class="details">`)
		definition(hw, "Curso", Text(e.Course))
		if e.Professor != "" {
			definition(hw, "Profesor", Text(e.Professor))
		}
		definition(hw, "Tipo", Badge(string(e.Type), "default"))
		definition(hw, "Estado", StatusBadge(string(e.Status)))
		definition(hw, "Cierre", DeadlineCell(e.Deadline, now))
		definition(hw, "Duración", Text(core.FormatDuration(e.DurationMinutes)))
		definition(hw, "Intentos", Text(strconv.Itoa(e.Attempts)))
		if e.Pending > 0 {
			definition(hw, "Por calificar", Text(strconv.Itoa(e.Pending)))
		}
		hw.raw(`</dl></div>`)
		hw.render(extra)
	})
}

// TicketDetail renders one PQRS ticket and its response.
func TicketDetail(t core.Ticket) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<div class="card detail"><dl class="details">`)
		definition(hw, "Tipo", Badge(string(t.Type), "default"))
		definition(hw, "Estado", StatusBadge(string(t.Status)))
		definition(hw, "Curso", Text(t.Course))
		definition(hw, "Radicado", Text(core.FormatDate(t.FiledAt)))
		hw.raw(`</dl>`)
		hw.printf(`<div class="feedback"><h3>Descripción</h3><p>%s</p></div>`, esc(t.Description))
		if t.Response != "" {
			hw.printf(`<div class="feedback response"><h3>Respuesta</h3><p>%s</p></div>`, esc(t.Response))
		} else {
			hw.raw(`<p class="text-muted">Aún no hay respuesta para esta solicitud.</p>`)
		}
		hw.raw(`</div>`)
	})
}
