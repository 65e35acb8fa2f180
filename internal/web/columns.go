package web

import (
	"strconv"

	"github.com/JonMunkholm/quimbayaeval/internal/columns"
	"github.com/JonMunkholm/quimbayaeval/internal/core"
	"github.com/JonMunkholm/quimbayaeval/internal/datatable"
	"github.com/JonMunkholm/quimbayaeval/internal/web/templates"
	"github.com/a-h/templ"
)

type (
	userCol       = datatable.Column[core.User]
	evalCol       = datatable.Column[core.Evaluation]
	courseCol     = datatable.Column[core.Course]
	gradeCol      = datatable.Column[core.GradeRecord]
	ticketCol     = datatable.Column[core.Ticket]
	submissionCol = datatable.Column[core.Submission]
	perfCol       = datatable.Column[core.CoursePerformance]
	auditCol      = datatable.Column[core.AuditEntry]
)

var (
	userKey       = columns.UserKey
	evalKey       = columns.EvaluationKey
	courseKey     = columns.CourseKey
	gradeKey      = columns.GradeKey
	ticketKey     = columns.TicketKey
	submissionKey = columns.SubmissionKey
	perfKey       = columns.PerformanceKey
	auditKey      = columns.AuditKey
)

func userColumns() []userCol {
	cols := columns.WithRender(
		columns.Pick(columns.Users(), "nombre", "email", "rol", "estado", "ultimoAcceso"),
		map[string]func(core.User) templ.Component{
			"nombre":       func(u core.User) templ.Component { return templates.UserCell(u) },
			"rol":          func(u core.User) templ.Component { return templates.Badge(u.Role.DisplayName(), "info") },
			"estado":       func(u core.User) templ.Component { return templates.StatusBadge(string(u.Status)) },
			"ultimoAcceso": func(u core.User) templ.Component { return templates.Text(core.FormatDateTime(u.LastAccess)) },
		})
	return append(cols, userCol{Key: "acciones", Header: "Acciones", Class: "text-right",
		Render: func(u core.User) templ.Component { return templates.UserActions(u) }})
}

func (s *Server) evaluationRenderers() map[string]func(core.Evaluation) templ.Component {
	now := s.service.Now()
	return map[string]func(core.Evaluation) templ.Component{
		"tipo":     func(e core.Evaluation) templ.Component { return templates.Badge(string(e.Type), "default") },
		"duracion": func(e core.Evaluation) templ.Component { return templates.Text(core.FormatDuration(e.DurationMinutes)) },
		"deadline": func(e core.Evaluation) templ.Component { return templates.DeadlineCell(e.Deadline, now) },
		"estado":   func(e core.Evaluation) templ.Component { return templates.StatusBadge(string(e.Status)) },
	}
}

// evaluationColumns are the staff view of evaluations.
func (s *Server) evaluationColumns() []evalCol {
	r := s.evaluationRenderers()
	delete(r, "duracion")
	return columns.WithRender(
		columns.Pick(columns.Evaluations(), "nombre", "curso", "tipo", "deadline", "estado", "pendientes"), r)
}

// studentEvaluationColumns are the student view: professor and duration
// instead of grading counts.
func (s *Server) studentEvaluationColumns() []evalCol {
	return columns.WithRender(
		columns.Pick(columns.Evaluations(), "nombre", "curso", "profesor", "tipo", "duracion", "deadline", "estado"),
		s.evaluationRenderers())
}

func courseColumns() []courseCol {
	return columns.WithRender(columns.Courses(), map[string]func(core.Course) templ.Component{
		"progreso": func(c core.Course) templ.Component { return templates.ProgressBar(c.Progress) },
		"evalDate": func(c core.Course) templ.Component {
			if c.NextEvaluationDate.IsZero() {
				return templates.Muted("Sin programar")
			}
			return templates.Text(core.FormatDate(c.NextEvaluationDate))
		},
	})
}

func gradeColumns() []gradeCol {
	return columns.WithRender(columns.Grades(), map[string]func(core.GradeRecord) templ.Component{
		"fecha":        func(g core.GradeRecord) templ.Component { return templates.Text(core.FormatDate(g.Date)) },
		"calificacion": func(g core.GradeRecord) templ.Component { return templates.Grade(g.Score, g.MaxScore) },
		"porcentaje": func(g core.GradeRecord) templ.Component {
			return templates.Text(core.FormatPercentage(g.Percent(), 0))
		},
	})
}

func ticketColumns() []ticketCol {
	return columns.WithRender(columns.Tickets(), map[string]func(core.Ticket) templ.Component{
		"id":     func(t core.Ticket) templ.Component { return templates.Muted("#" + strconv.Itoa(t.ID)) },
		"tipo":   func(t core.Ticket) templ.Component { return templates.Badge(string(t.Type), "default") },
		"fecha":  func(t core.Ticket) templ.Component { return templates.Text(core.FormatDate(t.FiledAt)) },
		"estado": func(t core.Ticket) templ.Component { return templates.StatusBadge(string(t.Status)) },
	})
}

func submissionColumns() []submissionCol {
	return columns.WithRender(
		columns.Pick(columns.Submissions(), "estudiante", "estado", "calificacion"),
		map[string]func(core.Submission) templ.Component{
			"estado": func(s core.Submission) templ.Component { return templates.StatusBadge(string(s.Status)) },
			"calificacion": func(s core.Submission) templ.Component {
				if s.Score == nil {
					return templates.Muted("Sin calificar")
				}
				return templates.Grade(*s.Score, 5)
			},
		})
}

func performanceColumns() []perfCol {
	percent := func(v int) templ.Component { return templates.Text(core.FormatPercentage(float64(v), 0)) }
	return columns.WithRender(columns.Performance(), map[string]func(core.CoursePerformance) templ.Component{
		"estudiantes": func(p core.CoursePerformance) templ.Component { return templates.Text(core.FormatNumber(p.Students)) },
		"promedio":    func(p core.CoursePerformance) templ.Component { return templates.Grade(p.Average, 5) },
		"aprobacion":  func(p core.CoursePerformance) templ.Component { return percent(p.PassRate) },
		"reprobacion": func(p core.CoursePerformance) templ.Component { return percent(p.FailRate) },
	})
}

func auditColumns() []auditCol {
	return columns.WithRender(columns.Audit(), map[string]func(core.AuditEntry) templ.Component{
		"fecha": func(a core.AuditEntry) templ.Component { return templates.Text(core.FormatDateTime(a.CreatedAt)) },
		"severidad": func(a core.AuditEntry) templ.Component {
			return templates.Badge(string(a.Severity), severityVariant(a.Severity))
		},
		"entidad": func(a core.AuditEntry) templ.Component {
			if a.EntityID == "" {
				return templates.Text(a.Entity)
			}
			return templates.Text(a.Entity + " #" + a.EntityID)
		},
	})
}

func severityVariant(s core.AuditSeverity) string {
	switch s {
	case core.SeverityHigh:
		return "danger"
	case core.SeverityMedium:
		return "warning"
	}
	return "default"
}
