package core

import "strconv"

// Stats returns the dashboard summary cards for role. Counts that the
// service tracks are computed live; institution-wide figures are fixed.
func (s *Service) Stats(role Role) []Stat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	countEval := func(status EvaluationStatus) int {
		return len(filter(s.evaluations, func(e Evaluation) bool { return e.Status == status }))
	}

	switch role {
	case RoleStudent:
		return []Stat{
			{Label: "Cursos Inscritos", Value: strconv.Itoa(len(s.courses)), Icon: "book-open", Tone: "blue"},
			{Label: "Evaluaciones Abiertas", Value: strconv.Itoa(countEval(EvalActive)), Icon: "clock", Tone: "orange"},
			{Label: "Promedio General", Value: s.averageGrade(), Icon: "trending-up", Tone: "green"},
			{Label: "Completadas", Value: strconv.Itoa(len(s.grades)), Icon: "check-circle", Tone: "purple"},
		}
	case RoleTeacher:
		pending := 0
		for _, e := range s.evaluations {
			pending += e.Pending
		}
		students := 0
		for _, p := range s.performance {
			students += p.Students
		}
		openTickets := len(filter(s.tickets, func(t Ticket) bool { return t.Status != TicketResolved }))
		return []Stat{
			{Label: "Evaluaciones Activas", Value: strconv.Itoa(countEval(EvalActive)), Icon: "file-text", Tone: "blue"},
			{Label: "Por Calificar", Value: strconv.Itoa(pending), Icon: "clipboard-list", Tone: "orange"},
			{Label: "Estudiantes", Value: strconv.Itoa(students), Icon: "bar-chart", Tone: "green"},
			{Label: "PQRS Pendientes", Value: strconv.Itoa(openTickets), Icon: "message-square", Tone: "purple"},
		}
	case RoleCoordinator:
		return []Stat{
			{Label: "Total Estudiantes", Value: FormatNumber(2847), Icon: "users", Tone: "blue"},
			{Label: "Tasa de Aprobación", Value: FormatPercentage(87.3, 1), Icon: "trending-up", Tone: "green"},
			{Label: "Evaluaciones Activas", Value: "156", Icon: "bar-chart", Tone: "purple"},
			{Label: "Estudiantes en Riesgo", Value: "73", Icon: "alert-triangle", Tone: "orange"},
		}
	}
	return nil
}

// averageGrade returns the mean grade history score with one decimal.
// Caller must hold s.mu.
func (s *Service) averageGrade() string {
	if len(s.grades) == 0 {
		return "-"
	}
	var sum float64
	for _, g := range s.grades {
		sum += g.Score
	}
	return strconv.FormatFloat(sum/float64(len(s.grades)), 'f', 1, 64)
}
