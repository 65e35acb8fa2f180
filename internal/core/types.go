package core

import (
	"maps"
	"time"
)

// Role identifies which portal a user sees.
type Role string

const (
	RoleStudent     Role = "estudiante"
	RoleTeacher     Role = "maestro"
	RoleCoordinator Role = "coordinador"
)

// AllRoles lists every role in display order.
var AllRoles = []Role{RoleStudent, RoleTeacher, RoleCoordinator}

// DisplayName returns the human-readable role name.
func (r Role) DisplayName() string {
	switch r {
	case RoleStudent:
		return "Estudiante"
	case RoleTeacher:
		return "Maestro"
	case RoleCoordinator:
		return "Coordinador"
	default:
		return string(r)
	}
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleCoordinator:
		return true
	}
	return false
}

// ParseRole converts a role name (any case, display or key form) to a Role.
func ParseRole(s string) (Role, bool) {
	for _, r := range AllRoles {
		if equalFold(s, string(r)) || equalFold(s, r.DisplayName()) {
			return r, true
		}
	}
	return "", false
}

// UserStatus is whether an account may sign in.
type UserStatus string

const (
	UserActive  UserStatus = "Activo"
	UserBlocked UserStatus = "Bloqueado"
)

// User is a dashboard account.
type User struct {
	ID         int
	Name       string
	Email      string
	Role       Role
	Status     UserStatus
	LastAccess time.Time
}

// Field exposes User values by column key.
func (u User) Field(key string) (any, bool) {
	switch key {
	case "id":
		return u.ID, true
	case "nombre":
		return u.Name, true
	case "email":
		return u.Email, true
	case "rol":
		return u.Role.DisplayName(), true
	case "estado":
		return string(u.Status), true
	case "ultimoAcceso":
		return u.LastAccess, true
	}
	return nil, false
}

// Initial returns the first letter of the user's name for avatars.
func (u User) Initial() string {
	for _, r := range u.Name {
		return string(r)
	}
	return "?"
}

// EvaluationStatus is the publication state of an evaluation.
type EvaluationStatus string

const (
	EvalActive    EvaluationStatus = "Activa"
	EvalClosed    EvaluationStatus = "Cerrada"
	EvalScheduled EvaluationStatus = "Programada"
	EvalDraft     EvaluationStatus = "Borrador"
)

// EvaluationStatuses lists every status in filter order.
var EvaluationStatuses = []EvaluationStatus{EvalActive, EvalClosed, EvalScheduled, EvalDraft}

// EvaluationType is the kind of assessment.
type EvaluationType string

const (
	EvalExam     EvaluationType = "Examen"
	EvalQuiz     EvaluationType = "Quiz"
	EvalWorkshop EvaluationType = "Taller"
	EvalProject  EvaluationType = "Proyecto"
	EvalHomework EvaluationType = "Tarea"
)

// EvaluationTypes lists every type in form order.
var EvaluationTypes = []EvaluationType{EvalExam, EvalQuiz, EvalWorkshop, EvalProject, EvalHomework}

// Evaluation is an assessment published for a course.
type Evaluation struct {
	ID              int
	Name            string
	Course          string
	Professor       string
	Deadline        time.Time
	Status          EvaluationStatus
	Type            EvaluationType
	Attempts        int // 0 means not set
	DurationMinutes int // 0 means not set
	Pending         int // submissions waiting to be graded
}

// Field exposes Evaluation values by column key. Optional values that are
// not set are reported as missing.
func (e Evaluation) Field(key string) (any, bool) {
	switch key {
	case "id":
		return e.ID, true
	case "nombre":
		return e.Name, true
	case "curso":
		return e.Course, true
	case "profesor":
		return e.Professor, e.Professor != ""
	case "deadline":
		return e.Deadline, true
	case "estado":
		return string(e.Status), true
	case "tipo":
		return string(e.Type), true
	case "intentos":
		return e.Attempts, e.Attempts > 0
	case "duracion":
		return e.DurationMinutes, e.DurationMinutes > 0
	case "pendientes":
		return e.Pending, e.Pending > 0
	}
	return nil, false
}

// Course is a course a student is enrolled in.
type Course struct {
	ID                 int
	Code               string
	Name               string
	Progress           int // percent
	NextEvaluation     string
	NextEvaluationDate time.Time
}

// Field exposes Course values by column key.
func (c Course) Field(key string) (any, bool) {
	switch key {
	case "id":
		return c.ID, true
	case "codigo":
		return c.Code, true
	case "nombre":
		return c.Name, true
	case "progreso":
		return c.Progress, true
	case "proxEval":
		return c.NextEvaluation, c.NextEvaluation != ""
	case "evalDate":
		return c.NextEvaluationDate, true
	}
	return nil, false
}

// TicketType classifies a PQRS request.
type TicketType string

const (
	TicketQuestion   TicketType = "Pregunta"
	TicketClaim      TicketType = "Reclamo"
	TicketSuggestion TicketType = "Sugerencia"
	TicketComplaint  TicketType = "Queja"
)

// TicketTypes lists every ticket type in form order.
var TicketTypes = []TicketType{TicketQuestion, TicketComplaint, TicketClaim, TicketSuggestion}

// TicketStatus is the processing state of a PQRS ticket.
type TicketStatus string

const (
	TicketPending    TicketStatus = "Pendiente"
	TicketInProgress TicketStatus = "En Proceso"
	TicketResolved   TicketStatus = "Resuelto"
)

// TicketStatuses lists every ticket status in filter order.
var TicketStatuses = []TicketStatus{TicketPending, TicketInProgress, TicketResolved}

// Ticket is a PQRS request (pregunta, queja, reclamo, sugerencia).
type Ticket struct {
	ID          int
	Type        TicketType
	Subject     string
	Description string
	Status      TicketStatus
	FiledAt     time.Time
	Course      string
	Response    string
}

// Field exposes Ticket values by column key.
func (t Ticket) Field(key string) (any, bool) {
	switch key {
	case "id":
		return t.ID, true
	case "tipo":
		return string(t.Type), true
	case "asunto":
		return t.Subject, true
	case "estado":
		return string(t.Status), true
	case "fecha":
		return t.FiledAt, true
	case "curso":
		return t.Course, true
	case "respuesta":
		return t.Response, t.Response != ""
	}
	return nil, false
}

// QuestionScore is one line of a graded evaluation's breakdown.
type QuestionScore struct {
	Question string
	Earned   float64
	Max      float64
	Comment  string
}

// GradeRecord is a graded evaluation in a student's history.
type GradeRecord struct {
	ID        int
	Name      string
	Course    string
	Date      time.Time
	Score     float64
	MaxScore  float64
	Attempts  int
	Feedback  string
	Breakdown []QuestionScore
}

// Percent returns the score as a percentage of the maximum.
func (g GradeRecord) Percent() float64 {
	if g.MaxScore == 0 {
		return 0
	}
	return g.Score / g.MaxScore * 100
}

// Field exposes GradeRecord values by column key.
func (g GradeRecord) Field(key string) (any, bool) {
	switch key {
	case "id":
		return g.ID, true
	case "nombre":
		return g.Name, true
	case "curso":
		return g.Course, true
	case "fecha":
		return g.Date, true
	case "calificacion":
		return g.Score, true
	case "porcentaje":
		return g.Percent(), g.MaxScore > 0
	case "intentos":
		return g.Attempts, true
	}
	return nil, false
}

// SubmissionStatus is whether a submission has been graded.
type SubmissionStatus string

const (
	SubmissionPending SubmissionStatus = "Pendiente"
	SubmissionGraded  SubmissionStatus = "Calificado"
)

// Submission is a student's answer sheet waiting for (or past) grading.
type Submission struct {
	ID           int
	Student      string
	StudentID    int // 0 for seeded sheets
	EvaluationID int
	Status       SubmissionStatus
	Score        *float64
	Comment      string
	SubmittedAt  time.Time
	Answers      map[int]string // question ID to response
}

// clone returns a copy that shares no memory with s.
func (s Submission) clone() Submission {
	if s.Score != nil {
		score := *s.Score
		s.Score = &score
	}
	s.Answers = maps.Clone(s.Answers)
	return s
}

// Field exposes Submission values by column key.
func (s Submission) Field(key string) (any, bool) {
	switch key {
	case "id":
		return s.ID, true
	case "estudiante":
		return s.Student, true
	case "estado":
		return string(s.Status), true
	case "calificacion":
		if s.Score == nil {
			return nil, false
		}
		return *s.Score, true
	}
	return nil, false
}

// CoursePerformance is the aggregate result of one course in reports.
type CoursePerformance struct {
	Course   string
	Students int
	Average  float64
	PassRate int // percent
	FailRate int // percent
}

// Field exposes CoursePerformance values by column key.
func (p CoursePerformance) Field(key string) (any, bool) {
	switch key {
	case "curso":
		return p.Course, true
	case "estudiantes":
		return p.Students, true
	case "promedio":
		return p.Average, true
	case "aprobacion":
		return p.PassRate, true
	case "reprobacion":
		return p.FailRate, true
	}
	return nil, false
}

// Stat is one dashboard summary card.
type Stat struct {
	Label string
	Value string
	Icon  string
	Tone  string // blue, orange, green, purple
}
