package core

import "time"

// Dataset is the full in-memory state the service starts from.
type Dataset struct {
	Users       []User
	Evaluations []Evaluation
	Courses     []Course
	Tickets     []Ticket
	Grades      []GradeRecord
	Submissions []Submission
	Performance []CoursePerformance
	Questions   map[int][]Question // by evaluation ID
}

var bogota = time.FixedZone("COT", -5*60*60)

func at(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, bogota)
}

// SeedData returns a fresh copy of the demo data.
func SeedData() Dataset {
	return Dataset{
		Users: []User{
			{ID: 1, Name: "Juan García", Email: "juan.garcia@universidad.edu", Role: RoleTeacher, Status: UserActive, LastAccess: time.Date(2025, 10, 16, 14, 30, 0, 0, time.UTC)},
			{ID: 2, Name: "Ana López", Email: "ana.lopez@universidad.edu", Role: RoleStudent, Status: UserActive, LastAccess: time.Date(2025, 10, 16, 15, 45, 0, 0, time.UTC)},
			{ID: 3, Name: "Carlos Méndez", Email: "carlos.mendez@universidad.edu", Role: RoleCoordinator, Status: UserActive, LastAccess: time.Date(2025, 10, 16, 10, 20, 0, 0, time.UTC)},
			{ID: 4, Name: "María Torres", Email: "maria.torres@universidad.edu", Role: RoleTeacher, Status: UserActive, LastAccess: time.Date(2025, 10, 15, 16, 10, 0, 0, time.UTC)},
			{ID: 5, Name: "Pedro Ruiz", Email: "pedro.ruiz@universidad.edu", Role: RoleStudent, Status: UserBlocked, LastAccess: time.Date(2025, 10, 10, 9, 30, 0, 0, time.UTC)},
		},
		Evaluations: []Evaluation{
			{ID: 1, Name: "Parcial 1 - Cálculo Integral", Course: "MAT-301", Professor: "Prof. Juan García", Deadline: at(2025, 10, 20, 23, 59), Status: EvalActive, Type: EvalExam, Attempts: 1, DurationMinutes: 120, Pending: 3},
			{ID: 2, Name: "Taller Colaborativo - Física Cuántica", Course: "FIS-401", Professor: "Prof. María Torres", Deadline: at(2025, 10, 22, 18, 0), Status: EvalActive, Type: EvalWorkshop, Attempts: 3, DurationMinutes: 90},
			{ID: 3, Name: "Quiz 3 - Derivadas", Course: "MAT-301", Deadline: at(2025, 10, 18, 23, 59), Status: EvalClosed, Type: EvalQuiz, Pending: 15},
			{ID: 4, Name: "Taller Grupal - Integrales", Course: "MAT-301", Deadline: at(2025, 10, 25, 23, 59), Status: EvalScheduled, Type: EvalWorkshop},
			{ID: 5, Name: "Examen Final - Álgebra Lineal", Course: "MAT-205", Deadline: at(2025, 11, 15, 23, 59), Status: EvalDraft, Type: EvalExam},
		},
		Courses: []Course{
			{ID: 1, Code: "MAT-301", Name: "Cálculo Integral", Progress: 65, NextEvaluation: "Parcial 1", NextEvaluationDate: at(2025, 10, 20, 0, 0)},
			{ID: 2, Code: "FIS-401", Name: "Física Cuántica", Progress: 58, NextEvaluation: "Taller 3", NextEvaluationDate: at(2025, 10, 22, 0, 0)},
			{ID: 3, Code: "PRG-205", Name: "Estructuras de Datos", Progress: 72, NextEvaluation: "Quiz 4", NextEvaluationDate: at(2025, 10, 25, 0, 0)},
			{ID: 4, Code: "ING-102", Name: "Inglés Técnico II", Progress: 80, NextEvaluation: "Examen Oral", NextEvaluationDate: at(2025, 10, 28, 0, 0)},
		},
		Tickets: []Ticket{
			{ID: 1, Type: TicketQuestion, Subject: "Consulta sobre calificación del Parcial 1", Description: "Quisiera revisar los criterios de calificación de la pregunta 3...", Status: TicketPending, FiledAt: at(2025, 10, 16, 14, 30), Course: "MAT-301"},
			{ID: 2, Type: TicketClaim, Subject: "Error en tiempo de evaluación", Description: "La evaluación se cerró antes del tiempo indicado...", Status: TicketInProgress, FiledAt: at(2025, 10, 15, 10, 15), Course: "FIS-401", Response: "Estamos revisando los registros del sistema. Te contactaremos pronto."},
			{ID: 3, Type: TicketSuggestion, Subject: "Mejorar interfaz de calificaciones", Description: "Sería útil poder ver el desglose por criterios...", Status: TicketResolved, FiledAt: at(2025, 10, 12, 16, 45), Course: "General", Response: "Gracias por tu sugerencia. Hemos implementado esta funcionalidad."},
		},
		Grades: []GradeRecord{
			{
				ID: 1, Name: "Quiz 3 - Derivadas", Course: "MAT-301", Date: at(2025, 10, 18, 0, 0),
				Score: 4.5, MaxScore: 5.0, Attempts: 1,
				Feedback: "Excelente comprensión de las reglas de derivación. Continúa practicando con funciones compuestas.",
				Breakdown: []QuestionScore{
					{Question: "Pregunta 1", Earned: 1.0, Max: 1.0, Comment: "Perfecto"},
					{Question: "Pregunta 2", Earned: 1.0, Max: 1.0, Comment: "Correcto"},
					{Question: "Pregunta 3", Earned: 0.5, Max: 1.0, Comment: "Falta desarrollo"},
					{Question: "Pregunta 4", Earned: 1.0, Max: 1.0, Comment: "Bien aplicado"},
					{Question: "Pregunta 5", Earned: 1.0, Max: 1.0, Comment: "Excelente"},
				},
			},
			{
				ID: 2, Name: "Parcial 1 - Álgebra Lineal", Course: "MAT-205", Date: at(2025, 10, 15, 0, 0),
				Score: 4.2, MaxScore: 5.0, Attempts: 1,
				Feedback: "Buen manejo de matrices y determinantes. Reforzar conceptos de espacios vectoriales.",
				Breakdown: []QuestionScore{
					{Question: "Matrices", Earned: 2.0, Max: 2.0, Comment: "Procedimiento correcto"},
					{Question: "Determinantes", Earned: 1.5, Max: 2.0, Comment: "Error menor en cálculo"},
					{Question: "Espacios vectoriales", Earned: 0.7, Max: 1.0, Comment: "Revisar definiciones"},
				},
			},
		},
		Submissions: []Submission{
			{ID: 1, Student: "Laura Gómez", EvaluationID: 1, Status: SubmissionPending},
			{ID: 2, Student: "Carlos Méndez", EvaluationID: 1, Status: SubmissionPending},
			{ID: 3, Student: "María García", EvaluationID: 1, Status: SubmissionGraded, Score: ptrFloat(4.0), Comment: "Buen desarrollo"},
			{ID: 4, Student: "Juan Pérez", EvaluationID: 1, Status: SubmissionPending},
		},
		Performance: []CoursePerformance{
			{Course: "MAT-301", Students: 45, Average: 4.2, PassRate: 88, FailRate: 12},
			{Course: "FIS-401", Students: 42, Average: 3.8, PassRate: 76, FailRate: 24},
			{Course: "PRG-205", Students: 38, Average: 4.5, PassRate: 92, FailRate: 8},
			{Course: "ING-102", Students: 51, Average: 4.1, PassRate: 85, FailRate: 15},
			{Course: "QUI-203", Students: 36, Average: 3.6, PassRate: 72, FailRate: 28},
		},
		Questions: seedQuestions(),
	}
}

func ptrFloat(f float64) *float64 { return &f }

// demoNames is the display name given to each role at sign-in.
var demoNames = map[Role]string{
	RoleTeacher:     "Prof. Juan García",
	RoleStudent:     "Ana López",
	RoleCoordinator: "Dr. Carlos Méndez",
}
