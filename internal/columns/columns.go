// Package columns declares every column a dashboard record can show.
//
// The web tables, the JSON API and evalctl all pick from these sets, so a
// column key sorts the same way everywhere. Views choose keys with [Pick]
// and attach cell renderers with [WithRender].
package columns

import (
	"fmt"

	"github.com/JonMunkholm/quimbayaeval/internal/core"
	"github.com/JonMunkholm/quimbayaeval/internal/datatable"
	"github.com/a-h/templ"
)

// Row identities.
var (
	UserKey        = datatable.IntKey(func(u core.User) int { return u.ID })
	EvaluationKey  = datatable.IntKey(func(e core.Evaluation) int { return e.ID })
	CourseKey      = datatable.KeyFunc[core.Course](func(c core.Course) string { return c.Code })
	GradeKey       = datatable.IntKey(func(g core.GradeRecord) int { return g.ID })
	TicketKey      = datatable.IntKey(func(t core.Ticket) int { return t.ID })
	SubmissionKey  = datatable.IntKey(func(s core.Submission) int { return s.ID })
	PerformanceKey = datatable.KeyFunc[core.CoursePerformance](func(p core.CoursePerformance) string { return p.Course })
	AuditKey       = datatable.KeyFunc[core.AuditEntry](func(a core.AuditEntry) string { return a.ID })
)

func Users() []datatable.Column[core.User] {
	return []datatable.Column[core.User]{
		{Key: "id", Header: "ID", Sortable: true},
		{Key: "nombre", Header: "Usuario", Sortable: true},
		{Key: "email", Header: "Correo", Sortable: true, Class: "text-muted"},
		{Key: "rol", Header: "Rol", Sortable: true},
		{Key: "estado", Header: "Estado", Sortable: true},
		{Key: "ultimoAcceso", Header: "Último Acceso", Sortable: true},
	}
}

func Evaluations() []datatable.Column[core.Evaluation] {
	return []datatable.Column[core.Evaluation]{
		{Key: "id", Header: "ID", Sortable: true},
		{Key: "nombre", Header: "Evaluación", Sortable: true},
		{Key: "curso", Header: "Curso", Sortable: true},
		{Key: "profesor", Header: "Profesor", Sortable: true},
		{Key: "tipo", Header: "Tipo", Sortable: true},
		{Key: "duracion", Header: "Duración", Sortable: true},
		{Key: "intentos", Header: "Intentos", Sortable: true, Class: "text-right"},
		{Key: "deadline", Header: "Cierre", Sortable: true},
		{Key: "estado", Header: "Estado", Sortable: true},
		{Key: "pendientes", Header: "Por calificar", Sortable: true, Class: "text-right"},
	}
}

func Courses() []datatable.Column[core.Course] {
	return []datatable.Column[core.Course]{
		{Key: "codigo", Header: "Código", Sortable: true},
		{Key: "nombre", Header: "Curso", Sortable: true},
		{Key: "progreso", Header: "Progreso", Sortable: true},
		{Key: "proxEval", Header: "Próxima evaluación"},
		{Key: "evalDate", Header: "Fecha", Sortable: true},
	}
}

func Grades() []datatable.Column[core.GradeRecord] {
	return []datatable.Column[core.GradeRecord]{
		{Key: "nombre", Header: "Evaluación", Sortable: true},
		{Key: "curso", Header: "Curso", Sortable: true},
		{Key: "fecha", Header: "Fecha", Sortable: true},
		{Key: "calificacion", Header: "Calificación", Sortable: true},
		{Key: "porcentaje", Header: "Porcentaje", Sortable: true, Class: "text-right"},
		{Key: "intentos", Header: "Intentos", Sortable: true, Class: "text-right"},
	}
}

func Tickets() []datatable.Column[core.Ticket] {
	return []datatable.Column[core.Ticket]{
		{Key: "id", Header: "#", Sortable: true},
		{Key: "tipo", Header: "Tipo", Sortable: true},
		{Key: "asunto", Header: "Asunto", Sortable: true},
		{Key: "curso", Header: "Curso", Sortable: true},
		{Key: "fecha", Header: "Fecha", Sortable: true},
		{Key: "estado", Header: "Estado", Sortable: true},
	}
}

func Submissions() []datatable.Column[core.Submission] {
	return []datatable.Column[core.Submission]{
		{Key: "id", Header: "ID", Sortable: true},
		{Key: "estudiante", Header: "Estudiante", Sortable: true},
		{Key: "estado", Header: "Estado", Sortable: true},
		{Key: "calificacion", Header: "Calificación", Sortable: true},
	}
}

func Performance() []datatable.Column[core.CoursePerformance] {
	return []datatable.Column[core.CoursePerformance]{
		{Key: "curso", Header: "Curso", Sortable: true},
		{Key: "estudiantes", Header: "Estudiantes", Sortable: true, Class: "text-right"},
		{Key: "promedio", Header: "Promedio", Sortable: true, Class: "text-right"},
		{Key: "aprobacion", Header: "Aprobación", Sortable: true, Class: "text-right"},
		{Key: "reprobacion", Header: "Reprobación", Sortable: true, Class: "text-right"},
	}
}

func Audit() []datatable.Column[core.AuditEntry] {
	return []datatable.Column[core.AuditEntry]{
		{Key: "fecha", Header: "Fecha", Sortable: true},
		{Key: "accion", Header: "Acción", Sortable: true},
		{Key: "severidad", Header: "Severidad", Sortable: true},
		{Key: "entidad", Header: "Entidad", Sortable: true},
		{Key: "usuario", Header: "Usuario", Sortable: true},
		{Key: "ip", Header: "IP", Class: "text-muted"},
	}
}

// Pick returns the columns named by keys, in that order. An unknown key
// panics: column sets are fixed at build time.
func Pick[T any](cols []datatable.Column[T], keys ...string) []datatable.Column[T] {
	out := make([]datatable.Column[T], 0, len(keys))
	for _, k := range keys {
		i := index(cols, k)
		if i < 0 {
			panic(fmt.Sprintf("columns: unknown key %q", k))
		}
		out = append(out, cols[i])
	}
	return out
}

// WithRender returns a copy of cols with renderers attached by key. An
// unknown key panics.
func WithRender[T any](cols []datatable.Column[T], renderers map[string]func(T) templ.Component) []datatable.Column[T] {
	out := append([]datatable.Column[T](nil), cols...)
	for k, fn := range renderers {
		i := index(out, k)
		if i < 0 {
			panic(fmt.Sprintf("columns: no column %q to render", k))
		}
		out[i].Render = fn
	}
	return out
}

// SortableKeys lists the keys that accept a sort.
func SortableKeys[T any](cols []datatable.Column[T]) []string {
	var keys []string
	for _, c := range cols {
		if c.Sortable {
			keys = append(keys, c.Key)
		}
	}
	return keys
}

func index[T any](cols []datatable.Column[T], key string) int {
	for i, c := range cols {
		if c.Key == key {
			return i
		}
	}
	return -1
}
