package templates

import (
	"fmt"
	"strconv"

	"github.com/JonMunkholm/quimbayaeval/internal/core"
	"github.com/a-h/templ"
)

// FormState carries submitted values and per-field errors back into a form.
type FormState struct {
	Values map[string]string
	Errors map[string]string
}

func (f FormState) value(name string) string { return f.Values[name] }

func fieldError(hw *htmlWriter, f FormState, name string) {
	if msg, ok := f.Errors[name]; ok {
		hw.printf(`<p class="field-error" id="%s-error">%s</p>`, esc(name), esc(msg))
	}
}

func invalidAttr(f FormState, name string) string {
	if _, ok := f.Errors[name]; ok {
		return fmt.Sprintf(` aria-invalid="true" aria-describedby="%s-error"`, esc(name))
	}
	return ""
}

func input(hw *htmlWriter, f FormState, typ, name, label string, extra string) {
	hw.printf(`<div class="field"><label for="%s">%s</label>`, esc(name), esc(label))
	hw.printf(`<input type="%s" id="%s" name="%s" value="%s"%s%s>`,
		typ, esc(name), esc(name), esc(f.value(name)), extra, invalidAttr(f, name))
	fieldError(hw, f, name)
	hw.raw(`</div>`)
}

func selectField(hw *htmlWriter, f FormState, name, label string, opts []Option) {
	hw.printf(`<div class="field"><label for="%s">%s</label><select id="%s" name="%s"%s>`,
		esc(name), esc(label), esc(name), esc(name), invalidAttr(f, name))
	for _, o := range opts {
		selected := ""
		if o.Value == f.value(name) {
			selected = " selected"
		}
		hw.printf(`<option value="%s"%s>%s</option>`, esc(o.Value), selected, esc(o.Label))
	}
	hw.raw(`</select>`)
	fieldError(hw, f, name)
	hw.raw(`</div>`)
}

func textarea(hw *htmlWriter, f FormState, name, label string, rows int) {
	hw.printf(`<div class="field"><label for="%s">%s</label><textarea id="%s" name="%s" rows="%d"%s>%s</textarea>`,
		esc(name), esc(label), esc(name), esc(name), rows, invalidAttr(f, name), esc(f.value(name)))
	fieldError(hw, f, name)
	hw.raw(`</div>`)
}

// Login renders the sign-in page.
func Login(f FormState, alert templ.Component) templ.Component {
	return component(func(hw *htmlWriter) {
		head(hw, "Iniciar sesión")
		hw.raw(`<body class="login"><main class="card login-card"><div class="card-header">`)
		hw.raw(`<div class="brand-logo">`)
		hw.render(Icon("book-open"))
		hw.raw(`</div><h1>QuimbayaEVAL</h1><p class="text-muted">Sistema de Evaluación Académica</p></div>`)
		hw.render(alert)
		hw.raw(`<form method="post" action="/login" class="card-body">`)
		input(hw, f, "email", "email", "Correo electrónico", ` placeholder="usuario@universidad.edu" autocomplete="email"`)
		input(hw, f, "password", "password", "Contraseña", ` autocomplete="current-password"`)

		opts := []Option{{Value: "", Label: "Selecciona tu rol"}}
		for _, r := range core.AllRoles {
			opts = append(opts, Option{Value: string(r), Label: r.DisplayName()})
		}
		selectField(hw, f, "role", "Rol", opts)

		hw.raw(`<button type="submit" class="btn btn-primary btn-block">Iniciar sesión</button>`)
		hw.raw(`<p class="text-muted hint">Demo: selecciona un rol para ingresar.</p></form></main>`)
		toastRegion(hw, nil)
		hw.raw(`</body></html>`)
	})
}

// EvaluationForm renders the create-evaluation form.
func EvaluationForm(f FormState, courses []string) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<form method="post" action="/evaluaciones" class="card form" hx-post="/evaluaciones" hx-target="this" hx-swap="outerHTML">`)
		hw.raw(`<div class="card-body">`)
		input(hw, f, "text", "nombre", "Nombre de la evaluación", ` maxlength="120" required`)

		opts := []Option{{Value: "", Label: "Selecciona un curso"}}
		for _, c := range courses {
			opts = append(opts, Option{Value: c, Label: c})
		}
		selectField(hw, f, "curso", "Curso", opts)

		types := []Option{{Value: "", Label: "Selecciona un tipo"}}
		for _, t := range core.EvaluationTypes {
			types = append(types, Option{Value: string(t), Label: string(t)})
		}
		selectField(hw, f, "tipo", "Tipo", types)

		input(hw, f, "datetime-local", "deadline", "Fecha de cierre", ` required`)
		input(hw, f, "number", "duracion", "Duración (minutos)", ` min="0" max="600"`)
		input(hw, f, "number", "intentos", "Intentos permitidos", ` min="0" max="10"`)

		checked := ""
		if f.value("publicar") == "on" {
			checked = " checked"
		}
		hw.printf(`<div class="field field-inline"><input type="checkbox" id="publicar" name="publicar"%s><label for="publicar">Publicar de inmediato</label></div>`, checked)
		hw.raw(`</div><div class="card-footer"><a href="/evaluaciones" class="btn btn-ghost">Cancelar</a>`)
		hw.raw(`<button type="submit" class="btn btn-primary">Crear evaluación</button></div></form>`)
	})
}

// TicketForm renders the PQRS form.
func TicketForm(f FormState) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<form method="post" action="/pqrs" class="form" hx-post="/pqrs" hx-target="this" hx-swap="outerHTML">`)
		types := []Option{{Value: "", Label: "Selecciona un tipo"}}
		for _, t := range core.TicketTypes {
			types = append(types, Option{Value: string(t), Label: string(t)})
		}
		selectField(hw, f, "tipo", "Tipo de solicitud", types)
		input(hw, f, "text", "curso", "Curso (opcional)", ` maxlength="20"`)
		input(hw, f, "text", "asunto", "Asunto", ` maxlength="150" required`)
		textarea(hw, f, "descripcion", "Descripción", 4)
		hw.raw(`<button type="submit" class="btn btn-primary">Enviar solicitud</button></form>`)
	})
}

// GradeForm renders the grading form for one submission.
func GradeForm(sub core.Submission, f FormState) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.printf(`<form method="post" action="/calificar/%d" class="form" hx-post="/calificar/%d" hx-target="this" hx-swap="outerHTML">`, sub.ID, sub.ID)
		hw.printf(`<input type="hidden" name="evaluacion" value="%d">`, sub.EvaluationID)
		hw.printf(`<p><strong>%s</strong> `, esc(sub.Student))
		hw.render(StatusBadge(string(sub.Status)))
		hw.raw(`</p>`)
		if f.Values == nil {
			f.Values = map[string]string{"comentario": sub.Comment}
			if sub.Score != nil {
				f.Values["calificacion"] = strconv.FormatFloat(*sub.Score, 'f', 1, 64)
			}
		}
		input(hw, f, "number", "calificacion", "Calificación (0 - 5)", ` min="0" max="5" step="0.1" required`)
		textarea(hw, f, "comentario", "Comentario", 3)
		hw.raw(`<button type="submit" class="btn btn-primary">Guardar calificación</button></form>`)
	})
}
