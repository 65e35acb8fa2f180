package templates

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/quimbayaeval/internal/core"
	"github.com/a-h/templ"
	"github.com/google/go-cmp/cmp"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var sb strings.Builder
	if err := c.Render(context.Background(), &sb); err != nil {
		t.Fatalf("render: %v", err)
	}
	return sb.String()
}

func TestStatusVariant(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"Activa", "warning"},
		{"Pendiente", "warning"},
		{string(core.SubmissionPending), "warning"},
		{"Cerrada", "success"},
		{"Resuelto", "success"},
		{"Activo", "success"},
		{"Calificado", "success"},
		{"Programada", "info"},
		{"En Proceso", "info"},
		{"Bloqueado", "danger"},
		{"Borrador", "default"},
		{"", "default"},
	}
	for _, tt := range tests {
		if got := StatusVariant(tt.status); got != tt.want {
			t.Errorf("StatusVariant(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestGrade(t *testing.T) {
	tests := []struct {
		score, max float64
		class      string
	}{
		{4.5, 5, "grade-success"},
		{4.0, 5, "grade-success"},
		{3.0, 5, "grade-warning"},
		{2.9, 5, "grade-danger"},
		{1, 0, "grade-danger"},
	}
	for _, tt := range tests {
		got := renderString(t, Grade(tt.score, tt.max))
		if !strings.Contains(got, tt.class) {
			t.Errorf("Grade(%v, %v) = %s, want class %s", tt.score, tt.max, got, tt.class)
		}
	}
}

func TestEscaping(t *testing.T) {
	got := renderString(t, Stack(
		Text(`<script>alert("x")</script>`),
		Badge(`a"b`, "info"),
		UserCell(core.User{Name: "<b>Ana</b>"}),
	))
	if strings.Contains(got, "<script>") || strings.Contains(got, "<b>") {
		t.Errorf("unescaped markup in %s", got)
	}
}

func TestStack_SkipsNil(t *testing.T) {
	got := renderString(t, Stack(Text("a"), nil, Text("b")))
	if got != "ab" {
		t.Errorf("Stack = %q, want %q", got, "ab")
	}
}

func TestComponent_StopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	failing := templ.ComponentFunc(func(context.Context, io.Writer) error { return boom })

	var sb strings.Builder
	err := Stack(Text("a"), failing, Text("b")).Render(context.Background(), &sb)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if sb.String() != "a" {
		t.Errorf("output = %q, want rendering to stop after the error", sb.String())
	}
}

func TestNavFor(t *testing.T) {
	hrefs := func(items []NavItem) []string {
		var out []string
		for _, it := range items {
			out = append(out, it.Href)
		}
		return out
	}

	tests := []struct {
		role core.Role
		want []string
	}{
		{core.RoleStudent, []string{"/dashboard", "/mis-cursos", "/mis-evaluaciones", "/historial", "/pqrs"}},
		{core.RoleTeacher, []string{"/dashboard", "/evaluaciones", "/calificar", "/reportes", "/pqrs"}},
		{core.RoleCoordinator, []string{"/dashboard", "/reportes", "/usuarios", "/auditoria", "/pqrs"}},
		{core.Role("invitado"), nil},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, hrefs(NavFor(tt.role))); diff != "" {
			t.Errorf("NavFor(%s) mismatch (-want +got):\n%s", tt.role, diff)
		}
	}
}

func TestLayout(t *testing.T) {
	got := renderString(t, Layout(Page{
		Title:  "Usuarios",
		User:   core.User{Name: "Dr. Carlos Méndez", Role: core.RoleCoordinator},
		Active: "/usuarios",
		Crumbs: []Crumb{{Label: "Dashboard", Href: "/dashboard"}, {Label: "Usuarios"}},
		Toasts: []Toast{{Kind: "success", Title: "Bienvenido"}},
		Body:   Text("contenido"),
	}))

	for _, want := range []string{
		`<title>Usuarios`,
		`href="/usuarios" class="nav-item active" aria-current="page"`,
		`<li aria-current="page">Usuarios</li>`,
		`Dr. Carlos Méndez`,
		`contenido`,
		`id="toasts"`,
		`toast-success`,
		`action="/logout"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("layout missing %q", want)
		}
	}
}

func TestFilters(t *testing.T) {
	got := renderString(t, Filters(FilterBar{
		ID:          "filters-usuarios",
		Action:      "/tables/usuarios/page/1",
		Target:      "table-usuarios",
		Search:      "ana",
		Placeholder: "Buscar",
		Selects: []Select{{
			Name:     "estado",
			Label:    "Estado",
			Options:  StringOptions("Todos", []core.UserStatus{core.UserActive, core.UserBlocked}),
			Selected: "Bloqueado",
		}},
	}))

	for _, want := range []string{
		`id="filters-usuarios"`,
		`hx-get="/tables/usuarios/page/1"`,
		`hx-target="#table-usuarios"`,
		`value="ana"`,
		`<option value="">Todos</option>`,
		`<option value="Bloqueado" selected>Bloqueado</option>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("filters missing %q in %s", want, got)
		}
	}
}

func TestForms_FieldErrors(t *testing.T) {
	f := FormState{
		Values: map[string]string{"asunto": "Consulta"},
		Errors: map[string]string{"descripcion": "descripción es un campo requerido"},
	}
	got := renderString(t, TicketForm(f))

	if !strings.Contains(got, `value="Consulta"`) {
		t.Error("submitted value not kept")
	}
	if !strings.Contains(got, `aria-invalid="true" aria-describedby="descripcion-error"`) {
		t.Error("invalid field not marked")
	}
	if !strings.Contains(got, `id="descripcion-error">descripción es un campo requerido`) {
		t.Error("error message missing")
	}
}

func TestGradeForm_Prefill(t *testing.T) {
	score := 4.0
	sub := core.Submission{ID: 3, EvaluationID: 1, Student: "María García", Status: core.SubmissionGraded, Score: &score, Comment: "Buen desarrollo"}

	got := renderString(t, GradeForm(sub, FormState{}))
	for _, want := range []string{
		`hx-post="/calificar/3"`,
		`name="evaluacion" value="1"`,
		`value="4.0"`,
		`Buen desarrollo</textarea>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("grade form missing %q", want)
		}
	}

	got = renderString(t, GradeForm(sub, FormState{Values: map[string]string{"calificacion": "9"}}))
	if !strings.Contains(got, `value="9"`) {
		t.Error("submitted value replaced by the stored score")
	}
}

func TestDeadlineCell(t *testing.T) {
	now := time.Date(2025, 10, 17, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		deadline time.Time
		class    string
	}{
		{"past", now.Add(-time.Hour), `class="deadline text-muted"`},
		{"near", now.Add(48 * time.Hour), `class="deadline text-warning"`},
		{"far", now.Add(10 * 24 * time.Hour), `class="deadline"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderString(t, DeadlineCell(tt.deadline, now)); !strings.Contains(got, tt.class) {
				t.Errorf("DeadlineCell = %s, want %s", got, tt.class)
			}
		})
	}
}

func TestUserActions(t *testing.T) {
	blocked := renderString(t, UserActions(core.User{ID: 5, Name: "Pedro Ruiz", Status: core.UserBlocked}))
	if !strings.Contains(blocked, `hx-post="/usuarios/5/desbloquear"`) {
		t.Error("blocked user has no unblock action")
	}
	active := renderString(t, UserActions(core.User{ID: 2, Name: "Ana López", Status: core.UserActive}))
	if !strings.Contains(active, `hx-post="/usuarios/2/bloquear"`) {
		t.Error("active user has no block action")
	}
	if !strings.Contains(active, `hx-delete="/usuarios/2"`) {
		t.Error("missing delete action")
	}
}

func TestOutOfBand(t *testing.T) {
	got := renderString(t, OutOfBand("pqrs-region", Text("x")))
	if got != `<div id="pqrs-region" hx-swap-oob="true">x</div>` {
		t.Errorf("OutOfBand = %s", got)
	}
}
