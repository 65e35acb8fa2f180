package core

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate_NewTicket(t *testing.T) {
	tests := []struct {
		name       string
		in         NewTicket
		wantFields []string
	}{
		{"valid", NewTicket{Type: "Pregunta", Subject: "Nota", Description: "Revisión"}, nil},
		{"blank subject", NewTicket{Type: "Reclamo", Subject: "  ", Description: "x"}, []string{"asunto"}},
		{"unknown type", NewTicket{Type: "Felicitación", Subject: "a", Description: "b"}, []string{"tipo"}},
		{"everything missing", NewTicket{}, []string{"tipo", "asunto", "descripcion"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.in)
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			var fe FieldErrors
			if !errors.As(err, &fe) {
				t.Fatalf("Validate() error = %v, want FieldErrors", err)
			}
			if len(fe) != len(tt.wantFields) {
				t.Errorf("got %d field errors, want %d: %v", len(fe), len(tt.wantFields), fe)
			}
			for _, f := range tt.wantFields {
				if fe[f] == "" {
					t.Errorf("missing error for %q: %v", f, fe)
				}
			}
		})
	}
}

func TestValidate_CustomMessages(t *testing.T) {
	var fe FieldErrors
	if !errors.As(Validate(NewTicket{Type: "Queja", Subject: " ", Description: "x"}), &fe) {
		t.Fatal("expected FieldErrors")
	}
	if got := fe["asunto"]; got != "asunto no puede estar vacío" {
		t.Errorf("notblank message = %q", got)
	}

	if !errors.As(Validate(LoginForm{Role: "rector"}), &fe) {
		t.Fatal("expected FieldErrors")
	}
	if got := fe["role"]; got != "Selecciona un rol válido" {
		t.Errorf("role message = %q", got)
	}
}

func TestFieldErrors_Error(t *testing.T) {
	err := FieldErrors{"tipo": "b", "asunto": "a"}
	if got := err.Error(); !strings.HasPrefix(got, "invalid input: asunto: a; tipo: b") {
		t.Errorf("Error() = %q", got)
	}
}

func TestParseTypes(t *testing.T) {
	if typ, ok := ParseEvaluationType("TALLER"); !ok || typ != EvalWorkshop {
		t.Errorf("ParseEvaluationType(TALLER) = %q, %v", typ, ok)
	}
	if _, ok := ParseEvaluationType("laboratorio"); ok {
		t.Error("ParseEvaluationType(laboratorio) ok")
	}
	if typ, ok := ParseTicketType("sugerencia"); !ok || typ != TicketSuggestion {
		t.Errorf("ParseTicketType(sugerencia) = %q, %v", typ, ok)
	}
	if r, ok := ParseRole("Coordinador"); !ok || r != RoleCoordinator {
		t.Errorf("ParseRole(Coordinador) = %q, %v", r, ok)
	}
}
