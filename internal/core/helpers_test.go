package core

import "testing"

func TestEqualFold(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Maestro", "maestro", true},
		{"ÁLGEBRA", "álgebra", true},
		{"estudiante", "coordinador", false},
		{"", "", true},
	}
	for _, tt := range tests {
		if got := equalFold(tt.a, tt.b); got != tt.want {
			t.Errorf("equalFold(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestMatchesSearch(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		fields []string
		want   bool
	}{
		{"blank query", "  ", []string{"x"}, true},
		{"name match", "garcía", []string{"Juan García", "juan.garcia@universidad.edu"}, true},
		{"email match", "MENDEZ", []string{"Carlos Méndez", "carlos.mendez@universidad.edu"}, true},
		{"no match", "torres", []string{"Ana López", "ana.lopez@universidad.edu"}, false},
		{"no fields", "x", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesSearch(tt.query, tt.fields...); got != tt.want {
				t.Errorf("matchesSearch(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestTitleCase(t *testing.T) {
	if got := TitleCase("cálculo integral"); got != "Cálculo Integral" {
		t.Errorf("TitleCase = %q, want %q", got, "Cálculo Integral")
	}
}
