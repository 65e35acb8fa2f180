package datatable

import (
	"testing"
	"time"
)

type taggedRow struct {
	ID       int       `table:"id"`
	FullName string    `table:"nombre"`
	Email    string
	Due      time.Time `table:"deadline"`
	Attempts *int      `table:"intentos,omitempty"`
	hidden   string
}

type fielderRow struct{ name string }

func (f fielderRow) Field(key string) (any, bool) {
	if key == "nombre" {
		return f.name, true
	}
	return nil, false
}

func TestFieldValue(t *testing.T) {
	due := time.Date(2025, 10, 20, 23, 59, 0, 0, time.UTC)
	row := taggedRow{ID: 7, FullName: "Ana López", Email: "ana@universidad.edu", Due: due, hidden: "x"}

	tests := []struct {
		name   string
		rec    any
		key    string
		want   any
		wantOK bool
	}{
		{"struct tag", row, "nombre", "Ana López", true},
		{"struct field name", row, "email", "ana@universidad.edu", true},
		{"struct pointer", &row, "id", 7, true},
		{"struct time", row, "deadline", due, true},
		{"nil pointer field is missing", row, "intentos", nil, false},
		{"unexported field is missing", row, "hidden", nil, false},
		{"unknown struct key", row, "nope", nil, false},
		{"map", map[string]any{"score": 70}, "score", 70, true},
		{"map missing key", map[string]any{"score": 70}, "name", nil, false},
		{"map nil value", map[string]any{"score": nil}, "score", nil, false},
		{"typed map", map[string]int{"score": 70}, "score", 70, true},
		{"fielder", fielderRow{name: "Bob"}, "nombre", "Bob", true},
		{"fielder missing", fielderRow{name: "Bob"}, "email", nil, false},
		{"unsupported type", 42, "x", nil, false},
		{"nil record", nil, "x", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FieldValue(tt.rec, tt.key)
			if ok != tt.wantOK {
				t.Fatalf("FieldValue ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("FieldValue = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFieldValue_PointerFieldValue(t *testing.T) {
	n := 3
	got, ok := FieldValue(taggedRow{Attempts: &n}, "intentos")
	if !ok {
		t.Fatal("FieldValue ok = false for set pointer")
	}
	if p, isPtr := got.(*int); !isPtr || *p != 3 {
		t.Errorf("FieldValue = %v, want pointer to 3", got)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want string
	}{
		{"nil", nil, ""},
		{"string", "MAT-301", "MAT-301"},
		{"int", 42, "42"},
		{"float", 4.5, "4.5"},
		{"bool", true, "Sí"},
		{"date", time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC), "2025-10-20"},
		{"datetime", time.Date(2025, 10, 20, 23, 59, 0, 0, time.UTC), "2025-10-20 23:59"},
		{"stringer", time.Minute, "1m0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatValue(tt.v); got != tt.want {
				t.Errorf("FormatValue(%v) = %q, want %q", tt.v, got, tt.want)
			}
		})
	}
}
