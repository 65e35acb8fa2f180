package datatable

import "testing"

func TestSortState_Next(t *testing.T) {
	tests := []struct {
		name    string
		start   SortState
		click   string
		wantCol string
		wantDir Direction
	}{
		{"unsorted to ascending", SortState{}, "score", "score", DirAsc},
		{"ascending to descending", NewSortState("score", DirAsc), "score", "score", DirDesc},
		{"descending to unsorted", NewSortState("score", DirDesc), "score", "", DirNone},
		{"other column starts ascending", NewSortState("score", DirDesc), "name", "name", DirAsc},
		{"other column from ascending", NewSortState("score", DirAsc), "name", "name", DirAsc},
		{"empty key is ignored", NewSortState("score", DirAsc), "", "score", DirAsc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.start.Next(tt.click)
			if got.Column() != tt.wantCol || got.Direction() != tt.wantDir {
				t.Errorf("Next(%q) = (%q, %v), want (%q, %v)",
					tt.click, got.Column(), got.Direction(), tt.wantCol, tt.wantDir)
			}
		})
	}
}

func TestNewSortState_KeepsInvariant(t *testing.T) {
	tests := []struct {
		name   string
		column string
		dir    Direction
		active bool
	}{
		{"column with direction", "name", DirAsc, true},
		{"column without direction", "name", DirNone, false},
		{"direction without column", "", DirDesc, false},
		{"out of range direction", "name", Direction(42), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSortState(tt.column, tt.dir)
			if s.Active() != tt.active {
				t.Fatalf("Active() = %v, want %v", s.Active(), tt.active)
			}
			if (s.Column() == "") != (s.Direction() == DirNone) {
				t.Errorf("inconsistent state: column=%q dir=%v", s.Column(), s.Direction())
			}
		})
	}
}

func TestSortState_DirectionOf(t *testing.T) {
	s := NewSortState("name", DirDesc)
	if got := s.DirectionOf("name"); got != DirDesc {
		t.Errorf("DirectionOf(name) = %v, want DirDesc", got)
	}
	if got := s.DirectionOf("score"); got != DirNone {
		t.Errorf("DirectionOf(score) = %v, want DirNone", got)
	}
}

func TestParseDirection(t *testing.T) {
	tests := map[string]Direction{
		"asc":   DirAsc,
		"ASC":   DirAsc,
		" desc": DirDesc,
		"":      DirNone,
		"up":    DirNone,
	}
	for in, want := range tests {
		if got := ParseDirection(in); got != want {
			t.Errorf("ParseDirection(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestDirection_String(t *testing.T) {
	if DirAsc.String() != "asc" || DirDesc.String() != "desc" || DirNone.String() != "" {
		t.Errorf("unexpected strings: %q %q %q", DirAsc, DirDesc, DirNone)
	}
}
