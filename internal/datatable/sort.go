package datatable

import "strings"

// Direction is the sort direction of a column.
type Direction int

const (
	DirNone Direction = iota
	DirAsc
	DirDesc
)

// String returns the query-string form: "", "asc" or "desc".
func (d Direction) String() string {
	switch d {
	case DirAsc:
		return "asc"
	case DirDesc:
		return "desc"
	default:
		return ""
	}
}

// ParseDirection converts "asc"/"desc" (any case) to a Direction.
// Anything else is DirNone.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return DirAsc
	case "desc", "descending":
		return DirDesc
	default:
		return DirNone
	}
}

// next returns the direction that follows d when the same column is clicked.
func (d Direction) next() Direction {
	switch d {
	case DirNone:
		return DirAsc
	case DirAsc:
		return DirDesc
	default:
		return DirNone
	}
}

// SortState is the (column, direction) pair driving row order.
// The zero value is unsorted. A state never has a column without a
// direction or a direction without a column.
type SortState struct {
	column string
	dir    Direction
}

// NewSortState builds a state, collapsing inconsistent inputs to unsorted.
func NewSortState(column string, dir Direction) SortState {
	if column == "" || (dir != DirAsc && dir != DirDesc) {
		return SortState{}
	}
	return SortState{column: column, dir: dir}
}

// Column returns the active column key, or "" when unsorted.
func (s SortState) Column() string { return s.column }

// Direction returns the active direction, or DirNone when unsorted.
func (s SortState) Direction() Direction { return s.dir }

// Active reports whether any column is sorted.
func (s SortState) Active() bool { return s.dir != DirNone }

// DirectionOf returns the direction shown for column key.
func (s SortState) DirectionOf(key string) Direction {
	if s.column == key {
		return s.dir
	}
	return DirNone
}

// Next returns the state after a click on the header of column key.
// Sortability is checked by the caller.
func (s SortState) Next(key string) SortState {
	if key == "" {
		return s
	}
	if s.column != key {
		return SortState{column: key, dir: DirAsc}
	}
	return NewSortState(key, s.dir.next())
}
