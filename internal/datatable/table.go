package datatable

import (
	"slices"
	"sync"

	"github.com/a-h/templ"
)

// PlaceholderRows is the number of skeleton rows shown while loading.
const PlaceholderRows = 5

const (
	DefaultEmptyMessage     = "No hay datos disponibles"
	DefaultEmptyDescription = "Intenta ajustar los filtros o la búsqueda"
	DefaultEmptyIcon        = "file-text"
)

// Options configures one render of a table.
type Options[T any] struct {
	// Loading shows placeholder rows instead of data.
	Loading bool

	// EmptyMessage is shown when there are no rows and Loading is false.
	EmptyMessage string

	// EmptyIcon names the glyph shown with the empty message.
	EmptyIcon string

	// OnRowClick is invoked by Table.Activate. Rows are clickable only
	// when it is set.
	OnRowClick func(T)

	// Class overrides the table's CSS class.
	Class string

	// Page is the 1-based page to show. Values below 1 mean page 1.
	Page int

	// PageSize limits rows per page. Zero shows every row.
	PageSize int
}

// Table is one mounted table instance. It owns the sort state; rows,
// columns and options are supplied on every call and never retained.
type Table[T any] struct {
	mu    sync.Mutex
	key   KeyFunc[T]
	state SortState
}

// New mounts a table with an unsorted state.
func New[T any](key KeyFunc[T]) *Table[T] {
	return &Table[T]{key: key}
}

// State returns the current sort state.
func (t *Table[T]) State() SortState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Reset clears the sort state, as if the table were mounted again.
func (t *Table[T]) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = SortState{}
}

// ToggleSort handles a click on the header of column key.
// Unknown and non-sortable columns leave the state untouched and return false.
func (t *Table[T]) ToggleSort(columns []Column[T], key string) bool {
	col, ok := findColumn(columns, key)
	if !ok || !col.Sortable {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = t.state.Next(key)
	return true
}

// SortBy sets the sort to column key in direction dir. DirNone clears the
// sort. Unknown and non-sortable columns are ignored and return false.
func (t *Table[T]) SortBy(columns []Column[T], key string, dir Direction) bool {
	if dir == DirNone {
		t.Reset()
		return true
	}
	col, ok := findColumn(columns, key)
	if !ok || !col.Sortable {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = NewSortState(key, dir)
	return true
}

// Sorted returns rows ordered by the current state, as a new slice.
func (t *Table[T]) Sorted(rows []T) []T {
	return Sorted(rows, t.State())
}

// Activate invokes opts.OnRowClick for the row whose key matches.
// It returns false when no callback is set or no row has that key.
func (t *Table[T]) Activate(rows []T, key string, opts Options[T]) bool {
	if opts.OnRowClick == nil {
		return false
	}
	for _, rec := range rows {
		if t.key(rec) == key {
			opts.OnRowClick(rec)
			return true
		}
	}
	return false
}

// View derives everything a renderer needs from rows, columns and opts.
func (t *Table[T]) View(rows []T, columns []Column[T], opts Options[T]) View[T] {
	state := t.State()

	v := View[T]{
		Headers:      make([]Header, len(columns)),
		EmptyMessage: opts.EmptyMessage,
		EmptyIcon:    opts.EmptyIcon,
		Class:        opts.Class,
		Clickable:    opts.OnRowClick != nil,
	}
	if v.EmptyMessage == "" {
		v.EmptyMessage = DefaultEmptyMessage
	}
	if v.EmptyIcon == "" {
		v.EmptyIcon = DefaultEmptyIcon
	}

	for i, c := range columns {
		h := Header{Key: c.Key, Label: c.Header, Class: c.Class, Sortable: c.Sortable}
		if c.Sortable {
			h.Direction = state.DirectionOf(c.Key)
		}
		v.Headers[i] = h
	}

	if opts.Loading {
		v.Loading = true
		v.Placeholders = PlaceholderRows
		return v
	}

	sorted := Sorted(rows, state)
	if len(sorted) == 0 {
		v.Empty = true
		v.Pagination = paginate(0, opts.Page, opts.PageSize)
		return v
	}

	v.Pagination = paginate(len(sorted), opts.Page, opts.PageSize)
	pageRows := sorted[v.Pagination.Start:v.Pagination.End]

	v.Rows = make([]Row[T], len(pageRows))
	for i, rec := range pageRows {
		v.Rows[i] = buildRow(rec, t.key(rec), columns)
	}
	return v
}

func buildRow[T any](rec T, key string, columns []Column[T]) Row[T] {
	r := Row[T]{Key: key, Record: rec, Cells: make([]Cell, len(columns))}
	for i, c := range columns {
		val, ok := FieldValue(rec, c.Key)
		cell := Cell{Value: val, Present: ok, Class: c.Class}
		if c.Render != nil {
			cell.Content = c.Render(rec)
		}
		r.Cells[i] = cell
	}
	return r
}

// Sorted returns a stably sorted copy of rows according to state.
// The input slice is never reordered.
func Sorted[T any](rows []T, state SortState) []T {
	out := slices.Clone(rows)
	if !state.Active() || len(out) < 2 {
		return out
	}

	type keyed struct {
		rec T
		val any
		ok  bool
	}
	items := make([]keyed, len(out))
	for i, rec := range out {
		v, ok := FieldValue(rec, state.Column())
		items[i] = keyed{rec: rec, val: v, ok: ok}
	}

	desc := state.Direction() == DirDesc
	slices.SortStableFunc(items, func(a, b keyed) int {
		switch {
		case !a.ok && !b.ok:
			return 0
		case !a.ok:
			return 1
		case !b.ok:
			return -1
		}
		c := Compare(a.val, b.val)
		if desc {
			return -c
		}
		return c
	})

	for i, it := range items {
		out[i] = it.rec
	}
	return out
}

// View is the render-ready form of a table.
type View[T any] struct {
	Headers      []Header
	Rows         []Row[T]
	Loading      bool
	Placeholders int
	Empty        bool
	EmptyMessage string
	EmptyIcon    string
	Class        string
	Clickable    bool
	Pagination   Pagination
}

// ActiveHeaders returns the headers that currently show a sort indicator.
func (v View[T]) ActiveHeaders() []Header {
	var active []Header
	for _, h := range v.Headers {
		if h.Direction != DirNone {
			active = append(active, h)
		}
	}
	return active
}

// Keys returns the row keys in render order.
func (v View[T]) Keys() []string {
	keys := make([]string, len(v.Rows))
	for i, r := range v.Rows {
		keys[i] = r.Key
	}
	return keys
}

// Header is one rendered column header.
type Header struct {
	Key       string
	Label     string
	Class     string
	Sortable  bool
	Direction Direction
}

// Row is one rendered record.
type Row[T any] struct {
	Key    string
	Record T
	Cells  []Cell
}

// Cell is one rendered value. Content is set when the column has a
// custom renderer.
type Cell struct {
	Value   any
	Present bool
	Content templ.Component
	Class   string
}

// Text returns the raw value as cell text.
func (c Cell) Text() string {
	if !c.Present {
		return ""
	}
	return FormatValue(c.Value)
}
