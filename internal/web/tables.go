package web

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/JonMunkholm/quimbayaeval/internal/datatable"
	"github.com/a-h/templ"
)

// tableHandle is a table mounted in a session, independent of its row type.
type tableHandle interface {
	// toggle handles a header click. It reports false for unknown or
	// non-sortable columns.
	toggle(column string) bool
	// activate invokes the row click callback for key.
	activate(r *http.Request, key string) bool
	// fragment renders the table at page using rows filtered by r.
	fragment(r *http.Request, page int) templ.Component
	// export writes every filtered row in the current sort order as CSV.
	export(w io.Writer, r *http.Request) error
}

// mountedTable binds a datatable instance to its columns and to a row
// source that reads the page's filters from each request.
type mountedTable[T any] struct {
	name    string
	table   *datatable.Table[T]
	columns []datatable.Column[T]
	rows    func(r *http.Request) []T
	opts    datatable.Options[T]
	include string
}

type tableDef[T any] struct {
	name     string
	key      datatable.KeyFunc[T]
	columns  []datatable.Column[T]
	rows     func(r *http.Request) []T
	onClick  func(T)
	empty    string
	icon     string
	pageSize int
	filters  bool
}

func mount[T any](ss *session, def tableDef[T]) *mountedTable[T] {
	t := &mountedTable[T]{
		name:    def.name,
		table:   datatable.New(def.key),
		columns: def.columns,
		rows:    def.rows,
		opts: datatable.Options[T]{
			EmptyMessage: def.empty,
			EmptyIcon:    def.icon,
			OnRowClick:   def.onClick,
			PageSize:     def.pageSize,
		},
	}
	if def.filters {
		t.include = "#" + filtersID(def.name)
	}
	ss.mount(def.name, t)
	return t
}

func (t *mountedTable[T]) toggle(column string) bool {
	return t.table.ToggleSort(t.columns, column)
}

func (t *mountedTable[T]) activate(r *http.Request, key string) bool {
	return t.table.Activate(t.rows(r), key, t.opts)
}

func (t *mountedTable[T]) fragment(r *http.Request, page int) templ.Component {
	opts := t.opts
	opts.Page = page
	return datatable.HTML(t.table.View(t.rows(r), t.columns, opts), t.htmlConfig())
}

func (t *mountedTable[T]) export(w io.Writer, r *http.Request) error {
	v := t.table.View(t.rows(r), t.columns, datatable.Options[T]{})

	cw := csv.NewWriter(w)
	record := make([]string, len(v.Headers))
	for i, h := range v.Headers {
		record[i] = h.Label
	}
	if err := cw.Write(record); err != nil {
		return err
	}
	for _, row := range v.Rows {
		for i, c := range row.Cells {
			record[i] = c.Text()
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (t *mountedTable[T]) htmlConfig() datatable.HTMLConfig {
	cfg := datatable.HTMLConfig{
		ID:      tableID(t.name),
		Include: t.include,
		SortURL: func(key string) string {
			return fmt.Sprintf("/tables/%s/sort/%s", t.name, url.PathEscape(key))
		},
		PageURL: func(page int) string {
			return fmt.Sprintf("/tables/%s/page/%d", t.name, page)
		},
	}
	if t.opts.OnRowClick != nil {
		cfg.RowURL = func(key string) string {
			return fmt.Sprintf("/tables/%s/rows/%s", t.name, url.PathEscape(key))
		}
	}
	return cfg
}

func tableID(name string) string   { return "table-" + name }
func filtersID(name string) string { return "filters-" + name }

func pageURL(name string, page int) string {
	return fmt.Sprintf("/tables/%s/page/%d", name, page)
}

// exportHref links to the CSV export carrying the page's current filters.
func exportHref(name string, r *http.Request) string {
	href := fmt.Sprintf("/tables/%s/export", name)
	if q := r.URL.RawQuery; q != "" {
		href += "?" + q
	}
	return href
}
