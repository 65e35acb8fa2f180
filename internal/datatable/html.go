package datatable

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// HTMLConfig wires a rendered table to the HTMX endpoints serving it.
type HTMLConfig struct {
	// ID is the DOM id of the table container; fragments replace it.
	ID string

	// SortURL returns the endpoint that toggles sorting on a column.
	// Headers are not clickable when nil.
	SortURL func(key string) string

	// RowURL returns the endpoint that activates a row.
	RowURL func(key string) string

	// PageURL returns the endpoint for a page number.
	PageURL func(page int) string

	// Include is an hx-include selector sent along with sort and page
	// requests, typically the page's filter form.
	Include string
}

// HTML renders v as an HTMX-enabled table fragment.
func HTML[T any](v View[T], cfg HTMLConfig) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.printf(`<div id="%s" class="datatable">`, esc(cfg.ID))

		if v.Empty && !v.Loading {
			hw.printf(`<div class="py-12"><div class="empty-state">`)
			hw.printf(`<span class="icon icon-%s" aria-hidden="true"></span>`, esc(v.EmptyIcon))
			hw.printf(`<h3>%s</h3><p>%s</p>`, esc(v.EmptyMessage), esc(DefaultEmptyDescription))
			hw.printf(`</div></div></div>`)
			return hw.err
		}

		class := "table"
		if v.Class != "" {
			class = v.Class
		}
		hw.printf(`<table class="%s">`, esc(class))

		if len(v.Headers) > 0 {
			hw.printf(`<thead><tr>`)
			for _, h := range v.Headers {
				writeHeader(hw, h, v.Loading, cfg)
			}
			hw.printf(`</tr></thead>`)
		}

		hw.printf(`<tbody>`)
		if v.Loading {
			for i := 0; i < v.Placeholders; i++ {
				hw.printf(`<tr class="skeleton-row">`)
				for range v.Headers {
					hw.printf(`<td class="px-4 py-3"><div class="skeleton h-4 w-full" aria-hidden="true"></div></td>`)
				}
				hw.printf(`</tr>`)
			}
		} else {
			for _, r := range v.Rows {
				if err := writeRow(ctx, hw, r, v.Clickable, cfg); err != nil {
					return err
				}
			}
		}
		hw.printf(`</tbody></table>`)

		if !v.Loading && v.Pagination.Paged() {
			writePager(hw, v.Pagination, cfg)
		}

		hw.printf(`</div>`)
		return hw.err
	})
}

func writeHeader(hw *htmlWriter, h Header, loading bool, cfg HTMLConfig) {
	if !h.Sortable || loading || cfg.SortURL == nil {
		hw.printf(`<th class="%s">%s</th>`, esc(h.Class), esc(h.Label))
		return
	}

	ariaSort := "none"
	icon := `<span class="sort-icon sort-idle" aria-hidden="true">▲</span>`
	switch h.Direction {
	case DirAsc:
		ariaSort = "ascending"
		icon = `<span class="sort-icon sort-asc" aria-hidden="true">▲</span>`
	case DirDesc:
		ariaSort = "descending"
		icon = `<span class="sort-icon sort-desc" aria-hidden="true">▼</span>`
	}

	hw.printf(`<th class="%s" aria-sort="%s" hx-post="%s" hx-target="#%s" hx-swap="outerHTML"%s>`,
		esc(strings.TrimSpace("sortable "+h.Class)), ariaSort, esc(cfg.SortURL(h.Key)), esc(cfg.ID), includeAttr(cfg))
	hw.printf(`<div class="th-inner"><span>%s</span>%s</div></th>`, esc(h.Label), icon)
}

func writeRow[T any](ctx context.Context, hw *htmlWriter, r Row[T], clickable bool, cfg HTMLConfig) error {
	if clickable && cfg.RowURL != nil {
		hw.printf(`<tr data-key="%s" class="clickable" hx-post="%s" hx-swap="none">`, esc(r.Key), esc(cfg.RowURL(r.Key)))
	} else {
		hw.printf(`<tr data-key="%s">`, esc(r.Key))
	}

	for _, c := range r.Cells {
		hw.printf(`<td class="%s">`, esc(c.Class))
		if c.Content != nil {
			if hw.err != nil {
				return hw.err
			}
			if err := c.Content.Render(ctx, hw.w); err != nil {
				return fmt.Errorf("render cell: %w", err)
			}
		} else {
			hw.printf(`%s`, esc(c.Text()))
		}
		hw.printf(`</td>`)
	}
	hw.printf(`</tr>`)
	return hw.err
}

func writePager(hw *htmlWriter, p Pagination, cfg HTMLConfig) {
	hw.printf(`<nav class="pager"><span>Página %d de %d · %d registros</span>`, p.Page, p.TotalPages, p.TotalRows)
	if cfg.PageURL != nil {
		pagerButton(hw, "Anterior", p.Page-1, p.HasPrev(), cfg)
		pagerButton(hw, "Siguiente", p.Page+1, p.HasNext(), cfg)
	}
	hw.printf(`</nav>`)
}

func pagerButton(hw *htmlWriter, label string, page int, enabled bool, cfg HTMLConfig) {
	if !enabled {
		hw.printf(`<button type="button" class="btn btn-ghost" disabled>%s</button>`, esc(label))
		return
	}
	hw.printf(`<button type="button" class="btn btn-ghost" hx-get="%s" hx-target="#%s" hx-swap="outerHTML"%s>%s</button>`,
		esc(cfg.PageURL(page)), esc(cfg.ID), includeAttr(cfg), esc(label))
}

func includeAttr(cfg HTMLConfig) string {
	if cfg.Include == "" {
		return ""
	}
	return fmt.Sprintf(` hx-include="%s"`, esc(cfg.Include))
}

var esc = templ.EscapeString[string]

// htmlWriter keeps the first write error so rendering code stays linear.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (hw *htmlWriter) printf(format string, args ...any) {
	if hw.err != nil {
		return
	}
	_, hw.err = fmt.Fprintf(hw.w, format, args...)
}
