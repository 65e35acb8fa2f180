package datatable

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	textHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	textCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	textMutedStyle  = lipgloss.NewStyle().Faint(true)
)

// Text renders v as a plain terminal table. Custom cell renderers are
// ignored; cells show their raw values.
func Text[T any](v View[T]) string {
	if v.Empty && !v.Loading {
		return textMutedStyle.Render(v.EmptyMessage+" · "+DefaultEmptyDescription) + "\n"
	}

	headers := make([]string, len(v.Headers))
	for i, h := range v.Headers {
		headers[i] = h.Label + sortMarker(h.Direction)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return textHeaderStyle
			}
			return textCellStyle
		})
	if len(headers) > 0 {
		t = t.Headers(headers...)
	}

	if v.Loading {
		for i := 0; i < v.Placeholders; i++ {
			t = t.Row(repeat("…", len(v.Headers))...)
		}
	} else {
		for _, r := range v.Rows {
			cells := make([]string, len(r.Cells))
			for i, c := range r.Cells {
				cells[i] = c.Text()
			}
			t = t.Row(cells...)
		}
	}

	var b strings.Builder
	b.WriteString(t.String())
	b.WriteString("\n")
	if v.Pagination.Paged() {
		b.WriteString(textMutedStyle.Render(fmt.Sprintf("Página %d de %d · %d registros",
			v.Pagination.Page, v.Pagination.TotalPages, v.Pagination.TotalRows)))
		b.WriteString("\n")
	}
	return b.String()
}

func sortMarker(d Direction) string {
	switch d {
	case DirAsc:
		return " ▲"
	case DirDesc:
		return " ▼"
	default:
		return ""
	}
}

func repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}
