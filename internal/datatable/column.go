package datatable

import (
	"strconv"

	"github.com/a-h/templ"
)

// Column describes how one column is labeled, sourced and rendered.
// Columns are rendered in slice order.
type Column[T any] struct {
	// Key is the field key read by FieldValue, or a synthetic key for
	// computed columns.
	Key string

	// Header is the text shown in the column header.
	Header string

	// Render produces the cell content. When nil the raw field value is
	// shown, formatted by FormatValue.
	Render func(T) templ.Component

	// Sortable enables header clicks for this column.
	Sortable bool

	// Class is applied to the header and every cell of the column.
	Class string
}

// KeyFunc extracts the row identity. Keys must be unique within a row set.
type KeyFunc[T any] func(T) string

// IntKey adapts a numeric id extractor to a KeyFunc.
func IntKey[T any](fn func(T) int) KeyFunc[T] {
	return func(rec T) string {
		return strconv.Itoa(fn(rec))
	}
}

// findColumn returns the column with the given key.
func findColumn[T any](columns []Column[T], key string) (Column[T], bool) {
	for _, c := range columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column[T]{}, false
}
