// Package datatable renders collections of records as sortable, paginated
// tables.
//
// The package is independent of any page or domain type. Callers describe
// their columns with [Column], hand over the rows on every render and get
// back a [View] that can be written as HTML with [HTML] or as plain text
// with [Text].
//
// # Sorting
//
// A [Table] owns exactly one piece of state, its [SortState]. Clicking a
// sortable header cycles that column through
//
//	unsorted -> ascending -> descending -> unsorted
//
// and clicking a different sortable column starts it at ascending. Only one
// column is ever active. Rows are sorted on a copy with a stable sort, and
// descending order negates the comparator, so records with equal values keep
// their input order in both directions.
//
// Missing values (absent keys, nil pointers, nil interfaces) compare equal to
// each other and always sort after every defined value.
//
// # Field access
//
// Sort values are read by column key through [FieldValue]. Records can
// implement [Fielder] to avoid reflection:
//
//	func (u User) Field(key string) (any, bool) {
//	    switch key {
//	    case "nombre":
//	        return u.Name, true
//	    }
//	    return nil, false
//	}
package datatable
