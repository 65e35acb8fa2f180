package core

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var folder = cases.Fold()

// equalFold compares two strings ignoring case, including accented letters.
func equalFold(a, b string) bool {
	return folder.String(a) == folder.String(b)
}

// containsFold reports whether substr is within s, ignoring case.
func containsFold(s, substr string) bool {
	return strings.Contains(folder.String(s), folder.String(substr))
}

// matchesSearch reports whether any of fields contains query. A blank query
// matches everything.
func matchesSearch(query string, fields ...string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	for _, f := range fields {
		if containsFold(f, query) {
			return true
		}
	}
	return false
}

var titleCaser = cases.Title(language.Spanish)

// TitleCase capitalizes each word using Spanish casing rules.
func TitleCase(s string) string {
	return titleCaser.String(s)
}
