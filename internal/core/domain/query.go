package domain

import (
	"strings"
	"unicode/utf8"
)

// MinQueryLength is the shortest trimmed query that is sent upstream.
const MinQueryLength = 3

// QueryTooShortMessage is shown when a submitted query is below MinQueryLength.
const QueryTooShortMessage = "Please enter at least 3 characters"

// NormalizeQuery trims surrounding whitespace from a raw query.
func NormalizeQuery(q string) string {
	return strings.TrimSpace(q)
}

// QueryQualifies reports whether q is long enough to be searched.
// Shorter values mean "search not yet active", not an error.
func QueryQualifies(q string) bool {
	return utf8.RuneCountInString(NormalizeQuery(q)) >= MinQueryLength
}
