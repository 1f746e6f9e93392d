package suggest

import (
	"regexp"
	"strings"
)

var (
	separatorRuns  = regexp.MustCompile(`[_-]+`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes a name for matching: trim, lowercase, collapse
// runs of underscores/hyphens into a single space, collapse whitespace.
// "Canned_Chickpeas " and "canned chickpeas" compare equal afterwards.
// Idempotent, so normalized values can be stored and re-normalized freely.
//
// Every name comparison in the system goes through this; raw string
// equality is never used for ingredient, tag, cuisine or technique matching.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = separatorRuns.ReplaceAllString(s, " ")
	return whitespaceRuns.ReplaceAllString(s, " ")
}

// NormalizeAll maps Normalize over a slice.
func NormalizeAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = Normalize(n)
	}
	return out
}
