package textutil

import "strings"

// Truncate shortens s to at most max runes, appending an ellipsis when
// anything was cut. Newlines are collapsed to spaces first so the
// result stays on one table row.
func Truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
