// Package summary derives a short human-readable string from an agent
// output tree. The result feeds the tabular codec's primary_content
// column and display surfaces; it is best-effort and never fails.
package summary

import (
	"strings"

	"datadeck/internal/dataset"
	"datadeck/internal/value"
)

// maxSearchDepth bounds the recursive field search. The interesting
// fields of every known agent shape live within three levels.
const maxSearchDepth = 3

// contentFields are searched in priority order when no agent-specific
// shape matches.
var contentFields = []string{"text", "content", "transcript", "summary", "description", "message"}

// analysisFields are searched inside an "analysis" subtree.
var analysisFields = []string{"transcript", "summary", "description"}

// Primary returns the primary human-readable content of an output
// value. It always returns a string, possibly empty.
func Primary(v *value.Value, agentType string) string {
	switch v.Kind() {
	case value.KindString:
		s, _ := v.AsString()
		return s
	case value.KindNull:
		return ""
	case value.KindMap:
		return primaryFromMap(v, agentType)
	default:
		return string(dataset.ValueJSON(v))
	}
}

func primaryFromMap(v *value.Value, agentType string) string {
	if strings.Contains(agentType, "audio") {
		if text, ok := v.Get("transcription").Get("text").AsString(); ok {
			return text
		}
	}

	if analysis := v.Get("analysis"); analysis != nil {
		if s, ok := analysis.AsString(); ok {
			return s
		}
		for _, field := range analysisFields {
			if s, ok := findField(analysis, field, maxSearchDepth); ok {
				return s
			}
		}
	}

	entries, _ := v.AsMap()
	for _, field := range contentFields {
		for _, e := range entries {
			if e.Key != field {
				continue
			}
			if s, ok := e.Value.AsString(); ok && s != "" {
				return s
			}
		}
	}

	for _, field := range contentFields {
		if s, ok := findField(v, field, maxSearchDepth); ok {
			return s
		}
	}

	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return "{" + strings.Join(keys, ", ") + "}"
}

// findField searches the tree depth-first, in key iteration order, for
// a non-empty string stored under the given field name. The depth
// parameter is explicit so a deep tree cannot exhaust the stack.
func findField(v *value.Value, field string, depth int) (string, bool) {
	if depth < 0 {
		return "", false
	}
	switch v.Kind() {
	case value.KindMap:
		entries, _ := v.AsMap()
		for _, e := range entries {
			if e.Key == field {
				if s, ok := e.Value.AsString(); ok && s != "" {
					return s, true
				}
			}
		}
		for _, e := range entries {
			if s, ok := findField(e.Value, field, depth-1); ok {
				return s, true
			}
		}
	case value.KindList:
		elems, _ := v.AsList()
		for _, e := range elems {
			if s, ok := findField(e, field, depth-1); ok {
				return s, true
			}
		}
	}
	return "", false
}
