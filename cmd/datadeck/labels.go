package main

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// displayLabel turns an agent type token into a human-facing label,
// e.g. "audio_transcriber" becomes "Audio Transcriber".
func displayLabel(agentType string) string {
	cleaned := strings.TrimSpace(strings.ReplaceAll(agentType, "_", " "))
	if cleaned == "" {
		return "Unknown"
	}
	return cases.Title(language.Und).String(cleaned)
}
