// Package logging assembles the structured slog loggers used across
// datadeck.
//
// It owns the console and JSON handlers and centralizes level and
// output plumbing. Prefer these constructors over hand-rolled slog
// setup so every component emits log lines with the same shape.
package logging
