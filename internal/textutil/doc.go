// Package textutil provides small text helpers for terminal output.
package textutil
