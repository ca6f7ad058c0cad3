// Package preflight verifies the runtime environment before commands
// touch the record store or the filesystem.
package preflight
