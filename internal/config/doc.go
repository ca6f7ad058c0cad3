// Package config loads, normalizes, and validates datadeck configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob the
// CLI needs: the data directory backing the record store, export and backup
// locations, and logging behavior.
//
// Always obtain settings through this package so downstream code receives
// sanitized absolute paths, canonical log formats, and clear validation errors.
package config
