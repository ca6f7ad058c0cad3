package testsupport

import (
	"path/filepath"
	"testing"

	"datadeck/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.ExportDir = filepath.Join(base, "exports")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.BackupDir = filepath.Join(base, "backups")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithoutBackups disables pre-import backups on the test config.
func WithoutBackups() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Imports.BackupBeforeReplace = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
