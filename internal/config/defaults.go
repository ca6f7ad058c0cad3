package config

const (
	defaultDataDir            = "~/.local/share/datadeck"
	defaultExportDir          = "~/.local/share/datadeck/exports"
	defaultLogDir             = "~/.local/share/datadeck/logs"
	defaultBackupDir          = "~/.local/share/datadeck/backups"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultBackupBefore       = true
	defaultLockTimeoutSeconds = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			ExportDir: defaultExportDir,
			LogDir:    defaultLogDir,
			BackupDir: defaultBackupDir,
		},
		Imports: Imports{
			BackupBeforeReplace: defaultBackupBefore,
			LockTimeoutSeconds:  defaultLockTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
