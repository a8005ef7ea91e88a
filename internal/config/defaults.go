package config

const (
	defaultIndexPath          = "~/.local/share/sindex/seriesindex.xml"
	defaultLanguage           = "de"
	defaultLockTimeoutSeconds = 10
	defaultLogFormat          = "console"
	defaultLogLevel           = "warn"
	defaultLogMaxSizeMB       = 10
	defaultLogMaxBackups      = 3

	// IndexEnvVar names the environment fallback for index.path.
	IndexEnvVar = "SINDEX_INDEX"
)

// Default returns a Config populated with repository defaults. Index.Path is
// left empty so normalize can apply the environment fallback.
func Default() Config {
	return Config{
		Index: Index{
			DefaultLanguage:    defaultLanguage,
			LockTimeoutSeconds: defaultLockTimeoutSeconds,
			Backup:             true,
		},
		Logging: Logging{
			Format:     defaultLogFormat,
			Level:      defaultLogLevel,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
		},
	}
}
