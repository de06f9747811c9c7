package config

const (
	defaultSource   = "."
	defaultConflict = "prompt"
	defaultFormat   = "pretty"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Install: InstallConfig{
			Source:   defaultSource,
			Conflict: defaultConflict,
		},
		Logging: LoggingConfig{
			Debug:  false,
			Format: defaultFormat,
		},
	}
}
