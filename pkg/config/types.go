package config

// Config represents the persistent satchel configuration stored as
// config.toml in the .claude/ directory. The TOML layout uses sections for
// logical grouping.
type Config struct {
	Version int           `toml:"version"`
	Install InstallConfig `toml:"install"`
	Logging LoggingConfig `toml:"logging"`
}

// InstallConfig holds defaults for install runs. CLI flags override these.
type InstallConfig struct {
	Source   string `toml:"source,omitempty"`
	Conflict string `toml:"conflict,omitempty"`
}

// LoggingConfig holds logging preferences for satchel commands.
type LoggingConfig struct {
	Debug  bool   `toml:"debug,omitempty"`
	Format string `toml:"format,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"install.source": {
		get: func(c *Config) string { return c.Install.Source },
		set: func(c *Config, v string) error { c.Install.Source = v; return nil },
	},
	"install.conflict": {
		get: func(c *Config) string { return c.Install.Conflict },
		set: func(c *Config, v string) error { c.Install.Conflict = v; return nil },
	},
	"logging.debug": {
		get: func(c *Config) string {
			if c.Logging.Debug {
				return "true"
			}
			return "false"
		},
		set: func(c *Config, v string) error {
			switch v {
			case "true":
				c.Logging.Debug = true
			case "false":
				c.Logging.Debug = false
			default:
				return errInvalidBool(v)
			}
			return nil
		},
	},
	"logging.format": {
		get: func(c *Config) string { return c.Logging.Format },
		set: func(c *Config, v string) error { c.Logging.Format = v; return nil },
	},
}
