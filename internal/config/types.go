// Package config provides shared configuration types for LeapScript. It is
// decoupled from CLI concerns so the kernel façade and other tools can load
// project configuration directly.
package config

// MagicImportsConfig controls how bare module specifiers are resolved.
// Consulted only by the import rewriter.
type MagicImportsConfig struct {
	// Enabled turns specifier rewriting on.
	Enabled bool `koanf:"enabled"`
	// BaseURL is the CDN root prepended to non-absolute specifiers.
	BaseURL string `koanf:"base_url"`
	// AutoNPM infers an npm/ registry segment for bare specifiers.
	AutoNPM bool `koanf:"auto_npm"`
}

// StateConfig locates the persistent import-record store.
type StateConfig struct {
	// Path is the sqlite database file; ":memory:" keeps state per-process.
	Path string `koanf:"path"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `koanf:"level"`
}

// Config is the full LeapScript configuration.
type Config struct {
	MagicImports MagicImportsConfig `koanf:"magic_imports"`
	State        StateConfig        `koanf:"state"`
	Log          LogConfig          `koanf:"log"`
}

// Defaults for a fresh project.
const (
	DefaultBaseURL   = "https://cdn.jsdelivr.net/"
	DefaultStatePath = ".leapscript/state.db"
	DefaultLogLevel  = "info"
)

// ApplyDefaults fills unset fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.MagicImports.BaseURL == "" {
		c.MagicImports.BaseURL = DefaultBaseURL
	}
	if c.State.Path == "" {
		c.State.Path = DefaultStatePath
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}
