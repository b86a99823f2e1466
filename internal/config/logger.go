package config

import (
	"fmt"
	"slices"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "console"}
)

// LoggerConfig holds logger configuration.
type LoggerConfig struct {
	Level  string
	Format string
	// Output is stdout, stderr, or a file path opened in append mode.
	Output string
	// Service is attached to every entry as the "service" field.
	Service string
	// Sampling drops repeated entries under load (LOG_SAMPLING).
	Sampling bool
}

// LoadLoggerConfigFromEnv loads logger configuration from environment variables.
func LoadLoggerConfigFromEnv() LoggerConfig {
	return LoggerConfig{
		Level:    GetEnv("LOG_LEVEL", "info"),
		Format:   GetEnv("LOG_FORMAT", "json"),
		Output:   GetEnv("LOG_OUTPUT", "stdout"),
		Service:  GetEnv("LOG_SERVICE", "nations-league"),
		Sampling: GetEnvBool("LOG_SAMPLING", false),
	}
}

// Validate validates logger configuration.
func (c LoggerConfig) Validate() error {
	if !slices.Contains(logLevels, c.Level) {
		return fmt.Errorf("invalid log level: %s (must be: debug, info, warn, error)", c.Level)
	}
	if !slices.Contains(logFormats, c.Format) {
		return fmt.Errorf("invalid log format: %s (must be: json, console)", c.Format)
	}
	return nil
}

// IsProduction reports whether entries are machine-readable and non-debug.
func (c LoggerConfig) IsProduction() bool {
	return c.Format == "json" && c.Level != "debug"
}
