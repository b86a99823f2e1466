package config

import "fmt"

// Config holds application configuration.
type Config struct {
	// Server holds HTTP server configuration.
	Server ServerConfig
	// Logger holds logger configuration.
	Logger LoggerConfig
	// Auth holds token and password hashing configuration.
	Auth AuthConfig
	// Narrative holds the commentary generator configuration.
	Narrative NarrativeConfig
	// Mail holds the match result mailer configuration.
	Mail MailConfig
	// Archive holds the bracket snapshot storage configuration.
	Archive ArchiveConfig
	// CORS holds allowed browser origins.
	CORS CORSConfig
	// GinMode is the Gin framework mode (debug, release, test).
	GinMode string
}

// LoadFromEnv loads all configuration from environment variables.
func LoadFromEnv() Config {
	return Config{
		Server:    LoadServerConfigFromEnv(),
		Logger:    LoadLoggerConfigFromEnv(),
		Auth:      LoadAuthConfigFromEnv(),
		Narrative: LoadNarrativeConfigFromEnv(),
		Mail:      LoadMailConfigFromEnv(),
		Archive:   LoadArchiveConfigFromEnv(),
		CORS:      LoadCORSConfigFromEnv(),
		GinMode:   GetEnv("GIN_MODE", "release"),
	}
}

// Validate validates all configuration.
func (c Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}

	if err := c.Logger.Validate(); err != nil {
		return fmt.Errorf("logger config validation failed: %w", err)
	}

	validGinModes := map[string]bool{
		"debug":   true,
		"release": true,
		"test":    true,
	}
	if !validGinModes[c.GinMode] {
		return fmt.Errorf("invalid GIN_MODE: %s (must be: debug, release, test)", c.GinMode)
	}

	if err := c.Auth.Validate(c.GinMode == "release"); err != nil {
		return fmt.Errorf("auth config validation failed: %w", err)
	}

	if err := c.Narrative.Validate(); err != nil {
		return fmt.Errorf("narrative config validation failed: %w", err)
	}

	if err := c.Mail.Validate(); err != nil {
		return fmt.Errorf("mail config validation failed: %w", err)
	}

	if err := c.Archive.Validate(); err != nil {
		return fmt.Errorf("archive config validation failed: %w", err)
	}

	return nil
}
