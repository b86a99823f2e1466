package config

import "fmt"

// MailConfig holds SMTP configuration for match result notifications.
type MailConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// LoadMailConfigFromEnv loads mail configuration from environment variables.
func LoadMailConfigFromEnv() MailConfig {
	username := GetEnv("SMTP_USERNAME", "")
	return MailConfig{
		Enabled:  GetEnvBool("MAIL_ENABLED", false),
		Host:     GetEnv("SMTP_HOST", ""),
		Port:     GetEnvInt("SMTP_PORT", 587),
		Username: username,
		Password: GetEnv("SMTP_PASSWORD", ""),
		From:     GetEnv("MAIL_FROM", username),
	}
}

// Validate validates mail configuration.
func (c MailConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Host == "" {
		return fmt.Errorf("SMTP_HOST is required when MAIL_ENABLED is set")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid SMTP_PORT: %d", c.Port)
	}
	if c.From == "" {
		return fmt.Errorf("MAIL_FROM is required when MAIL_ENABLED is set")
	}
	return nil
}
