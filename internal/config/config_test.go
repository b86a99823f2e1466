package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "json",
		},
		Auth: AuthConfig{
			JWTSecret:  "s3cret",
			TokenTTL:   time.Hour,
			BcryptCost: 12,
		},
		GinMode: "release",
	}
}

func TestLoadFromEnv_DefaultValues(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("GIN_MODE", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("NARRATIVE_ENABLED", "")
	t.Setenv("MAIL_ENABLED", "")

	cfg := LoadFromEnv()
	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.False(t, cfg.Narrative.Enabled)
	assert.Equal(t, "openai/gpt-4o", cfg.Narrative.Model)
	assert.False(t, cfg.Mail.Enabled)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.NotEmpty(t, cfg.CORS.AllowedOrigins)
}

func TestLoadFromEnv_CustomValues(t *testing.T) {
	t.Setenv("SERVER_PORT", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("GIN_MODE", "debug")
	t.Setenv("JWT_SECRET", "another")
	t.Setenv("NARRATIVE_ENABLED", "true")
	t.Setenv("OPENROUTER_API_KEY", "key")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://league.example")

	cfg := LoadFromEnv()
	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "debug", cfg.GinMode)
	assert.Equal(t, "another", cfg.Auth.JWTSecret)
	assert.True(t, cfg.Narrative.Enabled)
	assert.Equal(t, "key", cfg.Narrative.APIKey)
	assert.Equal(t, []string{"https://league.example"}, cfg.CORS.AllowedOrigins)
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		err := validConfig().Validate()
		assert.NoError(t, err)
	})

	t.Run("invalid server config", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.ReadTimeout = 0
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "server config validation failed")
	})

	t.Run("invalid logger config", func(t *testing.T) {
		cfg := validConfig()
		cfg.Logger.Level = "invalid"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "logger config validation failed")
	})

	t.Run("invalid gin mode", func(t *testing.T) {
		cfg := validConfig()
		cfg.GinMode = "invalid"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid GIN_MODE")
	})

	t.Run("valid gin modes", func(t *testing.T) {
		for _, mode := range []string{"debug", "release", "test"} {
			cfg := validConfig()
			cfg.GinMode = mode
			assert.NoError(t, cfg.Validate(), "mode %s should be valid", mode)
		}
	})

	t.Run("dev secret rejected in release", func(t *testing.T) {
		cfg := validConfig()
		cfg.Auth.JWTSecret = devJWTSecret
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "auth config validation failed")

		cfg.GinMode = "debug"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("bcrypt cost out of range", func(t *testing.T) {
		cfg := validConfig()
		cfg.Auth.BcryptCost = 64
		assert.Error(t, cfg.Validate())
	})

	t.Run("narrative enabled without key", func(t *testing.T) {
		cfg := validConfig()
		cfg.Narrative = NarrativeConfig{Enabled: true, BaseURL: "https://x", Timeout: time.Second, MaxTokens: 10}
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "OPENROUTER_API_KEY")
	})

	t.Run("mail enabled without host", func(t *testing.T) {
		cfg := validConfig()
		cfg.Mail = MailConfig{Enabled: true, Port: 587, From: "league@example.com"}
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "SMTP_HOST")
	})

	t.Run("archive enabled without bucket", func(t *testing.T) {
		cfg := validConfig()
		cfg.Archive = ArchiveConfig{Enabled: true, AccessKeyID: "a", SecretAccessKey: "b"}
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "archive config validation failed")
	})
}
