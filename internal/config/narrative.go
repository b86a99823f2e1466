package config

import (
	"fmt"
	"time"
)

// NarrativeConfig holds configuration of the match commentary generator.
type NarrativeConfig struct {
	// Enabled turns the external generator on; when off, fallback commentary is kept.
	Enabled bool
	// BaseURL is the OpenAI-compatible API root (chat completions live under it).
	BaseURL string
	// APIKey is sent as a bearer token.
	APIKey string
	// Model is the model identifier requested from the provider.
	Model string
	// Timeout bounds a single generation including retries.
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
	// Referer is sent as HTTP-Referer for provider attribution.
	Referer string
}

// LoadNarrativeConfigFromEnv loads narrative configuration from environment variables.
func LoadNarrativeConfigFromEnv() NarrativeConfig {
	return NarrativeConfig{
		Enabled:     GetEnvBool("NARRATIVE_ENABLED", false),
		BaseURL:     GetEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		APIKey:      GetEnv("OPENROUTER_API_KEY", ""),
		Model:       GetEnv("NARRATIVE_MODEL", "openai/gpt-4o"),
		Timeout:     GetEnvDuration("NARRATIVE_TIMEOUT", 30*time.Second),
		Temperature: GetEnvFloat("NARRATIVE_TEMPERATURE", 0.8),
		MaxTokens:   GetEnvInt("NARRATIVE_MAX_TOKENS", 2000),
		Referer:     GetEnv("NARRATIVE_REFERER", "http://localhost:8080"),
	}
}

// Validate validates narrative configuration.
func (c NarrativeConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.APIKey == "" {
		return fmt.Errorf("OPENROUTER_API_KEY is required when NARRATIVE_ENABLED is set")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("OPENROUTER_BASE_URL is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("NARRATIVE_TIMEOUT must be greater than 0")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("NARRATIVE_MAX_TOKENS must be greater than 0")
	}
	return nil
}
