package config

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const devJWTSecret = "dev-secret-change-me"

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	// JWTSecret signs HS256 access tokens.
	JWTSecret string
	// TokenTTL is the lifetime of issued tokens.
	TokenTTL time.Duration
	// BcryptCost is the password hashing cost.
	BcryptCost int
}

// LoadAuthConfigFromEnv loads auth configuration from environment variables.
func LoadAuthConfigFromEnv() AuthConfig {
	return AuthConfig{
		JWTSecret:  GetEnv("JWT_SECRET", devJWTSecret),
		TokenTTL:   GetEnvDuration("JWT_TTL", 7*24*time.Hour),
		BcryptCost: GetEnvInt("BCRYPT_COST", 12),
	}
}

// Validate validates auth configuration.
// In release mode the development secret is rejected.
func (c AuthConfig) Validate(release bool) error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if release && c.JWTSecret == devJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set in release mode")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be greater than 0")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}
