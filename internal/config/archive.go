package config

import "fmt"

// ArchiveConfig holds S3-compatible storage settings for completed bracket snapshots.
type ArchiveConfig struct {
	Enabled         bool
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
}

// LoadArchiveConfigFromEnv loads archive configuration from environment variables.
func LoadArchiveConfigFromEnv() ArchiveConfig {
	return ArchiveConfig{
		Enabled:         GetEnvBool("ARCHIVE_ENABLED", false),
		Endpoint:        GetEnv("ARCHIVE_ENDPOINT", ""),
		Region:          GetEnv("ARCHIVE_REGION", "auto"),
		Bucket:          GetEnv("ARCHIVE_BUCKET", ""),
		AccessKeyID:     GetEnv("ARCHIVE_ACCESS_KEY_ID", ""),
		SecretAccessKey: GetEnv("ARCHIVE_SECRET_ACCESS_KEY", ""),
		PublicBaseURL:   GetEnv("ARCHIVE_PUBLIC_BASE_URL", ""),
	}
}

// Validate validates archive configuration.
func (c ArchiveConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Bucket == "" || c.AccessKeyID == "" || c.SecretAccessKey == "" {
		return fmt.Errorf("ARCHIVE_BUCKET, ARCHIVE_ACCESS_KEY_ID and ARCHIVE_SECRET_ACCESS_KEY are required when ARCHIVE_ENABLED is set")
	}
	return nil
}

// CORSConfig holds allowed browser origins.
type CORSConfig struct {
	AllowedOrigins []string
}

// LoadCORSConfigFromEnv loads CORS configuration from environment variables.
func LoadCORSConfigFromEnv() CORSConfig {
	return CORSConfig{
		AllowedOrigins: GetEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
	}
}
