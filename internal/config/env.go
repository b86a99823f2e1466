// Package config loads the league API configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// parsed returns the parsed value of key, or def when the variable is unset,
// empty, or fails to parse.
func parsed[T any](key string, def T, parse func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		return def
	}
	return v
}

// GetEnv reads a string variable.
func GetEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// GetEnvInt reads an integer variable.
func GetEnvInt(key string, defaultValue int) int {
	return parsed(key, defaultValue, strconv.Atoi)
}

// GetEnvFloat reads a float variable.
func GetEnvFloat(key string, defaultValue float64) float64 {
	return parsed(key, defaultValue, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// GetEnvDuration reads a time.ParseDuration value such as "30s".
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	return parsed(key, defaultValue, time.ParseDuration)
}

// GetEnvBool reads anything strconv.ParseBool accepts.
func GetEnvBool(key string, defaultValue bool) bool {
	return parsed(key, defaultValue, strconv.ParseBool)
}

// GetEnvList reads a comma separated list, dropping blank items.
func GetEnvList(key string, defaultValue []string) []string {
	var items []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
