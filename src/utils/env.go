package utils

import (
	"log"
	"os"
	"time"
)

// GetEnv returns the variable or def when it is unset or empty.
func GetEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// GetEnvDuration parses a Go duration ("90m", "2h"); bad values fall back
// to def with a warning.
func GetEnvDuration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("⚠️ %s=%q is not a valid duration, using %s", key, raw, def)
		return def
	}
	return d
}
