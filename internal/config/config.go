// Package config resolves runtime configuration from the environment.
// Callers load .env via godotenv before calling Load.
package config

import (
	"fmt"
	"os"
	"strconv"
)

const defaultMaxUploadBytes = 20 << 20 // 20 MiB per import request

// Config carries everything the binaries need at startup. Tolerances and the
// auto-match date window are deliberately absent: they are fixed engine
// constants, not deployment knobs.
type Config struct {
	// ServerPort is the HTTP listen port (SERVER_PORT, default 8080).
	ServerPort string

	// OpenAIAPIKey enables the insight agent when set (OPENAI_API_KEY).
	// Empty means every insight request returns the static fallback.
	OpenAIAPIKey string

	// AllowedOrigins is the comma-separated CORS allowlist (ALLOWED_ORIGINS).
	// Empty disables CORS entirely.
	AllowedOrigins string

	// KeywordsFile optionally points at a YAML keyword-dictionary override
	// for header detection (KEYWORDS_FILE).
	KeywordsFile string

	// MaxUploadBytes caps the body size of import requests
	// (MAX_UPLOAD_BYTES, default 20 MiB).
	MaxUploadBytes int64
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:     getenv("SERVER_PORT", "8080"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		KeywordsFile:   os.Getenv("KEYWORDS_FILE"),
		MaxUploadBytes: defaultMaxUploadBytes,
	}

	if raw := os.Getenv("MAX_UPLOAD_BYTES"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid MAX_UPLOAD_BYTES %q", raw)
		}
		cfg.MaxUploadBytes = n
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
