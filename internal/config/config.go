package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Gemini API. The key is deliberately not validated at boot: its
	// absence is reported per-request as a configuration error so the
	// gallery endpoints keep working without it.
	GeminiAPIKey     string
	GeminiBaseURL    string
	GeminiAPIVersion string

	// Supabase storage
	SupabaseURL           string
	SupabaseServiceKey    string
	SupabaseStorageBucket string

	// Server
	Port           string
	Environment    string
	LogLevel       string
	RequestTimeout time.Duration

	// Upstream rate limit, requests per second against the Gemini API.
	GeminiRequestsPerSecond float64
}

func Load() (*Config, error) {
	cfg := &Config{
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiBaseURL:    getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiAPIVersion: getEnv("GEMINI_API_VERSION", "v1beta"),

		SupabaseURL:           getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey:    getEnv("SUPABASE_SERVICE_KEY", ""),
		SupabaseStorageBucket: getEnv("SUPABASE_STORAGE_BUCKET", "artworks"),

		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 60)) * time.Second,

		GeminiRequestsPerSecond: getEnvFloat("GEMINI_REQUESTS_PER_SECOND", 1),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabaseServiceKey == "" {
		return fmt.Errorf("SUPABASE_SERVICE_KEY is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}
