// Package config loads application configuration from environment
// variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config contains all configuration for the worker and the core services.
type Config struct {
	// App
	AppEnv   string // development, staging, production
	AppDebug bool
	LogLevel string

	// PostgreSQL registry
	DatabaseURL string

	// Redis (optional, leaderboard snapshot caching)
	RedisURL     string
	RedisEnabled bool

	// Codeforces API
	APIBaseURL      string
	APITimeout      time.Duration
	FetchDelay      time.Duration // minimum pause between consecutive fetches
	SubmissionLimit int

	// Worker
	SyncInterval    time.Duration
	SnapshotTTL     time.Duration
	ShutdownTimeout time.Duration
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:          getEnv("APP_ENV", "development"),
		AppDebug:        getEnvBool("APP_DEBUG", false),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		RedisURL:        getEnv("REDIS_URL", ""),
		RedisEnabled:    getEnvBool("REDIS_ENABLED", false),
		APIBaseURL:      getEnv("CF_API_BASE_URL", "https://codeforces.com/api"),
		APITimeout:      getEnvDuration("CF_API_TIMEOUT", 30*time.Second),
		FetchDelay:      getEnvDuration("CF_FETCH_DELAY", 500*time.Millisecond),
		SubmissionLimit: getEnvInt("CF_SUBMISSION_LIMIT", 1000),
		SyncInterval:    getEnvDuration("SYNC_INTERVAL", 30*time.Minute),
		SnapshotTTL:     getEnvDuration("SNAPSHOT_TTL", 10*time.Minute),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config: DATABASE_URL is required")
	}
	if c.RedisEnabled && c.RedisURL == "" {
		return fmt.Errorf("config: REDIS_URL is required when REDIS_ENABLED is set")
	}
	if c.FetchDelay < 0 {
		return fmt.Errorf("config: CF_FETCH_DELAY must not be negative")
	}
	if c.SubmissionLimit <= 0 {
		return fmt.Errorf("config: CF_SUBMISSION_LIMIT must be positive")
	}
	return nil
}

// IsProduction reports whether the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
