// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// placeholderAPIKeys are values that indicate the Templated API key was never
// configured. Startup fails fast on these so no doomed request is attempted.
var placeholderAPIKeys = map[string]bool{
	"":             true,
	"YOUR_API_KEY": true,
	"changeme":     true,
}

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Templated.io remote API
	TemplatedAPIKey  string
	TemplatedBaseURL string
	DataSource       string // "live" or "fixture"

	// Render polling
	PollInterval time.Duration

	// Brand guidelines fallback persistence (used when PostgreSQL is disabled)
	BrandFile string

	// PostgreSQL connection. An empty DBHost disables the database: the
	// render journal is skipped and brand guidelines persist to BrandFile.
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache). An empty ValkeyHost disables the
	// template metadata cache.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// Template metadata cache TTL
	TemplateCacheTTL time.Duration
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if the Templated API
// key is missing or still a placeholder (unless the fixture data source is
// selected), or if critical values are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		TemplatedAPIKey:  os.Getenv("TEMPLATED_API_KEY"),
		TemplatedBaseURL: envOrDefault("TEMPLATED_BASE_URL", "https://api.templated.io/v1"),
		DataSource:       envOrDefault("OMU_DATA_SOURCE", "live"),

		PollInterval: envDuration("OMU_POLL_INTERVAL", 2*time.Second),

		BrandFile: envOrDefault("OMU_BRAND_FILE", "brand-guidelines.json"),

		DBHost:     os.Getenv("POSTGRES_HOST"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "omukit"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "omukit"),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		TemplateCacheTTL: envDuration("OMU_TEMPLATE_CACHE_TTL", 5*time.Minute),
	}

	switch cfg.DataSource {
	case "live":
		if placeholderAPIKeys[cfg.TemplatedAPIKey] {
			return nil, fmt.Errorf("TEMPLATED_API_KEY must be set to a real Templated.io API key (or set OMU_DATA_SOURCE=fixture)")
		}
	case "fixture":
		// No key needed; the fixture data source never touches the network.
	default:
		return nil, fmt.Errorf("OMU_DATA_SOURCE must be \"live\" or \"fixture\", got %q", cfg.DataSource)
	}

	if cfg.Env == "production" {
		if cfg.DBHost != "" && cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if cfg.DataSource == "fixture" {
			return nil, fmt.Errorf("fixture data source is not allowed in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envDuration reads a duration environment variable. Accepts Go duration
// syntax ("2s", "500ms") or a plain number of seconds. Falls back on parse
// failure rather than erroring, a bad tuning knob should not stop the app.
func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
