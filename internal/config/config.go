// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// PayPal Payouts API
	PayPalBaseURL      string
	PayPalClientID     string
	PayPalClientSecret string

	// AdminKey gates privileged endpoints (category mutation, manual
	// earnings run). Authentication beyond this shared key is out of scope.
	AdminKey string

	// Ledger settings
	EarningRate   int64 // units credited per view
	MinWithdrawal int64 // smallest allowed withdrawal, in units

	// Scheduler toggles
	EnableScheduler bool
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "plume"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "plume"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		PayPalBaseURL:      envOrDefault("PAYPAL_BASE_URL", "https://api-m.sandbox.paypal.com"),
		PayPalClientID:     os.Getenv("PAYPAL_CLIENT_ID"),
		PayPalClientSecret: os.Getenv("PAYPAL_CLIENT_SECRET"),

		AdminKey: os.Getenv("ADMIN_API_KEY"),

		EarningRate:   envInt64OrDefault("EARNING_RATE", 2),
		MinWithdrawal: envInt64OrDefault("MIN_WITHDRAWAL", 5),

		EnableScheduler: envOrDefault("ENABLE_SCHEDULER", "true") == "true",
	}

	if cfg.IsProd() {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if cfg.AdminKey == "" {
			return nil, fmt.Errorf("ADMIN_API_KEY must be set in production")
		}
		if cfg.PayPalClientID == "" || cfg.PayPalClientSecret == "" {
			return nil, fmt.Errorf("PAYPAL_CLIENT_ID and PAYPAL_CLIENT_SECRET must be set in production")
		}
	}

	if cfg.EarningRate < 0 {
		return nil, fmt.Errorf("EARNING_RATE must not be negative")
	}
	if cfg.MinWithdrawal < 1 {
		return nil, fmt.Errorf("MIN_WITHDRAWAL must be at least 1")
	}

	return cfg, nil
}

// Addr returns the host:port address the HTTP server should listen on.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// IsDev reports whether the app runs in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProd reports whether the app runs in production mode.
func (c *Config) IsProd() bool {
	return c.Env == "production"
}

// envOrDefault returns the environment variable value or a fallback.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envInt64OrDefault parses an integer environment variable, falling back
// on absence or parse failure.
func envInt64OrDefault(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
