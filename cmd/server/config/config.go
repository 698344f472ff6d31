// Package config provides configuration structures for the SQL Runner server.
package config

import (
	"fmt"
	"time"
)

// Config represents the server configuration.
type Config struct {
	// Server settings
	Address         string        `yaml:"address" json:"address"`
	Database        string        `yaml:"database" json:"database"`
	LogLevel        string        `yaml:"log_level" json:"log_level"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`

	// Query execution settings
	MaxResultRows int `yaml:"max_result_rows" json:"max_result_rows"`
	HistorySize   int `yaml:"history_size" json:"history_size"`

	// Authentication configuration
	Auth AuthConfig `yaml:"auth" json:"auth"`

	// CORS configuration
	CORS CORSConfig `yaml:"cors" json:"cors"`

	// Metrics configuration
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`

	// Demo data seeding
	SeedData bool `yaml:"seed_data" json:"seed_data"`
}

// AuthConfig represents JWT authentication configuration.
type AuthConfig struct {
	Secret   string        `yaml:"secret" json:"secret"`
	TokenTTL time.Duration `yaml:"token_ttl" json:"token_ttl"`
}

// CORSConfig represents CORS configuration.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins"`
}

// MetricsConfig represents metrics configuration.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Path    string `yaml:"path" json:"path"`
}

// Validate validates the configuration and fills in defaults.
func (c *Config) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("address is required")
	}

	if c.Database == "" {
		c.Database = "sql_runner.db"
	}

	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 30 * time.Second
	}

	if c.MaxResultRows < 0 {
		return fmt.Errorf("max result rows cannot be negative")
	}

	if c.HistorySize <= 0 {
		c.HistorySize = 50
	}

	if c.Auth.Secret == "" {
		return fmt.Errorf("auth secret is required")
	}

	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = 8 * time.Hour
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}

	if c.Metrics.Enabled && c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}

	return nil
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		Address:         "0.0.0.0:8000",
		Database:        "sql_runner.db",
		LogLevel:        "info",
		ShutdownTimeout: 30 * time.Second,
		MaxResultRows:   0,
		HistorySize:     50,
		Auth: AuthConfig{
			TokenTTL: 8 * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		SeedData: true,
	}
}
