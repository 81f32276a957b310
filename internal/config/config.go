package config

import (
	"os"
	"strconv"
	"time"

	"shopstat/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig `validate:"required"`
	Server   ServerConfig   `validate:"required"`
	Engine   EngineConfig   `validate:"required"`
	Report   ReportConfig
}

// DatabaseConfig holds warehouse connection settings
type DatabaseConfig struct {
	URL          string `validate:"required"`
	QueryTimeout time.Duration
	MaxOpenConns int
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string `validate:"required"`
	GinMode string
}

// EngineConfig holds statistical test defaults
type EngineConfig struct {
	Alpha        float64
	MinGroupSize int
}

// ReportConfig holds report export settings
type ReportConfig struct {
	ExportDir string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			QueryTimeout: getEnvDurationOrDefault("QUERY_TIMEOUT", 30*time.Second),
			MaxOpenConns: getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 10),
		},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Engine: EngineConfig{
			Alpha:        getEnvFloatOrDefault("ALPHA", 0.05),
			MinGroupSize: getEnvIntOrDefault("MIN_GROUP_SIZE", 2),
		},
		Report: ReportConfig{
			ExportDir: getEnvOrDefault("EXPORT_DIR", "./reports"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Database.URL == "" {
		return errors.ConfigInvalid("DATABASE_URL is required")
	}
	if config.Engine.Alpha <= 0 || config.Engine.Alpha >= 1 {
		return errors.ConfigInvalid("ALPHA must be in (0, 1)")
	}
	if config.Engine.MinGroupSize < 2 {
		return errors.ConfigInvalid("MIN_GROUP_SIZE must be at least 2 for variance estimation")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
