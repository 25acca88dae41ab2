// ===============================
// internal/config/config.go - Environment Configuration
// ===============================

package config

import (
	"os"
	"strings"
)

// DatabaseConfig holds MySQL connection settings. Host/port are ignored
// when a unix socket path is configured.
type DatabaseConfig struct {
	Socket   string
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

// Config holds all application configuration
type Config struct {
	// Server configuration
	Environment string
	Port        string

	// Database configuration
	Database DatabaseConfig

	// Webhook for the daily payments report
	WebhookURL string

	// Client error log file
	ClientErrorLog string

	// CORS configuration
	AllowedOrigins []string
}

// Load loads configuration from environment variables. Database settings
// accept both DB_* and MYSQL_* names, DB_* taking precedence.
func Load() (*Config, error) {
	config := &Config{
		Environment: getEnv("GIN_MODE", "debug"),
		Port:        getEnv("PORT", "3001"),
		Database: DatabaseConfig{
			Socket:   firstEnv("DB_SOCKET", "MYSQL_SOCKET"),
			Host:     firstEnvDefault("localhost", "DB_HOST", "MYSQL_HOST"),
			Port:     firstEnvDefault("3306", "DB_PORT", "MYSQL_PORT"),
			User:     firstEnvDefault("root", "DB_USERNAME", "MYSQL_USER"),
			Password: firstEnv("DB_PASSWORD", "MYSQL_PASSWORD"),
			Database: firstEnv("DB_DATABASE", "MYSQL_DATABASE", "DB_NAME"),
		},
		WebhookURL:     getEnv("SLACK_WEBHOOK_URL", ""),
		ClientErrorLog: getEnv("CLIENT_ERROR_LOG", "client-errors.log"),
	}

	// Parse allowed origins
	originsStr := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	config.AllowedOrigins = strings.Split(originsStr, ",")
	for i, origin := range config.AllowedOrigins {
		config.AllowedOrigins[i] = strings.TrimSpace(origin)
	}

	// Validate required configuration
	if config.Database.Database == "" {
		return nil, ErrMissingDatabase
	}

	return config, nil
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// firstEnv returns the first non-empty value among the given variables
func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}

// firstEnvDefault is firstEnv with a fallback default
func firstEnvDefault(defaultValue string, keys ...string) string {
	if value := firstEnv(keys...); value != "" {
		return value
	}
	return defaultValue
}

// Configuration errors
var (
	ErrMissingDatabase = ConfigError{Message: "database name is required (DB_DATABASE, MYSQL_DATABASE or DB_NAME)"}
)

// ConfigError represents a configuration error
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string {
	return e.Message
}
