package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Market   MarketConfig
	Settings SettingsConfig
	CORS     CORSConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// MarketConfig holds quote and trading-calendar configuration
type MarketConfig struct {
	// QuoteGatewayURL is the base URL of the quote gateway. Empty uses
	// the built-in default.
	QuoteGatewayURL string
	// CalendarURL is the base URL of the trade-date service. Empty
	// disables the remote calendar; weekends are then the only
	// non-trading days.
	CalendarURL string
	// RefreshSchedule is a cron expression for the periodic price
	// refresh of all holdings.
	RefreshSchedule string
}

// SettingsConfig holds settings-store configuration
type SettingsConfig struct {
	// EncryptionKey is the base64 fernet key protecting stored secrets.
	EncryptionKey string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/portfolio_tracker.db"),
		},
		Market: MarketConfig{
			QuoteGatewayURL: getEnv("QUOTE_GATEWAY_URL", ""),
			CalendarURL:     getEnv("CALENDAR_URL", ""),
			// Every 10 minutes during weekday trading hours.
			RefreshSchedule: getEnv("REFRESH_SCHEDULE", "*/10 9-15 * * 1-5"),
		},
		Settings: SettingsConfig{
			EncryptionKey: os.Getenv("SETTINGS_ENCRYPTION_KEY"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost")),
		},
	}

	if config.Settings.EncryptionKey == "" {
		return nil, fmt.Errorf("SETTINGS_ENCRYPTION_KEY is required")
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
