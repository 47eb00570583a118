package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Broker   BrokerConfig
	Prices   PricesConfig
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

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// BrokerConfig holds the Schwab integration configuration. EncryptionKey is
// the base64 fernet key used to encrypt the API token at rest.
type BrokerConfig struct {
	EncryptionKey string
	BaseURL       string
}

// PricesConfig holds the scheduled price refresh configuration.
type PricesConfig struct {
	RefreshSchedule string
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
			Path: getEnv("DB_PATH", "./data/lotledger.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Broker: BrokerConfig{
			EncryptionKey: os.Getenv("BROKER_ENCRYPTION_KEY"),
			BaseURL:       os.Getenv("BROKER_BASE_URL"),
		},
		Prices: PricesConfig{
			// Weekdays after US market close, server-local time.
			RefreshSchedule: getEnv("PRICE_REFRESH_SCHEDULE", "30 22 * * MON-FRI"),
		},
	}

	if config.Broker.EncryptionKey == "" {
		return nil, fmt.Errorf("BROKER_ENCRYPTION_KEY is required")
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
