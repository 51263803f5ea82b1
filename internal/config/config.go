package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Auth      AuthConfig
	Notify    NotifyConfig
	Scheduler SchedulerConfig
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

// AuthConfig holds token-issuing configuration. FernetKey is a base64
// 32-byte key as produced by fernet key generation; InternalAPIKey
// guards internal endpoints.
type AuthConfig struct {
	FernetKey      string
	InternalAPIKey string
}

// NotifyConfig holds notification transport configuration. An empty
// WebhookURL selects the log-only notifier.
type NotifyConfig struct {
	WebhookURL string
}

// SchedulerConfig holds the cron schedules for the periodic jobs.
type SchedulerConfig struct {
	Enabled          bool
	EvaluateSchedule string
	AdvanceSchedule  string
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
			Path: getEnv("DB_PATH", "./data/fintrack.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Auth: AuthConfig{
			FernetKey:      os.Getenv("FERNET_KEY"),
			InternalAPIKey: os.Getenv("INTERNAL_API_KEY"),
		},
		Notify: NotifyConfig{
			WebhookURL: os.Getenv("NOTIFY_WEBHOOK_URL"),
		},
		Scheduler: SchedulerConfig{
			Enabled:          getEnv("SCHEDULER_ENABLED", "true") == "true",
			EvaluateSchedule: getEnv("EVALUATE_SCHEDULE", "0 7 * * *"),
			AdvanceSchedule:  getEnv("ADVANCE_SCHEDULE", "30 0 * * *"),
		},
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
