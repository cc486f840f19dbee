package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the notifier service.
type AppConfig struct {
	DatabaseURL             string
	HTTPAddr                string
	FirebaseCredentialsFile string // empty means application default credentials
	LogLevel                string
	Environment             string
	StatsCronSpec           string // how often the delivery counters are logged
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.HTTPAddr = os.Getenv("HTTP_ADDR")
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	// Optional: when unset the Firebase SDK resolves credentials from the
	// environment (GOOGLE_APPLICATION_CREDENTIALS or the GCP metadata server).
	cfg.FirebaseCredentialsFile = os.Getenv("FIREBASE_CREDENTIALS_FILE")

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	cfg.StatsCronSpec = os.Getenv("STATS_CRON_SPEC")
	if cfg.StatsCronSpec == "" {
		cfg.StatsCronSpec = "*/5 * * * *" // Default: every 5 minutes
	}

	return cfg, nil
}
