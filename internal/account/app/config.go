package app

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingTokenSecret makes a missing signing secret fatal at startup
// instead of surfacing on the first login.
var ErrMissingTokenSecret = errors.New("ACCOUNT_TOKEN_SECRET is required")

type Config struct {
	TokenSecret string        // Required: HS256 signing secret for session tokens
	Issuer      string        // Optional: issuer claim for tokens (default: accountd)
	TokenTTL    time.Duration // Optional: session token lifetime (default: 1h)

	DatabaseFile string // Optional: path to SQLite database file (default: ./accountd.db)
	DataDir      string // Optional: root for uploaded/downloadable blobs (default: ./files)

	Host                string        // Bind host (default: 0.0.0.0)
	Port                int           // HTTP server port (default: 8080)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	Debug               bool          // Debug flag (default: false)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() (Config, error) {
	// Best effort; a missing .env just means plain process env.
	_ = godotenv.Load()

	cfg := Config{
		TokenSecret:         os.Getenv("ACCOUNT_TOKEN_SECRET"),
		Issuer:              getEnvOrDefault("ACCOUNT_ISSUER", "accountd"),
		TokenTTL:            getEnvDurationOrDefault("ACCOUNT_TOKEN_TTL", time.Hour),
		DatabaseFile:        getEnvOrDefault("ACCOUNT_DATABASE_FILE", "accountd.db"),
		DataDir:             getEnvOrDefault("ACCOUNT_DATA_DIR", "files"),
		Host:                getEnvOrDefault("HOST", "0.0.0.0"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		Env:                 getEnvOrDefault("ENV", "dev"),
		Debug:               getEnvBoolOrDefault("DEBUG", false),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if cfg.TokenSecret == "" {
		return Config{}, ErrMissingTokenSecret
	}

	if cfg.Debug && os.Getenv("LOG_LEVEL") == "" {
		cfg.LogLevel = "debug"
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
