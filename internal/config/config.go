package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Defaults for process configuration. The scoring backend default matches
// a local development deployment.
const (
	DefaultAPIURL         = "http://127.0.0.1:8000"
	DefaultLogLevel       = "info"
	DefaultRequestTimeout = 30 // seconds
	DefaultRequestsPerSec = 5
	DefaultWatchInterval  = 60 // seconds
)

// Config holds process-level configuration from the environment. User
// preferences (apiUrl, autoScan) live in the settings store instead; the
// API_URL variable here is a one-off override that bypasses it.
type Config struct {
	LogLevel       string
	APIURLOverride string // bypasses the persisted apiUrl setting when set
	RequestTimeout int    // seconds
	RequestsPerSec int
	WatchInterval  int    // seconds, re-scan period in watch mode
	SettingsPath   string // settings file location, defaults under user config dir
	DatabaseURL    string // optional, enables the postgres history store

	// Telegram alerting for watch mode, both must be set to enable it.
	TelegramBotToken string
	TelegramChatID   int64
}

// Load initializes configuration from environment variables.
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, relying on actual environment variables")
	}

	cfg := &Config{
		LogLevel:         getEnvWithDefault("LOG_LEVEL", DefaultLogLevel),
		APIURLOverride:   os.Getenv("API_URL"),
		RequestTimeout:   getEnvIntWithDefault("REQUEST_TIMEOUT", DefaultRequestTimeout),
		RequestsPerSec:   getEnvIntWithDefault("REQUESTS_PER_SEC", DefaultRequestsPerSec),
		WatchInterval:    getEnvIntWithDefault("WATCH_INTERVAL", DefaultWatchInterval),
		SettingsPath:     getEnvWithDefault("SETTINGS_PATH", defaultSettingsPath()),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   getEnvInt64WithDefault("TELEGRAM_CHAT_ID", 0),
	}

	return cfg, nil
}

func defaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "addrsentry.json"
	}
	return filepath.Join(dir, "addrsentry", "settings.json")
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64WithDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
