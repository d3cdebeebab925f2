package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper to set env vars and clean up after
func setEnv(t *testing.T, key, value string) {
	t.Helper()
	old := os.Getenv(key)
	os.Setenv(key, value)
	t.Cleanup(func() {
		if old == "" {
			os.Unsetenv(key)
		} else {
			os.Setenv(key, old)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	setEnv(t, "LOG_LEVEL", "")
	setEnv(t, "API_URL", "")
	setEnv(t, "REQUEST_TIMEOUT", "")
	setEnv(t, "WATCH_INTERVAL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Empty(t, cfg.APIURLOverride)
	assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout)
	assert.Equal(t, DefaultRequestsPerSec, cfg.RequestsPerSec)
	assert.Equal(t, DefaultWatchInterval, cfg.WatchInterval)
	assert.NotEmpty(t, cfg.SettingsPath)
}

func TestLoad_FromEnvironment(t *testing.T) {
	setEnv(t, "LOG_LEVEL", "debug")
	setEnv(t, "API_URL", "http://scoring.internal:9000")
	setEnv(t, "REQUEST_TIMEOUT", "5")
	setEnv(t, "TELEGRAM_CHAT_ID", "42")
	setEnv(t, "SETTINGS_PATH", "/tmp/settings.json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "http://scoring.internal:9000", cfg.APIURLOverride)
	assert.Equal(t, 5, cfg.RequestTimeout)
	assert.Equal(t, int64(42), cfg.TelegramChatID)
	assert.Equal(t, "/tmp/settings.json", cfg.SettingsPath)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	setEnv(t, "REQUEST_TIMEOUT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout)
}
