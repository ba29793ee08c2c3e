package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedback-insights-go/internal/logger"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com/prod")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/prod", cfg.APIBaseURL)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 2, cfg.ExportRetries)
	assert.Equal(t, 30*time.Second, cfg.WatchInterval)
}

func TestLoadFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("API_BASE_URL=http://localhost:9000\nEXPORT_RETRIES=5\n"), 0o600))
	// godotenv never overrides variables that are already set.
	t.Setenv("API_BASE_URL", "")
	os.Unsetenv("API_BASE_URL")
	t.Setenv("PORT", "9090")
	t.Setenv("EXPORT_RETRIES", "")
	os.Unsetenv("EXPORT_RETRIES")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", cfg.APIBaseURL)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 5, cfg.ExportRetries)
}

func TestLoadRequiresBaseURL(t *testing.T) {
	t.Setenv("API_BASE_URL", "  ")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorIs(t, err, ErrMissingBaseURL)
}

func TestLoadRejectsZeroTimeout(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://x")
	t.Setenv("HTTP_TIMEOUT_SEC", "0")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestLoadConfiguresLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=error\nENVIRONMENT=production\n"), 0o600))
	t.Setenv("API_BASE_URL", "http://x")
	t.Setenv("LOG_LEVEL", "")
	os.Unsetenv("LOG_LEVEL")
	t.Setenv("ENVIRONMENT", "")
	os.Unsetenv("ENVIRONMENT")

	// the shared base already exists before the .env is read
	l := logger.New()
	t.Cleanup(func() { logger.Configure("local", "info") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, logrus.ErrorLevel, l.Logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, l.Logger.Formatter)
}
