package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"feedback-insights-go/internal/logger"
)

// Config is read from the environment, optionally seeded from a .env file.
type Config struct {
	APIBaseURL    string
	Port          string
	HTTPTimeout   time.Duration
	ExportRetries int
	WatchInterval time.Duration
	Environment   string
	LogLevel      string
}

var ErrMissingBaseURL = errors.New("API_BASE_URL is required")

// Load reads .env files (missing ones are ignored) and then the environment,
// and applies ENVIRONMENT and LOG_LEVEL to the shared logger.
func Load(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)
	cfg, err := FromViper(newViper())
	if err != nil {
		return nil, err
	}
	logger.Configure(cfg.Environment, cfg.LogLevel)
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("api_base_url", "")
	v.SetDefault("port", "8080")
	v.SetDefault("http_timeout_sec", 15)
	v.SetDefault("export_retries", 2)
	v.SetDefault("watch_interval_sec", 30)
	v.SetDefault("environment", "local")
	v.SetDefault("log_level", "info")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		APIBaseURL:    strings.TrimSpace(v.GetString("api_base_url")),
		Port:          v.GetString("port"),
		HTTPTimeout:   time.Duration(v.GetInt("http_timeout_sec")) * time.Second,
		ExportRetries: v.GetInt("export_retries"),
		WatchInterval: time.Duration(v.GetInt("watch_interval_sec")) * time.Second,
		Environment:   v.GetString("environment"),
		LogLevel:      strings.ToLower(v.GetString("log_level")),
	}
	if cfg.APIBaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if cfg.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("HTTP_TIMEOUT_SEC must be positive, got %d", v.GetInt("http_timeout_sec"))
	}
	if cfg.WatchInterval <= 0 {
		return nil, fmt.Errorf("WATCH_INTERVAL_SEC must be positive, got %d", v.GetInt("watch_interval_sec"))
	}
	if cfg.ExportRetries < 0 {
		cfg.ExportRetries = 0
	}
	return cfg, nil
}
