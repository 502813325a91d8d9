package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	APIOrigin    string        `mapstructure:"api_origin"`
	APIBasePath  string        `mapstructure:"api_base_path"`
	APITimeoutMs int64         `mapstructure:"api_timeout_ms"`
	APITimeout   time.Duration `mapstructure:"-"`
	UILanguage   string        `mapstructure:"ui_language"`

	NotifiersFile string `mapstructure:"notifiers_file"`

	SessionStoreType  string        `mapstructure:"session_store_type"`
	SessionPath       string        `mapstructure:"session_path"`
	SessionTTLSeconds int64         `mapstructure:"session_ttl_seconds"`
	SessionTTL        time.Duration `mapstructure:"-"`

	MockAddr string `mapstructure:"mock_addr"`
}

// BaseURL joins the API origin and base path, e.g. http://localhost:8080/api.
func (c *Config) BaseURL() string {
	return strings.TrimRight(c.APIOrigin, "/") + c.APIBasePath
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "portal-client")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "warn")
	v.SetDefault("api_origin", "http://localhost:8080")
	v.SetDefault("api_base_path", "/api")
	v.SetDefault("api_timeout_ms", 3000)
	v.SetDefault("ui_language", "en")
	v.SetDefault("notifiers_file", "./configs/notifiers.yaml")
	v.SetDefault("session_store_type", "bbolt")
	v.SetDefault("session_path", "./data/session.db")
	v.SetDefault("session_ttl_seconds", int64((24*time.Hour)/time.Second))
	v.SetDefault("mock_addr", ":8080")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	origin, err := url.Parse(strings.TrimSpace(c.APIOrigin))
	if err != nil || origin.Scheme == "" || origin.Host == "" {
		return fmt.Errorf("invalid api_origin %q (expected scheme://host)", c.APIOrigin)
	}
	c.APIOrigin = origin.String()

	c.APIBasePath = "/" + strings.Trim(strings.TrimSpace(c.APIBasePath), "/")
	if c.APIBasePath == "/" {
		c.APIBasePath = ""
	}

	if c.APITimeoutMs <= 0 {
		return fmt.Errorf("invalid api_timeout_ms (must be positive milliseconds)")
	}
	c.APITimeout = time.Duration(c.APITimeoutMs) * time.Millisecond

	if c.SessionTTLSeconds <= 0 {
		return fmt.Errorf("invalid session_ttl_seconds (must be positive seconds)")
	}
	c.SessionTTL = time.Duration(c.SessionTTLSeconds) * time.Second

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	return nil
}
