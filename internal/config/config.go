// Package config loads the CLI configuration. Precedence, lowest to
// highest: built-in defaults, the YAML config file in the user config
// directory, then CRM_* environment variables (a .env file in the
// working directory is folded into the environment first).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all client settings.
type Config struct {
	APIBaseURL        string        `yaml:"api_base_url"`
	LogLevel          string        `yaml:"log_level"`
	HTTPTimeout       time.Duration `yaml:"http_timeout"`
	SessionFile       string        `yaml:"session_file"`
	CacheTTL          time.Duration `yaml:"cache_ttl"`
	MaxRetries        int           `yaml:"max_retries"`
	InitialBackoff    time.Duration `yaml:"initial_backoff"`
	OTLPEndpoint      string        `yaml:"otlp_endpoint"`
	OAuthCallbackPort int           `yaml:"oauth_callback_port"`
}

// Load builds the configuration from defaults, the optional YAML file
// and the environment.
func Load() (*Config, error) {
	// Missing .env is fine, the environment may carry everything.
	_ = LoadDotEnv(".env")

	cfg := defaults()

	if path := configFilePath(); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("config: api base url is empty")
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		APIBaseURL:        "http://localhost:8080/api/v1",
		LogLevel:          "info",
		HTTPTimeout:       30 * time.Second,
		SessionFile:       defaultSessionFile(),
		CacheTTL:          5 * time.Minute,
		MaxRetries:        3,
		InitialBackoff:    200 * time.Millisecond,
		OTLPEndpoint:      "",
		OAuthCallbackPort: 8976,
	}
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", ".casaflow-session.json")
	}
	return filepath.Join(dir, "casaflow", "session.json")
}

func configFilePath() string {
	if path := os.Getenv("CRM_CONFIG_FILE"); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "casaflow", "config.yaml")
}

// applyFile overlays settings from a YAML file. A missing file is not
// an error; a malformed one is.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.APIBaseURL = getEnv("CRM_API_BASE_URL", c.APIBaseURL)
	c.LogLevel = getEnv("CRM_LOG_LEVEL", c.LogLevel)
	c.HTTPTimeout = getEnvDuration("CRM_HTTP_TIMEOUT", c.HTTPTimeout)
	c.SessionFile = getEnv("CRM_SESSION_FILE", c.SessionFile)
	c.CacheTTL = getEnvDuration("CRM_CACHE_TTL", c.CacheTTL)
	c.MaxRetries = getEnvInt("CRM_MAX_RETRIES", c.MaxRetries)
	c.InitialBackoff = getEnvDuration("CRM_INITIAL_BACKOFF", c.InitialBackoff)
	c.OTLPEndpoint = getEnv("CRM_OTLP_ENDPOINT", c.OTLPEndpoint)
	c.OAuthCallbackPort = getEnvInt("CRM_OAUTH_CALLBACK_PORT", c.OAuthCallbackPort)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
