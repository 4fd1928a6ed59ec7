package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CRM_CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIBaseURL != "http://localhost:8080/api/v1" {
		t.Errorf("unexpected default base URL %q", cfg.APIBaseURL)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("unexpected default timeout %v", cfg.HTTPTimeout)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("unexpected default retries %d", cfg.MaxRetries)
	}
	if cfg.SessionFile == "" {
		t.Error("expected a default session file path")
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	yamlBody := "api_base_url: https://file.example.com/api\nlog_level: debug\nmax_retries: 7\n"
	if err := os.WriteFile(file, []byte(yamlBody), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CRM_CONFIG_FILE", file)
	t.Setenv("CRM_API_BASE_URL", "https://env.example.com/api")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIBaseURL != "https://env.example.com/api" {
		t.Errorf("env must beat the file, got %q", cfg.APIBaseURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("file value must survive where env is silent, got %q", cfg.LogLevel)
	}
	if cfg.MaxRetries != 7 {
		t.Errorf("expected file retries 7, got %d", cfg.MaxRetries)
	}
}

func TestLoadMalformedFileFails(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(file, []byte("api_base_url: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CRM_CONFIG_FILE", file)

	if _, err := Load(); err == nil {
		t.Error("expected an error for a malformed config file")
	}
}

func TestLoadEnvDurations(t *testing.T) {
	t.Setenv("CRM_CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("CRM_HTTP_TIMEOUT", "5s")
	t.Setenv("CRM_CACHE_TTL", "90s")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("unexpected timeout %v", cfg.HTTPTimeout)
	}
	if cfg.CacheTTL != 90*time.Second {
		t.Errorf("unexpected cache TTL %v", cfg.CacheTTL)
	}
}

func TestLoadDotEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	body := "# comment\nDOTENV_A=from-file\nDOTENV_B='quoted'\nbroken-line\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("DOTENV_A", "from-env")
	t.Setenv("DOTENV_B", "")

	if err := LoadDotEnv(path); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("DOTENV_A"); got != "from-env" {
		t.Errorf("a set env var must win over the file, got %q", got)
	}
	if got := os.Getenv("DOTENV_B"); got != "quoted" {
		t.Errorf("expected the quoted file value, got %q", got)
	}
}
