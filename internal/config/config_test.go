// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML loading, env var expansion, duration parsing, and defaults

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
api:
  base_url: "https://catalog.example.com/v2"
  path: "myshop"

session:
  token_file: "./token.json"
  flag_file: "./session"

timers:
  page_notice: "3s"
  modal_notice: "4s"
  highlight: "2500ms"

logging:
  level: "debug"
  format: "json"
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "https://catalog.example.com/v2" {
		t.Errorf("API.BaseURL = %q, want %q", cfg.API.BaseURL, "https://catalog.example.com/v2")
	}
	if cfg.API.Path != "myshop" {
		t.Errorf("API.Path = %q, want %q", cfg.API.Path, "myshop")
	}

	if cfg.Session.TokenFile != "./token.json" {
		t.Errorf("Session.TokenFile = %q, want %q", cfg.Session.TokenFile, "./token.json")
	}
	if cfg.Session.FlagFile != "./session" {
		t.Errorf("Session.FlagFile = %q, want %q", cfg.Session.FlagFile, "./session")
	}

	if cfg.Timers.PageNotice != 3*time.Second {
		t.Errorf("Timers.PageNotice = %v, want %v", cfg.Timers.PageNotice, 3*time.Second)
	}
	if cfg.Timers.ModalNotice != 4*time.Second {
		t.Errorf("Timers.ModalNotice = %v, want %v", cfg.Timers.ModalNotice, 4*time.Second)
	}
	if cfg.Timers.Highlight != 2500*time.Millisecond {
		t.Errorf("Timers.Highlight = %v, want %v", cfg.Timers.Highlight, 2500*time.Millisecond)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("TEST_CATALOG_BASE", "https://env.example.com/v2")
	t.Setenv("TEST_CATALOG_PATH", "env-shop")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
api:
  base_url: "${TEST_CATALOG_BASE}"
  path: "${TEST_CATALOG_PATH}"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "https://env.example.com/v2" {
		t.Errorf("API.BaseURL = %q, want env-expanded value", cfg.API.BaseURL)
	}
	if cfg.API.Path != "env-shop" {
		t.Errorf("API.Path = %q, want env-expanded value", cfg.API.Path)
	}
}

func TestLoad_Defaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("logging:\n  level: warn\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("API.BaseURL = %q, want default %q", cfg.API.BaseURL, DefaultBaseURL)
	}
	if cfg.API.Path != DefaultPath {
		t.Errorf("API.Path = %q, want default %q", cfg.API.Path, DefaultPath)
	}
	if cfg.Timers.PageNotice != DefaultPageNotice {
		t.Errorf("Timers.PageNotice = %v, want default %v", cfg.Timers.PageNotice, DefaultPageNotice)
	}
	if cfg.Timers.Highlight != DefaultHighlight {
		t.Errorf("Timers.Highlight = %v, want default %v", cfg.Timers.Highlight, DefaultHighlight)
	}
	if cfg.Session.TokenFile == "" {
		t.Error("Session.TokenFile is empty, want a default path")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "warn")
	}
}

func TestLoad_APIEnvFallback(t *testing.T) {
	t.Setenv("CATALOG_API_BASE", "https://fallback.example.com/v2")
	t.Setenv("CATALOG_API_PATH", "fallback-shop")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("api: {}\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "https://fallback.example.com/v2" {
		t.Errorf("API.BaseURL = %q, want env fallback", cfg.API.BaseURL)
	}
	if cfg.API.Path != "fallback-shop" {
		t.Errorf("API.Path = %q, want env fallback", cfg.API.Path)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
timers:
  page_notice: "not-a-duration"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() error = nil, want duration parse error")
	}
	if !strings.Contains(err.Error(), "page_notice") {
		t.Errorf("error %q does not name the offending field", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("Load() error = nil, want read error")
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("API.BaseURL = %q, want default", cfg.API.BaseURL)
	}
}

func TestDefault_Validates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}
