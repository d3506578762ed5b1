// ABOUTME: Configuration loading and parsing for catalog-admin
// ABOUTME: Supports YAML files with environment variable expansion and duration parsing

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Fallback defaults for the hosted catalog API.
const (
	DefaultBaseURL = "https://ec-course-api.hexschool.io/v2"
	DefaultPath    = "claudia1121"
)

// Default timer windows.
const (
	DefaultPageNotice  = 3 * time.Second
	DefaultModalNotice = 3 * time.Second
	DefaultHighlight   = 2500 * time.Millisecond
)

// Config represents the complete catalog-admin configuration
type Config struct {
	API     APIConfig     `yaml:"api"`
	Session SessionConfig `yaml:"session"`
	Timers  TimersConfig  `yaml:"timers"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig holds the external catalog API endpoint configuration
type APIConfig struct {
	// BaseURL is the API origin plus version prefix.
	// Falls back to CATALOG_API_BASE, then DefaultBaseURL.
	BaseURL string `yaml:"base_url"`
	// Path is the per-account path segment in product routes.
	// Falls back to CATALOG_API_PATH, then DefaultPath.
	Path string `yaml:"path"`
}

// SessionConfig holds token and session-flag persistence paths
type SessionConfig struct {
	TokenFile string `yaml:"token_file"`
	FlagFile  string `yaml:"flag_file"`
}

// TimersConfig holds the transient UI timer windows
type TimersConfig struct {
	PageNotice  time.Duration `yaml:"-"`
	ModalNotice time.Duration `yaml:"-"`
	Highlight   time.Duration `yaml:"-"`

	// Raw string values for YAML unmarshaling
	PageNoticeRaw  string `yaml:"page_notice"`
	ModalNoticeRaw string `yaml:"modal_notice"`
	HighlightRaw   string `yaml:"highlight"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Environment variables in the format ${VAR_NAME} are expanded.
// Duration strings are parsed into time.Duration values.
// Missing fields receive their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw YAML content
	expandedData := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := parseDurations(&cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault loads the config at path, or returns the default configuration
// when path is empty or the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Default returns a configuration with all fallback values applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// applyDefaults fills empty fields. API endpoint fields consult the
// environment before falling back to the literal defaults.
func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = envOr("CATALOG_API_BASE", DefaultBaseURL)
	}
	if c.API.Path == "" {
		c.API.Path = envOr("CATALOG_API_PATH", DefaultPath)
	}

	if c.Session.TokenFile == "" {
		c.Session.TokenFile = filepath.Join(configDir(), "catalog-admin", "token.json")
	}
	if c.Session.FlagFile == "" {
		c.Session.FlagFile = filepath.Join(configDir(), "catalog-admin", "session")
	}

	if c.Timers.PageNotice == 0 {
		c.Timers.PageNotice = DefaultPageNotice
	}
	if c.Timers.ModalNotice == 0 {
		c.Timers.ModalNotice = DefaultModalNotice
	}
	if c.Timers.Highlight == 0 {
		c.Timers.Highlight = DefaultHighlight
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.Path == "" {
		return fmt.Errorf("api.path is required")
	}
	if c.Timers.PageNotice < 0 || c.Timers.ModalNotice < 0 || c.Timers.Highlight < 0 {
		return fmt.Errorf("timer durations must not be negative")
	}
	return nil
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	var err error

	if cfg.Timers.PageNoticeRaw != "" {
		cfg.Timers.PageNotice, err = time.ParseDuration(cfg.Timers.PageNoticeRaw)
		if err != nil {
			return fmt.Errorf("parsing page_notice %q: %w", cfg.Timers.PageNoticeRaw, err)
		}
	}

	if cfg.Timers.ModalNoticeRaw != "" {
		cfg.Timers.ModalNotice, err = time.ParseDuration(cfg.Timers.ModalNoticeRaw)
		if err != nil {
			return fmt.Errorf("parsing modal_notice %q: %w", cfg.Timers.ModalNoticeRaw, err)
		}
	}

	if cfg.Timers.HighlightRaw != "" {
		cfg.Timers.Highlight, err = time.ParseDuration(cfg.Timers.HighlightRaw)
		if err != nil {
			return fmt.Errorf("parsing highlight %q: %w", cfg.Timers.HighlightRaw, err)
		}
	}

	return nil
}

// configDir resolves the base config directory, preferring XDG_CONFIG_HOME.
func configDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
