package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Query-string policies recognized by the [site] query_strings option.
// Any other configured value passes extracted URLs through unchanged.
const (
	QueryStringsStrip  = "strip"
	QueryStringsIgnore = "ignore"
)

// Config represents the application configuration
type Config struct {
	Environment string         `toml:"environment"` // "development" or "production"
	Server      ServerConfig   `toml:"server"`
	Storage     StorageConfig  `toml:"storage"`
	Logging     LoggingConfig  `toml:"logging"`
	Site        SiteConfig     `toml:"site"`
	Redirects   RedirectConfig `toml:"redirects"`
	Auth        AuthConfig     `toml:"auth"`
	Articles    ArticlesConfig `toml:"articles"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type StorageConfig struct {
	Type   string       `toml:"type"` // Only "badger" is supported
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// SiteConfig describes the content site whose links are repaired.
type SiteConfig struct {
	BaseURL      string `toml:"base_url"`      // Frontend root, e.g. "https://example.com/"
	QueryStrings string `toml:"query_strings"` // "strip", "ignore" (default), or pass-through
}

// RedirectConfig gates the redirect-repair feature and points at rule
// fixture files loaded on startup.
type RedirectConfig struct {
	Enabled  bool   `toml:"enabled"`
	RulesDir string `toml:"rules_dir"` // Directory containing redirect rule TOML files (optional)
}

// AuthConfig holds the edit-authorization key. Requests that rewrite
// content must present it; an empty key disables the check (development).
type AuthConfig struct {
	EditKey string `toml:"edit_key"`
}

// ArticlesConfig points at seed article fixture files loaded on startup.
type ArticlesConfig struct {
	FixturesDir string `toml:"fixtures_dir"`
}

// NewDefaultConfig returns the default configuration
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8090,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Type: "badger",
			Badger: BadgerConfig{
				Path:           "./data/linkfix",
				ResetOnStartup: false,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
		Site: SiteConfig{
			BaseURL:      "http://localhost/",
			QueryStrings: QueryStringsIgnore,
		},
		Redirects: RedirectConfig{
			Enabled: true,
		},
	}
}

// LoadFromFiles loads configuration from multiple files with priority:
// default -> file1 -> file2 -> ... -> env. Later files override earlier ones.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("LINKFIX_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if port := os.Getenv("LINKFIX_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("LINKFIX_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	if path := os.Getenv("LINKFIX_BADGER_PATH"); path != "" {
		config.Storage.Badger.Path = path
	}

	if level := os.Getenv("LINKFIX_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if baseURL := os.Getenv("LINKFIX_SITE_BASE_URL"); baseURL != "" {
		config.Site.BaseURL = baseURL
	}
	if policy := os.Getenv("LINKFIX_SITE_QUERY_STRINGS"); policy != "" {
		config.Site.QueryStrings = policy
	}

	if enabled := os.Getenv("LINKFIX_REDIRECTS_ENABLED"); enabled != "" {
		if b, err := strconv.ParseBool(enabled); err == nil {
			config.Redirects.Enabled = b
		}
	}

	if key := os.Getenv("LINKFIX_AUTH_EDIT_KEY"); key != "" {
		config.Auth.EditKey = key
	}
}

// validateConfig checks the settings the scanner cannot run without.
func validateConfig(config *Config) error {
	if config.Storage.Type != "badger" && config.Storage.Type != "" {
		return fmt.Errorf("unsupported storage type: %s (only 'badger' is supported)", config.Storage.Type)
	}

	baseURL := strings.TrimSpace(config.Site.BaseURL)
	if baseURL == "" {
		return fmt.Errorf("site.base_url is required")
	}
	if !strings.HasPrefix(strings.ToLower(baseURL), "http://") && !strings.HasPrefix(strings.ToLower(baseURL), "https://") {
		return fmt.Errorf("site.base_url must be an absolute http(s) URL, got %q", baseURL)
	}
	config.Site.BaseURL = baseURL

	return nil
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}
