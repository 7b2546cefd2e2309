package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Backend Backend       `mapstructure:"backend"`
	Listing Listing       `mapstructure:"listing"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Backend holds the managed-platform endpoints and key
type Backend struct {
	URL     string `mapstructure:"url"`      // Document store base URL
	AuthURL string `mapstructure:"auth_url"` // Identity provider base URL
	APIKey  string `mapstructure:"api_key"`  // Project API key
}

// Listing holds the listing pipeline tunables
type Listing struct {
	PageSize   int `mapstructure:"page_size"`
	DebounceMS int `mapstructure:"debounce_ms"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme       string `mapstructure:"theme"`
	ShowSeen    bool   `mapstructure:"show_seen"`    // "already viewed" badges
	DefaultKind string `mapstructure:"default_kind"` // "licoes" or "atividades"
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// SlogLevel maps the configured level string onto slog's levels.
// Unknown values fall back to Info.
func (l LoggingConfig) SlogLevel() slog.Level {
	switch strings.ToUpper(l.Level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Backend: Backend{},
		Listing: Listing{
			PageSize:   6,
			DebounceMS: 300,
		},
		UI: UIConfig{
			Theme:       "default",
			ShowSeen:    true,
			DefaultKind: "licoes",
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "licoes", "licoes.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "licoes", "licoes.log")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "licoes")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "licoes")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("LICOES")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()

	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("backend.url", cfg.Backend.URL)
	viper.Set("backend.auth_url", cfg.Backend.AuthURL)
	viper.Set("backend.api_key", cfg.Backend.APIKey)

	viper.Set("listing.page_size", cfg.Listing.PageSize)
	viper.Set("listing.debounce_ms", cfg.Listing.DebounceMS)

	viper.Set("ui.theme", cfg.UI.Theme)
	viper.Set("ui.show_seen", cfg.UI.ShowSeen)
	viper.Set("ui.default_kind", cfg.UI.DefaultKind)

	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if the backend endpoints are set
func (c *Config) IsConfigured() bool {
	return c.Backend.URL != "" && c.Backend.AuthURL != ""
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "licoes", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "licoes", "cache")
	}
}

// GetCachePath returns the cache directory path
func GetCachePath() string {
	return defaultCachePath()
}

// ClearCache removes all locally cached data
func ClearCache() error {
	cachePath := defaultCachePath()
	if err := os.RemoveAll(cachePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
