package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store backends selectable via TC_STORE_BACKEND.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config holds all configuration options for the timeclock application
type Config struct {
	Store       StoreConfig
	Screenshot  ScreenshotConfig
	Application ApplicationConfig
}

// StoreConfig holds entity-store configuration
type StoreConfig struct {
	Backend        string `env:"TC_STORE_BACKEND"`
	Dir            string `env:"TC_DATA_DIR"`
	SQLiteFilename string `env:"TC_SQLITE_FILENAME"`
}

// ScreenshotConfig holds screenshot-capture configuration
type ScreenshotConfig struct {
	Enabled bool   `env:"TC_SCREENSHOT_ENABLED"`
	Dir     string `env:"TC_SCREENSHOT_DIR"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"TC_APP_TIMEOUT"`
	Verbose bool          `env:"TC_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDataDir := filepath.Join(homeDir, ".timeclock")

	return &Config{
		Store: StoreConfig{
			Backend:        BackendJSON,
			Dir:            defaultDataDir,
			SQLiteFilename: "timeclock.db",
		},
		Screenshot: ScreenshotConfig{
			Enabled: true,
			Dir:     filepath.Join(defaultDataDir, "screenshots"),
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// LoadFromEnvironment overrides the configuration from TC_* environment
// variables.
func (c *Config) LoadFromEnvironment() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Store.Dir == "" {
		return fmt.Errorf("data directory must not be empty")
	}
	if c.Application.Timeout <= 0 {
		return fmt.Errorf("application timeout must be positive")
	}
	return nil
}

// GetSQLitePath returns the full path to the SQLite database file
func (c *Config) GetSQLitePath() string {
	return filepath.Join(c.Store.Dir, c.Store.SQLiteFilename)
}

// Load builds the default configuration and applies environment overrides
func Load() (*Config, error) {
	cfg := NewConfig()
	if err := cfg.LoadFromEnvironment(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
