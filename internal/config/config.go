// Package config loads the timers configuration from YAML with environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all timers configuration.
type Config struct {
	// Storage backend and its connection settings
	Storage StorageConfig `yaml:"storage"`

	// Refresh settings
	Tick TickConfig `yaml:"tick"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig selects where the timer list is persisted.
type StorageConfig struct {
	Backend   string `yaml:"backend"` // duckdb, sqlite, redis, memory
	Path      string `yaml:"path"`    // database file for duckdb / sqlite
	Key       string `yaml:"key"`
	RedisAddr string `yaml:"redis_addr"`
	RedisDB   int    `yaml:"redis_db"`
	Prefix    string `yaml:"prefix"`
}

// TickConfig configures the refresh loop.
type TickConfig struct {
	Interval string `yaml:"interval"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty disables logging
}

// Dir returns the directory holding the config, database and log files
func Dir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "timers")
	}
	return ".timers"
}

// DefaultPath is the config file read when --config is not given
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	dir := Dir()
	return &Config{
		Storage: StorageConfig{
			Backend:   "duckdb",
			Path:      filepath.Join(dir, "timers.duckdb"),
			Key:       "timers",
			RedisAddr: "localhost:6379",
			Prefix:    "timers:",
		},
		Tick: TickConfig{
			Interval: "1s",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(dir, "timers.log"),
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	// .env is optional
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks values that cannot be caught by YAML decoding
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "duckdb", "sqlite", "redis", "memory":
	default:
		return fmt.Errorf("invalid storage backend %q", c.Storage.Backend)
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("storage key must not be empty")
	}
	if _, err := c.TickInterval(); err != nil {
		return err
	}
	return nil
}

// TickInterval parses Tick.Interval
func (c *Config) TickInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Tick.Interval)
	if err != nil {
		return 0, fmt.Errorf("invalid tick interval %q: %w", c.Tick.Interval, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("tick interval must be positive, got %s", d)
	}
	return d, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("TIMERS_STORAGE"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("TIMERS_DB_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("TIMERS_KEY"); v != "" {
		c.Storage.Key = v
	}
	if v := os.Getenv("TIMERS_REDIS_ADDR"); v != "" {
		c.Storage.RedisAddr = v
	}
	if v := os.Getenv("TIMERS_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Storage.RedisDB = n
		}
	}
	if v := os.Getenv("TIMERS_TICK"); v != "" {
		c.Tick.Interval = v
	}
	if v := os.Getenv("TIMERS_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v, ok := os.LookupEnv("TIMERS_LOG_FILE"); ok {
		c.Logging.File = v
	}
}
