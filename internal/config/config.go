// Package config resolves server configuration from defaults, an optional YAML file,
// an optional .env file and the environment, in that order of increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all server configuration
type Config struct {
	// Server configuration
	Port       int
	StaticPath string

	// Database configuration
	DBPath string

	// Logging
	LogLevel slog.Level

	// Feed fan-out worker pool
	FeedWorkers   int
	FeedQueueSize int

	// MetricsEnabled exposes /metrics
	MetricsEnabled bool
}

// fileConfig mirrors the YAML schema named by CONFIG_FILE.
type fileConfig struct {
	Server struct {
		Port       int    `yaml:"port"`
		StaticPath string `yaml:"static_path"`
	} `yaml:"server"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Feed struct {
		Workers   int `yaml:"workers"`
		QueueSize int `yaml:"queue_size"`
	} `yaml:"feed"`
	Metrics struct {
		Enabled *bool `yaml:"enabled"`
	} `yaml:"metrics"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Port:           8080,
		StaticPath:     "../frontend/static",
		DBPath:         "./data/sneakyelves.db",
		LogLevel:       slog.LevelInfo,
		FeedWorkers:    4,
		FeedQueueSize:  256,
		MetricsEnabled: true,
	}
}

// Load loads configuration. envFile may be empty, in which case ".env" is read if present.
func Load(envFile string) (*Config, error) {
	if err := loadDotEnv(envFile); err != nil {
		return nil, err
	}

	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH is required")
	}
	if c.FeedWorkers < 1 {
		return fmt.Errorf("FEED_WORKERS must be at least 1, got %d", c.FeedWorkers)
	}
	if c.FeedQueueSize < 1 {
		return fmt.Errorf("FEED_QUEUE_SIZE must be at least 1, got %d", c.FeedQueueSize)
	}
	return nil
}

// loadDotEnv reads envFile, or ./.env when envFile is empty. A missing default
// file is fine; an explicitly named one must exist. Existing variables win.
func loadDotEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
		return nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var f fileConfig
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if f.Server.Port > 0 {
		c.Port = f.Server.Port
	}
	if f.Server.StaticPath != "" {
		c.StaticPath = f.Server.StaticPath
	}
	if f.Database.Path != "" {
		c.DBPath = f.Database.Path
	}
	if f.Log.Level != "" {
		c.LogLevel = ParseLevel(f.Log.Level)
	}
	if f.Feed.Workers > 0 {
		c.FeedWorkers = f.Feed.Workers
	}
	if f.Feed.QueueSize > 0 {
		c.FeedQueueSize = f.Feed.QueueSize
	}
	if f.Metrics.Enabled != nil {
		c.MetricsEnabled = *f.Metrics.Enabled
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = getEnvAsInt("PORT", c.Port)
	c.StaticPath = getEnv("STATIC_PATH", c.StaticPath)
	c.DBPath = getEnv("DB_PATH", c.DBPath)
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.LogLevel = ParseLevel(level)
	}
	c.FeedWorkers = getEnvAsInt("FEED_WORKERS", c.FeedWorkers)
	c.FeedQueueSize = getEnvAsInt("FEED_QUEUE_SIZE", c.FeedQueueSize)
	c.MetricsEnabled = getEnvAsBool("METRICS_ENABLED", c.MetricsEnabled)
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
