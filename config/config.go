package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultSource is the published finance-analysis dataset.
const DefaultSource = "https://raw.githubusercontent.com/eruu-data29/AI-Dashboard/refs/heads/main/Finance-Analysis.csv"

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr    string `yaml:"addr"`
	GinMode string `yaml:"ginMode"`
}

// DatasetConfig describes where the dataset is loaded from.
type DatasetConfig struct {
	Source  string `yaml:"source"`
	Timeout string `yaml:"timeout"` // e.g. "30s"
}

// DatabaseConfig is the SQLite mirror connection.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// LoggerConfig controls logrus.
type LoggerConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "text"
}

// FilterConfig holds the sidebar defaults and date-picker bounds.
type FilterConfig struct {
	MinDate      string `yaml:"minDate"`
	MaxDate      string `yaml:"maxDate"`
	DefaultStart string `yaml:"defaultStart"`
	DefaultEnd   string `yaml:"defaultEnd"`
}

// Config is the root of the YAML file.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Dataset  DatasetConfig  `yaml:"dataset"`
	Database DatabaseConfig `yaml:"database"`
	Logger   LoggerConfig   `yaml:"logger"`
	Filters  FilterConfig   `yaml:"filters"`
}

// Load reads an optional .env file, an optional YAML file at path, then
// applies environment overrides and defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(raw, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %q: %w", path, err)
			}
		}
	}

	cfg.Server.Addr = getEnv("DASHBOARD_ADDR", cfg.Server.Addr)
	cfg.Server.GinMode = getEnv("GIN_MODE", cfg.Server.GinMode)
	cfg.Dataset.Source = getEnv("DATASET_SOURCE", cfg.Dataset.Source)
	cfg.Dataset.Timeout = getEnv("DATASET_TIMEOUT", cfg.Dataset.Timeout)
	cfg.Database.DSN = getEnv("DATABASE_DSN", cfg.Database.DSN)
	cfg.Logger.Level = getEnv("LOG_LEVEL", cfg.Logger.Level)
	cfg.Logger.Format = getEnv("LOG_FORMAT", cfg.Logger.Format)

	cfg.applyDefaults()

	if _, err := cfg.Dataset.TimeoutDuration(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8090"
	}
	if c.Server.GinMode == "" {
		c.Server.GinMode = "release"
	}
	if c.Dataset.Source == "" {
		c.Dataset.Source = DefaultSource
	}
	if c.Dataset.Timeout == "" {
		c.Dataset.Timeout = "30s"
	}
	if c.Database.DSN == "" {
		c.Database.DSN = "file::memory:?cache=shared"
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.Format == "" {
		c.Logger.Format = "json"
	}
	c.Logger.Format = strings.ToLower(c.Logger.Format)
	if c.Filters.MinDate == "" {
		c.Filters.MinDate = "2022-07-06"
	}
	if c.Filters.MaxDate == "" {
		c.Filters.MaxDate = "2025-03-31"
	}
	if c.Filters.DefaultStart == "" {
		c.Filters.DefaultStart = "2022-07-13"
	}
	if c.Filters.DefaultEnd == "" {
		c.Filters.DefaultEnd = "2022-07-28"
	}
}

// TimeoutDuration parses Timeout.
func (d DatasetConfig) TimeoutDuration() (time.Duration, error) {
	t, err := time.ParseDuration(d.Timeout)
	if err != nil {
		return 0, fmt.Errorf("config: invalid dataset timeout %q: %w", d.Timeout, err)
	}
	return t, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
