// Package config provides configuration management for the newsharvest
// application. It handles loading, validation, and access to configuration
// values from a YAML file and environment variables via viper.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/jonesrussell/newsharvest/internal/logger"
)

// Crawl defaults.
const (
	DefaultRetries     = 3
	DefaultWait        = 2 * time.Second
	DefaultLatestPages = 3
	DefaultPageSize    = 10
	DefaultCron        = "0 */1 * * 1-5"
	DefaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36" +
		" (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36"
)

// Server defaults.
const (
	defaultServerAddress      = ":9999"
	defaultServerReadTimeout  = 15 * time.Second
	defaultServerWriteTimeout = 15 * time.Second
	defaultServerIdleTimeout  = 60 * time.Second
)

// Config represents the application configuration.
type Config struct {
	// Logger holds logging configuration
	Logger logger.Config `mapstructure:"logger"`
	// Crawler holds crawl pipeline configuration
	Crawler CrawlerConfig `mapstructure:"crawler"`
	// Database holds PostgreSQL configuration
	Database DatabaseConfig `mapstructure:"database"`
	// Server holds the read-side API server configuration
	Server ServerConfig `mapstructure:"server"`
}

// CrawlerConfig holds crawl pipeline configuration.
type CrawlerConfig struct {
	// Proxy is an optional forward proxy URL for all outbound requests
	Proxy string `mapstructure:"proxy"`
	// Retries bounds network retry attempts per request
	Retries int `mapstructure:"retries"`
	// Wait is the fixed delay between retry attempts
	Wait time.Duration `mapstructure:"wait"`
	// LatestPages is how many recent index pages scan-style sources re-read
	LatestPages int `mapstructure:"latest_pages"`
	// UserAgent is sent on every outbound request
	UserAgent string `mapstructure:"user_agent"`
	// ImageDir is the local directory articles' images are written to
	ImageDir string `mapstructure:"image_dir"`
	// ImageURL is the public URL prefix matching ImageDir
	ImageURL string `mapstructure:"image_url"`
	// Cron is the 5-field schedule for recurring catch-up passes
	Cron string `mapstructure:"cron"`
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// ServerConfig holds the API server configuration.
type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// Load builds the configuration from viper's current state, applying
// defaults for anything the config file and environment left unset.
func Load() (*Config, error) {
	setDefaults()

	var cfg Config
	if err := viper.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Crawler.Retries < 0 {
		return errors.New("crawler.retries must not be negative")
	}
	if c.Crawler.LatestPages <= 0 {
		return errors.New("crawler.latest_pages must be positive")
	}
	if c.Crawler.ImageDir == "" {
		return errors.New("crawler.image_dir is required")
	}
	if c.Database.Host == "" {
		return errors.New("database.host is required")
	}
	if c.Database.DBName == "" {
		return errors.New("database.dbname is required")
	}
	return nil
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("logger", map[string]any{
		"level":        "info",
		"encoding":     "console",
		"output_paths": []string{"stdout", "spider.log"},
		"development":  false,
	})

	viper.SetDefault("crawler", map[string]any{
		"retries":      DefaultRetries,
		"wait":         DefaultWait.String(),
		"latest_pages": DefaultLatestPages,
		"user_agent":   DefaultUserAgent,
		"image_dir":    "./statics",
		"image_url":    "/statics",
		"cron":         DefaultCron,
	})

	viper.SetDefault("database", map[string]any{
		"host":    "127.0.0.1",
		"port":    "5432",
		"user":    "postgres",
		"dbname":  "newsharvest",
		"sslmode": "disable",
	})

	viper.SetDefault("server", map[string]any{
		"address":       defaultServerAddress,
		"read_timeout":  defaultServerReadTimeout.String(),
		"write_timeout": defaultServerWriteTimeout.String(),
		"idle_timeout":  defaultServerIdleTimeout.String(),
	})
}
