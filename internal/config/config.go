package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Align   AlignConfig   `mapstructure:"align"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host     string `mapstructure:"host"`      // Bind address (e.g. 0.0.0.0 for all interfaces)
	HTTPPort int    `mapstructure:"http_port"` // HTTP server port
}

// AuthConfig represents authentication configuration
type AuthConfig struct {
	Enabled bool     `mapstructure:"enabled"`  // Enable/disable API key authentication
	APIKeys []string `mapstructure:"api_keys"` // List of valid API keys
}

// AlignConfig carries the alignment defaults applied when a request leaves
// them unspecified
type AlignConfig struct {
	TimeField            string        `mapstructure:"time_field"`           // Timestamp field name (default: date_time)
	Layout               string        `mapstructure:"layout"`               // Timestamp layout for string timestamps
	Timezone             string        `mapstructure:"timezone"`             // Zone for epoch timestamps (e.g. "Asia/Tokyo", "UTC")
	MaxPoints            int           `mapstructure:"max_points"`           // Cap on input points per request
	DownsampleThreshold  int           `mapstructure:"downsample_threshold"` // Target point count for downsampled responses
	DefaultRangeInterval time.Duration `mapstructure:"range_interval"`       // Step for date-range generation
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr or a file path
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid http_port: %d", c.Server.HTTPPort)
	}
	if c.Align.TimeField == "" {
		return fmt.Errorf("align.time_field must not be empty")
	}
	if c.Align.MaxPoints <= 0 {
		return fmt.Errorf("align.max_points must be positive, got %d", c.Align.MaxPoints)
	}
	if c.Align.Timezone != "" {
		if _, err := time.LoadLocation(c.Align.Timezone); err != nil {
			return fmt.Errorf("invalid align.timezone %q: %w", c.Align.Timezone, err)
		}
	}
	return nil
}

// Location resolves the configured timezone, defaulting to the host zone.
func (c *AlignConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
