// Package config provides the layered configuration for the readorder
// application: defaults, config file, environment variables and CLI flags.
package config

import (
	"fmt"

	"github.com/MeKo-Tech/readorder/internal/layout"
)

// Config represents the complete configuration for the readorder
// application. It covers the order and serve commands and supports loading
// from configuration files, environment variables, and command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Ordering algorithm settings
	Layout layout.Config `mapstructure:"layout" yaml:"layout" json:"layout"`

	// Output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Server configuration (for serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	Format       string `mapstructure:"format" yaml:"format" json:"format"`
	File         string `mapstructure:"file" yaml:"file" json:"file"`
	OverlayFile  string `mapstructure:"overlay_file" yaml:"overlay_file" json:"overlay_file"`
	UnderlayFile string `mapstructure:"underlay_file" yaml:"underlay_file" json:"underlay_file"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string `mapstructure:"host" yaml:"host" json:"host"`
	Port            int    `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin      string `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	MaxBodyMB       int    `mapstructure:"max_body_mb" yaml:"max_body_mb" json:"max_body_mb"`
	TimeoutSec      int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// DefaultConfig returns the configuration defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Layout:   layout.DefaultConfig(),
		Output: OutputConfig{
			Format: "json",
		},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			CORSOrigin:      "*",
			MaxBodyMB:       10,
			TimeoutSec:      30,
			ShutdownTimeout: 10,
		},
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if err := c.Layout.Validate(); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// Validate checks output settings.
func (c OutputConfig) Validate() error {
	switch c.Format {
	case "", "json", "yaml", "text":
		return nil
	default:
		return fmt.Errorf("invalid output format %q (valid: json, yaml, text)", c.Format)
	}
}

// Validate checks server settings.
func (c ServerConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.MaxBodyMB <= 0 {
		return fmt.Errorf("max_body_mb must be positive, got %d", c.MaxBodyMB)
	}
	if c.TimeoutSec <= 0 {
		return fmt.Errorf("timeout_sec must be positive, got %d", c.TimeoutSec)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got %d", c.ShutdownTimeout)
	}
	return nil
}
