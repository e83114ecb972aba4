// SPDX-License-Identifier: MIT

// Package config loads service configuration with precedence
// ENV > file > defaults, strict YAML parsing, and optional hot reload.
package config

import (
	"fmt"
	"net"
	"time"
)

// Config is the full service configuration for a webhook deployment.
type Config struct {
	// Listen is the HTTP bind address, host:port.
	Listen string `yaml:"listen"`

	// VerifyHeader / VerifyValue gate inbound requests when both are set.
	VerifyHeader string `yaml:"verify_header"`
	VerifyValue  string `yaml:"verify_value"`

	LogLevel string `yaml:"log_level"`

	// RateLimit is the per-client request budget per minute; zero disables
	// limiting.
	RateLimit int `yaml:"rate_limit"`

	// ReadTimeout / WriteTimeout / ShutdownTimeout bound the HTTP server.
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	Dedupe    DedupeConfig    `yaml:"dedupe"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// DedupeConfig selects the replay-suppression backend.
type DedupeConfig struct {
	// Backend is one of "", "memory", "redis", "badger", "sqlite". Empty
	// disables replay suppression entirely.
	Backend string        `yaml:"backend"`
	DSN     string        `yaml:"dsn"`
	TTL     time.Duration `yaml:"ttl"`
}

// TelemetryConfig configures trace export.
type TelemetryConfig struct {
	// Enabled turns on OTLP trace export.
	Enabled bool `yaml:"enabled"`
	// Endpoint is the OTLP collector address.
	Endpoint string `yaml:"endpoint"`
	// Protocol is "grpc" or "http".
	Protocol string `yaml:"protocol"`
	// SampleRatio is the head-sampling ratio in [0, 1].
	SampleRatio float64 `yaml:"sample_ratio"`
}

// Defaults returns the baseline configuration.
func Defaults() Config {
	return Config{
		Listen:          ":8080",
		LogLevel:        "info",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		Dedupe: DedupeConfig{
			TTL: 30 * time.Second,
		},
		Telemetry: TelemetryConfig{
			Protocol:    "grpc",
			SampleRatio: 1.0,
		},
	}
}

// Validate rejects configurations the server cannot run with. It never
// mutates; an invalid config leaves any previously applied one in place.
func Validate(cfg Config) error {
	if _, _, err := net.SplitHostPort(cfg.Listen); err != nil {
		return fmt.Errorf("invalid listen address %q: %w", cfg.Listen, err)
	}
	if (cfg.VerifyHeader == "") != (cfg.VerifyValue == "") {
		return fmt.Errorf("verify_header and verify_value must be set together")
	}
	if cfg.RateLimit < 0 {
		return fmt.Errorf("rate_limit must not be negative")
	}
	switch cfg.Dedupe.Backend {
	case "", "memory", "redis", "badger", "sqlite":
	default:
		return fmt.Errorf("unknown dedupe backend %q", cfg.Dedupe.Backend)
	}
	if cfg.Dedupe.Backend != "" && cfg.Dedupe.Backend != "memory" && cfg.Dedupe.DSN == "" {
		return fmt.Errorf("dedupe backend %q requires a dsn", cfg.Dedupe.Backend)
	}
	switch cfg.Telemetry.Protocol {
	case "grpc", "http":
	default:
		return fmt.Errorf("telemetry protocol must be grpc or http, got %q", cfg.Telemetry.Protocol)
	}
	if cfg.Telemetry.SampleRatio < 0 || cfg.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("telemetry sample_ratio must be within [0, 1]")
	}
	if cfg.Telemetry.Enabled && cfg.Telemetry.Endpoint == "" {
		return fmt.Errorf("telemetry enabled without endpoint")
	}
	return nil
}
