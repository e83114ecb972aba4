// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Loader loads configuration with precedence ENV > file > defaults.
type Loader struct {
	configPath string
}

// NewLoader creates a loader. An empty path means ENV-only configuration.
func NewLoader(configPath string) *Loader {
	return &Loader{configPath: configPath}
}

// Load resolves the effective configuration: defaults first, then the YAML
// file (strict, unknown keys rejected), then environment overrides, then
// validation.
func (l *Loader) Load() (Config, error) {
	cfg := Defaults()

	if l.configPath != "" {
		if err := l.mergeFile(&cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}
	mergeEnv(&cfg)

	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (l *Loader) mergeFile(cfg *Config) error {
	path := filepath.Clean(l.configPath)
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}

	// #nosec G304 -- configuration file paths are provided by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("strict config parse error: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("config file contains multiple documents or trailing content")
	}
	return nil
}

// Environment keys. Every key carries the VOXHOOK_ prefix.
const (
	envListen          = "VOXHOOK_LISTEN"
	envVerifyHeader    = "VOXHOOK_VERIFY_HEADER"
	envVerifyValue     = "VOXHOOK_VERIFY_VALUE"
	envLogLevel        = "VOXHOOK_LOG_LEVEL"
	envRateLimit       = "VOXHOOK_RATE_LIMIT"
	envDedupeBackend   = "VOXHOOK_DEDUPE_BACKEND"
	envDedupeDSN       = "VOXHOOK_DEDUPE_DSN"
	envDedupeTTL       = "VOXHOOK_DEDUPE_TTL"
	envOTLPEnabled     = "VOXHOOK_OTLP_ENABLED"
	envOTLPEndpoint    = "VOXHOOK_OTLP_ENDPOINT"
	envOTLPProtocol    = "VOXHOOK_OTLP_PROTOCOL"
	envOTLPSampleRatio = "VOXHOOK_OTLP_SAMPLE_RATIO"
)

func mergeEnv(cfg *Config) {
	setString(&cfg.Listen, envListen)
	setString(&cfg.VerifyHeader, envVerifyHeader)
	setString(&cfg.VerifyValue, envVerifyValue)
	setString(&cfg.LogLevel, envLogLevel)
	setInt(&cfg.RateLimit, envRateLimit)
	setString(&cfg.Dedupe.Backend, envDedupeBackend)
	setString(&cfg.Dedupe.DSN, envDedupeDSN)
	setDuration(&cfg.Dedupe.TTL, envDedupeTTL)
	setBool(&cfg.Telemetry.Enabled, envOTLPEnabled)
	setString(&cfg.Telemetry.Endpoint, envOTLPEndpoint)
	setString(&cfg.Telemetry.Protocol, envOTLPProtocol)
	setFloat(&cfg.Telemetry.SampleRatio, envOTLPSampleRatio)
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setFloat(dst *float64, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
