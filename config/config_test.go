// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "voxhook.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultsAreValid(t *testing.T) {
	assert.NoError(t, Validate(Defaults()))
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
listen: ":9090"
log_level: debug
rate_limit: 30
dedupe:
  backend: sqlite
  dsn: /tmp/replay.db
  ttl: 45s
`)
	cfg, err := NewLoader(path).Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Listen)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 30, cfg.RateLimit)
	assert.Equal(t, "sqlite", cfg.Dedupe.Backend)
	assert.Equal(t, 45*time.Second, cfg.Dedupe.TTL)
	// Untouched fields keep defaults.
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `listen: ":9090"`)
	t.Setenv("VOXHOOK_LISTEN", ":7070")
	t.Setenv("VOXHOOK_RATE_LIMIT", "120")

	cfg, err := NewLoader(path).Load()
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Listen)
	assert.Equal(t, 120, cfg.RateLimit)
}

func TestStrictParsingRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `listne: ":9090"`)
	_, err := NewLoader(path).Load()
	assert.Error(t, err)
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad listen", func(c *Config) { c.Listen = "nonsense" }},
		{"verify header without value", func(c *Config) { c.VerifyHeader = "X-Key" }},
		{"negative rate limit", func(c *Config) { c.RateLimit = -1 }},
		{"unknown dedupe backend", func(c *Config) { c.Dedupe.Backend = "etcd" }},
		{"redis without dsn", func(c *Config) { c.Dedupe.Backend = "redis" }},
		{"bad telemetry protocol", func(c *Config) { c.Telemetry.Protocol = "udp" }},
		{"sample ratio out of range", func(c *Config) { c.Telemetry.SampleRatio = 1.5 }},
		{"telemetry without endpoint", func(c *Config) { c.Telemetry.Enabled = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			assert.Error(t, Validate(cfg))
		})
	}
}

func TestHolderReload(t *testing.T) {
	path := writeConfig(t, `listen: ":9090"`)
	loader := NewLoader(path)
	cfg, err := loader.Load()
	require.NoError(t, err)

	holder := NewHolder(cfg, loader, path)
	assert.Equal(t, ":9090", holder.Get().Listen)

	require.NoError(t, os.WriteFile(path, []byte(`listen: ":9091"`), 0o600))
	require.NoError(t, holder.Reload(t.Context()))
	assert.Equal(t, ":9091", holder.Get().Listen)
}

func TestHolderKeepsOldConfigOnBadReload(t *testing.T) {
	path := writeConfig(t, `listen: ":9090"`)
	loader := NewLoader(path)
	cfg, err := loader.Load()
	require.NoError(t, err)

	holder := NewHolder(cfg, loader, path)
	require.NoError(t, os.WriteFile(path, []byte(`listen: "broken"`), 0o600))
	assert.Error(t, holder.Reload(t.Context()))
	assert.Equal(t, ":9090", holder.Get().Listen)
}
