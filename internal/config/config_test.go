package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
environment:
  log_level: debug
server:
  port: 9090
  auth_token: secret
journal:
  default_symbol: SPX
  strike_tick: 0.05
storage:
  path: /tmp/journal.json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Environment.LogLevel)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "secret", cfg.Server.AuthToken)
	assert.Equal(t, "SPX", cfg.Journal.DefaultSymbol)
	assert.Equal(t, 0.05, cfg.Journal.StrikeTick)
	assert.Equal(t, "/tmp/journal.json", cfg.Storage.Path)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
journal:
  default_symbol: SPY
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Environment.LogLevel)
	assert.Equal(t, defaultPort, cfg.Server.Port)
	assert.Equal(t, defaultStrikeTick, cfg.Journal.StrikeTick)
	assert.Equal(t, defaultStoragePath, cfg.Storage.Path)
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, `
environment:
  log_level: info
  mode: live
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoad_ExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("LEGBOOK_STORAGE", "/data/journal.json")
	path := writeConfig(t, `
storage:
  path: ${LEGBOOK_STORAGE}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/journal.json", cfg.Storage.Path)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad log level", func(c *Config) { c.Environment.LogLevel = "verbose" }, "log_level"},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"negative tick", func(c *Config) { c.Journal.StrikeTick = -0.01 }, "strike_tick"},
		{"blank storage path", func(c *Config) { c.Storage.Path = "   " }, "storage.path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.applyDefaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}
