// Package config provides configuration management for the journal server.
package config

import (
	"fmt"
	"os"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

const (
	// defaultPort is used when server.port is unset
	defaultPort = 8080
	// defaultStrikeTick is used when journal.strike_tick is unset
	defaultStrikeTick = 0.01
	// defaultStoragePath is used when storage.path is unset
	defaultStoragePath = "journal.json"
)

// Config represents the complete application configuration.
type Config struct {
	Environment EnvironmentConfig `yaml:"environment"`
	Server      ServerConfig      `yaml:"server"`
	Journal     JournalConfig     `yaml:"journal"`
	Storage     StorageConfig     `yaml:"storage"`
}

// EnvironmentConfig defines the environment settings.
type EnvironmentConfig struct {
	LogLevel string `yaml:"log_level"` // debug | info | warn | error
}

// ServerConfig defines dashboard HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
	// AuthToken, when set, is required on every request via X-Auth-Token
	AuthToken string `yaml:"auth_token"`
}

// JournalConfig defines journal-level defaults.
type JournalConfig struct {
	// DefaultSymbol prefills the editor and CSV import rows without a symbol
	DefaultSymbol string `yaml:"default_symbol"`
	// StrikeTick is the increment imported strikes are rounded to
	StrikeTick float64 `yaml:"strike_tick"`
}

// StorageConfig defines storage settings for journal data.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// Load reads and parses the configuration file from the specified path.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- configPath is a user-provided config file path
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var config Config
	dec := yaml.NewDecoder(strings.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate checks that all configuration values are valid and consistent,
// applying defaults for optional fields first.
func (c *Config) Validate() error {
	c.applyDefaults()

	switch c.Environment.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("environment.log_level must be one of debug, info, warn, error (got %q)",
			c.Environment.LogLevel)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in (0, 65535] (got %d)", c.Server.Port)
	}

	if c.Journal.StrikeTick <= 0 {
		return fmt.Errorf("journal.strike_tick must be > 0 (got %g)", c.Journal.StrikeTick)
	}

	if strings.TrimSpace(c.Storage.Path) == "" {
		return fmt.Errorf("storage.path is required")
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.Environment.LogLevel == "" {
		c.Environment.LogLevel = "info"
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	if c.Journal.StrikeTick == 0 {
		c.Journal.StrikeTick = defaultStrikeTick
	}
	if c.Storage.Path == "" {
		c.Storage.Path = defaultStoragePath
	}
}
