// Package config loads the nrkeys CLI configuration.
package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	// DefaultEndpoint is the production NerdGraph URL.
	DefaultEndpoint = "https://api.newrelic.com/graphql"

	// DefaultTimeout bounds each API call, in seconds.
	DefaultTimeout = 30

	// APIKeyEnvVar overrides the configured API key when set.
	APIKeyEnvVar = "NEW_RELIC_API_KEY"
)

// Format selects how command results are rendered.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// IsValid returns true if the format is a recognized output format.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTable:
		return true
	default:
		return false
	}
}

// String returns the string representation of the Format.
func (f Format) String() string {
	return string(f)
}

// Config represents the nrkeys CLI configuration
type Config struct {
	Endpoint string `toml:"endpoint"`
	APIKey   string `toml:"api_key,omitempty"`
	Format   Format `toml:"format,omitempty"`
	Verbose  bool   `toml:"verbose,omitempty"`

	// Timeout is the per-call timeout in seconds.
	Timeout int `toml:"timeout,omitempty"`
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		Endpoint: DefaultEndpoint,
		Format:   FormatJSON,
		Timeout:  DefaultTimeout,
	}
}

// IsAuthenticated returns true if an API key is configured
func (c *Config) IsAuthenticated() bool {
	return c.APIKey != ""
}

// Load loads configuration with the following precedence:
// 1. NEW_RELIC_API_KEY environment variable (API key only)
// 2. Local .nrkeysrc file (in current directory)
// 3. Global ~/.nrkeysrc config file
// 4. Default values
func Load() (*Config, error) {
	cfg := DefaultConfig()

	// Try global config first (lower precedence)
	globalPath, err := GlobalConfigPath()
	if err == nil {
		if data, err := os.ReadFile(globalPath); err == nil {
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		}
	}

	// Try local config (higher precedence, overwrites global)
	localPath := LocalConfigPath()
	if data, err := os.ReadFile(localPath); err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	return cfg, nil
}

// LocalConfigPath returns the path to the local config file
func LocalConfigPath() string {
	return ".nrkeysrc"
}

// GlobalConfigPath returns the path to the global config file
// Uses ~/.nrkeysrc on all platforms for consistency
func GlobalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".nrkeysrc"), nil
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyEnv()

	return cfg, nil
}

// applyEnv overrides file-sourced values with environment variables.
func (c *Config) applyEnv() {
	if key := os.Getenv(APIKeyEnvVar); key != "" {
		c.APIKey = key
	}
}

// Save saves the configuration to the global config file
func (c *Config) Save() error {
	path, err := GlobalConfigPath()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
