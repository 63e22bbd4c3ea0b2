// Package daemon holds process configuration and assembly: it opens the
// storage handle, wires the registry and ledger, and serves the HTTP API.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the on-disk TOML configuration.
type Config struct {
	API     APIConfig     `toml:"api"`
	Storage StorageConfig `toml:"storage"`
}

// APIConfig holds HTTP server settings.
type APIConfig struct {
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	EnableMetrics bool   `toml:"enable_metrics"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	Dir string `toml:"dir"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Host:          "127.0.0.1",
			Port:          8025,
			EnableMetrics: true,
		},
		Storage: StorageConfig{
			Dir: DefaultDataDir(),
		},
	}
}

// DefaultDataDir returns the storage directory, honoring PFLEGEDESK_HOME.
func DefaultDataDir() string {
	if env := os.Getenv("PFLEGEDESK_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".pflegedesk")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(DefaultDataDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Addr returns the host:port listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.API.Host, c.API.Port)
}
