package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the full Melia configuration
type Config struct {
	ServerURL string        `json:"serverUrl"`
	StateDir  string        `json:"stateDir"`
	Network   NetworkConfig `json:"network"`
	UI        UIConfig      `json:"ui"`
}

// NetworkConfig contains network-related settings
type NetworkConfig struct {
	CheckInterval  int `json:"checkInterval"`
	RequestTimeout int `json:"requestTimeout"`
	RetryAttempts  int `json:"retryAttempts"`
}

// UIConfig contains presentation settings
type UIConfig struct {
	ToastTTLSeconds int  `json:"toastTtlSeconds"`
	ShowTaskRefs    bool `json:"showTaskRefs"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		ServerURL: "https://api.taiga.io/api/v1",
		StateDir:  filepath.Join(homeDir, ".melia"),
		Network: NetworkConfig{
			CheckInterval:  60, // 1 minute
			RequestTimeout: 15,
			RetryAttempts:  3,
		},
		UI: UIConfig{
			ToastTTLSeconds: 4,
			ShowTaskRefs:    true,
		},
	}
}

// LoadConfig loads configuration from the given file, falling back to
// defaults when the file does not exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return MergeWithDefaults(&cfg), nil
}

// SaveConfig saves configuration to the specified path
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// MergeWithDefaults fills in missing values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	if cfg.ServerURL == "" {
		cfg.ServerURL = defaults.ServerURL
	}
	if cfg.StateDir == "" {
		cfg.StateDir = defaults.StateDir
	}

	if cfg.Network.CheckInterval == 0 {
		cfg.Network.CheckInterval = defaults.Network.CheckInterval
	}
	if cfg.Network.RequestTimeout == 0 {
		cfg.Network.RequestTimeout = defaults.Network.RequestTimeout
	}
	if cfg.Network.RetryAttempts == 0 {
		cfg.Network.RetryAttempts = defaults.Network.RetryAttempts
	}

	if cfg.UI.ToastTTLSeconds == 0 {
		cfg.UI.ToastTTLSeconds = defaults.UI.ToastTTLSeconds
	}

	return cfg
}

// Load is a convenience function that loads config from the default
// location (~/.melia/config.json).
func Load() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return LoadConfig(filepath.Join(homeDir, ".melia", "config.json"))
}

// FavoritesPath returns the location of the favorites database.
func (c *Config) FavoritesPath() string {
	return filepath.Join(c.StateDir, "favorites.sqlite")
}

// LogPath returns the location of the application log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.StateDir, "melia.log")
}

// CredentialsPath returns the location of the stored token pair.
func (c *Config) CredentialsPath() string {
	return filepath.Join(c.StateDir, "credentials.json")
}
