package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Config is the user-level configuration persisted under the OS config
// directory. It records the default repository path so commands can omit
// an explicit --repository flag, plus a stable installation identifier.
type Config struct {
	Installation      Installation `toml:"installation"`
	DefaultRepository string       `toml:"default_repository"`
}

type Installation struct {
	UUID string `toml:"installation_uuid"`
}

// ConfigFilePath returns the path of the configuration file.
func ConfigFilePath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config directory: %w", err)
	}
	return filepath.Join(configDir, "cellar", "config.toml"), nil
}

// LoadConfig loads the configuration, returning an empty Config when no
// file exists yet.
func LoadConfig() (*Config, error) {
	configPath, err := ConfigFilePath()
	if err != nil {
		return nil, err
	}

	config := &Config{}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return config, nil
}

// SaveConfig persists the configuration.
func SaveConfig(config *Config) error {
	configPath, err := ConfigFilePath()
	if err != nil {
		return err
	}

	if err := SaveTOML(configPath, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// EnsureConfig loads the configuration and guarantees it carries an
// installation UUID, generating and saving one on first use.
func EnsureConfig() (*Config, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	if config.Installation.UUID == "" {
		config.Installation.UUID = uuid.New().String()
		if err := SaveConfig(config); err != nil {
			return nil, err
		}
	}

	return config, nil
}
