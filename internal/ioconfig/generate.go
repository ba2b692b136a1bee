package ioconfig

import (
	"fmt"
	"os"

	"github.com/cdrkit/dfextract/internal/iofs"
	"github.com/cdrkit/dfextract/pkg/config"
	"gopkg.in/yaml.v3"
)

// GetConfigDir returns the configuration directory for dfextract.
// Uses ~/.config/dfextract/ on all platforms for consistency.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return config.ConfigDir(homeDir), nil
}

// GetDefaultConfigPath returns the full path to the default config
// file.
func GetDefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return config.ConfigFilePath(homeDir), nil
}

// GenerateDefaultConfig creates a documented default config file at
// the default location. Returns the config path, or an error if the
// file already exists.
func GenerateDefaultConfig() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists at %s", configPath)
	}

	if err := iofs.EnsureDirs(homeDir); err != nil {
		return "", err
	}
	if err := iofs.EnsureConfigFile(homeDir); err != nil {
		return "", err
	}

	return configPath, nil
}

// ConfigFileExists checks if a config file exists at the default
// location.
func ConfigFileExists() (bool, error) {
	configPath, err := GetDefaultConfigPath()
	if err != nil {
		return false, err
	}

	_, err = os.Stat(configPath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// ValidateGeneratedConfig reads and validates a generated config
// file. Used for testing to ensure generated YAML is valid.
func ValidateGeneratedConfig(configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}

	return nil
}
