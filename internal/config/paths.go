package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetConfigDir returns the path to the TermTacToe configuration directory.
// It returns ~/.termtactoe/ or an error if the home directory cannot be
// determined.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".termtactoe"), nil
}

// GetConfigPath returns the absolute path to the configuration file at
// ~/.termtactoe/config.toml.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}
