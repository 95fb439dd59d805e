package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/pvault/config.yml.
type GlobalConfig struct {
	VaultPath       string `yaml:"vault_path,omitempty"`       // Default vault root used outside any vault
	DefaultCategory string `yaml:"default_category,omitempty"` // Category for prompts added without one
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "pvault"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/pvault/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	if cfg.VaultPath != "" {
		cfg.VaultPath = ExpandPath(cfg.VaultPath)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// GetVaultPath returns the configured default vault from global config.
func GetVaultPath() string {
	cfg, err := LoadGlobalConfig()
	if err != nil {
		return ""
	}
	return cfg.VaultPath
}

// GetDefaultCategory returns the category applied to prompts added without one.
func GetDefaultCategory() string {
	cfg, err := LoadGlobalConfig()
	if err != nil {
		return ""
	}
	return cfg.DefaultCategory
}

// ErrVaultPathNotConfigured is returned when vault_path is not set in config.
var ErrVaultPathNotConfigured = errors.New("vault_path not configured")

// ErrVaultPathNotVault is returned when the configured vault_path holds no vault.
var ErrVaultPathNotVault = errors.New("vault_path is not a prompt vault")

// ValidateVaultPath returns the vault path from global config after validation.
// Returns error if not configured or if the path holds no vault.
func ValidateVaultPath() (string, error) {
	path := GetVaultPath()
	if path == "" {
		return "", ErrVaultPathNotConfigured
	}
	if !IsVault(path) {
		return "", fmt.Errorf("%w: %s", ErrVaultPathNotVault, path)
	}
	return path, nil
}

// HelpfulConfigMessage returns a helpful message when no vault can be found.
func HelpfulConfigMessage() string {
	configPath := GlobalConfigPath()
	return fmt.Sprintf(`No prompt vault found.

Run 'pvault init' to create one here, or create %s to set a default vault:
  mkdir -p %s
  echo 'vault_path: /path/to/your/vault' > %s`,
		configPath,
		filepath.Dir(configPath),
		configPath)
}
