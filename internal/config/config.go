// Package config handles vault and global configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents vault configuration stored in .promptvault/config.json.
type Config struct {
	ExportPath string `json:"export_path,omitempty"` // JSONL backup path, relative to the vault root
	AutoExport bool   `json:"auto_export"`           // Re-export after every mutating command
}

const (
	VaultDir   = ".promptvault"
	ConfigFile = "config.json"
	DBFile     = "prompts.db"
	ExportFile = "prompts.jsonl"
)

// Default returns the configuration written by a fresh init.
func Default() *Config {
	return &Config{AutoExport: true}
}

// VaultPath returns the path to the .promptvault directory from a root path.
func VaultPath(root string) string {
	return filepath.Join(root, VaultDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, VaultDir, ConfigFile)
}

// DBPath returns the path to prompts.db from a root path.
func DBPath(root string) string {
	return filepath.Join(root, VaultDir, DBFile)
}

// ExportPathFor returns the JSONL backup path for the vault at root.
// A relative export_path is resolved against root; an empty one defaults to
// prompts.jsonl inside the vault directory.
func (c *Config) ExportPathFor(root string) string {
	if c.ExportPath == "" {
		return filepath.Join(root, VaultDir, ExportFile)
	}
	p := ExpandPath(c.ExportPath)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

// IsVault checks if the given path contains a prompt vault.
func IsVault(root string) bool {
	info, err := os.Stat(VaultPath(root))
	return err == nil && info.IsDir()
}

// FindVault walks up from the given path to find a prompt vault.
// Returns the vault root path or an error if not found.
func FindVault(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsVault(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a prompt vault (no %s directory found)", VaultDir)
		}
		abs = parent
	}
}

// Load reads configuration from the vault at the given root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save writes configuration to the vault at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ValidateExportPath checks that the export path, if set, does not name an
// existing directory.
func ValidateExportPath(root, path string) error {
	if path == "" {
		return nil // Empty means the default location
	}

	resolved := (&Config{ExportPath: path}).ExportPathFor(root)
	info, err := os.Stat(resolved)
	if err == nil && info.IsDir() {
		return fmt.Errorf("export_path is a directory: %s", resolved)
	}
	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
