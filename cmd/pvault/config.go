package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matsen/promptvault/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set vault configuration values.

Usage:
  pvault config                              # Show all config
  pvault config export-path                  # Get specific value
  pvault config export-path backup/p.jsonl   # Set value
  pvault config auto-export false            # Disable auto-export

Keys:
  export-path  JSONL backup path, relative to the vault root (default .promptvault/prompts.jsonl)
  auto-export  Re-export the backup after every change (true/false)`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	root := mustFindVault()
	cfg := mustLoadConfig(root)

	// No args: show all config
	if len(args) == 0 {
		if humanOutput {
			fmt.Printf("export-path: %s\n", cfg.ExportPathFor(root))
			fmt.Printf("auto-export: %t\n", cfg.AutoExport)
		} else {
			outputJSON(ConfigResponse{
				ExportPath: cfg.ExportPathFor(root),
				AutoExport: cfg.AutoExport,
			})
		}
		return nil
	}

	key := args[0]
	normalizedKey := normalizeKey(key)

	// One arg: get specific value
	if len(args) == 1 {
		switch normalizedKey {
		case "export-path":
			if humanOutput {
				fmt.Println(cfg.ExportPathFor(root))
			} else {
				outputJSON(map[string]string{"export_path": cfg.ExportPathFor(root)})
			}
		case "auto-export":
			if humanOutput {
				fmt.Println(cfg.AutoExport)
			} else {
				outputJSON(map[string]bool{"auto_export": cfg.AutoExport})
			}
		default:
			exitWithError(ExitError, "unknown configuration key: %s", key)
		}
		return nil
	}

	// Two args: set value
	value := args[1]
	if err := applyConfigValue(cfg, root, normalizedKey, value); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	if err := cfg.Save(root); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Updated %s to %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{
			Status: "updated",
			Key:    normalizedKey,
			Value:  value,
		})
	}

	return nil
}

// applyConfigValue validates value and sets it on cfg.
func applyConfigValue(cfg *config.Config, root, key, value string) error {
	switch key {
	case "export-path":
		if err := config.ValidateExportPath(root, value); err != nil {
			return err
		}
		cfg.ExportPath = value
	case "auto-export":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid auto-export value %q (want true or false)", value)
		}
		cfg.AutoExport = b
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

// normalizeKey converts key formats (export-path, export_path, Export_Path) to consistent format
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "-")
	return key
}
