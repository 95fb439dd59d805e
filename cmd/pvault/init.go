package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/matsen/promptvault/internal/backup"
	"github.com/matsen/promptvault/internal/config"
	"github.com/matsen/promptvault/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new prompt vault",
	Long: `Initialize a new prompt vault in the current directory.

Creates:
  .promptvault/
  ├── config.json     # Default config
  ├── prompts.db      # SQLite store (gitignored)
  ├── prompts.jsonl   # JSONL backup, header only
  └── .gitignore`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root, exitCode := getStartingDirectory()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	if config.IsVault(root) {
		exitWithError(ExitError, "directory already contains a prompt vault")
	}

	if err := os.MkdirAll(config.VaultPath(root), 0755); err != nil {
		exitWithError(ExitError, "creating %s directory: %v", config.VaultDir, err)
	}

	ignore := filepath.Join(config.VaultPath(root), ".gitignore")
	if err := os.WriteFile(ignore, []byte(config.DBFile+"\n"+config.DBFile+"-*\n"), 0644); err != nil {
		exitWithError(ExitError, "creating .gitignore: %v", err)
	}

	cfg := config.Default()
	if err := cfg.Save(root); err != nil {
		exitWithError(ExitError, "creating config.json: %v", err)
	}

	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		exitWithError(ExitError, "creating database: %v", err)
	}
	defer db.Close()

	if _, err := backup.Export(db, cfg.ExportPathFor(root), backup.WithLogger(logger)); err != nil {
		exitWithError(ExitError, "writing initial export: %v", err)
	}

	if humanOutput {
		fmt.Printf("Initialized prompt vault in %s\n", root)
	} else {
		outputJSON(StatusResponse{
			Status: "initialized",
			Path:   root,
		})
	}

	return nil
}
