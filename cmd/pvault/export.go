package main

import (
	"fmt"
	"path/filepath"

	"github.com/matsen/promptvault/internal/backup"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export prompts to a JSONL backup file",
	Long: `Export every prompt to a line-delimited JSON file.

The first line is a metadata header; each following line is one prompt.
The file is written to a temporary file and renamed into place, so an
interrupted export never leaves a partial file behind.

Without a path, the vault's configured export_path is used.

Examples:
  pvault export
  pvault export ~/backups/prompts.jsonl`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	root := mustFindVault()
	cfg := mustLoadConfig(root)
	db := mustOpenDatabase(root)
	defer db.Close()

	path := cfg.ExportPathFor(root)
	if len(args) == 1 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			exitWithError(ExitError, "resolving path: %v", err)
		}
		path = abs
	}

	count, err := backup.Export(db, path, backup.WithLogger(logger))
	if err != nil {
		exitWithError(ExitError, "exporting prompts: %v", err)
	}

	if humanOutput {
		fmt.Printf("Exported %d prompts to %s\n", count, path)
	} else {
		outputJSON(TransferResponse{Status: "exported", Path: path, Count: count})
	}

	return nil
}
