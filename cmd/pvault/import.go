package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/matsen/promptvault/internal/backup"
	"github.com/spf13/cobra"
)

var importReplace bool

func init() {
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "Delete prompts that are not in the file")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import prompts from a JSONL backup file",
	Long: `Import prompts from a line-delimited JSON file written by export.

The whole file is validated before anything is written. A malformed line
aborts the import with its line number and leaves the vault unchanged.
Prompts are upserted by id; prompts not in the file are kept unless
--replace is given. With auto_export on, importing a file other than the
vault's export file also rewrites the export, so data_version advances
twice: once for the import and once for the export.

Examples:
  pvault import prompts.jsonl
  pvault import prompts.jsonl --replace`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	root := mustFindVault()
	cfg := mustLoadConfig(root)
	db := mustOpenDatabase(root)
	defer db.Close()

	path, err := filepath.Abs(args[0])
	if err != nil {
		exitWithError(ExitError, "resolving path: %v", err)
	}

	opts := []backup.Option{backup.WithLogger(logger)}
	if importReplace {
		opts = append(opts, backup.WithReplace())
	}

	count, err := backup.Import(db, path, opts...)
	if err != nil {
		exitWithError(importExitCode(err), "importing prompts: %v", err)
	}

	// Import already advanced the marker; only the backup needs refreshing.
	if cfg.AutoExport && path != cfg.ExportPathFor(root) {
		if _, err := backup.Export(db, cfg.ExportPathFor(root), backup.WithLogger(logger)); err != nil {
			logger.Warn("auto-export failed", "err", err)
		}
	}

	if humanOutput {
		fmt.Printf("Imported %d prompts from %s\n", count, path)
	} else {
		outputJSON(TransferResponse{Status: "imported", Path: path, Count: count})
	}

	return nil
}

// importExitCode maps an import failure to an exit code.
func importExitCode(err error) int {
	var lineErr *backup.LineError
	switch {
	case errors.As(err, &lineErr):
		return ExitDataError
	case errors.Is(err, fs.ErrNotExist):
		return ExitNotFound
	default:
		return ExitError
	}
}
