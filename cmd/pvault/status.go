package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/matsen/promptvault/internal/backup"
	"github.com/matsen/promptvault/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show vault statistics and backup state",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

// StatusReport is the response for the status command.
type StatusReport struct {
	Root          string             `json:"root"`
	Prompts       int                `json:"prompts"`
	Categories    int                `json:"categories"`
	Tags          int                `json:"tags"`
	DataVersion   string             `json:"data_version,omitempty"`
	SchemaVersion int                `json:"schema_version"`
	ExportPath    string             `json:"export_path"`
	AutoExport    bool               `json:"auto_export"`
	Export        *backup.HeaderMeta `json:"export,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	root := mustFindVault()
	cfg := mustLoadConfig(root)
	db := mustOpenDatabase(root)
	defer db.Close()

	report, err := buildStatus(db, root, cfg.ExportPathFor(root))
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	report.AutoExport = cfg.AutoExport

	if humanOutput {
		printStatus(report)
	} else {
		outputJSON(report)
	}

	return nil
}

func buildStatus(db *storage.DB, root, exportPath string) (*StatusReport, error) {
	report := &StatusReport{
		Root:          root,
		SchemaVersion: db.SchemaVersion(),
		ExportPath:    exportPath,
	}

	var err error
	if report.Prompts, err = db.CountPrompts(); err != nil {
		return nil, fmt.Errorf("counting prompts: %w", err)
	}
	categories, err := db.Categories()
	if err != nil {
		return nil, err
	}
	report.Categories = len(categories)
	tags, err := db.Tags()
	if err != nil {
		return nil, err
	}
	report.Tags = len(tags)

	// The marker is reported as stored; an unset marker stays empty.
	if report.DataVersion, _, err = db.GetMeta(backup.DataVersionKey); err != nil {
		return nil, err
	}

	header, err := backup.ReadHeader(exportPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		logger.Warn("reading export header", "path", exportPath, "err", err)
	default:
		report.Export = header
	}

	return report, nil
}

func printStatus(r *StatusReport) {
	fmt.Printf("Vault:          %s\n", r.Root)
	fmt.Printf("Prompts:        %d\n", r.Prompts)
	fmt.Printf("Categories:     %d\n", r.Categories)
	fmt.Printf("Tags:           %d\n", r.Tags)
	if r.DataVersion != "" {
		fmt.Printf("Data version:   %s\n", r.DataVersion)
	} else {
		fmt.Println("Data version:   (never changed)")
	}
	fmt.Printf("Schema version: %d\n", r.SchemaVersion)
	fmt.Println()
	fmt.Printf("Export path:    %s\n", r.ExportPath)
	fmt.Printf("Auto-export:    %t\n", r.AutoExport)
	if r.Export == nil {
		fmt.Println("Last export:    (none)")
		return
	}
	fmt.Printf("Last export:    %s (%d prompts, data version %s)\n",
		r.Export.ExportedAt, r.Export.Count, r.Export.Version)
}
