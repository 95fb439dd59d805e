package main

import (
	"fmt"

	"github.com/matsen/promptvault/internal/clipboard"
	"github.com/spf13/cobra"
)

func init() {
	copyCmd.ValidArgsFunction = completePromptIDs
	rootCmd.AddCommand(copyCmd)
}

var copyCmd = &cobra.Command{
	Use:   "copy <id>",
	Short: "Copy a prompt's content to the clipboard",
	Long: `Copy a prompt's content to the system clipboard.

Uses pbcopy on macOS, clip on Windows, and wl-copy, xclip or xsel on Linux.

Example:
  pvault copy idea-wizard`,
	Args: cobra.ExactArgs(1),
	RunE: runCopy,
}

func runCopy(cmd *cobra.Command, args []string) error {
	if !clipboard.IsAvailable() {
		exitWithError(ExitConfigError, "no clipboard command found\n  Hint: Install pbcopy, clip, wl-copy, xclip or xsel")
	}

	root := mustFindVault()
	db := mustOpenDatabase(root)
	defer db.Close()

	id := args[0]
	p := mustGetPrompt(db, id)

	if err := clipboard.Copy(p.Content); err != nil {
		exitWithError(ExitError, "copying to clipboard: %v", err)
	}

	if humanOutput {
		fmt.Printf("Copied %s to clipboard\n", id)
	} else {
		outputJSON(IDResponse{Status: "copied", ID: id})
	}

	return nil
}
