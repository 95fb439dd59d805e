package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single prompt by ID",
	Long: `Show a single prompt by its ID.

Example:
  pvault show idea-wizard
  pvault show idea-wizard --human`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	root := mustFindVault()
	db := mustOpenDatabase(root)
	defer db.Close()

	id := args[0]
	p := mustGetPrompt(db, id)

	if humanOutput {
		printPromptDetail(*p)
	} else {
		outputJSON(p)
	}

	return nil
}
