package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(deleteCmd)
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a prompt",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	root := mustFindVault()
	cfg := mustLoadConfig(root)
	db := mustOpenDatabase(root)
	defer db.Close()

	id := args[0]
	if err := removePrompt(db, id); err != nil {
		exitWithError(notFoundExitCode(err), "%v", err)
	}
	recordChange(root, cfg, db)

	if humanOutput {
		fmt.Printf("Deleted %s\n", id)
	} else {
		outputJSON(IDResponse{Status: "deleted", ID: id})
	}

	return nil
}
