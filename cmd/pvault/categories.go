package main

import (
	"fmt"

	"github.com/matsen/promptvault/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(tagsCmd)
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories with prompt counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCounts("categories", (*storage.DB).Categories)
	},
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags with prompt counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCounts("tags", (*storage.DB).Tags)
	},
}

func runCounts(noun string, query func(*storage.DB) ([]storage.Count, error)) error {
	root := mustFindVault()
	db := mustOpenDatabase(root)
	defer db.Close()

	counts, err := query(db)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if counts == nil {
		counts = []storage.Count{}
	}

	if humanOutput {
		if len(counts) == 0 {
			fmt.Printf("No %s\n", noun)
			return nil
		}
		for _, c := range counts {
			fmt.Printf("  %-24s %d\n", c.Name, c.Count)
		}
	} else {
		outputJSON(counts)
	}

	return nil
}
