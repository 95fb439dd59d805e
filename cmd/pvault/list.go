package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	listLimit    int
	listCategory string
	listTag      string
)

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum results to return (0 = all)")
	listCmd.Flags().StringVar(&listCategory, "category", "", "Only prompts in this category")
	listCmd.Flags().StringVar(&listTag, "tag", "", "Only prompts carrying this tag")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List prompts",
	Long: `List prompts in the vault, ordered by id.

Examples:
  pvault list
  pvault list --category coding --limit 10
  pvault list --tag brainstorm --human`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	root := mustFindVault()
	db := mustOpenDatabase(root)
	defer db.Close()

	all, err := db.ListPrompts()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	prompts := selectPrompts(all, listCategory, listTag, listLimit)

	if humanOutput {
		if len(prompts) == 0 {
			fmt.Println("No prompts found")
			return nil
		}
		fmt.Printf("%d prompts:\n\n", len(prompts))
		printPromptList(prompts)
	} else {
		outputJSON(prompts)
	}

	return nil
}
