package main

import (
	"fmt"
	"strings"

	"github.com/matsen/promptvault/internal/prompt"
	"github.com/spf13/cobra"
)

var searchLimit int

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "Maximum results to return (0 = all)")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search prompts",
	Long: `Search prompts by id, title, description, category and tags.
Matching is a case-insensitive substring match; prompt content is not searched.

Examples:
  pvault search idea
  pvault search "code review" --human`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	root := mustFindVault()
	db := mustOpenDatabase(root)
	defer db.Close()

	query := strings.Join(args, " ")
	all, err := db.ListPrompts()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	matches := selectPrompts(prompt.Filter(all, query), "", "", searchLimit)

	logger.Debug("search", "query", query, "candidates", len(all), "matches", len(matches))

	if humanOutput {
		if len(matches) == 0 {
			fmt.Printf("No prompts match %q\n", query)
			return nil
		}
		fmt.Printf("%d prompts match %q:\n\n", len(matches), query)
		printPromptList(matches)
	} else {
		outputJSON(matches)
	}

	return nil
}
