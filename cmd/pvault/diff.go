package main

import (
	"errors"
	"fmt"

	"github.com/matsen/promptvault/internal/git"
	"github.com/matsen/promptvault/internal/prompt"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(diffCmd)
}

var diffCmd = &cobra.Command{
	Use:   "diff [commit]",
	Short: "Show prompts changed since a git commit",
	Long: `Compare the JSONL backup in the working tree with a git commit.

Reports prompts added, removed and changed since the commit (default HEAD).
The vault's export file must live inside a git repository and be tracked
by it; an untracked file is reported as an error rather than as all added.

Examples:
  pvault diff
  pvault diff HEAD~3 --human`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDiff,
}

// DiffResponse is the response for the diff command.
type DiffResponse struct {
	Since string `json:"since"`
	*git.Diff
}

func runDiff(cmd *cobra.Command, args []string) error {
	root := mustFindVault()
	cfg := mustLoadConfig(root)

	exportPath := cfg.ExportPathFor(root)
	repoRoot := mustFindGitRepo(root)
	mustCheckGitTracking(repoRoot, exportPath)

	since := "HEAD"
	var d *git.Diff
	var err error
	if len(args) == 1 {
		since = args[0]
		d, err = git.DiffSince(repoRoot, exportPath, since)
	} else {
		d, err = git.DiffWorkingTree(repoRoot, exportPath)
	}
	if err != nil {
		if errors.Is(err, git.ErrCommitNotFound) {
			exitWithError(ExitNotFound, "%v", err)
		}
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		if d.Empty() {
			fmt.Printf("No prompt changes since %s\n", since)
			return nil
		}
		printDiffSection("+", d.Added)
		printDiffSection("-", d.Removed)
		printDiffSection("~", d.Changed)
	} else {
		outputJSON(DiffResponse{Since: since, Diff: d})
	}

	return nil
}

func printDiffSection(marker string, prompts []prompt.Prompt) {
	for _, p := range prompts {
		fmt.Printf("%s %-24s %s\n", marker, p.ID, truncateString(p.Title, ListTitleMaxLen))
	}
}
