package main

import (
	"os"
	"strings"

	"github.com/matsen/promptvault/internal/config"
	"github.com/matsen/promptvault/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(completionCmd)
	showCmd.ValidArgsFunction = completePromptIDs
	deleteCmd.ValidArgsFunction = completePromptIDs
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate completion scripts for your shell.

Prompt ids are completed for show and delete.

Bash:
  $ source <(pvault completion bash)

Zsh:
  $ pvault completion zsh > "${fpath[1]}/_pvault"

Fish:
  $ pvault completion fish > ~/.config/fish/completions/pvault.fish

PowerShell:
  PS> pvault completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
		}
	},
}

// completePromptIDs completes the first argument with ids from the vault.
// It never exits: completion must stay silent outside a vault.
func completePromptIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	start, exitCode := getStartingDirectory()
	if exitCode != 0 {
		return nil, cobra.ShellCompDirectiveError
	}
	root, err := config.FindVault(start)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer db.Close()

	prompts, err := db.ListPrompts()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var ids []string
	for _, p := range prompts {
		if strings.HasPrefix(p.ID, toComplete) {
			ids = append(ids, p.ID+"\t"+p.Title)
		}
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}
