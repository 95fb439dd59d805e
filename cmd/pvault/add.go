package main

import (
	"fmt"
	"os"

	"github.com/matsen/promptvault/internal/config"
	"github.com/matsen/promptvault/internal/prompt"
	"github.com/spf13/cobra"
)

var (
	addID          string
	addContent     string
	addFile        string
	addDescription string
	addCategory    string
	addTags        []string
	addForce       bool
)

func init() {
	addCmd.Flags().StringVar(&addID, "id", "", "Prompt id (default: derived from the title)")
	addCmd.Flags().StringVar(&addContent, "content", "", "Prompt text")
	addCmd.Flags().StringVar(&addFile, "file", "", "Read prompt text from a file (- for stdin)")
	addCmd.Flags().StringVar(&addDescription, "description", "", "Short description")
	addCmd.Flags().StringVar(&addCategory, "category", "", "Category (default: global default_category)")
	addCmd.Flags().StringSliceVar(&addTags, "tag", nil, "Tag (repeatable or comma-separated)")
	addCmd.Flags().BoolVar(&addForce, "force", false, "Overwrite an existing prompt with the same id")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a prompt",
	Long: `Add a prompt to the vault.

Examples:
  pvault add "Idea Wizard" --content "Generate ten ideas about..." --tag brainstorm
  pvault add "Code Review" --file review.md --category coding
  cat prompt.txt | pvault add "Piped" --file -`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	root := mustFindVault()
	cfg := mustLoadConfig(root)
	db := mustOpenDatabase(root)
	defer db.Close()

	title := args[0]
	id, err := resolveID(addID, title)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	content, err := readContent(addContent, addFile, os.Stdin)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	existing, err := db.GetPrompt(id)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if existing != nil && !addForce {
		exitWithError(ExitDataError, "prompt already exists: %s (use --force to overwrite)", id)
	}

	category := addCategory
	if category == "" {
		category = config.GetDefaultCategory()
	}

	p := prompt.New(id, title, content)
	p.Description = prompt.StringPtr(addDescription)
	p.Category = prompt.StringPtr(category)
	p.Tags = cleanTags(addTags)

	if err := db.UpsertPrompt(p); err != nil {
		exitWithError(ExitError, "saving prompt: %v", err)
	}
	recordChange(root, cfg, db)

	if humanOutput {
		verb := "Added"
		if existing != nil {
			verb = "Updated"
		}
		fmt.Printf("%s %s\n", verb, id)
	} else {
		outputJSON(p)
	}

	return nil
}
