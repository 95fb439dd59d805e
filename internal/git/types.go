// Package git compares the prompt export file against its git history.
package git

import "github.com/matsen/promptvault/internal/prompt"

// Diff represents changes to the export file between two git states.
// Changed holds the current version of prompts present in both.
type Diff struct {
	Added   []prompt.Prompt `json:"added"`
	Removed []prompt.Prompt `json:"removed"`
	Changed []prompt.Prompt `json:"changed"`
}

// Empty reports whether the diff contains no changes.
func (d *Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}
