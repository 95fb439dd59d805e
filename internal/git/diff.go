package git

import (
	"fmt"
	"sort"

	"github.com/matsen/promptvault/internal/prompt"
)

// DiffWorkingTree compares the export file in the working tree to HEAD.
func DiffWorkingTree(repoRoot, path string) (*Diff, error) {
	return DiffSince(repoRoot, path, "HEAD")
}

// DiffSince compares the export file in the working tree to a specific commit.
// Returns ErrNotTracked if git does not track the file, since every prompt
// would otherwise show as added.
func DiffSince(repoRoot, path, commitRef string) (*Diff, error) {
	if !IsFileTracked(repoRoot, path) {
		return nil, fmt.Errorf("%w: %s", ErrNotTracked, path)
	}

	oldPrompts, err := PromptsAtCommit(repoRoot, path, commitRef)
	if err != nil {
		return nil, err
	}

	currentPrompts, err := CurrentPrompts(path)
	if err != nil {
		return nil, err
	}

	return diffPrompts(oldPrompts, currentPrompts), nil
}

// diffPrompts computes the difference between two prompt sets keyed by id.
// Each list in the result is sorted by id.
func diffPrompts(oldPrompts, currentPrompts []prompt.Prompt) *Diff {
	oldMap := make(map[string]prompt.Prompt, len(oldPrompts))
	for _, p := range oldPrompts {
		oldMap[p.ID] = p
	}

	currentMap := make(map[string]prompt.Prompt, len(currentPrompts))
	for _, p := range currentPrompts {
		currentMap[p.ID] = p
	}

	d := &Diff{
		Added:   []prompt.Prompt{},
		Removed: []prompt.Prompt{},
		Changed: []prompt.Prompt{},
	}
	for id, p := range currentMap {
		old, exists := oldMap[id]
		switch {
		case !exists:
			d.Added = append(d.Added, p)
		case !prompt.Equal(old, p):
			d.Changed = append(d.Changed, p)
		}
	}
	for id, p := range oldMap {
		if _, exists := currentMap[id]; !exists {
			d.Removed = append(d.Removed, p)
		}
	}

	sortByID(d.Added)
	sortByID(d.Removed)
	sortByID(d.Changed)
	return d
}

func sortByID(prompts []prompt.Prompt) {
	sort.Slice(prompts, func(i, j int) bool {
		return prompts[i].ID < prompts[j].ID
	})
}
