package main

import (
	"errors"
	"path/filepath"

	"github.com/matsen/promptvault/internal/git"
)

// mustFindGitRepo finds the git repository containing the vault, exits on error.
func mustFindGitRepo(root string) string {
	repoRoot, err := git.FindRepoRoot(root)
	if err != nil {
		if errors.Is(err, git.ErrNotGitRepo) {
			exitWithError(ExitConfigError, "not in a git repository\n  Hint: Initialize with 'git init' in the directory holding the vault")
		}
		exitWithError(ExitError, "finding git repository: %v", err)
	}
	return repoRoot
}

// mustCheckGitTracking verifies the export file is tracked, exits on error.
func mustCheckGitTracking(repoRoot, exportPath string) {
	if git.IsFileTracked(repoRoot, exportPath) {
		return
	}
	rel, err := filepath.Rel(repoRoot, exportPath)
	if err != nil {
		rel = exportPath
	}
	exitWithError(ExitConfigError, "%s not tracked by git\n  Hint: Run 'git add %s' and commit to start tracking changes", rel, rel)
}
