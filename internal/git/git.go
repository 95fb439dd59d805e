package git

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/matsen/promptvault/internal/backup"
	"github.com/matsen/promptvault/internal/prompt"
)

// ErrNotGitRepo indicates the directory is not a git repository.
var ErrNotGitRepo = errors.New("not a git repository")

// ErrCommitNotFound indicates the specified commit does not exist.
var ErrCommitNotFound = errors.New("commit not found")

// ErrNotTracked indicates the export file has never been added to git.
var ErrNotTracked = errors.New("file not tracked by git")

// FindRepoRoot finds the root of the git repository containing the given path.
// Returns ErrNotGitRepo if not in a git repository.
func FindRepoRoot(path string) (string, error) {
	cmd := exec.Command("git", "-C", path, "rev-parse", "--show-toplevel")
	output, err := cmd.Output()
	if err != nil {
		return "", ErrNotGitRepo
	}
	return strings.TrimSpace(string(output)), nil
}

// ValidateCommit verifies that a commit reference exists.
// Supports SHA, HEAD, HEAD~N, branch names, tags, etc.
// Returns the resolved full SHA or ErrCommitNotFound.
func ValidateCommit(repoRoot, commitRef string) (string, error) {
	cmd := exec.Command("git", "-C", repoRoot, "rev-parse", "--verify", "--quiet", commitRef+"^{commit}")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrCommitNotFound, commitRef)
	}
	return strings.TrimSpace(string(output)), nil
}

// repoRelative returns path relative to repoRoot in git's slash form.
// Both sides are symlink-resolved since git reports the resolved root.
func repoRelative(repoRoot, path string) (string, error) {
	root, err := filepath.EvalSymlinks(repoRoot)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	dir, err := filepath.EvalSymlinks(filepath.Dir(abs))
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(root, filepath.Join(dir, filepath.Base(abs)))
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%s is outside repository %s", path, repoRoot)
	}
	return filepath.ToSlash(rel), nil
}

// PromptsAtCommit decodes the export file at path as it was at commitRef.
// Returns ErrCommitNotFound if the commit doesn't exist, or an empty slice if
// the file didn't exist at that commit.
func PromptsAtCommit(repoRoot, path, commitRef string) ([]prompt.Prompt, error) {
	sha, err := ValidateCommit(repoRoot, commitRef)
	if err != nil {
		return nil, err
	}
	rel, err := repoRelative(repoRoot, path)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command("git", "-C", repoRoot, "show", sha+":"+rel)
	output, err := cmd.Output()
	if err != nil {
		// File might not exist at that commit
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return []prompt.Prompt{}, nil
		}
		return nil, fmt.Errorf("reading %s at %s: %w", rel, commitRef, err)
	}

	_, prompts, err := backup.Decode(bytes.NewReader(output))
	if err != nil {
		return nil, fmt.Errorf("parsing %s at %s: %w", rel, commitRef, err)
	}
	return prompts, nil
}

// CurrentPrompts decodes the export file at path in the working tree.
// A missing file yields an empty slice.
func CurrentPrompts(path string) ([]prompt.Prompt, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []prompt.Prompt{}, nil
		}
		return nil, fmt.Errorf("opening export file: %w", err)
	}
	defer f.Close()

	_, prompts, err := backup.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return prompts, nil
}

// IsFileTracked checks if the file at path is tracked by git.
func IsFileTracked(repoRoot, path string) bool {
	rel, err := repoRelative(repoRoot, path)
	if err != nil {
		return false
	}
	cmd := exec.Command("git", "-C", repoRoot, "ls-files", "--", rel)
	output, err := cmd.Output()
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(output)) != ""
}
