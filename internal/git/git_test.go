package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/matsen/promptvault/internal/backup"
	"github.com/matsen/promptvault/internal/prompt"
	"github.com/matsen/promptvault/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(prompts []prompt.Prompt) []string {
	out := []string{}
	for _, p := range prompts {
		out = append(out, p.ID)
	}
	return out
}

func TestDiffPrompts(t *testing.T) {
	kept := prompt.New("kept", "Kept", "same")
	edited := prompt.New("edited", "Edited", "before")
	editedNow := prompt.New("edited", "Edited", "after")
	removed := prompt.New("removed", "Removed", "x")
	addedB := prompt.New("b-added", "B", "x")
	addedA := prompt.New("a-added", "A", "x")

	d := diffPrompts(
		[]prompt.Prompt{kept, edited, removed},
		[]prompt.Prompt{addedB, kept, editedNow, addedA},
	)

	assert.Equal(t, []string{"a-added", "b-added"}, ids(d.Added))
	assert.Equal(t, []string{"removed"}, ids(d.Removed))
	assert.Equal(t, []string{"edited"}, ids(d.Changed))
	assert.Equal(t, "after", d.Changed[0].Content, "changed holds the current version")
	assert.False(t, d.Empty())
}

func TestDiffPrompts_NoChanges(t *testing.T) {
	p := prompt.New("a", "A", "x")
	d := diffPrompts([]prompt.Prompt{p}, []prompt.Prompt{p})
	assert.True(t, d.Empty())
	assert.NotNil(t, d.Added, "empty lists encode as []")
}

// setupRepo creates a git repository with a committed export file.
func setupRepo(t *testing.T) (root, exportPath string, db *storage.DB) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	root = t.TempDir()
	runGit(t, root, "init", "--quiet")

	var err error
	db, err = storage.OpenMemoryDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.BulkUpsertPrompts([]prompt.Prompt{
		prompt.New("first", "First", "one"),
		prompt.New("second", "Second", "two"),
	}))

	exportPath = filepath.Join(root, ".promptvault", "prompts.jsonl")
	_, err = backup.Export(db, exportPath)
	require.NoError(t, err)

	runGit(t, root, "add", ".")
	runGit(t, root, "-c", "user.name=Test", "-c", "user.email=test@example.com",
		"commit", "--quiet", "-m", "initial prompts")
	return root, exportPath, db
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
}

func TestDiffWorkingTree(t *testing.T) {
	root, exportPath, db := setupRepo(t)

	d, err := DiffWorkingTree(root, exportPath)
	require.NoError(t, err)
	assert.True(t, d.Empty(), "fresh commit has no changes")

	_, err = db.DeletePrompt("first")
	require.NoError(t, err)
	require.NoError(t, db.UpsertPrompt(prompt.New("second", "Second", "two, revised")))
	require.NoError(t, db.UpsertPrompt(prompt.New("third", "Third", "three")))
	_, err = backup.Export(db, exportPath)
	require.NoError(t, err)

	d, err = DiffWorkingTree(root, exportPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"third"}, ids(d.Added))
	assert.Equal(t, []string{"first"}, ids(d.Removed))
	assert.Equal(t, []string{"second"}, ids(d.Changed))
}

func TestDiffWorkingTree_UntrackedExportFile(t *testing.T) {
	root, _, db := setupRepo(t)

	untracked := filepath.Join(root, "backup", "prompts.jsonl")
	_, err := backup.Export(db, untracked)
	require.NoError(t, err)

	d, err := DiffWorkingTree(root, untracked)
	assert.ErrorIs(t, err, ErrNotTracked)
	assert.Nil(t, d, "an uncommitted file must not be reported as all added")

	_, err = DiffSince(root, untracked, "HEAD")
	assert.ErrorIs(t, err, ErrNotTracked)
}

func TestDiffSince_StagedButUncommittedFile(t *testing.T) {
	root, _, db := setupRepo(t)

	staged := filepath.Join(root, "backup", "prompts.jsonl")
	_, err := backup.Export(db, staged)
	require.NoError(t, err)
	runGit(t, root, "add", "backup/prompts.jsonl")

	d, err := DiffSince(root, staged, "HEAD")
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, ids(d.Added))
}

func TestPromptsAtCommit_FileAbsent(t *testing.T) {
	root, _, _ := setupRepo(t)

	prompts, err := PromptsAtCommit(root, filepath.Join(root, "elsewhere.jsonl"), "HEAD")
	require.NoError(t, err)
	assert.Empty(t, prompts)
}

func TestPromptsAtCommit_UnknownCommit(t *testing.T) {
	root, exportPath, _ := setupRepo(t)

	_, err := PromptsAtCommit(root, exportPath, "no-such-branch")
	assert.ErrorIs(t, err, ErrCommitNotFound)
}

func TestIsFileTracked(t *testing.T) {
	root, exportPath, _ := setupRepo(t)

	assert.True(t, IsFileTracked(root, exportPath))

	untracked := filepath.Join(root, "scratch.jsonl")
	require.NoError(t, os.WriteFile(untracked, nil, 0644))
	assert.False(t, IsFileTracked(root, untracked))
}

func TestFindRepoRoot_NotRepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	// A temp dir may itself sit inside a checkout on some machines.
	if _, err := FindRepoRoot(os.TempDir()); err == nil {
		t.Skip("temp dir is inside a git repository")
	}

	_, err := FindRepoRoot(t.TempDir())
	assert.ErrorIs(t, err, ErrNotGitRepo)
}

func TestCurrentPrompts_MissingFile(t *testing.T) {
	prompts, err := CurrentPrompts(filepath.Join(t.TempDir(), "missing.jsonl"))
	require.NoError(t, err)
	assert.Empty(t, prompts)
}
