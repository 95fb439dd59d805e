package storage

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/matsen/promptvault/internal/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB opens an in-memory database seeded with test prompts.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := OpenMemoryDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	wizard := prompt.New("idea-wizard", "Idea Wizard", "Generate ideas")
	wizard.Description = prompt.StringPtr("Brainstorming helper")
	wizard.Category = prompt.StringPtr("ideation")
	wizard.Tags = []string{"brainstorm", "creative"}

	debug := prompt.New("debug-helper", "Debug Helper", "Debug issues")
	debug.Category = prompt.StringPtr("debugging")
	debug.Tags = []string{"bugfix", "creative"}

	plain := prompt.New("plain", "Plain", "No extras")

	require.NoError(t, db.BulkUpsertPrompts([]prompt.Prompt{wizard, debug, plain}))
	return db
}

func TestOpenDB_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.db")

	db, err := OpenDB(path)
	require.NoError(t, err)
	require.NoError(t, db.UpsertPrompt(prompt.New("a", "A", "x")))
	require.NoError(t, db.Close())

	// Reopening keeps data and is idempotent for the schema.
	db, err = OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	count, err := db.CountPrompts()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestOpenDB_StampsSchemaVersion(t *testing.T) {
	db, err := OpenMemoryDB()
	require.NoError(t, err)
	defer db.Close()

	value, ok, err := db.GetMeta(MetaKeySchemaVersion)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, strconv.Itoa(SchemaVersion), value)
}

func TestListPrompts_OrderedByID(t *testing.T) {
	db := setupTestDB(t)

	prompts, err := db.ListPrompts()
	require.NoError(t, err)
	require.Len(t, prompts, 3)

	assert.Equal(t, "debug-helper", prompts[0].ID)
	assert.Equal(t, "idea-wizard", prompts[1].ID)
	assert.Equal(t, "plain", prompts[2].ID)
}

func TestListPrompts_Empty(t *testing.T) {
	db, err := OpenMemoryDB()
	require.NoError(t, err)
	defer db.Close()

	prompts, err := db.ListPrompts()
	require.NoError(t, err)
	assert.Empty(t, prompts)
}

func TestGetPrompt_RoundTripsOptionalFields(t *testing.T) {
	db := setupTestDB(t)

	p, err := db.GetPrompt("idea-wizard")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Idea Wizard", p.Title)
	require.NotNil(t, p.Description)
	assert.Equal(t, "Brainstorming helper", *p.Description)
	assert.Equal(t, []string{"brainstorm", "creative"}, p.Tags)

	plain, err := db.GetPrompt("plain")
	require.NoError(t, err)
	require.NotNil(t, plain)
	assert.Nil(t, plain.Description)
	assert.Nil(t, plain.Category)
	assert.Equal(t, []string{}, plain.Tags)
}

func TestGetPrompt_NotFound(t *testing.T) {
	db := setupTestDB(t)

	p, err := db.GetPrompt("missing")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestBulkUpsertPrompts_OverwritesByID(t *testing.T) {
	db := setupTestDB(t)

	updated := prompt.New("plain", "Plain v2", "Rewritten")
	updated.Tags = []string{"new"}
	require.NoError(t, db.BulkUpsertPrompts([]prompt.Prompt{updated}))

	count, err := db.CountPrompts()
	require.NoError(t, err)
	assert.Equal(t, 3, count, "upsert must not duplicate")

	got, err := db.GetPrompt("plain")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, prompt.Equal(updated, *got))
}

func TestBulkUpsertPrompts_RollsBackOnFailure(t *testing.T) {
	db := setupTestDB(t)

	batch := []prompt.Prompt{
		prompt.New("fresh-one", "Fresh", "x"),
		prompt.New("", "Broken", "violates the id check"),
		prompt.New("fresh-two", "Fresh", "y"),
	}
	err := db.BulkUpsertPrompts(batch)
	require.Error(t, err)

	count, err := db.CountPrompts()
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	got, err := db.GetPrompt("fresh-one")
	require.NoError(t, err)
	assert.Nil(t, got, "records before the failure must be rolled back")
}

func TestReplacePrompts(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.ReplacePrompts([]prompt.Prompt{prompt.New("only", "Only", "z")}))

	prompts, err := db.ListPrompts()
	require.NoError(t, err)
	require.Len(t, prompts, 1)
	assert.Equal(t, "only", prompts[0].ID)
}

func TestReplacePrompts_RollsBackDeleteOnFailure(t *testing.T) {
	db := setupTestDB(t)

	err := db.ReplacePrompts([]prompt.Prompt{prompt.New("", "Broken", "x")})
	require.Error(t, err)

	count, err := db.CountPrompts()
	require.NoError(t, err)
	assert.Equal(t, 3, count, "delete-all must roll back with the failed insert")
}

func TestDeletePrompt(t *testing.T) {
	db := setupTestDB(t)

	deleted, err := db.DeletePrompt("plain")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = db.DeletePrompt("plain")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestCategoriesAndTags(t *testing.T) {
	db := setupTestDB(t)

	categories, err := db.Categories()
	require.NoError(t, err)
	assert.Equal(t, []Count{{"debugging", 1}, {"ideation", 1}}, categories)

	tags, err := db.Tags()
	require.NoError(t, err)
	assert.Equal(t, []Count{{"brainstorm", 1}, {"bugfix", 1}, {"creative", 2}}, tags)
}

func TestMeta(t *testing.T) {
	db := setupTestDB(t)

	_, ok, err := db.GetMeta("data_version")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, db.SetMeta("data_version", "2026-01-02T03:04:05Z"))
	require.NoError(t, db.SetMeta("data_version", "2026-02-03T04:05:06Z"))

	value, ok, err := db.GetMeta("data_version")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2026-02-03T04:05:06Z", value)
}
