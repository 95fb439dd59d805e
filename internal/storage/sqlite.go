// Package storage is the embedded SQLite record store for prompts and
// their metadata key/value table.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/matsen/promptvault/internal/prompt"
	_ "modernc.org/sqlite"
)

// SchemaVersion identifies the structural shape of a stored prompt.
// It is stamped into every export header.
const SchemaVersion = 1

// MetaKeySchemaVersion is the metadata key recording the schema version the
// database was created with.
const MetaKeySchemaVersion = "schema_version"

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// Count pairs a name with the number of prompts carrying it.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

const selectPromptFields = `id, title, content, description, category, tags_json`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// OpenMemoryDB opens a private in-memory database.
// The single connection keeps every statement on the same memory database.
func OpenMemoryDB() (*DB, error) {
	return OpenDB(":memory:")
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// SchemaVersion returns the prompt schema version this store writes.
func (d *DB) SchemaVersion() int {
	return SchemaVersion
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS prompts (
			id TEXT PRIMARY KEY CHECK (id <> ''),
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			description TEXT,
			category TEXT,
			tags_json TEXT NOT NULL DEFAULT '[]'
		);

		CREATE INDEX IF NOT EXISTS idx_prompts_category ON prompts(category) WHERE category IS NOT NULL;

		CREATE TABLE IF NOT EXISTS _meta (
			key TEXT PRIMARY KEY,
			value TEXT
		);
	`
	if _, err := db.Exec(schema); err != nil {
		return err
	}

	_, err := db.Exec(`INSERT OR IGNORE INTO _meta (key, value) VALUES (?, ?)`,
		MetaKeySchemaVersion, strconv.Itoa(SchemaVersion))
	return err
}

// ListPrompts returns every prompt ordered by id.
func (d *DB) ListPrompts() ([]prompt.Prompt, error) {
	rows, err := d.db.Query(`SELECT ` + selectPromptFields + ` FROM prompts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing prompts: %w", err)
	}
	defer rows.Close()

	return scanPrompts(rows)
}

// GetPrompt retrieves a prompt by id. Returns nil, nil when it does not exist.
func (d *DB) GetPrompt(id string) (*prompt.Prompt, error) {
	row := d.db.QueryRow(`SELECT `+selectPromptFields+` FROM prompts WHERE id = ?`, id)
	p, err := scanPrompt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting prompt %s: %w", id, err)
	}
	return &p, nil
}

// CountPrompts returns the total number of prompts.
func (d *DB) CountPrompts() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM prompts").Scan(&count)
	return count, err
}

// UpsertPrompt inserts or overwrites a single prompt.
func (d *DB) UpsertPrompt(p prompt.Prompt) error {
	return d.BulkUpsertPrompts([]prompt.Prompt{p})
}

// BulkUpsertPrompts inserts or overwrites prompts by id in a single
// transaction. Any failure rolls back the whole batch.
func (d *DB) BulkUpsertPrompts(prompts []prompt.Prompt) error {
	return d.withTx(func(tx *sql.Tx) error {
		return upsertAll(tx, prompts)
	})
}

// ReplacePrompts deletes every stored prompt and inserts the given set in
// one transaction, so ids absent from prompts do not survive.
func (d *DB) ReplacePrompts(prompts []prompt.Prompt) error {
	return d.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM prompts"); err != nil {
			return fmt.Errorf("clearing prompts table: %w", err)
		}
		return upsertAll(tx, prompts)
	})
}

// DeletePrompt removes a prompt by id and reports whether it existed.
func (d *DB) DeletePrompt(id string) (bool, error) {
	res, err := d.db.Exec("DELETE FROM prompts WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("deleting prompt %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Categories returns category names with prompt counts, ordered by name.
// Prompts without a category are not counted.
func (d *DB) Categories() ([]Count, error) {
	rows, err := d.db.Query(`
		SELECT category, COUNT(*)
		FROM prompts
		WHERE category IS NOT NULL AND category != ''
		GROUP BY category
		ORDER BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var counts []Count
	for rows.Next() {
		var c Count
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// Tags returns tag names with prompt counts, ordered by name.
func (d *DB) Tags() ([]Count, error) {
	rows, err := d.db.Query(`
		SELECT tag.value, COUNT(*)
		FROM prompts, json_each(prompts.tags_json) AS tag
		GROUP BY tag.value
		ORDER BY tag.value
	`)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer rows.Close()

	var counts []Count
	for rows.Next() {
		var c Count
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// GetMeta retrieves a value from the _meta table. The bool is false when
// the key is not set.
func (d *DB) GetMeta(key string) (string, bool, error) {
	var value sql.NullString
	err := d.db.QueryRow("SELECT value FROM _meta WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading meta %s: %w", key, err)
	}
	return value.String, value.Valid, nil
}

// SetMeta stores a value in the _meta table. The write is committed
// before SetMeta returns.
func (d *DB) SetMeta(key, value string) error {
	if _, err := d.db.Exec(`INSERT OR REPLACE INTO _meta (key, value) VALUES (?, ?)`, key, value); err != nil {
		return fmt.Errorf("writing meta %s: %w", key, err)
	}
	return nil
}

func (d *DB) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func upsertAll(tx *sql.Tx, prompts []prompt.Prompt) error {
	stmt, err := tx.Prepare(`
		INSERT INTO prompts (id, title, content, description, category, tags_json)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			description = excluded.description,
			category = excluded.category,
			tags_json = excluded.tags_json
	`)
	if err != nil {
		return fmt.Errorf("preparing prompt upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range prompts {
		tags := p.Tags
		if tags == nil {
			tags = []string{}
		}
		tagsJSON, err := json.Marshal(tags)
		if err != nil {
			return fmt.Errorf("marshaling tags for %s: %w", p.ID, err)
		}

		_, err = stmt.Exec(p.ID, p.Title, p.Content,
			nullableString(p.Description), nullableString(p.Category), string(tagsJSON))
		if err != nil {
			return fmt.Errorf("upserting prompt %q: %w", p.ID, err)
		}
	}
	return nil
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPrompt(s scanner) (prompt.Prompt, error) {
	var p prompt.Prompt
	var description, category sql.NullString
	var tagsJSON string

	if err := s.Scan(&p.ID, &p.Title, &p.Content, &description, &category, &tagsJSON); err != nil {
		return prompt.Prompt{}, err
	}

	if description.Valid {
		p.Description = &description.String
	}
	if category.Valid {
		p.Category = &category.String
	}
	if err := json.Unmarshal([]byte(tagsJSON), &p.Tags); err != nil {
		return prompt.Prompt{}, fmt.Errorf("parsing tags JSON for %s: %w", p.ID, err)
	}
	p.Normalize()

	return p, nil
}

func scanPrompts(rows *sql.Rows) ([]prompt.Prompt, error) {
	var prompts []prompt.Prompt
	for rows.Next() {
		p, err := scanPrompt(rows)
		if err != nil {
			return nil, err
		}
		prompts = append(prompts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading prompt rows: %w", err)
	}
	return prompts, nil
}

func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
