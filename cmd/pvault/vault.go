package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/matsen/promptvault/internal/backup"
	"github.com/matsen/promptvault/internal/config"
	"github.com/matsen/promptvault/internal/prompt"
	"github.com/matsen/promptvault/internal/storage"
)

// recordChange advances the data-version marker after a mutation and
// re-exports the backup file when auto_export is on. Export failures are
// logged, not fatal: the mutation itself has already been committed.
func recordChange(root string, cfg *config.Config, db *storage.DB) {
	if _, err := backup.AdvanceDataVersion(db, time.Now()); err != nil {
		logger.Warn("updating data version", "err", err)
	}
	if !cfg.AutoExport {
		return
	}

	path := cfg.ExportPathFor(root)
	if _, err := backup.Export(db, path, backup.WithLogger(logger)); err != nil {
		logger.Warn("auto-export failed", "path", path, "err", err)
	}
}

// lookupPrompt fetches a prompt by id. A missing prompt is reported as
// prompt.ErrNotFound.
func lookupPrompt(db *storage.DB, id string) (*prompt.Prompt, error) {
	p, err := db.GetPrompt(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", prompt.ErrNotFound, id)
	}
	return p, nil
}

// removePrompt deletes a prompt by id. A missing prompt is reported as
// prompt.ErrNotFound.
func removePrompt(db *storage.DB, id string) error {
	deleted, err := db.DeletePrompt(id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: %s", prompt.ErrNotFound, id)
	}
	return nil
}

// mustGetPrompt fetches a prompt by id, exits with ExitNotFound if absent.
func mustGetPrompt(db *storage.DB, id string) *prompt.Prompt {
	p, err := lookupPrompt(db, id)
	if err != nil {
		exitWithError(notFoundExitCode(err), "%v", err)
	}
	return p
}

// notFoundExitCode maps prompt.ErrNotFound to ExitNotFound.
func notFoundExitCode(err error) int {
	if errors.Is(err, prompt.ErrNotFound) {
		return ExitNotFound
	}
	return ExitError
}

// resolveID returns the id for a new prompt: the explicit id if given,
// otherwise a slug of the title, otherwise a random UUID.
func resolveID(explicit, title string) (string, error) {
	id := explicit
	if id == "" {
		id = prompt.Slugify(title)
	}
	if id == "" {
		id = uuid.NewString()
	}
	if err := prompt.ValidateID(id); err != nil {
		return "", fmt.Errorf("%w: %q", err, id)
	}
	return id, nil
}

var errConflictingContent = errors.New("--content and --file are mutually exclusive")

// readContent returns prompt content from --content or --file ("-" reads stdin).
func readContent(content, file string, stdin io.Reader) (string, error) {
	if content != "" && file != "" {
		return "", errConflictingContent
	}
	switch file {
	case "":
		return content, nil
	case "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading content file: %w", err)
		}
		return string(data), nil
	}
}

// selectPrompts applies the list filters. Empty filters match everything.
func selectPrompts(prompts []prompt.Prompt, category, tag string, limit int) []prompt.Prompt {
	var out []prompt.Prompt
	for _, p := range prompts {
		if category != "" && !strings.EqualFold(p.CategoryOr(prompt.Uncategorized), category) {
			continue
		}
		if tag != "" && !p.HasTag(tag) {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	if out == nil {
		out = []prompt.Prompt{}
	}
	return out
}

// cleanTags trims tags and drops empty and duplicate entries, keeping order.
func cleanTags(tags []string) []string {
	out := []string{}
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[strings.ToLower(t)] {
			continue
		}
		seen[strings.ToLower(t)] = true
		out = append(out, t)
	}
	return out
}
