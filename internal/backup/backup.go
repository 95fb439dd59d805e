// Package backup exports a prompt store to a line-delimited JSON file and
// imports such files back into a store.
//
// Export writes to a temporary file next to the destination, syncs it and
// renames it into place, so the destination always holds either its previous
// contents or a complete export. Import parses the whole file before touching
// the store and loads it with a single transactional upsert.
//
// Both operations advance the store's data-version marker after, and only
// after, their primary effect has succeeded.
package backup

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/matsen/promptvault/internal/prompt"
)

// MetaStore is the string key/value side table of a store.
type MetaStore interface {
	GetMeta(key string) (string, bool, error)
	SetMeta(key, value string) error
}

// Store is the record store consumed by Export and Import.
type Store interface {
	MetaStore
	ListPrompts() ([]prompt.Prompt, error)
	BulkUpsertPrompts(prompts []prompt.Prompt) error
	SchemaVersion() int
}

// ReplaceStore is a Store that can swap its entire contents in one
// transaction. Required by Import with WithReplace.
type ReplaceStore interface {
	Store
	ReplacePrompts(prompts []prompt.Prompt) error
}

// Errors returned by this package.
var (
	ErrInvalidJSON        = errors.New("invalid JSON")
	ErrInvalidHeader      = errors.New("invalid metadata header")
	ErrReplaceUnsupported = errors.New("store does not support replacing its contents")
)

// LineError reports a failure tied to a 1-based line of an import file.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Option configures Export and Import.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	now     func() time.Time
	replace bool
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithReplace makes Import delete prompts absent from the file, in the same
// transaction as the upsert. The store must implement ReplaceStore.
func WithReplace() Option {
	return func(o *options) {
		o.replace = true
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}
