package backup

import (
	"fmt"
	"os"
)

// Import loads the prompts in the file at path into the store and returns
// how many were imported. The header line, if any, is not counted.
//
// The whole file is parsed before the store is touched, so a malformed line
// leaves the store unchanged. Prompts are upserted by id in one transaction;
// prompts already in the store but absent from the file survive unless
// WithReplace is given.
func Import(store Store, path string, opts ...Option) (int, error) {
	o := newOptions(opts)

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening import file: %w", err)
	}
	meta, prompts, err := Decode(f)
	f.Close()
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", path, err)
	}

	if meta != nil {
		if meta.Count != len(prompts) {
			o.logger.Warn("header count does not match prompt lines",
				"path", path, "header_count", meta.Count, "prompts", len(prompts))
		}
		if meta.SchemaVersion > store.SchemaVersion() {
			o.logger.Warn("import file has a newer schema version",
				"path", path, "file_schema", meta.SchemaVersion, "store_schema", store.SchemaVersion())
		}
	}

	if o.replace {
		rs, ok := store.(ReplaceStore)
		if !ok {
			return 0, ErrReplaceUnsupported
		}
		if err := rs.ReplacePrompts(prompts); err != nil {
			return 0, fmt.Errorf("replacing prompts: %w", err)
		}
	} else {
		if err := store.BulkUpsertPrompts(prompts); err != nil {
			return 0, fmt.Errorf("importing prompts: %w", err)
		}
	}

	version, err := AdvanceDataVersion(store, o.now())
	if err != nil {
		return 0, err
	}

	o.logger.Debug("imported prompts",
		"path", path,
		"count", len(prompts),
		"replace", o.replace,
		"data_version", version)

	return len(prompts), nil
}
