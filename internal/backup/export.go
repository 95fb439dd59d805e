package backup

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matsen/promptvault/internal/prompt"
)

// TempSuffix is appended to the destination path to name the temporary
// file an export is written to. A leftover temp file from an interrupted
// export is overwritten by the next one.
const TempSuffix = ".tmp"

// Export writes every prompt in the store to path and returns the number
// of prompts written.
//
// The file is written to path+TempSuffix in the same directory, flushed and
// synced, then renamed over path. The temp file and path must be on the same
// filesystem. Once renamed the new file is in place, so a failure to sync the
// directory afterwards is logged as a warning and the export succeeds.
//
// On Windows an existing destination that cannot be renamed over is removed
// first; a crash between the remove and the rename leaves no file at path.
func Export(store Store, path string, opts ...Option) (int, error) {
	o := newOptions(opts)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("creating export directory: %w", err)
	}

	prompts, err := store.ListPrompts()
	if err != nil {
		return 0, fmt.Errorf("listing prompts: %w", err)
	}

	now := o.now()
	version, err := DataVersion(store, now)
	if err != nil {
		return 0, err
	}

	meta := HeaderMeta{
		Version:       version,
		Count:         len(prompts),
		ExportedAt:    Timestamp(now),
		SchemaVersion: store.SchemaVersion(),
	}

	tmpPath := path + TempSuffix
	if err := writeTemp(tmpPath, meta, prompts); err != nil {
		return 0, err
	}

	if err := replaceFile(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("replacing export file: %w", err)
	}
	if err := syncDir(dir); err != nil {
		o.logger.Warn("export file replaced but directory sync failed", "dir", dir, "err", err)
	}

	newVersion, err := AdvanceDataVersion(store, o.now())
	if err != nil {
		return 0, err
	}

	o.logger.Debug("exported prompts",
		"path", path,
		"count", len(prompts),
		"header_version", version,
		"data_version", newVersion)

	return len(prompts), nil
}

// writeTemp writes the export to tmpPath and syncs it to stable storage.
// On failure the temp file is removed.
func writeTemp(tmpPath string, meta HeaderMeta, prompts []prompt.Prompt) (err error) {
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmpPath)
		}
	}()

	w := bufio.NewWriter(f)
	if err := Encode(w, meta, prompts); err != nil {
		return fmt.Errorf("writing temp file %s: %w", tmpPath, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	return nil
}
