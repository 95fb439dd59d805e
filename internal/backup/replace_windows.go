//go:build windows

package backup

import (
	"fmt"
	"os"
)

// replaceFile renames src over dst. When the rename is refused because dst
// exists, dst is removed and the rename retried. That fallback is not
// atomic: a crash between the two steps leaves no file at dst.
func replaceFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if _, statErr := os.Stat(dst); statErr != nil {
		return err
	}

	if rmErr := os.Remove(dst); rmErr != nil {
		return fmt.Errorf("removing existing file: %w", rmErr)
	}
	return os.Rename(src, dst)
}

// syncDir is a no-op; Windows cannot open a directory for syncing.
var syncDir = func(dir string) error { return nil }
