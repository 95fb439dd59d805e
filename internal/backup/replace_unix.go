//go:build !windows

package backup

import "os"

// replaceFile atomically renames src over dst.
func replaceFile(src, dst string) error {
	return os.Rename(src, dst)
}

// syncDir syncs a directory so a completed rename survives a crash.
var syncDir = func(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
