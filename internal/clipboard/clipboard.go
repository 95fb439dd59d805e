// Package clipboard copies prompt text to the system clipboard via the
// platform's clipboard command.
package clipboard

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnavailable is returned when no clipboard command is installed.
var ErrUnavailable = errors.New("clipboard unavailable")

// candidates lists clipboard commands per GOOS, in preference order.
var candidates = map[string][][]string{
	"darwin":  {{"pbcopy"}},
	"windows": {{"clip"}},
	"linux": {
		{"wl-copy"},
		{"xclip", "-selection", "clipboard"},
		{"xsel", "--clipboard", "--input"},
	},
}

// command returns the argv of the first installed clipboard command for goos.
func command(goos string, lookPath func(string) (string, error)) ([]string, error) {
	for _, argv := range candidates[goos] {
		if _, err := lookPath(argv[0]); err == nil {
			return argv, nil
		}
	}
	return nil, ErrUnavailable
}

// IsAvailable reports whether a clipboard command is installed.
func IsAvailable() bool {
	_, err := command(runtime.GOOS, exec.LookPath)
	return err == nil
}

// Copy writes text to the system clipboard.
// Returns ErrUnavailable if no clipboard command is installed.
func Copy(text string) error {
	argv, err := command(runtime.GOOS, exec.LookPath)
	if err != nil {
		return err
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("running %s: %w: %s", argv[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}
