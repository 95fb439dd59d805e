package clipboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// installed returns a lookPath that finds only the named commands.
func installed(names ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, n := range names {
			if n == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errors.New("not found")
	}
}

func TestCommand(t *testing.T) {
	tests := []struct {
		name      string
		goos      string
		installed []string
		want      []string
	}{
		{"macOS", "darwin", []string{"pbcopy"}, []string{"pbcopy"}},
		{"windows", "windows", []string{"clip"}, []string{"clip"}},
		{"wayland preferred", "linux", []string{"xclip", "wl-copy"}, []string{"wl-copy"}},
		{"xclip", "linux", []string{"xclip", "xsel"}, []string{"xclip", "-selection", "clipboard"}},
		{"xsel fallback", "linux", []string{"xsel"}, []string{"xsel", "--clipboard", "--input"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			argv, err := command(tt.goos, installed(tt.installed...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, argv)
		})
	}
}

func TestCommand_Unavailable(t *testing.T) {
	_, err := command("linux", installed())
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = command("plan9", installed("pbcopy"))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCopy(t *testing.T) {
	if !IsAvailable() {
		t.Skip("clipboard not available on this system")
	}

	// Headless CI may have the command without a display to talk to.
	if err := Copy("test clipboard content"); err != nil {
		t.Skipf("clipboard command present but unusable: %v", err)
	}
}
