package shared

import (
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/muesli/termenv"
)

// Clipboard defines the interface for clipboard operations.
type Clipboard interface {
	Copy(text string) error
}

// SystemClipboard copies through the platform clipboard tool. Over SSH or
// inside a multiplexer it emits an OSC 52 sequence so the local terminal
// receives the text instead.
type SystemClipboard struct{}

// RecordingClipboard stores what was copied. For tests.
type RecordingClipboard struct {
	Copied []string
}

func (c *RecordingClipboard) Copy(text string) error {
	c.Copied = append(c.Copied, text)
	return nil
}

// Copy copies text to the system clipboard.
func (SystemClipboard) Copy(text string) error {
	if shouldUseOSC52() {
		termenv.NewOutput(os.Stdout).Copy(text)
		return nil
	}

	name, args, err := clipboardCommand()
	if err != nil {
		return err
	}
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

func clipboardCommand() (string, []string, error) {
	switch runtime.GOOS {
	case "darwin":
		return "pbcopy", nil, nil
	case "windows":
		return "clip", nil, nil
	}
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		if _, err := exec.LookPath("wl-copy"); err == nil {
			return "wl-copy", nil, nil
		}
	}
	if _, err := exec.LookPath("xclip"); err == nil {
		return "xclip", []string{"-selection", "clipboard"}, nil
	}
	return "", nil, errors.New("no clipboard tool found (install xclip or wl-clipboard)")
}

// shouldUseOSC52 reports whether the process runs remotely or inside tmux or
// screen, where a local clipboard tool would not reach the user's machine.
func shouldUseOSC52() bool {
	for _, env := range []string{"SSH_TTY", "SSH_CLIENT", "SSH_CONNECTION", "TMUX", "STY"} {
		if os.Getenv(env) != "" {
			return true
		}
	}
	return false
}
