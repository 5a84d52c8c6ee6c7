package shared

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var remoteEnv = []string{"SSH_TTY", "SSH_CLIENT", "SSH_CONNECTION", "TMUX", "STY"}

func TestShouldUseOSC52(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		expected bool
	}{
		{"no env vars set", map[string]string{}, false},
		{"SSH_TTY set", map[string]string{"SSH_TTY": "/dev/pts/0"}, true},
		{"SSH_CLIENT set", map[string]string{"SSH_CLIENT": "192.168.1.1 12345 22"}, true},
		{"SSH_CONNECTION set", map[string]string{"SSH_CONNECTION": "192.168.1.1 12345 192.168.1.2 22"}, true},
		{"TMUX set", map[string]string{"TMUX": "/tmp/tmux-1000/default,12345,0"}, true},
		{"STY set (GNU screen)", map[string]string{"STY": "12345.pts-0.hostname"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range remoteEnv {
				t.Setenv(k, "")
			}
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}
			require.Equal(t, tt.expected, shouldUseOSC52())
		})
	}
}

func TestRecordingClipboard(t *testing.T) {
	var c RecordingClipboard
	require.NoError(t, c.Copy("abc"))
	require.NoError(t, c.Copy("def"))
	require.Equal(t, []string{"abc", "def"}, c.Copied)
}

var _ Clipboard = SystemClipboard{}
var _ Clipboard = (*RecordingClipboard)(nil)
