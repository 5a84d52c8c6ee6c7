package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/require"
)

func TestForm_Bindings(t *testing.T) {
	require.Equal(t, []string{"tab", "down", "ctrl+n"}, Form.Next.Keys())
	require.Equal(t, []string{"shift+tab", "up", "ctrl+p"}, Form.Prev.Keys())
	require.Equal(t, []string{"enter", " "}, Form.Activate.Keys())
	require.Equal(t, []string{"ctrl+s"}, Form.Submit.Keys())
	require.Equal(t, []string{"ctrl+c", "esc"}, Form.Quit.Keys())
}

func TestDashboard_Bindings(t *testing.T) {
	require.Equal(t, []string{"y"}, Dashboard.CopyToken.Keys())
	require.Equal(t, []string{"q", "ctrl+c"}, Dashboard.Quit.Keys())
}

func TestShortHelp_AllHaveHelpText(t *testing.T) {
	var all []key.Binding
	all = append(all, Form.ShortHelp()...)
	all = append(all, Dashboard.ShortHelp()...)
	for _, b := range all {
		require.NotEmpty(t, b.Help().Key, "binding %v should have help key", b.Keys())
		require.NotEmpty(t, b.Help().Desc, "binding %v should have help desc", b.Keys())
	}
}

func TestForm_NoDuplicateKeys(t *testing.T) {
	seen := map[string]string{}
	for _, b := range Form.ShortHelp() {
		for _, k := range b.Keys() {
			_, dup := seen[k]
			require.False(t, dup, "key %q bound twice", k)
			seen[k] = b.Help().Desc
		}
	}
}
