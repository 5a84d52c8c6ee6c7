package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/rounds/internal/keys"
	"github.com/zjrosen/rounds/internal/ui/styles"
)

// View renders the welcome text with the key hints underneath.
func (m Model) View() string {
	bindings := keys.Dashboard.ShortHelp()
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	footer := styles.HintStyle.Render(strings.Join(hints, " • "))

	content := lipgloss.JoinVertical(lipgloss.Left, m.body, "", footer)
	if m.width <= 0 || m.height <= 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
