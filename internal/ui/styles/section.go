package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Rounded border glyphs used by RenderFormSection.
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// RenderFormSection renders content rows inside a rounded border with the
// title (and optional hint) inlined in the top edge:
//
//	╭─ Title (hint) ─────╮
//	│content             │
//	╰────────────────────╯
//
// Border and title use focusColor when focused, BorderDefaultColor otherwise.
func RenderFormSection(content []string, title, hint string, width int, focused bool, focusColor lipgloss.TerminalColor) string {
	var color lipgloss.TerminalColor = BorderDefaultColor
	if focused {
		color = focusColor
	}
	border := lipgloss.NewStyle().Foreground(color)
	inner := max(width-2, 1)

	var b strings.Builder
	b.WriteString(border.Render(borderTopLeft))
	if title == "" {
		b.WriteString(border.Render(strings.Repeat(borderHorizontal, inner)))
	} else {
		heading := lipgloss.NewStyle().Bold(true).Foreground(color).Render(title)
		if hint != "" {
			heading += " " + HintStyle.Render("("+hint+")")
		}
		fill := max(inner-lipgloss.Width(heading)-3, 0) // "─ " before, " " after
		b.WriteString(border.Render(borderHorizontal+" ") + heading)
		b.WriteString(border.Render(" " + strings.Repeat(borderHorizontal, fill)))
	}
	b.WriteString(border.Render(borderTopRight))

	side := border.Render(borderVertical)
	for _, row := range content {
		b.WriteString("\n" + side + row)
		if w := lipgloss.Width(row); w < inner {
			b.WriteString(strings.Repeat(" ", inner-w))
		}
		b.WriteString(side)
	}

	b.WriteString("\n" + border.Render(borderBottomLeft+strings.Repeat(borderHorizontal, inner)+borderBottomRight))
	return b.String()
}
