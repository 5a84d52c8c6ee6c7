// Package markdown renders markdown for the terminal with glamour.
package markdown

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// noMarginStyle drops glamour's document margin so output lines up with the
// surrounding lipgloss layout.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer is a glamour renderer with a fixed wrap width.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// New creates a renderer. style is "dark", "light", or "" for terminal detection.
func New(width int, style string) (*Renderer, error) {
	styleOpt := glamour.WithAutoStyle()
	switch style {
	case "":
	case "dark", "light":
		styleOpt = glamour.WithStandardStyle(style)
	default:
		return nil, fmt.Errorf("unknown markdown style %q", style)
	}

	r, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{renderer: r, width: width}, nil
}

func (r *Renderer) Width() int {
	return r.width
}

// Render transforms markdown to styled terminal output.
func (r *Renderer) Render(md string) (string, error) {
	return r.renderer.Render(md)
}
