// Package overlay draws one block of text on top of another without
// clearing the screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position specifies where to place the overlay content.
type Position int

const (
	Center Position = iota
	Top
	Bottom
	// Anchored places the top-left corner at (X, Y).
	Anchored
)

// Config controls overlay placement.
type Config struct {
	Width    int // viewport width
	Height   int // viewport height
	Position Position
	PadY     int // distance from the edge for Top and Bottom
	X, Y     int // origin for Anchored
}

// Place renders fg on top of bg. Both may carry ANSI styling; columns are
// measured in printable cells so escape sequences in bg survive the cut.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}

	x, y := origin(cfg, lipgloss.Width(fg), len(fgLines))

	for i, line := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLines[row] = splice(bgLines[row], line, x)
	}
	return strings.Join(bgLines, "\n")
}

// splice replaces the cells of bg starting at column x with fg.
func splice(bg, fg string, x int) string {
	left := ansi.Truncate(bg, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}

	end := x + ansi.StringWidth(fg)
	var right string
	if end < ansi.StringWidth(bg) {
		right = ansi.TruncateLeft(bg, end, "")
	}
	return left + fg + right
}

func origin(cfg Config, fgWidth, fgHeight int) (x, y int) {
	switch cfg.Position {
	case Top:
		x, y = (cfg.Width-fgWidth)/2, cfg.PadY
	case Bottom:
		x, y = (cfg.Width-fgWidth)/2, cfg.Height-fgHeight-cfg.PadY
	case Anchored:
		x, y = cfg.X, cfg.Y
		// Keep the block on screen when the viewport is known.
		if cfg.Width > 0 && x+fgWidth > cfg.Width {
			x = cfg.Width - fgWidth
		}
		if cfg.Height > 0 && y+fgHeight > cfg.Height {
			y = cfg.Height - fgHeight
		}
	default:
		x, y = (cfg.Width-fgWidth)/2, (cfg.Height-fgHeight)/2
	}
	return max(x, 0), max(y, 0)
}
