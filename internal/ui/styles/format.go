package styles

import "github.com/mattn/go-runewidth"

// Truncate shortens s to at most maxWidth terminal cells, ending in "…" when
// cut. Width is measured in cells, so wide (CJK) runes count double.
func Truncate(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	return runewidth.Truncate(s, maxWidth, "…")
}
