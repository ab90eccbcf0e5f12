package cell

import "github.com/mattn/go-runewidth"

// RuneWidth returns the terminal column width of r: 0 for zero-width
// combining marks, 1 for normal glyphs, 2 for wide (CJK/emoji) glyphs.
// Grounded on danielgatis/go-headless-term's width.go, which wraps the same
// East-Asian-width table this module imports directly.
func RuneWidth(r rune) int {
	return runewidth.RuneWidth(r)
}
