// Package cell defines the glyph and style primitives the terminal grid is
// built from: a Cell (one grid position), a Color (indexed, 24-bit, or
// default), and an Attrs bitmask of SGR attributes.
package cell

// Attrs is a bitmask of SGR text attributes.
type Attrs uint16

const (
	AttrBold Attrs = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrReverse
	AttrHidden
	AttrStrikethrough
)

// Has reports whether all bits in other are set.
func (a Attrs) Has(other Attrs) bool { return a&other == other }

// ColorKind discriminates how a Color's value should be interpreted.
type ColorKind uint8

const (
	ColorDefault ColorKind = iota
	ColorIndexed
	ColorRGB
)

// Color is a terminal color: the zero value is ColorDefault (inherits the
// theme's default foreground/background).
type Color struct {
	Kind       ColorKind
	Index      uint8 // valid when Kind == ColorIndexed (0-255)
	R, G, B    uint8 // valid when Kind == ColorRGB
}

// Indexed builds an indexed (0-255) color.
func Indexed(i uint8) Color { return Color{Kind: ColorIndexed, Index: i} }

// RGB builds a 24-bit true color.
func RGB(r, g, b uint8) Color { return Color{Kind: ColorRGB, R: r, G: g, B: b} }

// Style is the current SGR state the parser accumulates; cells inherit it
// at write time (spec.md §4.1 "Style stack").
type Style struct {
	Fg    Color
	Bg    Color
	Attrs Attrs
}

// Default returns the reset SGR state.
func Default() Style { return Style{} }

// WideSentinel marks the rune stored in the second column of a wide
// (double-width) cell; it is never rendered directly.
const WideSentinel rune = 0

// Cell is one grid position: a glyph plus the style it was written with.
//
// Invariant (spec.md §3): a wide cell occupies two adjacent columns. The
// first cell carries Ch and IsWide=true; the second carries Ch=WideSentinel
// and IsWideTail=true, and renders nothing on its own.
type Cell struct {
	Ch         rune
	Style      Style
	IsWide     bool
	IsWideTail bool
}

// Blank is the cell written by erase operations: a space in the current
// style (SGR background still applies to erased regions).
func Blank(st Style) Cell {
	return Cell{Ch: ' ', Style: st}
}

// IsBlank reports whether the cell holds a space or no rune, whatever its
// style, used by selection extraction to trim trailing whitespace per line.
func (c Cell) IsBlank() bool {
	return c.Ch == ' ' || c.Ch == 0
}
