// Package layout computes pane and region rectangles for a given terminal
// size (spec.md §4.11 "Layout / Compositor (C13)"). It is pure geometry: no
// rendering, no model mutation.
package layout

// Rect is a half-open [X, X+W) x [Y, Y+H) screen region in cells.
type Rect struct{ X, Y, W, H int }

// Contains reports whether (col, row) falls within the rectangle.
func (r Rect) Contains(col, row int) bool {
	return col >= r.X && col < r.X+r.W && row >= r.Y && row < r.Y+r.H
}

// Center returns the rectangle's center point, used for directional-focus
// distance comparisons.
func (r Rect) Center() (col, row int) { return r.X + r.W/2, r.Y + r.H/2 }

// PaneLayout enumerates a tab's split arrangement (mirrors
// multiplexer.Layout without importing it, keeping layout dependency-free).
type PaneLayout int

const (
	Single PaneLayout = iota
	VerticalSplit
	Quad2x2
)

// PaneRects returns the pane rectangles for layout within area, in the same
// order panes are stored (spec.md §4.5/§4.11).
func PaneRects(l PaneLayout, area Rect) []Rect {
	switch l {
	case VerticalSplit:
		left := area.W / 2
		return []Rect{
			{X: area.X, Y: area.Y, W: left, H: area.H},
			{X: area.X + left, Y: area.Y, W: area.W - left, H: area.H},
		}
	case Quad2x2:
		left := area.W / 2
		top := area.H / 2
		return []Rect{
			{X: area.X, Y: area.Y, W: left, H: top},
			{X: area.X + left, Y: area.Y, W: area.W - left, H: top},
			{X: area.X, Y: area.Y + top, W: left, H: area.H - top},
			{X: area.X + left, Y: area.Y + top, W: area.W - left, H: area.H - top},
		}
	default:
		return []Rect{area}
	}
}

// Frame is the whole-screen composition: the terminal-multiplexer area,
// the editor area (empty if IDE is hidden), and the bottom bars (spec.md
// §4.11).
type Frame struct {
	Terminals Rect
	Editor    Rect // zero value if IDE hidden
	StatusBar Rect
	HintBar   Rect // zero value if no hint bar configured
}

// Config is the subset of persisted configuration the compositor reads
// (spec.md §6).
type Config struct {
	IDEVisible bool
	SplitRatio float64 // (0.1, 0.9)
	ShowHint   bool
}

// Compose lays out the full frame for a (W, H) terminal size.
func Compose(w, h int, cfg Config) Frame {
	bars := 1
	if cfg.ShowHint {
		bars++
	}
	contentH := h - bars
	if contentH < 0 {
		contentH = 0
	}
	var f Frame
	f.StatusBar = Rect{X: 0, Y: h - 1, W: w, H: 1}
	if cfg.ShowHint {
		f.HintBar = Rect{X: 0, Y: h - 2, W: w, H: 1}
	}
	if !cfg.IDEVisible {
		f.Terminals = Rect{X: 0, Y: 0, W: w, H: contentH}
		return f
	}
	ratio := cfg.SplitRatio
	if ratio < 0.1 {
		ratio = 0.1
	}
	if ratio > 0.9 {
		ratio = 0.9
	}
	splitCol := int(float64(w) * ratio)
	f.Terminals = Rect{X: 0, Y: 0, W: splitCol, H: contentH}
	f.Editor = Rect{X: splitCol, Y: 0, W: w - splitCol, H: contentH}
	return f
}

// OverlayAnchor is a named 3x3 grid cell a modal overlay can anchor to
// (spec.md §4.11 "3x3 named grid").
type OverlayAnchor int

const (
	AnchorTopLeft OverlayAnchor = iota
	AnchorTopCenter
	AnchorTopRight
	AnchorMiddleLeft
	AnchorCenter
	AnchorMiddleRight
	AnchorBottomLeft
	AnchorBottomCenter
	AnchorBottomRight
)

// OverlayRect positions an overlay of size (w, h) within area at anchor, or
// at an absolute cell offset if abs is non-nil.
func OverlayRect(area Rect, anchor OverlayAnchor, w, h int, abs *struct{ X, Y int }) Rect {
	if abs != nil {
		return Rect{X: area.X + abs.X, Y: area.Y + abs.Y, W: w, H: h}
	}
	col := int(anchor) % 3
	row := int(anchor) / 3
	x := area.X + col*(area.W-w)/2
	y := area.Y + row*(area.H-h)/2
	return Rect{X: x, Y: y, W: w, H: h}
}
