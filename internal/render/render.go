// Package render composites grid damage into ANSI byte sequences written
// directly to the real terminal, the way dcosson-h2's session/client
// RenderScreen/RenderBar write raw "\033[...]" sequences rather than going
// through a TUI widget library — this corpus has none. Color downsampling
// uses github.com/muesli/termenv, the same library the teacher uses for
// terminal background/foreground detection.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"rat/internal/cell"
	"rat/internal/editor"
	"rat/internal/grid"
	"rat/internal/layout"
)

// Renderer writes composited frames to w using a color Profile detected at
// startup (truecolor, ANSI256, ANSI, or Ascii for a dumb terminal).
type Renderer struct {
	w       io.Writer
	profile termenv.Profile
}

// New creates a Renderer. profile is normally termenv.NewOutput(os.Stdout)
// .Profile, detected once before raw mode is entered (teacher's Run()
// calls termenv.NewOutput for the same reason: detection needs cooked
// terminal state).
func New(w io.Writer, profile termenv.Profile) *Renderer {
	return &Renderer{w: w, profile: profile}
}

// PaneGrid renders a terminal pane's damaged rows at offset (area.X,
// area.Y). rows, if non-nil, restricts the redraw to those grid rows
// (grid.TakeDamage()); nil redraws every row in the pane.
func (r *Renderer) PaneGrid(g *grid.Grid, area layout.Rect, rows []int) {
	if rows == nil {
		rows = make([]int, area.H)
		for i := range rows {
			rows[i] = i
		}
	}
	var b strings.Builder
	for _, row := range rows {
		if row < 0 || row >= area.H {
			continue
		}
		b.WriteString(fmt.Sprintf("\x1b[%d;%dH", area.Y+row+1, area.X+1))
		r.writeRow(&b, g, row, area.W)
	}
	io.WriteString(r.w, b.String())
}

func (r *Renderer) writeRow(b *strings.Builder, g *grid.Grid, row, width int) {
	var cur cell.Style
	haveStyle := false
	for col := 0; col < width; col++ {
		c, ok := g.Cell(col, row)
		if !ok {
			c = cell.Blank(cell.Default())
		}
		if !haveStyle || c.Style != cur {
			b.WriteString(r.sgr(c.Style))
			cur = c.Style
			haveStyle = true
		}
		if c.Ch == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteRune(c.Ch)
		}
	}
	b.WriteString("\x1b[0m")
}

// sgr renders a cell.Style as an SGR escape sequence, downsampling truecolor
// through the detected profile so 256-color and basic-ANSI terminals still
// get a reasonable approximation instead of raw garbage codes.
func (r *Renderer) sgr(st cell.Style) string {
	var codes []string
	if st.Attrs.Has(cell.AttrBold) {
		codes = append(codes, "1")
	}
	if st.Attrs.Has(cell.AttrDim) {
		codes = append(codes, "2")
	}
	if st.Attrs.Has(cell.AttrItalic) {
		codes = append(codes, "3")
	}
	if st.Attrs.Has(cell.AttrUnderline) {
		codes = append(codes, "4")
	}
	if st.Attrs.Has(cell.AttrBlink) {
		codes = append(codes, "5")
	}
	if st.Attrs.Has(cell.AttrReverse) {
		codes = append(codes, "7")
	}
	if st.Attrs.Has(cell.AttrHidden) {
		codes = append(codes, "8")
	}
	if st.Attrs.Has(cell.AttrStrikethrough) {
		codes = append(codes, "9")
	}
	codes = append(codes, r.colorCodes(st.Fg, true)...)
	codes = append(codes, r.colorCodes(st.Bg, false)...)
	if len(codes) == 0 {
		return "\x1b[0m"
	}
	return "\x1b[0;" + strings.Join(codes, ";") + "m"
}

func (r *Renderer) colorCodes(c cell.Color, fg bool) []string {
	switch c.Kind {
	case cell.ColorIndexed:
		col := r.profile.Color(fmt.Sprintf("%d", c.Index))
		return ansiCode(col, fg)
	case cell.ColorRGB:
		hex := fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
		col := r.profile.Color(hex)
		return ansiCode(col, fg)
	default:
		return nil
	}
}

func ansiCode(col termenv.Color, fg bool) []string {
	if col == nil {
		return nil
	}
	seq := col.Sequence(!fg)
	if seq == "" {
		return nil
	}
	return []string{seq}
}

// EditorPane renders buf's visible lines, starting at line top, into area.
// Unlike PaneGrid this has no damage tracking of its own: the editor is
// redrawn in full whenever it mutates, since text shaping (line wrap,
// cursor column) changes on nearly every keystroke anyway.
func (r *Renderer) EditorPane(buf *editor.EditorBuffer, area layout.Rect, top int) {
	var b strings.Builder
	for row := 0; row < area.H; row++ {
		line := top + row
		b.WriteString(fmt.Sprintf("\x1b[%d;%dH\x1b[0m", area.Y+row+1, area.X+1))
		text := ""
		if line < buf.Text().LenLines() {
			text = buf.Text().Line(line)
		}
		if len(text) > area.W {
			text = text[:area.W]
		}
		b.WriteString(text)
		pad := area.W - len(text)
		if pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	io.WriteString(r.w, b.String())
}

// GhostText renders completion ghost text at (col, row) within area as a
// faint overlay, never mutating the buffer (spec.md §4.8 "Display
// contract").
func (r *Renderer) GhostText(area layout.Rect, col, row int, text string) {
	if text == "" {
		return
	}
	styled := termenv.String(text).Faint().String()
	fmt.Fprintf(r.w, "\x1b[%d;%dH%s", area.Y+row+1, area.X+col+1, styled)
}

// MoveCursor positions the real terminal cursor, e.g. after a frame so the
// hardware cursor tracks the focused pane's logical cursor.
func (r *Renderer) MoveCursor(area layout.Rect, col, row int) {
	fmt.Fprintf(r.w, "\x1b[%d;%dH", area.Y+row+1, area.X+col+1)
}

// Clear clears the whole physical screen and homes the cursor, used once
// at startup and after a resize (teacher's overlay.go: "\033[2J\033[H").
func (r *Renderer) Clear() {
	io.WriteString(r.w, "\x1b[2J\x1b[H")
}
