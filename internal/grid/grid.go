// Package grid implements the terminal screen buffer: a fixed cols×rows
// viewport, a bounded scrollback ring, cursor motion, scroll regions, the
// primary/alternate screen pair, damage tracking, and text selection.
//
// Grid is the direct consumer of the ANSI parser's actions (internal/ansi);
// nothing here parses bytes — it only applies already-decoded operations to
// cells, grounded on danielgatis/go-headless-term's buffer.go/cursor.go
// split between byte decoding and cell mutation.
package grid

import (
	"rat/internal/cell"
	"rat/internal/errs"
)

// DefaultScrollback is the default scrollback ring capacity (spec.md §3).
const DefaultScrollback = 10000

// Cursor is the grid's cursor position and visibility; the DECSC/DECRC
// (ESC 7 / ESC 8) snapshot is held separately as a SavedCursor.
type Cursor struct {
	Col, Row int
	Visible  bool
}

// SavedCursor holds a DECSC snapshot: position and the style in effect.
type SavedCursor struct {
	Cursor
	Style cell.Style
}

// ScrollRegion is the DECSTBM top/bottom pair scroll operations honor.
type ScrollRegion struct {
	Top, Bottom int // [Top, Bottom), 0 ≤ Top ≤ Bottom ≤ rows
}

// SelectionMode discriminates how Selection.Extract reads back text.
type SelectionMode int

const (
	SelectChar SelectionMode = iota
	SelectLine
	SelectBlock
)

// Selection is an active text selection, in viewport row coordinates
// (row 0 is the top visible row of the active buffer); scrollback rows
// cannot be selected.
type Selection struct {
	Anchor, Head struct{ Col, Row int }
	Mode         SelectionMode
	Active       bool
}

// row is one line of cells plus metadata the parser needs per row.
type row struct {
	cells   []cell.Cell
	wrapped bool // soft-wrapped into the next row (no hard newline)
}

func newRow(cols int, st cell.Style) row {
	r := row{cells: make([]cell.Cell, cols)}
	for i := range r.cells {
		r.cells[i] = cell.Blank(st)
	}
	return r
}

// Grid is the full terminal screen state: primary buffer, alternate
// buffer, scrollback, cursor, scroll region, damage set, and selection.
type Grid struct {
	Cols, Rows int

	primary   []row
	alternate []row
	active    *[]row // points at &primary or &alternate
	onAlt     bool

	scrollback     []row
	scrollbackCap  int

	cursor      Cursor
	saved       *SavedCursor
	savedAlt    *SavedCursor
	region      ScrollRegion
	originMode  bool
	autoWrap    bool
	style       cell.Style // current SGR state new writes inherit

	damage map[int]bool

	sel Selection

	debug bool // when true, OutOfBounds panics instead of clamping (spec.md §4.2)
}

// New creates a Grid of the given size with the default scrollback capacity.
func New(cols, rows int) *Grid {
	return NewWithScrollback(cols, rows, DefaultScrollback)
}

// NewWithScrollback creates a Grid with an explicit scrollback capacity.
func NewWithScrollback(cols, rows, scrollbackCap int) *Grid {
	g := &Grid{
		Cols: cols, Rows: rows,
		scrollbackCap: scrollbackCap,
		autoWrap:      true,
		region:        ScrollRegion{Top: 0, Bottom: rows},
		damage:        make(map[int]bool, rows),
	}
	g.primary = make([]row, rows)
	g.alternate = make([]row, rows)
	for i := range g.primary {
		g.primary[i] = newRow(cols, cell.Default())
		g.alternate[i] = newRow(cols, cell.Default())
	}
	g.active = &g.primary
	g.cursor.Visible = true
	return g
}

// SetDebug toggles fatal-on-OutOfBounds behavior (spec.md §4.2: "fatal in
// debug, silently clamped in release, logged either way").
func (g *Grid) SetDebug(debug bool) { g.debug = debug }

func (g *Grid) rows() []row { return *g.active }

func (g *Grid) markDamage(row int) {
	if row < 0 || row >= g.Rows {
		return
	}
	g.damage[row] = true
}

// TakeDamage returns the set of dirty row indices since the last call and
// clears it.
func (g *Grid) TakeDamage() []int {
	out := make([]int, 0, len(g.damage))
	for r := range g.damage {
		out = append(out, r)
	}
	g.damage = make(map[int]bool, g.Rows)
	return out
}

// MarkAllDamaged invalidates the full viewport, used when the theme changes
// (spec.md §6 "Runtime theme change invalidates entire damage set").
func (g *Grid) MarkAllDamaged() {
	for r := 0; r < g.Rows; r++ {
		g.markDamage(r)
	}
}

// Style returns the current SGR state new writes will inherit.
func (g *Grid) Style() cell.Style { return g.style }

// SetStyle replaces the current SGR state (called by the SGR action
// handler after accumulating the parsed attributes).
func (g *Grid) SetStyle(st cell.Style) { g.style = st }

// Cursor returns the current cursor position.
func (g *Grid) Cursor() Cursor { return g.cursor }

// Cell returns the cell at the given viewport row/col, or ok=false if out
// of range.
func (g *Grid) Cell(col, row int) (cell.Cell, bool) {
	rows := g.rows()
	if row < 0 || row >= len(rows) || col < 0 || col >= g.Cols {
		return cell.Cell{}, false
	}
	return rows[row].cells[col], true
}

func (g *Grid) fail(op string, col, row int) {
	kind := errs.GridOutOfBounds
	if g.debug {
		panic((&errs.GridError{Kind: kind, Op: op, Row: row, Col: col}).Error())
	}
	// release: clamp and continue; caller is responsible for logging.
}

func (g *Grid) clampCursor() {
	if g.cursor.Col < 0 {
		g.cursor.Col = 0
	}
	if g.cursor.Col >= g.Cols {
		g.cursor.Col = g.Cols - 1
	}
	if g.cursor.Row < 0 {
		g.cursor.Row = 0
	}
	if g.cursor.Row >= g.Rows {
		g.cursor.Row = g.Rows - 1
	}
}

// effectiveTop returns the row cursor motions must not rise above, honoring
// origin mode (DECOM).
func (g *Grid) effectiveTop() int {
	if g.originMode {
		return g.region.Top
	}
	return 0
}

func (g *Grid) effectiveBottom() int {
	if g.originMode {
		return g.region.Bottom
	}
	return g.Rows
}

// MoveTo sets the cursor position, clamping (or, in debug mode, failing
// fatally) if the target lands outside the grid after origin-mode offset.
func (g *Grid) MoveTo(col, row int) {
	if g.originMode {
		row += g.region.Top
	}
	if col < 0 || col >= g.Cols || row < 0 || row >= g.Rows {
		g.fail("MoveTo", col, row)
	}
	g.cursor.Col, g.cursor.Row = col, row
	g.clampCursor()
}

// MoveBy moves the cursor relative to its current position, clamped to the
// grid bounds (CUU/CUD/CUF/CUB).
func (g *Grid) MoveBy(dcol, drow int) {
	g.cursor.Col += dcol
	g.cursor.Row += drow
	g.clampCursor()
}

// SetColumn moves the cursor to an absolute column on the current row
// (CHA).
func (g *Grid) SetColumn(col int) {
	g.cursor.Col = col
	g.clampCursor()
}

// SaveCursor implements DECSC: save position and style.
func (g *Grid) SaveCursor() {
	snap := &SavedCursor{Cursor: g.cursor, Style: g.style}
	if g.onAlt {
		g.savedAlt = snap
	} else {
		g.saved = snap
	}
}

// RestoreCursor implements DECRC: restore position and style if a save
// exists; otherwise it is a no-op.
func (g *Grid) RestoreCursor() {
	snap := g.saved
	if g.onAlt {
		snap = g.savedAlt
	}
	if snap == nil {
		return
	}
	g.cursor = snap.Cursor
	g.style = snap.Style
	g.clampCursor()
}

// SetAutoWrap toggles DECAWM.
func (g *Grid) SetAutoWrap(on bool) { g.autoWrap = on }

// SetOriginMode toggles DECOM.
func (g *Grid) SetOriginMode(on bool) {
	g.originMode = on
	g.cursor.Col, g.cursor.Row = 0, g.effectiveTop()
}

// SetScrollRegion implements DECSTBM. top/bottom are 0-based, top inclusive,
// bottom exclusive. Invalid regions (top >= bottom, out of range) reset to
// the full height (spec.md §3 invariant: 0 ≤ top ≤ bottom < rows).
func (g *Grid) SetScrollRegion(top, bottom int) {
	if top < 0 {
		top = 0
	}
	if bottom > g.Rows || bottom <= 0 {
		bottom = g.Rows
	}
	if top >= bottom {
		top, bottom = 0, g.Rows
	}
	g.region = ScrollRegion{Top: top, Bottom: bottom}
	g.cursor.Col, g.cursor.Row = 0, g.effectiveTop()
}

// Put writes ch at the cursor, advancing the cursor and wrapping/scrolling
// as needed. width is 1 for normal glyphs, 2 for wide glyphs (spec.md §4.2).
func (g *Grid) Put(ch rune, width int) {
	if width <= 0 {
		return // zero-width combining marks: not attached to a prior cell (documented simplification)
	}
	if g.cursor.Col+width > g.Cols {
		if g.autoWrap {
			g.wrapLine()
		} else {
			g.cursor.Col = g.Cols - width
			if g.cursor.Col < 0 {
				return
			}
		}
	}
	rows := g.rows()
	row := &rows[g.cursor.Row]
	row.cells[g.cursor.Col] = cell.Cell{Ch: ch, Style: g.style, IsWide: width == 2}
	g.markDamage(g.cursor.Row)
	if width == 2 && g.cursor.Col+1 < g.Cols {
		row.cells[g.cursor.Col+1] = cell.Cell{Ch: cell.WideSentinel, Style: g.style, IsWideTail: true}
	}
	g.cursor.Col += width
	if g.cursor.Col >= g.Cols {
		if g.autoWrap {
			row.wrapped = true
		}
		g.cursor.Col = g.Cols
	}
}

// wrapLine moves the cursor to column 0 of the next line, scrolling if at
// the bottom of the scroll region, and marks the current line as
// soft-wrapped so resize-reflow knows it is not a hard line break.
func (g *Grid) wrapLine() {
	rows := g.rows()
	rows[g.cursor.Row].wrapped = true
	g.cursor.Col = 0
	g.cursor.Row++
	if g.cursor.Row >= g.effectiveBottom() {
		g.cursor.Row = g.effectiveBottom() - 1
		g.ScrollUp(1)
	}
}

// CR implements carriage return.
func (g *Grid) CR() { g.cursor.Col = 0 }

// LF implements line feed: cursor down one row, scrolling the active
// region if already at the bottom.
func (g *Grid) LF() {
	rows := g.rows()
	if g.cursor.Row < len(rows) {
		rows[g.cursor.Row].wrapped = false
	}
	if g.cursor.Row+1 >= g.effectiveBottom() {
		g.ScrollUp(1)
		return
	}
	g.cursor.Row++
}

// BS implements backspace: cursor left one column, stopping at 0.
func (g *Grid) BS() {
	if g.cursor.Col > 0 {
		g.cursor.Col--
	}
}

const tabStop = 8

// Tab moves the cursor to the next multiple-of-8 column, bounded by the
// right margin.
func (g *Grid) Tab() {
	next := ((g.cursor.Col / tabStop) + 1) * tabStop
	if next >= g.Cols {
		next = g.Cols - 1
	}
	g.cursor.Col = next
}

// ScrollUp shifts n lines up within the active scroll region. On the
// primary buffer, lines leaving the top of a region whose top is row 0
// enter scrollback (oldest dropped once capacity is reached); alternate-buffer
// scrolling never touches scrollback.
func (g *Grid) ScrollUp(n int) {
	if n <= 0 {
		return
	}
	top, bottom := g.region.Top, g.region.Bottom
	rows := g.rows()
	toScrollback := !g.onAlt && top == 0
	for i := 0; i < n && bottom-top > 0; i++ {
		if toScrollback {
			g.pushScrollback(rows[top])
		}
		copy(rows[top:bottom-1], rows[top+1:bottom])
		rows[bottom-1] = newRow(g.Cols, cell.Default())
	}
	for r := top; r < bottom; r++ {
		g.markDamage(r)
	}
}

// ScrollDown shifts n lines down within the active scroll region, clearing
// the lines that enter at the top.
func (g *Grid) ScrollDown(n int) {
	if n <= 0 {
		return
	}
	top, bottom := g.region.Top, g.region.Bottom
	rows := g.rows()
	for i := 0; i < n && bottom-top > 0; i++ {
		copy(rows[top+1:bottom], rows[top:bottom-1])
		rows[top] = newRow(g.Cols, cell.Default())
	}
	for r := top; r < bottom; r++ {
		g.markDamage(r)
	}
}

func (g *Grid) pushScrollback(r row) {
	cp := row{cells: append([]cell.Cell(nil), r.cells...), wrapped: r.wrapped}
	g.scrollback = append(g.scrollback, cp)
	if len(g.scrollback) > g.scrollbackCap {
		g.scrollback = g.scrollback[len(g.scrollback)-g.scrollbackCap:]
	}
}

// ScrollbackLen returns the number of rows currently retained in
// scrollback.
func (g *Grid) ScrollbackLen() int { return len(g.scrollback) }

// ScrollbackRow returns a copy of the cells of scrollback row idx (0 is the
// oldest retained row).
func (g *Grid) ScrollbackRow(idx int) ([]cell.Cell, bool) {
	if idx < 0 || idx >= len(g.scrollback) {
		return nil, false
	}
	return g.scrollback[idx].cells, true
}

// EraseInLine implements EL: mode 0 erases to the right, 1 to the left
// (inclusive of cursor), 2 the entire line.
func (g *Grid) EraseInLine(mode int) {
	rows := g.rows()
	r := &rows[g.cursor.Row]
	switch mode {
	case 0:
		g.eraseRange(r, g.cursor.Col, g.Cols)
	case 1:
		g.eraseRange(r, 0, g.cursor.Col+1)
	case 2:
		g.eraseRange(r, 0, g.Cols)
	}
	g.markDamage(g.cursor.Row)
}

func (g *Grid) eraseRange(r *row, from, to int) {
	if from < 0 {
		from = 0
	}
	if to > g.Cols {
		to = g.Cols
	}
	for c := from; c < to; c++ {
		r.cells[c] = cell.Blank(g.style)
	}
}

// EraseInDisplay implements ED: mode 0 below cursor, 1 above (inclusive),
// 2 entire screen, 3 entire screen plus scrollback.
func (g *Grid) EraseInDisplay(mode int) {
	rows := g.rows()
	switch mode {
	case 0:
		g.eraseRange(&rows[g.cursor.Row], g.cursor.Col, g.Cols)
		for r := g.cursor.Row + 1; r < g.Rows; r++ {
			g.eraseRange(&rows[r], 0, g.Cols)
		}
	case 1:
		for r := 0; r < g.cursor.Row; r++ {
			g.eraseRange(&rows[r], 0, g.Cols)
		}
		g.eraseRange(&rows[g.cursor.Row], 0, g.cursor.Col+1)
	case 2:
		for r := 0; r < g.Rows; r++ {
			g.eraseRange(&rows[r], 0, g.Cols)
		}
	case 3:
		for r := 0; r < g.Rows; r++ {
			g.eraseRange(&rows[r], 0, g.Cols)
		}
		g.scrollback = nil
	}
	g.MarkAllDamaged()
}

// InsertLines implements IL: inserts n blank lines at the cursor row within
// the scroll region, shifting subsequent lines down (bottom lines drop).
func (g *Grid) InsertLines(n int) {
	if g.cursor.Row < g.region.Top || g.cursor.Row >= g.region.Bottom {
		return
	}
	rows := g.rows()
	top, bottom := g.cursor.Row, g.region.Bottom
	for i := 0; i < n && bottom-top > 0; i++ {
		copy(rows[top+1:bottom], rows[top:bottom-1])
		rows[top] = newRow(g.Cols, cell.Default())
	}
	for r := top; r < bottom; r++ {
		g.markDamage(r)
	}
}

// DeleteLines implements DL: deletes n lines at the cursor row within the
// scroll region, shifting subsequent lines up (blank lines enter at the
// bottom of the region).
func (g *Grid) DeleteLines(n int) {
	if g.cursor.Row < g.region.Top || g.cursor.Row >= g.region.Bottom {
		return
	}
	rows := g.rows()
	top, bottom := g.cursor.Row, g.region.Bottom
	for i := 0; i < n && bottom-top > 0; i++ {
		copy(rows[top:bottom-1], rows[top+1:bottom])
		rows[bottom-1] = newRow(g.Cols, cell.Default())
	}
	for r := top; r < bottom; r++ {
		g.markDamage(r)
	}
}

// InsertChars implements ICH: inserts n blank cells at the cursor, shifting
// the rest of the line right (cells pushed past the margin are dropped).
func (g *Grid) InsertChars(n int) {
	rows := g.rows()
	r := &rows[g.cursor.Row]
	col := g.cursor.Col
	if col >= g.Cols {
		return
	}
	end := g.Cols - n
	if end < col {
		end = col
	}
	copy(r.cells[col+n:g.Cols], r.cells[col:end])
	for c := col; c < col+n && c < g.Cols; c++ {
		r.cells[c] = cell.Blank(g.style)
	}
	g.markDamage(g.cursor.Row)
}

// DeleteChars implements DCH: deletes n cells at the cursor, shifting the
// rest of the line left (blanks enter at the right margin).
func (g *Grid) DeleteChars(n int) {
	rows := g.rows()
	r := &rows[g.cursor.Row]
	col := g.cursor.Col
	if col >= g.Cols {
		return
	}
	src := col + n
	if src > g.Cols {
		src = g.Cols
	}
	copy(r.cells[col:], r.cells[src:])
	for c := g.Cols - (src - col); c < g.Cols; c++ {
		r.cells[c] = cell.Blank(g.style)
	}
	g.markDamage(g.cursor.Row)
}

// EraseChars implements ECH: resets n cells at the cursor to blank without
// shifting the rest of the line.
func (g *Grid) EraseChars(n int) {
	rows := g.rows()
	r := &rows[g.cursor.Row]
	g.eraseRange(r, g.cursor.Col, g.cursor.Col+n)
	g.markDamage(g.cursor.Row)
}

// SwitchToAlt implements mode 1049/47/1047: swap to the alternate buffer.
// saveCursor additionally triggers DECSC-equivalent save and clears the
// alternate screen on entry (mode 1049 semantics).
func (g *Grid) SwitchToAlt(saveCursor bool) {
	if g.onAlt {
		return
	}
	if saveCursor {
		g.SaveCursor()
	}
	g.onAlt = true
	g.active = &g.alternate
	if saveCursor {
		g.EraseInDisplay(2)
	}
	g.MarkAllDamaged()
}

// SwitchToPrimary implements mode 1049/47/1047 reset: swap back to the
// primary buffer, restoring the cursor if it was saved on entry.
func (g *Grid) SwitchToPrimary(restoreCursor bool) {
	if !g.onAlt {
		return
	}
	g.onAlt = false
	g.active = &g.primary
	if restoreCursor {
		g.RestoreCursor()
	}
	g.MarkAllDamaged()
}

// OnAlt reports whether the alternate buffer is currently active.
func (g *Grid) OnAlt() bool { return g.onAlt }

// Resize changes the grid dimensions. The primary buffer reflows
// soft-wrapped lines to the new width (spec.md §3); the alternate buffer is
// simply truncated/padded without reflow, matching full-screen apps which
// always repaint after a resize. The cursor is clamped into range and the
// scroll region resets to full height (spec.md §9: exact scroll-region
// re-derivation after shrink is left to the implementer; this module
// resets to full height, the simplest choice that preserves the invariant).
func (g *Grid) Resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	g.primary = reflow(g.primary, g.Cols, cols, rows)
	g.alternate = resizePad(g.alternate, cols, rows)
	g.Cols, g.Rows = cols, rows
	if g.onAlt {
		g.active = &g.alternate
	} else {
		g.active = &g.primary
	}
	g.region = ScrollRegion{Top: 0, Bottom: rows}
	g.clampCursor()
	g.MarkAllDamaged()
}

// reflow re-wraps soft-wrapped logical lines from oldCols to newCols,
// producing exactly newRows physical rows (padding with blanks or
// truncating from the top, keeping the bottom — the visible tail — intact).
func reflow(rows []row, oldCols, newCols, newRows int) []row {
	logical := joinLogicalLines(rows)
	var out []row
	for _, line := range logical {
		out = append(out, splitLogicalLine(line, newCols)...)
	}
	if len(out) > newRows {
		out = out[len(out)-newRows:]
	}
	for len(out) < newRows {
		out = append(out, newRow(newCols, cell.Default()))
	}
	return out
}

// joinLogicalLines concatenates soft-wrapped physical rows into logical
// lines (a logical line ends at a row with wrapped==false).
func joinLogicalLines(rows []row) [][]cell.Cell {
	var logical [][]cell.Cell
	var cur []cell.Cell
	for _, r := range rows {
		cur = append(cur, r.cells...)
		if !r.wrapped {
			logical = append(logical, cur)
			cur = nil
		}
	}
	if cur != nil {
		logical = append(logical, cur)
	}
	return logical
}

func splitLogicalLine(line []cell.Cell, cols int) []row {
	if len(line) == 0 {
		return []row{newRow(cols, cell.Default())}
	}
	var out []row
	for len(line) > 0 {
		n := cols
		wrapped := true
		if n >= len(line) {
			n = len(line)
			wrapped = false
		}
		r := newRow(cols, cell.Default())
		copy(r.cells, line[:n])
		r.wrapped = wrapped
		out = append(out, r)
		line = line[n:]
	}
	return out
}

func resizePad(rows []row, cols, numRows int) []row {
	out := make([]row, numRows)
	for i := range out {
		out[i] = newRow(cols, cell.Default())
		if i < len(rows) {
			n := cols
			if n > len(rows[i].cells) {
				n = len(rows[i].cells)
			}
			copy(out[i].cells, rows[i].cells[:n])
		}
	}
	return out
}

// String renders the viewport as plain text (no styling), used for tests
// and debug dumps.
func (g *Grid) String() string {
	rows := g.rows()
	s := ""
	for i, r := range rows {
		if i > 0 {
			s += "\n"
		}
		for _, c := range r.cells {
			if c.IsWideTail {
				continue
			}
			if c.Ch == 0 {
				s += " "
			} else {
				s += string(c.Ch)
			}
		}
	}
	return s
}
