// Package edcursor implements cursor motion and selection arithmetic over a
// rope-backed buffer (spec.md §4.6 "Cursor contract"): left/right/up/down,
// word motion, line/buffer start/end, and a selection anchor.
//
// Word-boundary classification is grounded on _examples/dcosson-h2's
// internal/session/client/cursor.go (CursorForwardWord/BackwardWord,
// isWordChar), generalized from a flat byte-slice input line to a
// multi-line rope buffer with vertical motion and a desired-column.
package edcursor

import "unicode"

// Buffer is the subset of rope.Rope's contract cursor motion needs.
type Buffer interface {
	LenChars() int
	LenLines() int
	CharToLine(charIdx int) int
	LineToChar(line int) int
	Line(idx int) string
}

// Cursor is a single insertion point plus an optional selection anchor.
type Cursor struct {
	Pos        int
	desiredCol int
	anchor     int
	hasAnchor  bool
}

// New creates a Cursor at the buffer start.
func New() *Cursor { return &Cursor{} }

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// columnOf returns pos's column within its line (rune count from the
// line's start char to pos).
func columnOf(buf Buffer, pos int) int {
	line := buf.CharToLine(pos)
	start := buf.LineToChar(line)
	return pos - start
}

// MoveLeft moves one char left, clearing any selection.
func (c *Cursor) MoveLeft(buf Buffer) {
	c.clearAnchorOnMotion()
	if c.Pos > 0 {
		c.Pos--
	}
	c.desiredCol = columnOf(buf, c.Pos)
}

// MoveRight moves one char right, clearing any selection.
func (c *Cursor) MoveRight(buf Buffer) {
	c.clearAnchorOnMotion()
	if c.Pos < buf.LenChars() {
		c.Pos++
	}
	c.desiredCol = columnOf(buf, c.Pos)
}

// MoveUp moves to the desired column on the previous line, clamped to that
// line's length.
func (c *Cursor) MoveUp(buf Buffer) {
	c.clearAnchorOnMotion()
	line := buf.CharToLine(c.Pos)
	if line == 0 {
		return
	}
	c.moveToLineCol(buf, line-1, c.desiredCol)
}

// MoveDown moves to the desired column on the next line, clamped.
func (c *Cursor) MoveDown(buf Buffer) {
	c.clearAnchorOnMotion()
	line := buf.CharToLine(c.Pos)
	if line+1 >= buf.LenLines() {
		return
	}
	c.moveToLineCol(buf, line+1, c.desiredCol)
}

func (c *Cursor) moveToLineCol(buf Buffer, line, col int) {
	start := buf.LineToChar(line)
	lineLen := len([]rune(buf.Line(line)))
	if col > lineLen {
		col = lineLen
	}
	c.Pos = start + col
}

// MoveWordLeft skips backward over non-word runes then word runes,
// matching the teacher's CursorBackwardWord shape.
func (c *Cursor) MoveWordLeft(buf Buffer) {
	c.clearAnchorOnMotion()
	c.Pos = wordLeft(buf, c.Pos)
	c.desiredCol = columnOf(buf, c.Pos)
}

// MoveWordRight skips forward over non-word runes then word runes.
func (c *Cursor) MoveWordRight(buf Buffer) {
	c.clearAnchorOnMotion()
	c.Pos = wordRight(buf, c.Pos)
	c.desiredCol = columnOf(buf, c.Pos)
}

// runeAt returns the rune at char index i, or 0 if out of range. Since
// Buffer exposes only Line/CharToLine/LineToChar, word motion reads a
// one-line window at a time; a word never spans a line break.
func runeAt(buf Buffer, i int) (rune, bool) {
	if i < 0 || i >= buf.LenChars() {
		return 0, false
	}
	line := buf.CharToLine(i)
	start := buf.LineToChar(line)
	text := []rune(buf.Line(line))
	col := i - start
	if col < 0 || col >= len(text) {
		return '\n', true // position is at the line's trailing newline
	}
	return text[col], true
}

func wordRight(buf Buffer, pos int) int {
	i := pos
	n := buf.LenChars()
	for i < n {
		r, ok := runeAt(buf, i)
		if !ok || isWordChar(r) {
			break
		}
		i++
	}
	for i < n {
		r, ok := runeAt(buf, i)
		if !ok || !isWordChar(r) {
			break
		}
		i++
	}
	return i
}

func wordLeft(buf Buffer, pos int) int {
	i := pos
	for i > 0 {
		r, ok := runeAt(buf, i-1)
		if !ok || isWordChar(r) {
			break
		}
		i--
	}
	for i > 0 {
		r, ok := runeAt(buf, i-1)
		if !ok || !isWordChar(r) {
			break
		}
		i--
	}
	return i
}

// MoveLineStart moves to column 0 of the current line.
func (c *Cursor) MoveLineStart(buf Buffer) {
	c.clearAnchorOnMotion()
	line := buf.CharToLine(c.Pos)
	c.Pos = buf.LineToChar(line)
	c.desiredCol = 0
}

// MoveLineEnd moves to the last column of the current line.
func (c *Cursor) MoveLineEnd(buf Buffer) {
	c.clearAnchorOnMotion()
	line := buf.CharToLine(c.Pos)
	start := buf.LineToChar(line)
	c.Pos = start + len([]rune(buf.Line(line)))
	c.desiredCol = columnOf(buf, c.Pos)
}

// MoveBufferStart moves to char 0.
func (c *Cursor) MoveBufferStart() {
	c.clearAnchorOnMotion()
	c.Pos = 0
	c.desiredCol = 0
}

// MoveBufferEnd moves past the last char, to LenChars().
func (c *Cursor) MoveBufferEnd(buf Buffer) {
	c.clearAnchorOnMotion()
	c.Pos = buf.LenChars()
	c.desiredCol = columnOf(buf, c.Pos)
}

func (c *Cursor) clearAnchorOnMotion() {
	// Plain motion (without a concurrent ExtendTo call) collapses any
	// selection, matching Vim Normal-mode and Emacs motion-without-mark
	// semantics (spec.md §4.7).
	c.hasAnchor = false
}

// ExtendTo moves the cursor to pos, setting the selection anchor at the
// current position first if none is active yet (spec.md §4.6 "extend_to
// sets selection anchor if absent").
func (c *Cursor) ExtendTo(pos int) {
	if !c.hasAnchor {
		c.anchor = c.Pos
		c.hasAnchor = true
	}
	c.Pos = pos
}

// Selection returns the active selection's ordered char range, or
// ok=false if no selection is active.
func (c *Cursor) Selection() (start, end int, ok bool) {
	if !c.hasAnchor || c.anchor == c.Pos {
		return 0, 0, false
	}
	if c.anchor < c.Pos {
		return c.anchor, c.Pos, true
	}
	return c.Pos, c.anchor, true
}

// ClearSelection deactivates the selection anchor without moving the
// cursor.
func (c *Cursor) ClearSelection() { c.hasAnchor = false }
