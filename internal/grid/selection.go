package grid

import "strings"

// BeginSelection starts a selection at (col, row) in the given mode,
// replacing any existing selection.
func (g *Grid) BeginSelection(col, row int, mode SelectionMode) {
	g.sel = Selection{Mode: mode, Active: true}
	g.sel.Anchor.Col, g.sel.Anchor.Row = col, row
	g.sel.Head.Col, g.sel.Head.Row = col, row
}

// UpdateSelection moves the selection head. Idempotent when called
// repeatedly with the same position.
func (g *Grid) UpdateSelection(col, row int) {
	if !g.sel.Active {
		return
	}
	g.sel.Head.Col, g.sel.Head.Row = col, row
}

// ClearSelection deactivates the current selection.
func (g *Grid) ClearSelection() { g.sel = Selection{} }

// Selection returns the current selection state.
func (g *Grid) Selection() Selection { return g.sel }

// ordered returns the selection endpoints in top-to-bottom, left-to-right
// order.
func (g *Grid) ordered() (startCol, startRow, endCol, endRow int) {
	a, h := g.sel.Anchor, g.sel.Head
	if a.Row < h.Row || (a.Row == h.Row && a.Col <= h.Col) {
		return a.Col, a.Row, h.Col, h.Row
	}
	return h.Col, h.Row, a.Col, a.Row
}

// IsSelected reports whether (col, row) falls within the active selection,
// driving inverse-video rendering.
func (g *Grid) IsSelected(col, row int) bool {
	if !g.sel.Active {
		return false
	}
	sc, sr, ec, er := g.ordered()
	switch g.sel.Mode {
	case SelectLine:
		return row >= sr && row <= er
	case SelectBlock:
		lo, hi := sc, ec
		if lo > hi {
			lo, hi = hi, lo
		}
		return row >= sr && row <= er && col >= lo && col <= hi
	default: // SelectChar
		if row < sr || row > er {
			return false
		}
		if row == sr && col < sc {
			return false
		}
		if row == er && col > ec {
			return false
		}
		return true
	}
}

// Extract returns the selection's text content per spec.md §4.2: char mode
// concatenates cells linearly with '\n' at logical line boundaries and
// trims trailing spaces per line; line mode is whole-row inclusive; block
// mode is a rectangle with each row trimmed.
func (g *Grid) Extract() string {
	if !g.sel.Active {
		return ""
	}
	sc, sr, ec, er := g.ordered()
	rows := g.rows()

	lineText := func(r, from, to int) string {
		if r < 0 || r >= len(rows) {
			return ""
		}
		cells := rows[r].cells
		if to > len(cells) {
			to = len(cells)
		}
		if from < 0 {
			from = 0
		}
		if from > to {
			return ""
		}
		var b strings.Builder
		for _, c := range cells[from:to] {
			if c.IsWideTail {
				continue
			}
			if c.Ch == 0 {
				b.WriteByte(' ')
			} else {
				b.WriteRune(c.Ch)
			}
		}
		return strings.TrimRight(b.String(), " ")
	}

	switch g.sel.Mode {
	case SelectLine:
		var lines []string
		for r := sr; r <= er; r++ {
			lines = append(lines, lineText(r, 0, g.Cols))
		}
		return strings.Join(lines, "\n")
	case SelectBlock:
		lo, hi := sc, ec
		if lo > hi {
			lo, hi = hi, lo
		}
		var lines []string
		for r := sr; r <= er; r++ {
			lines = append(lines, lineText(r, lo, hi+1))
		}
		return strings.Join(lines, "\n")
	default: // SelectChar
		var lines []string
		for r := sr; r <= er; r++ {
			from, to := 0, g.Cols
			if r == sr {
				from = sc
			}
			if r == er {
				to = ec + 1
			}
			lines = append(lines, lineText(r, from, to))
		}
		return strings.Join(lines, "\n")
	}
}
