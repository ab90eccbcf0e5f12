package vterm

import (
	"strconv"
	"strings"

	"rat/internal/ansi"
	"rat/internal/cell"
)

// applyCSI dispatches one decoded CSI action to the grid, covering the
// subset spec.md §4.1 enumerates: cursor motion, erase, scroll, line/char
// editing, mode set/reset, and SGR.
func (t *Terminal) applyCSI(a ansi.Action) {
	switch a.Final {
	case 'A': // CUU
		t.Grid.MoveBy(0, -a.Param(0, 1))
	case 'B': // CUD
		t.Grid.MoveBy(0, a.Param(0, 1))
	case 'C': // CUF
		t.Grid.MoveBy(a.Param(0, 1), 0)
	case 'D': // CUB
		t.Grid.MoveBy(-a.Param(0, 1), 0)
	case 'E': // CNL
		t.Grid.CR()
		t.Grid.MoveBy(0, a.Param(0, 1))
	case 'F': // CPL
		t.Grid.CR()
		t.Grid.MoveBy(0, -a.Param(0, 1))
	case 'G', '`': // CHA / HPA
		t.Grid.SetColumn(a.Param(0, 1) - 1)
	case 'd': // VPA
		cur := t.Grid.Cursor()
		t.Grid.MoveTo(cur.Col, a.Param(0, 1)-1)
	case 'H', 'f': // CUP / HVP
		t.Grid.MoveTo(a.Param(1, 1)-1, a.Param(0, 1)-1)
	case 'J': // ED
		t.Grid.EraseInDisplay(a.Param(0, 0))
	case 'K': // EL
		t.Grid.EraseInLine(a.Param(0, 0))
	case 'L': // IL
		t.Grid.InsertLines(a.Param(0, 1))
	case 'M': // DL
		t.Grid.DeleteLines(a.Param(0, 1))
	case 'P': // DCH
		t.Grid.DeleteChars(a.Param(0, 1))
	case '@': // ICH
		t.Grid.InsertChars(a.Param(0, 1))
	case 'X': // ECH
		t.Grid.EraseChars(a.Param(0, 1))
	case 'S': // SU
		t.Grid.ScrollUp(a.Param(0, 1))
	case 'T': // SD
		t.Grid.ScrollDown(a.Param(0, 1))
	case 'r': // DECSTBM
		t.Grid.SetScrollRegion(a.Param(0, 1)-1, a.Param(1, t.Grid.Rows))
	case 'h':
		t.applyModeSet(a, true)
	case 'l':
		t.applyModeSet(a, false)
	case 'm':
		t.applySGR(a)
	case 'n': // DSR
		t.applyDSR(a)
	case 'c': // DA
		t.applyDA(a)
	}
}

func (t *Terminal) applyModeSet(a ansi.Action, set bool) {
	if a.Private != '?' {
		// ANSI (non-DEC) modes: spec.md §4.1 only needs IRM (4), which this
		// implementation does not model (insert mode is handled by ICH/DCH
		// callers explicitly); silently accepted otherwise.
		return
	}
	for i := range a.Params {
		switch a.ParamOrZero(i) {
		case 1: // DECCKM
			t.cursorKeysApp = set
		case 6: // DECOM
			t.Grid.SetOriginMode(set)
		case 7: // DECAWM
			t.Grid.SetAutoWrap(set)
		case 25: // DECTCEM, cursor visibility is tracked on Terminal, applied at render
			t.setCursorVisible(set)
		case 1000, 1002, 1003: // mouse tracking variants
			if set {
				t.mouseMode = mouseX10
			} else {
				t.mouseMode = mouseOff
			}
		case 1006: // SGR extended mouse coords
			if set {
				t.mouseMode = mouseSGR
			}
		case 2004: // bracketed paste
			t.bracketPaste = set
		case 47, 1047:
			if set {
				t.Grid.SwitchToAlt(false)
			} else {
				t.Grid.SwitchToPrimary(false)
			}
		case 1049:
			if set {
				t.Grid.SwitchToAlt(true)
			} else {
				t.Grid.SwitchToPrimary(true)
			}
		}
	}
}

func (t *Terminal) setCursorVisible(visible bool) {
	// Grid.Cursor()/MoveTo don't expose a setter; cursor visibility for
	// rendering purposes is tracked here and consulted by the compositor.
	t.cursorVisible = visible
}

func (t *Terminal) applyDSR(a ansi.Action) {
	if t.host == nil {
		return
	}
	switch a.Param(0, 0) {
	case 5: // device status: respond "OK"
		t.WriteInput([]byte("\x1b[0n"))
	case 6: // cursor position report
		cur := t.Grid.Cursor()
		t.WriteInput([]byte("\x1b[" + strconv.Itoa(cur.Row+1) + ";" + strconv.Itoa(cur.Col+1) + "R"))
	}
}

func (t *Terminal) applyDA(a ansi.Action) {
	if t.host == nil {
		return
	}
	// Identify as a basic VT220-class terminal; enough for programs that
	// merely probe "is this a real terminal".
	t.WriteInput([]byte("\x1b[?1;2c"))
}

// applySGR accumulates Select Graphic Rendition parameters into the grid's
// current style, handling the extended 38/48;5;n and 38/48;2;r;g;b color
// forms alongside the basic and bright 16-color ranges.
func (t *Terminal) applySGR(a ansi.Action) {
	st := t.Grid.Style()
	if len(a.Params) == 0 {
		t.Grid.SetStyle(cell.Default())
		return
	}
	for i := 0; i < len(a.Params); i++ {
		p := a.ParamOrZero(i)
		switch {
		case p == 0:
			st = cell.Default()
		case p == 1:
			st.Attrs |= cell.AttrBold
		case p == 2:
			st.Attrs |= cell.AttrDim
		case p == 3:
			st.Attrs |= cell.AttrItalic
		case p == 4:
			st.Attrs |= cell.AttrUnderline
		case p == 5 || p == 6:
			st.Attrs |= cell.AttrBlink
		case p == 7:
			st.Attrs |= cell.AttrReverse
		case p == 8:
			st.Attrs |= cell.AttrHidden
		case p == 9:
			st.Attrs |= cell.AttrStrikethrough
		case p == 22:
			st.Attrs &^= cell.AttrBold | cell.AttrDim
		case p == 23:
			st.Attrs &^= cell.AttrItalic
		case p == 24:
			st.Attrs &^= cell.AttrUnderline
		case p == 25:
			st.Attrs &^= cell.AttrBlink
		case p == 27:
			st.Attrs &^= cell.AttrReverse
		case p == 28:
			st.Attrs &^= cell.AttrHidden
		case p == 29:
			st.Attrs &^= cell.AttrStrikethrough
		case p >= 30 && p <= 37:
			st.Fg = cell.Indexed(uint8(p - 30))
		case p == 38:
			n, consumed := t.parseExtendedColor(a, i)
			st.Fg = n
			i += consumed
		case p == 39:
			st.Fg = cell.Color{}
		case p >= 40 && p <= 47:
			st.Bg = cell.Indexed(uint8(p - 40))
		case p == 48:
			n, consumed := t.parseExtendedColor(a, i)
			st.Bg = n
			i += consumed
		case p == 49:
			st.Bg = cell.Color{}
		case p >= 90 && p <= 97:
			st.Fg = cell.Indexed(uint8(p-90) + 8)
		case p >= 100 && p <= 107:
			st.Bg = cell.Indexed(uint8(p-100) + 8)
		}
	}
	t.Grid.SetStyle(st)
}

// parseExtendedColor reads the 5;n or 2;r;g;b form following a 38/48
// selector starting at index i (which holds the 38/48 itself), returning
// the parsed color and how many extra params were consumed.
func (t *Terminal) parseExtendedColor(a ansi.Action, i int) (cell.Color, int) {
	if i+1 >= len(a.Params) {
		return cell.Color{}, 0
	}
	switch a.ParamOrZero(i + 1) {
	case 5:
		if i+2 < len(a.Params) {
			return cell.Indexed(uint8(a.ParamOrZero(i + 2))), 2
		}
		return cell.Color{}, 1
	case 2:
		if i+4 < len(a.Params) {
			r := uint8(a.ParamOrZero(i + 2))
			g := uint8(a.ParamOrZero(i + 3))
			b := uint8(a.ParamOrZero(i + 4))
			return cell.RGB(r, g, b), 4
		}
		return cell.Color{}, 1
	}
	return cell.Color{}, 0
}

// applyOSC handles the operating-system-command subset spec.md §4.1 names:
// 0/2 window title, 7 cwd hint, 4 palette (accepted, not modeled), 10/11
// foreground/background color queries (answered by respondOSCColorQueries).
func (t *Terminal) applyOSC(a ansi.Action) {
	if len(a.OscParams) == 0 {
		return
	}
	kind := string(a.OscParams[0])
	switch kind {
	case "0", "2":
		if len(a.OscParams) > 1 {
			t.title = string(a.OscParams[1])
		}
	case "7":
		if len(a.OscParams) > 1 {
			t.cwd = strings.TrimPrefix(string(a.OscParams[1]), "file://")
		}
	}
}
