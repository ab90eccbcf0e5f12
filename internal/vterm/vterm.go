// Package vterm binds the ANSI parser to a grid, turning PTY output bytes
// into a rendered screen and turning key/mouse input into PTY writes. It is
// the terminal emulator's Terminal component (spec.md §4.3): the thing a
// pane actually displays.
//
// Grounded on _examples/dcosson-h2's VT type (internal/virtualterminal/vt.go),
// generalized from "one midterm.Terminal behind a mutex" to "one grid.Grid
// driven by our own internal/ansi parser", and on go-headless-term's
// handler.go for which CSI/SGR/OSC actions a terminal emulator must act on.
package vterm

import (
	"bytes"
	"fmt"

	"rat/internal/ansi"
	"rat/internal/cell"
	"rat/internal/grid"
	"rat/internal/pty"
)

// Terminal is one VT instance: a parser, a grid, and the PTY host it is
// attached to. One exists per pane (spec.md §4.5).
type Terminal struct {
	Grid   *grid.Grid
	parser *ansi.Parser
	host   *pty.Host

	title string
	cwd   string // OSC 7 hint, best-effort

	cursorKeysApp bool // DECCKM
	cursorVisible bool
	bracketPaste  bool
	mouseMode     mouseMode

	oscFg, oscBg string // cached OSC 10/11 replies, per teacher's RespondOSCColors
}

type mouseMode int

const (
	mouseOff mouseMode = iota
	mouseX10
	mouseSGR
)

// New creates a Terminal of the given size, not yet attached to a PTY host.
func New(cols, rows int) *Terminal {
	return &Terminal{Grid: grid.New(cols, rows), parser: ansi.New(), cursorVisible: true}
}

// CursorVisible reports whether DECTCEM is currently enabled.
func (t *Terminal) CursorVisible() bool { return t.cursorVisible }

// CursorKeysApp reports whether DECCKM application cursor-key mode is on,
// consulted by the key encoder (spec.md §4.4).
func (t *Terminal) CursorKeysApp() bool { return t.cursorKeysApp }

// BracketedPaste reports whether bracketed-paste mode (2004) is enabled.
func (t *Terminal) BracketedPaste() bool { return t.bracketPaste }

// Attach binds the Terminal to a spawned PTY host.
func (t *Terminal) Attach(h *pty.Host) { t.host = h }

// FeedBytes decodes raw PTY output and applies it to the grid. It is the
// single place byte decoding meets cell mutation (spec.md §4.1/§4.2 split).
func (t *Terminal) FeedBytes(data []byte) {
	t.respondOSCColorQueries(data)
	for _, a := range t.parser.Feed(data) {
		t.apply(a)
	}
}

// respondOSCColorQueries answers "what is your foreground/background color"
// queries (OSC 10;? / 11;?) the way real terminals do, grounded directly on
// the teacher's RespondOSCColors.
func (t *Terminal) respondOSCColorQueries(data []byte) {
	if t.host == nil {
		return
	}
	if t.oscFg != "" && bytes.Contains(data, []byte("\033]10;?")) {
		fmt.Fprintf(writer{t.host}, "\033]10;%s\033\\", t.oscFg)
	}
	if t.oscBg != "" && bytes.Contains(data, []byte("\033]11;?")) {
		fmt.Fprintf(writer{t.host}, "\033]11;%s\033\\", t.oscBg)
	}
}

type writer struct{ h *pty.Host }

func (w writer) Write(p []byte) (int, error) { return w.h.Write(p) }

// SetDefaultColors primes the OSC 10/11 reply cache from the active theme
// (spec.md §6), so child programs probing terminal colors (fzf, vim
// background detection) get a real answer.
func (t *Terminal) SetDefaultColors(fg, bg string) { t.oscFg, t.oscBg = fg, bg }

// Title returns the last OSC 0/2 window title set by the child.
func (t *Terminal) Title() string { return t.title }

// Cwd returns the last OSC 7 working-directory hint, if any.
func (t *Terminal) Cwd() string { return t.cwd }

// Resize propagates a size change to both the grid and (if attached) the
// PTY host.
func (t *Terminal) Resize(cols, rows int) error {
	t.Grid.Resize(cols, rows)
	if t.host == nil {
		return nil
	}
	return t.host.Resize(rows, cols)
}

// WriteInput sends already-encoded bytes (from the key encoder) to the
// child process.
func (t *Terminal) WriteInput(p []byte) (int, error) {
	if t.host == nil {
		return 0, nil
	}
	return t.host.Write(p)
}

func (t *Terminal) apply(a ansi.Action) {
	switch a.Kind {
	case ansi.ActionPrint:
		t.Grid.Put(a.Rune, cell.RuneWidth(a.Rune))
	case ansi.ActionExecute:
		t.applyC0(a.C0)
	case ansi.ActionCsiDispatch:
		t.applyCSI(a)
	case ansi.ActionEscDispatch:
		t.applyEsc(a)
	case ansi.ActionOscDispatch:
		t.applyOSC(a)
	// Hook/Put/Unhook (DCS) are accepted and discarded: spec.md §4.1 does
	// not require any DCS-driven feature (e.g. Sixel, termcap queries).
	case ansi.ActionHook, ansi.ActionPut, ansi.ActionUnhook:
	}
}

func (t *Terminal) applyC0(b byte) {
	switch b {
	case '\r':
		t.Grid.CR()
	case '\n', '\v', '\f':
		t.Grid.LF()
	case '\b':
		t.Grid.BS()
	case '\t':
		t.Grid.Tab()
	case 0x07: // BEL: no audible bell model, intentionally ignored
	}
}

func (t *Terminal) applyEsc(a ansi.Action) {
	switch a.EscFinal {
	case '7':
		t.Grid.SaveCursor()
	case '8':
		t.Grid.RestoreCursor()
	case 'c': // RIS: full reset
		*t = *New(t.Grid.Cols, t.Grid.Rows)
	case 'D': // IND
		t.Grid.LF()
	case 'M': // RI: reverse index
		t.Grid.MoveBy(0, -1)
	case 'E': // NEL
		t.Grid.CR()
		t.Grid.LF()
	}
}
