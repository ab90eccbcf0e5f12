package editor

import (
	"rat/internal/eventbus"
	"rat/internal/keys"
)

// Mode is the active keymap (spec.md §4.7).
type Mode int

const (
	ModeVimNormal Mode = iota
	ModeVimInsert
	ModeVimVisual
	ModeVimCommand
	ModeEmacs
	ModeDefault
)

// Keymap selects which family of bindings Mode belongs to, since Vim has
// three sub-modes sharing one buffer.
type Keymap int

const (
	KeymapVim Keymap = iota
	KeymapEmacs
	KeymapDefault
)

// Editor owns a set of open buffers, the active one, and the current
// keymap/mode (spec.md §4.7 "Editor (C9)"). Bus, if set, is notified of
// FileOpened/FileSaved/FileClosed (spec.md §6's core event bus) whenever
// OpenBuffer, SaveActive, or CloseActive act on a real path.
type Editor struct {
	Buffers []*EditorBuffer
	Active  int

	Keymap Keymap
	Mode   Mode

	commandLine string // Vim ':' command buffer
	killReg     string // Emacs Ctrl+K register (1 slot, overwritten each kill)

	Margin int // viewport scroll margin (spec.md §4.7 "Viewport")
	Top    int // first visible line
	Height int // viewport height in lines

	Bus *eventbus.Bus
}

// New creates an Editor with one empty buffer in Default keymap.
func New() *Editor {
	e := &Editor{Keymap: KeymapDefault, Mode: ModeDefault, Margin: 2, Height: 24}
	e.Buffers = []*EditorBuffer{NewBuffer("")}
	return e
}

// Current returns the active buffer, or nil if none are open.
func (e *Editor) Current() *EditorBuffer {
	if e.Active < 0 || e.Active >= len(e.Buffers) {
		return nil
	}
	return e.Buffers[e.Active]
}

// OpenBuffer appends buf, focuses it, and publishes FileOpened if buf has a
// real path (an untitled scratch buffer has none, and isn't a file-open
// event).
func (e *Editor) OpenBuffer(buf *EditorBuffer) {
	e.Buffers = append(e.Buffers, buf)
	e.Active = len(e.Buffers) - 1
	if e.Bus != nil && buf.Path != "" {
		e.Bus.Publish(eventbus.Event{Topic: eventbus.FileOpened, Path: buf.Path})
	}
}

// SaveActive writes the focused buffer to disk and publishes FileSaved on
// success (spec.md §4.7 "File save policy" / §6 event bus).
func (e *Editor) SaveActive() error {
	b := e.Current()
	if b == nil {
		return nil
	}
	path := b.Path
	if err := b.Save(); err != nil {
		return err
	}
	if e.Bus != nil && path != "" {
		e.Bus.Publish(eventbus.Event{Topic: eventbus.FileSaved, Path: path})
	}
	return nil
}

// CloseActive closes the focused buffer, moving focus to the previous one,
// and publishes FileClosed if it had a real path. Returns false if it was
// the last buffer (callers decide whether that closes the pane entirely).
func (e *Editor) CloseActive() bool {
	if len(e.Buffers) <= 1 {
		return false
	}
	closed := e.Buffers[e.Active]
	e.Buffers = append(e.Buffers[:e.Active], e.Buffers[e.Active+1:]...)
	if e.Active >= len(e.Buffers) {
		e.Active = len(e.Buffers) - 1
	}
	if e.Bus != nil && closed.Path != "" {
		e.Bus.Publish(eventbus.Event{Topic: eventbus.FileClosed, Path: closed.Path})
	}
	return true
}

// SetKeymap switches the active keymap family, resetting to that family's
// initial mode and breaking undo coalescing (spec.md §4.7: mode changes end
// a coalescing run).
func (e *Editor) SetKeymap(k Keymap) {
	e.Keymap = k
	switch k {
	case KeymapVim:
		e.Mode = ModeVimNormal
	case KeymapEmacs:
		e.Mode = ModeEmacs
	case KeymapDefault:
		e.Mode = ModeDefault
	}
	if b := e.Current(); b != nil {
		b.BreakCoalescing()
	}
}

// HandleKey routes ev to the handler for the active keymap/mode. It
// returns true if the model mutated (the event loop uses this to decide
// whether a render is needed, spec.md §4.10 step 5).
func (e *Editor) HandleKey(ev keys.Event) bool {
	b := e.Current()
	if b == nil {
		return false
	}
	switch e.Keymap {
	case KeymapVim:
		return e.handleVim(b, ev)
	case KeymapEmacs:
		return e.handleEmacs(b, ev)
	default:
		return e.handleDefault(b, ev)
	}
}

// EnsureCursorVisible recomputes Top so the cursor's line stays within
// [Top+Margin, Top+Height-1-Margin] when possible, scrolling by the
// minimum amount (spec.md §4.7 "Viewport").
func (e *Editor) EnsureCursorVisible() {
	b := e.Current()
	if b == nil {
		return
	}
	line := b.text.CharToLine(b.Cursor.Pos)
	margin := e.Margin
	if e.Height <= 2*margin {
		margin = 0
	}
	if line < e.Top+margin {
		e.Top = line - margin
	}
	if line > e.Top+e.Height-1-margin {
		e.Top = line - e.Height + 1 + margin
	}
	if e.Top < 0 {
		e.Top = 0
	}
	maxTop := b.text.LenLines() - e.Height
	if maxTop < 0 {
		maxTop = 0
	}
	if e.Top > maxTop {
		e.Top = maxTop
	}
}
