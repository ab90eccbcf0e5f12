// Package app wires the core components (multiplexer, editor, layout,
// render, theme, event bus) into the single Renderer the event loop drives
// once per mutating tick. It is the composition root a binary like cmd/rat
// builds once at startup and then hands to eventloop.Loop.Run; nothing in
// internal/eventloop imports it, keeping the scheduler ignorant of how a
// frame actually reaches the terminal (spec.md §4.10/§4.11 split).
package app

import (
	"rat/internal/editor"
	"rat/internal/eventbus"
	"rat/internal/eventloop"
	"rat/internal/layout"
	"rat/internal/multiplexer"
	"rat/internal/render"
	"rat/internal/theme"
)

// App composites one Frame per render and writes it with a
// *render.Renderer, implementing eventloop.Renderer.
type App struct {
	Mux    *multiplexer.Multiplexer
	Editor *editor.Editor
	Theme  *theme.Sink
	Bus    *eventbus.Bus
	Loop   *eventloop.Loop

	R          *render.Renderer
	Cfg        layout.Config
	Cols, Rows int
}

// New wires a fresh App around the given components, writing frames through
// out. The event bus is constructed here and threaded into both ed and the
// theme sink, since the composition root is the one place that knows every
// external-interface publisher (file open/save/close, theme change) spec.md
// §6 names.
func New(mux *multiplexer.Multiplexer, ed *editor.Editor, out *render.Renderer) *App {
	bus := eventbus.New()
	ed.Bus = bus
	th := theme.New()
	th.Bus = bus
	return &App{
		Mux:    mux,
		Editor: ed,
		Theme:  th,
		Bus:    bus,
		R:      out,
		Cfg:    layout.Config{IDEVisible: true, SplitRatio: 0.5, ShowHint: true},
		Cols:   80,
		Rows:   24,
	}
}

// Resize updates the composited frame size ahead of the next Render.
func (a *App) Resize(cols, rows int) {
	a.Cols, a.Rows = cols, rows
}

// Render implements eventloop.Renderer: compose the frame geometry, paint
// every pane of the active tab at its own sub-rect (spec.md §4.5: a
// VerticalSplit/Quad2x2 tab shows all its panes at once, not just the
// focused one), paint the editor pane in full if visible, and park the
// hardware cursor over whichever pane has focus.
func (a *App) Render(l *eventloop.Loop) {
	frame := layout.Compose(a.Cols, a.Rows, a.Cfg)

	if t := a.Mux.ActiveTab(); t != nil {
		rects := t.PaneRects(frame.Terminals)
		for i, term := range t.Panes {
			if i >= len(rects) {
				break
			}
			a.R.PaneGrid(term.Grid, rects[i], term.Grid.TakeDamage())
		}
	}

	if a.Cfg.IDEVisible {
		if buf := a.Editor.Current(); buf != nil {
			a.R.EditorPane(buf, frame.Editor, a.Editor.Top)
		}
	}

	switch l.Focus {
	case eventloop.FocusEditor:
		if buf := a.Editor.Current(); buf != nil {
			line := buf.Text().CharToLine(buf.Cursor.Pos)
			col := buf.Cursor.Pos - buf.Text().LineToChar(line)
			a.R.MoveCursor(frame.Editor, col, line-a.Editor.Top)
		}
	default:
		if t := a.Mux.ActiveTab(); t != nil && a.Mux.FocusPane >= 0 && a.Mux.FocusPane < len(t.Panes) {
			rects := t.PaneRects(frame.Terminals)
			if a.Mux.FocusPane < len(rects) {
				cur := t.Panes[a.Mux.FocusPane].Grid.Cursor()
				a.R.MoveCursor(rects[a.Mux.FocusPane], cur.Col, cur.Row)
			}
		}
	}
}

// StartupGrid clears the real screen once before the first tick (teacher's
// overlay.go Run does the same "\033[2J\033[H" before entering its loop).
func (a *App) StartupGrid() {
	a.R.Clear()
}
