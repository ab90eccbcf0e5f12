package eventloop

import (
	"time"

	"rat/internal/completion"
	"rat/internal/editor"
	"rat/internal/eventbus"
	"rat/internal/keys"
	"rat/internal/layout"
	"rat/internal/multiplexer"
	"rat/internal/pty"
	"rat/internal/vterm"
)

// tickInterval is the scheduler's poll period (spec.md §4.10 step 1).
const tickInterval = 16 * time.Millisecond

// FocusArea selects which handler a Key/Mouse event routes to when no
// popup claims it (spec.md §4.10 step 4, "focused pane handler").
type FocusArea int

const (
	FocusTerminal FocusArea = iota
	FocusEditor
)

// Popup is a modal overlay (command palette, manager dashboard, dirty-quit
// confirmation) that consumes input ahead of mode-specific handlers
// (spec.md §4.10 step 4, "popups first").
type Popup interface {
	// HandleKey returns (handled, mutated). If handled is false the event
	// falls through to the normal routing chain.
	HandleKey(ev keys.Event) (handled, mutated bool)
	// Done reports whether the popup should be popped off the stack.
	Done() bool
}

// Renderer is implemented by internal/app.App; kept as an
// interface here so the scheduler has no hard dependency on a terminal
// actually being attached (tests can supply a no-op Renderer).
type Renderer interface {
	Render(l *Loop)
}

type terminalHandle struct {
	id   uint64
	term *vterm.Terminal
	pump *pty.Pump
}

// Loop is the single-threaded scheduler. All of its methods except the
// channel injection points PostInput, PostResize and RequestQuit run on
// the same goroutine — the one calling Run — so model state (Mux, Editor,
// Completion) never needs its own locking.
type Loop struct {
	Mux        *multiplexer.Multiplexer
	Editor     *editor.Editor
	Completion *completion.Engine
	Focus      FocusArea

	popups []Popup

	terminals   map[uint64]*terminalHandle
	nextTermID  uint64

	inputEvents chan AppEvent
	resizeCh    chan ResizeEvent
	quitCh      chan struct{}

	dirtyCheck func() []string // returns names of dirty buffers blocking quit; nil/empty means safe to quit
	quitting   bool

	// QuitKey is the global chord that raises Quit regardless of focus,
	// resolving spec.md §9's "global hotkey vs. focused-pane precedence"
	// question in the global hotkey's favor (Ctrl+Q is never meaningful to
	// either a shell or the editor, unlike the Ctrl+S split-vs-save
	// ambiguity the spec leaves to focus-based dispatch instead).
	QuitKey keys.Event

	// Bus, if set, receives TerminalCreated/TerminalExited whenever a pane
	// is attached or its pump reports exit (spec.md §6 event bus).
	Bus *eventbus.Bus

	// NewTerminal spawns a fresh PTY-backed terminal for a new multiplexer
	// pane or tab; nil disables Split/NewTab (headless tests, or a host
	// that hasn't wired a shell launcher in yet).
	NewTerminal func() (*vterm.Terminal, *pty.Pump)

	// Cols, Rows and LayoutCfg mirror the real screen geometry so
	// dispatchResize and the multiplexer chords can compute each pane's
	// own sub-rect via layout.Compose/Tab.PaneRects, the same geometry
	// internal/app.Render paints against.
	Cols, Rows int
	LayoutCfg  layout.Config
}

// New creates a Loop wired to the given model components.
func New(mux *multiplexer.Multiplexer, ed *editor.Editor, comp *completion.Engine) *Loop {
	return &Loop{
		Mux:         mux,
		Editor:      ed,
		Completion:  comp,
		terminals:   make(map[uint64]*terminalHandle),
		inputEvents: make(chan AppEvent, 256),
		resizeCh:    make(chan ResizeEvent, 4),
		quitCh:      make(chan struct{}),
		QuitKey:     keys.Event{Ctrl: true, Rune: 'q'},
	}
}

// AttachTerminal registers a terminal's PTY pump for output fan-in and
// returns its id, used to tag PtyOutput/PtyExit events. Publishes
// TerminalCreated if a Bus is wired. A nil pump (the terminal's PTY spawn
// failed) registers no handle at all: drainPtyOutput only ever iterates
// terminals with a live pump to poll.
func (l *Loop) AttachTerminal(term *vterm.Terminal, pump *pty.Pump) uint64 {
	l.nextTermID++
	id := l.nextTermID
	if pump != nil {
		l.terminals[id] = &terminalHandle{id: id, term: term, pump: pump}
	}
	if l.Bus != nil {
		l.Bus.Publish(eventbus.Event{Topic: eventbus.TerminalCreated, TerminalID: id})
	}
	return id
}

// DetachTerminal removes a terminal's pump registration, e.g. after
// ClosePane.
func (l *Loop) DetachTerminal(id uint64) {
	delete(l.terminals, id)
}

// SetDirtyCheck installs the callback Quit uses to decide whether to defer
// termination (spec.md §4.10 "Cancellation").
func (l *Loop) SetDirtyCheck(f func() []string) { l.dirtyCheck = f }

// PostInput is the injection point background input-reader goroutines use
// to hand decoded events to the scheduler.
func (l *Loop) PostInput(ev AppEvent) { l.inputEvents <- ev }

// PostResize is the injection point the SIGWINCH watcher goroutine uses.
func (l *Loop) PostResize(ev ResizeEvent) { l.resizeCh <- ev }

// RequestQuit enqueues a Quit event through the same channel ordinary
// input arrives on, so it is processed in turn rather than pre-empting
// whatever tick is in flight.
func (l *Loop) RequestQuit() { l.inputEvents <- AppEvent{Kind: EventQuit} }

// PushPopup raises a modal overlay above the base composition.
func (l *Loop) PushPopup(p Popup) { l.popups = append(l.popups, p) }

// Run drives the scheduler until Quit completes or stop is closed. r is
// invoked once per tick in which any event mutated the model (step 5); it
// may be nil for headless operation (tests, and any caller content to poll
// Dispatch results itself instead).
func (l *Loop) Run(stop <-chan struct{}, r Renderer) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if l.tick(r) {
				return
			}
		}
	}
}

// tick performs one scheduler pass in the fixed order spec.md §4.10
// mandates, returning true once the loop should stop (Quit completed).
func (l *Loop) tick(r Renderer) bool {
	mutated := false

	for _, ev := range l.drainInput() {
		if ev.Kind == EventQuit || (ev.Kind == EventKey && len(l.popups) == 0 && ev.Key == l.QuitKey) {
			if l.handleQuit() {
				return true
			}
			mutated = true
			continue
		}
		if l.Dispatch(ev) {
			mutated = true
		}
	}

	for _, ev := range l.drainResize() {
		if l.Dispatch(AppEvent{Kind: EventResize, Resize: ev}) {
			mutated = true
		}
	}

	for _, ev := range l.drainPtyOutput() {
		if l.Dispatch(ev) {
			mutated = true
		}
	}

	for _, ev := range l.drainCompletion() {
		if l.Dispatch(ev) {
			mutated = true
		}
	}

	if mutated && r != nil {
		r.Render(l)
	}
	return false
}

func (l *Loop) drainInput() []AppEvent {
	var out []AppEvent
	for {
		select {
		case ev := <-l.inputEvents:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func (l *Loop) drainResize() []ResizeEvent {
	var out []ResizeEvent
	for {
		select {
		case ev := <-l.resizeCh:
			out = append(out, ev)
		default:
			return out
		}
	}
}

// drainPtyOutput polls every attached terminal's pump non-blockingly
// (spec.md §4.10 step 2, "drain all available PTY-output channels").
func (l *Loop) drainPtyOutput() []AppEvent {
	var out []AppEvent
	for id, h := range l.terminals {
		for {
			select {
			case chunk, ok := <-h.pump.Output():
				if !ok {
					break
				}
				out = append(out, AppEvent{Kind: EventPtyOutput, PtyOutput: PtyOutputEvent{TerminalID: id, Bytes: chunk.Data}})
				continue
			default:
			}
			break
		}
		select {
		case err := <-h.pump.Done():
			code := 0
			if err != nil {
				code = 1
			}
			out = append(out, AppEvent{Kind: EventPtyExit, PtyExit: PtyExitEvent{TerminalID: id, Code: code}})
		default:
		}
	}
	return out
}

func (l *Loop) drainCompletion() []AppEvent {
	if l.Completion == nil {
		return nil
	}
	var out []AppEvent
	for {
		select {
		case fired, ok := <-l.Completion.Fired():
			if !ok {
				return out
			}
			if l.Completion.ShouldFire(fired) {
				out = append(out, AppEvent{Kind: EventTimer, Timer: TimerEvent{ID: fired.BufferID}})
			}
		default:
			return out
		}
	}
}

// Dispatch routes ev through popups first, then the focused handler
// (spec.md §4.10 step 4). It returns whether the model mutated.
func (l *Loop) Dispatch(ev AppEvent) bool {
	if len(l.popups) > 0 {
		top := l.popups[len(l.popups)-1]
		if ev.Kind == EventKey {
			handled, mutated := top.HandleKey(ev.Key)
			if top.Done() {
				l.popups = l.popups[:len(l.popups)-1]
			}
			if handled {
				return mutated
			}
		}
	}

	switch ev.Kind {
	case EventKey:
		return l.dispatchKey(ev.Key)
	case EventMouse:
		return false // mouse events are not routed anywhere; Dispatch drops them
	case EventResize:
		return l.dispatchResize(ev.Resize)
	case EventPtyOutput:
		return l.dispatchPtyOutput(ev.PtyOutput)
	case EventPtyExit:
		return l.dispatchPtyExit(ev.PtyExit)
	case EventTimer:
		return true // caller (wiring code) is responsible for firing completion.Trigger
	default:
		return false
	}
}

func (l *Loop) dispatchKey(ev keys.Event) bool {
	if handled, mutated := l.dispatchMultiplexerKey(ev); handled {
		return mutated
	}
	switch l.Focus {
	case FocusEditor:
		mutated := l.Editor.HandleKey(ev)
		if mutated && l.Completion != nil {
			l.Completion.EditorMutated(l.currentBufferID())
		}
		return mutated
	default:
		term := l.Mux.Focused()
		if term == nil {
			return false
		}
		term.WriteInput(keys.Encode(ev, term.CursorKeysApp()))
		return false // PTY echoes back through PtyOutput; no immediate model mutation
	}
}

// dispatchMultiplexerKey routes the multiplexer's split/tab/focus chords,
// checked ahead of Focus-based routing the same way QuitKey is (spec.md
// §4.5 "Multiplexer (C6)"). They're bound on Ctrl+Alt since neither
// keymap_*.go nor raw PTY passthrough assigns that combination any
// meaning, so these chords reach the multiplexer regardless of which pane
// has focus.
func (l *Loop) dispatchMultiplexerKey(ev keys.Event) (handled, mutated bool) {
	if !ev.Ctrl || !ev.Alt {
		return false, false
	}
	switch {
	case ev.Rune == 's': // split the active tab's layout one step further
		if l.NewTerminal == nil {
			return true, false
		}
		l.Mux.Split(func() *vterm.Terminal {
			term, pump := l.NewTerminal()
			l.AttachTerminal(term, pump)
			return term
		})
		l.resizeActiveTabPanes()
		return true, true
	case ev.Rune == 'x': // close the focused pane
		if l.Mux.ClosePane(l.paneArea()) {
			l.RequestQuit()
		}
		l.resizeActiveTabPanes()
		return true, true
	case ev.Rune == 'o': // cycle focus among the active tab's panes
		l.Mux.CycleFocus()
		return true, true
	case ev.Rune == 't': // open a new tab
		if l.NewTerminal == nil {
			return true, false
		}
		term, pump := l.NewTerminal()
		l.AttachTerminal(term, pump)
		l.Mux.NewTab(term)
		l.resizeActiveTabPanes()
		return true, true
	case ev.Name == keys.NameTab: // cycle tabs
		l.Mux.CycleTab()
		l.resizeActiveTabPanes()
		return true, true
	case ev.Name == keys.NameLeft:
		l.Mux.FocusDirection("left", l.paneArea())
		return true, true
	case ev.Name == keys.NameRight:
		l.Mux.FocusDirection("right", l.paneArea())
		return true, true
	case ev.Name == keys.NameUp:
		l.Mux.FocusDirection("up", l.paneArea())
		return true, true
	case ev.Name == keys.NameDown:
		l.Mux.FocusDirection("down", l.paneArea())
		return true, true
	}
	return false, false
}

func (l *Loop) currentBufferID() uint64 {
	if buf := l.Editor.Current(); buf != nil {
		return buf.ID
	}
	return 0
}

// paneArea returns the screen region the active tab's panes are drawn
// within, the same geometry internal/app.Render composes against.
func (l *Loop) paneArea() layout.Rect {
	return layout.Compose(l.Cols, l.Rows, l.LayoutCfg).Terminals
}

// resizeActiveTabPanes resizes every pane of the active tab to its own
// sub-rect under the current geometry, called after any mutation that
// changes pane count, layout, or the active tab.
func (l *Loop) resizeActiveTabPanes() {
	t := l.Mux.ActiveTab()
	if t == nil {
		return
	}
	rects := t.PaneRects(l.paneArea())
	for i, term := range t.Panes {
		if i < len(rects) {
			term.Resize(rects[i].W, rects[i].H)
		}
	}
}

// dispatchResize resizes every pane of the active tab (spec.md §4.5: a
// Vertical/Quad tab's panes all share one terminal resize, not just the
// focused one) to its own sub-rect under the new geometry.
func (l *Loop) dispatchResize(ev ResizeEvent) bool {
	l.Cols, l.Rows = ev.Cols, ev.Rows
	l.resizeActiveTabPanes()
	l.Editor.Height = ev.Rows
	l.Editor.EnsureCursorVisible()
	return true
}

func (l *Loop) dispatchPtyOutput(ev PtyOutputEvent) bool {
	h, ok := l.terminals[ev.TerminalID]
	if !ok {
		return false
	}
	h.term.FeedBytes(ev.Bytes)
	return true
}

func (l *Loop) dispatchPtyExit(ev PtyExitEvent) bool {
	l.DetachTerminal(ev.TerminalID)
	if l.Bus != nil {
		l.Bus.Publish(eventbus.Event{Topic: eventbus.TerminalExited, TerminalID: ev.TerminalID})
	}
	return true
}

// handleQuit handles a Quit: it asks dirtyCheck for dirty buffers and, if
// there are none, terminates. With dirty buffers the first Quit only
// latches quitting and the loop keeps running; the next Quit (unless
// CancelQuit intervened) terminates. It performs no saves and raises no
// confirmation popup itself. It returns true once the scheduler may stop.
func (l *Loop) handleQuit() bool {
	if l.quitting {
		return true
	}
	if l.dirtyCheck != nil {
		if dirty := l.dirtyCheck(); len(dirty) > 0 {
			l.quitting = true
			return false
		}
	}
	return true
}

// CancelQuit lets a dirty-buffer confirmation popup abandon an in-flight
// quit request (the user chose to keep working instead of discarding
// changes).
func (l *Loop) CancelQuit() { l.quitting = false }
