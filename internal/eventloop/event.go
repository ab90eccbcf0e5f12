// Package eventloop implements the single-threaded cooperative scheduler
// (spec.md §4.10 "Event Loop (C12)") that owns all mutable model state and
// fans in Key/Mouse/Resize/PtyOutput/PtyExit/CompletionReady/Timer events
// from background worker goroutines via bounded channels (spec.md §5).
//
// Grounded on dcosson-h2's session/client overlay.go Run/ReadInput/
// TickStatus/WatchResize goroutine-and-channel shape, generalized from a
// single PTY+client pairing to many terminals, an editor, and a
// completion engine feeding one dispatch loop.
package eventloop

import "rat/internal/keys"

// EventKind tags the AppEvent union (spec.md §3).
type EventKind int

const (
	EventKey EventKind = iota
	EventMouse
	EventResize
	EventPtyOutput
	EventPtyExit
	EventCompletionReady
	EventTimer
	EventQuit
)

// MouseEvent is a decoded SGR mouse report.
type MouseEvent struct {
	Col, Row int
	Button   int
	Pressed  bool
}

// ResizeEvent carries the terminal's new size after SIGWINCH.
type ResizeEvent struct {
	Cols, Rows int
}

// PtyOutputEvent is a chunk of bytes read from one terminal's child
// process, tagged with which terminal it belongs to.
type PtyOutputEvent struct {
	TerminalID uint64
	Bytes      []byte
}

// PtyExitEvent reports a child process exit.
type PtyExitEvent struct {
	TerminalID uint64
	Code       int
}

// TimerEvent is a fired named timer (e.g. a completion debounce or a
// status-bar tick), keyed by an opaque id assigned at arm time.
type TimerEvent struct {
	ID uint64
}

// AppEvent is the tagged union spec.md §3 names: exactly one of the typed
// fields is meaningful, selected by Kind.
type AppEvent struct {
	Kind       EventKind
	Key        keys.Event
	Mouse      MouseEvent
	Resize     ResizeEvent
	PtyOutput  PtyOutputEvent
	PtyExit    PtyExitEvent
	Completion CompletionReadyEvent
	Timer      TimerEvent
}

// CompletionReadyEvent carries a finished completion request's merged
// result, keyed by buffer so the editor can validate/discard it.
type CompletionReadyEvent struct {
	RequestID uint64
	BufferID  uint64
	Ghost     string
	Items     int
}
