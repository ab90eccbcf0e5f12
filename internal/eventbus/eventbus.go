// Package eventbus implements the event bus spec.md §6 names: external
// observers subscribe to {FileOpened, FileSaved, FileClosed,
// TerminalCreated, TerminalExited, ThemeChanged}; emission is synchronous
// within the tick that causes it. Grounded on the teacher's own
// subscriber-table shape (internal/bridge's notification fan-out), adapted
// from cross-process bridges to in-process, same-goroutine subscribers
// since the whole core runs on one event-loop goroutine (spec.md §5).
package eventbus

// Topic names one of the six events the core publishes.
type Topic int

const (
	FileOpened Topic = iota
	FileSaved
	FileClosed
	TerminalCreated
	TerminalExited
	ThemeChanged
)

// Event is the payload delivered to subscribers. Fields not relevant to a
// given Topic are left zero.
type Event struct {
	Topic      Topic
	Path       string
	TerminalID uint64
}

// Handler receives events published on topics it subscribed to.
type Handler func(Event)

// Bus fans published events out to subscribers synchronously, in
// subscription order, on the caller's goroutine. It is not safe for
// concurrent Publish/Subscribe calls from multiple goroutines, matching
// the single-threaded event loop that owns it (spec.md §5).
type Bus struct {
	subs map[Topic][]Handler
}

// New creates an empty Bus.
func New() *Bus {
	return &Bus{subs: make(map[Topic][]Handler)}
}

// Subscribe registers h to run on every future Publish(topic, ...).
func (b *Bus) Subscribe(topic Topic, h Handler) {
	b.subs[topic] = append(b.subs[topic], h)
}

// Publish synchronously invokes every handler subscribed to ev.Topic, in
// subscription order.
func (b *Bus) Publish(ev Event) {
	for _, h := range b.subs[ev.Topic] {
		h(ev)
	}
}
