package completion

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Source identifies which provider produced an Item, used to preserve the
// "first provider's ranking" rule during merge (spec.md §4.8).
type Source int

const (
	SourceLSP Source = iota
	SourceKeyword
)

// Item is one completion candidate.
type Item struct {
	Label  string
	Source Source
}

// Request captures everything a provider needs, frozen at trigger time
// (spec.md §3 CompletionState: trigger_position, prefix, ...).
type Request struct {
	RequestID      uint64
	BufferID       uint64
	TriggerPos     int
	Prefix         string
	Language       string
	BufferSnapshot string // buffer content at trigger_position capture time
	BufferText     string // full buffer text, for keyword harvesting
}

// Provider produces completion candidates for a Request.
type Provider interface {
	Complete(req Request) ([]Item, error)
}

// Result is what a completed request yields, ready for invalidation
// checking and ghost-text display.
type Result struct {
	RequestID uint64
	BufferID  uint64
	Items     []Item
	Ghost     string // top-ranked item's suffix past the prefix
}

// FireEvent is a drained debounce-timer expiration (spec.md §4.10 step 3).
type FireEvent struct {
	BufferID uint64
	gen      uint64
}

type providerResult struct {
	items []Item
	err   error
}

// Engine owns debounce timers and provider fan-out. It is driven by the
// event loop: EditorMutated arms a timer, and Fired() is drained once per
// tick (spec.md §4.10 step 3).
type Engine struct {
	mu          sync.Mutex
	nextRequest uint64
	timers      map[uint64]*time.Timer
	generations map[uint64]uint64
	providers   []Provider
	debounce    time.Duration
	fired       chan FireEvent
}

// New creates an Engine with providers tried in priority order (LSP first
// when available, keyword always last as the guaranteed fallback).
func New(providers ...Provider) *Engine {
	return &Engine{
		timers:      make(map[uint64]*time.Timer),
		generations: make(map[uint64]uint64),
		providers:   providers,
		debounce:    300 * time.Millisecond,
		fired:       make(chan FireEvent, 64),
	}
}

// Fired returns the channel the event loop drains for debounce-timer
// expirations.
func (e *Engine) Fired() <-chan FireEvent { return e.fired }

// EditorMutated arms (or re-arms) the 300ms debounce timer for bufferID
// (spec.md §4.8 "Trigger rule"). Each call supersedes any previously armed
// timer for the same buffer: ShouldFire rejects a stale firing once a
// later mutation has bumped the generation.
func (e *Engine) EditorMutated(bufferID uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.generations[bufferID]++
	gen := e.generations[bufferID]
	if t, ok := e.timers[bufferID]; ok {
		t.Stop()
	}
	e.timers[bufferID] = time.AfterFunc(e.debounce, func() {
		e.fired <- FireEvent{BufferID: bufferID, gen: gen}
	})
}

// ShouldFire reports whether a drained FireEvent is still the latest
// mutation for its buffer ("the mutation was the last event" in §4.8); a
// superseded timer is discarded silently by the caller.
func (e *Engine) ShouldFire(ev FireEvent) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ev.gen == e.generations[ev.BufferID]
}

// Trigger issues req to all providers concurrently under a shared
// request id, merges results per §4.8 "Result merging", and returns the
// merged Result. isStale is re-checked after providers answer so a result
// that arrived after the cursor moved past the trigger boundary is
// discarded per §4.8 "Invalidation" rather than displayed.
func (e *Engine) Trigger(req Request, isStale func() bool) Result {
	req.RequestID = atomic.AddUint64(&e.nextRequest, 1)
	results := make([]providerResult, len(e.providers))
	var wg sync.WaitGroup
	for i, p := range e.providers {
		wg.Add(1)
		go func(i int, p Provider) {
			defer wg.Done()
			items, err := p.Complete(req)
			results[i] = providerResult{items: items, err: err}
		}(i, p)
	}
	wg.Wait()
	if isStale != nil && isStale() {
		return Result{RequestID: req.RequestID, BufferID: req.BufferID}
	}
	merged := merge(results)
	ghost := ""
	if len(merged) > 0 {
		ghost = strings.TrimPrefix(merged[0].Label, req.Prefix)
	}
	return Result{RequestID: req.RequestID, BufferID: req.BufferID, Items: merged, Ghost: ghost}
}

func merge(results []providerResult) []Item {
	seen := make(map[string]bool)
	var out []Item
	for _, r := range results {
		if r.err != nil {
			continue
		}
		for _, it := range r.items {
			if seen[it.Label] {
				continue
			}
			seen[it.Label] = true
			out = append(out, it)
			if len(out) >= 100 {
				return out
			}
		}
	}
	return out
}
