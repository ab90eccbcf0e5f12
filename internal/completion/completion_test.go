package completion

import (
	"testing"
	"time"
)

func TestKeywordProviderRanksByFrequencyThenFuzzy(t *testing.T) {
	p := KeywordProvider{}
	items, err := p.Complete(Request{
		Prefix:     "res",
		Language:   "go",
		BufferText: "result := compute()\nresult2 := result + resultSet\n",
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("expected at least one candidate")
	}
	if items[0].Label != "result" {
		t.Fatalf("top candidate = %q, want %q (highest frequency)", items[0].Label, "result")
	}
}

func TestKeywordProviderIncludesReservedWords(t *testing.T) {
	p := KeywordProvider{}
	items, err := p.Complete(Request{Prefix: "ret", Language: "go", BufferText: ""})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	found := false
	for _, it := range items {
		if it.Label == "return" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected reserved keyword 'return' among candidates")
	}
}

func TestEngineMergeDedupesByLabel(t *testing.T) {
	lsp := fakeProvider{items: makeItems("item", 60)}
	kw := fakeProvider{items: append(makeItems("item", 60), Item{Label: "unique"})}
	e := New(lsp, kw)
	res := e.Trigger(Request{BufferID: 1, Prefix: ""}, nil)
	if len(res.Items) != 61 {
		t.Fatalf("len(Items) = %d, want 61 (60 deduped + 1 unique)", len(res.Items))
	}
}

func TestEngineMergeCapsAtOneHundred(t *testing.T) {
	kw := fakeProvider{items: makeItems("item", 150)}
	e := New(kw)
	res := e.Trigger(Request{BufferID: 1}, nil)
	if len(res.Items) != 100 {
		t.Fatalf("len(Items) = %d, want 100", len(res.Items))
	}
}

func TestEngineGhostIsSuffixPastPrefix(t *testing.T) {
	kw := fakeProvider{items: []Item{{Label: "result"}}}
	e := New(kw)
	res := e.Trigger(Request{BufferID: 1, Prefix: "res"}, nil)
	if res.Ghost != "ult" {
		t.Fatalf("Ghost = %q, want %q", res.Ghost, "ult")
	}
}

func TestEngineTriggerDiscardsWhenStale(t *testing.T) {
	kw := fakeProvider{items: []Item{{Label: "result"}}}
	e := New(kw)
	res := e.Trigger(Request{BufferID: 1, Prefix: "res"}, func() bool { return true })
	if len(res.Items) != 0 || res.Ghost != "" {
		t.Fatalf("expected empty result when isStale, got %+v", res)
	}
}

func TestDebounceSupersedesEarlierTimer(t *testing.T) {
	e := New(KeywordProvider{})
	e.EditorMutated(1)
	time.Sleep(5 * time.Millisecond)
	e.EditorMutated(1) // supersedes the first timer
	select {
	case ev := <-e.Fired():
		if !e.ShouldFire(ev) {
			t.Fatal("expected the latest armed timer to report ShouldFire == true")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timer never fired")
	}
}

func TestStateAcceptRejectsMovedCursor(t *testing.T) {
	var s State
	s.Arm(1, 10, "res")
	err := s.Accept(Result{BufferID: 1, Ghost: "ult"}, 50, func(pos int) string { return "res" })
	if err == nil {
		t.Fatal("expected invalidation error when cursor moved far past trigger boundary")
	}
}

func TestStateAcceptRejectsChangedPrefix(t *testing.T) {
	var s State
	s.Arm(1, 10, "res")
	err := s.Accept(Result{BufferID: 1, Ghost: "ult"}, 13, func(pos int) string { return "req" })
	if err == nil {
		t.Fatal("expected invalidation error when buffer content at trigger no longer matches prefix")
	}
}

func TestStateAcceptSucceedsAndClears(t *testing.T) {
	var s State
	s.Arm(1, 10, "res")
	err := s.Accept(Result{BufferID: 1, Ghost: "ult"}, 13, func(pos int) string { return "res" })
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if s.DisplayedGhost != "ult" {
		t.Fatalf("DisplayedGhost = %q", s.DisplayedGhost)
	}
	s.Clear()
	if s.HasResult || s.DisplayedGhost != "" {
		t.Fatal("expected Clear to reset result state")
	}
}

type fakeProvider struct{ items []Item }

func (f fakeProvider) Complete(req Request) ([]Item, error) { return f.items, nil }

func makeItems(prefix string, n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{Label: prefix + string(rune('a'+i%26)) + string(rune('0'+i/26))}
	}
	return items
}
