package multiplexer

import (
	"testing"

	"rat/internal/layout"
	"rat/internal/vterm"
)

func newTestMux(t *testing.T) *Multiplexer {
	t.Helper()
	return New(vterm.New(80, 24))
}

func TestSplitAdvancesSingleToVerticalToQuad(t *testing.T) {
	m := newTestMux(t)
	next := func() *vterm.Terminal { return vterm.New(80, 24) }

	m.Split(next)
	if got := m.ActiveTab().Layout; got != VerticalSplit {
		t.Fatalf("layout after first Split = %v, want VerticalSplit", got)
	}
	if n := len(m.ActiveTab().Panes); n != 2 {
		t.Fatalf("panes after first Split = %d, want 2", n)
	}

	m.Split(next)
	if got := m.ActiveTab().Layout; got != Quad2x2 {
		t.Fatalf("layout after second Split = %v, want Quad2x2", got)
	}
	if n := len(m.ActiveTab().Panes); n != 4 {
		t.Fatalf("panes after second Split = %d, want 4", n)
	}

	m.Split(next)
	if n := len(m.ActiveTab().Panes); n != 4 {
		t.Fatalf("panes after Split at Quad2x2 = %d, want 4 (no-op)", n)
	}
}

func TestClosePaneRetargetsToGeometricNeighbor(t *testing.T) {
	m := newTestMux(t)
	next := func() *vterm.Terminal { return vterm.New(80, 24) }
	m.Split(next) // VerticalSplit: pane 0 left half, pane 1 right half
	m.Split(next) // Quad2x2: 0 top-left, 1 top-right, 2 bottom-left, 3 bottom-right

	area := layout.Rect{X: 0, Y: 0, W: 80, H: 24}
	m.FocusPane = 0 // top-left
	empty := m.ClosePane(area)
	if empty {
		t.Fatal("ClosePane reported empty with panes remaining")
	}
	if n := len(m.ActiveTab().Panes); n != 3 {
		t.Fatalf("panes after ClosePane = %d, want 3", n)
	}
	// 3 surviving panes fill Quad2x2's top-left/top-right/bottom-left slots
	// in order; the closed pane's old top-left center is still closest to
	// that same top-left slot, now occupied by the pane that used to be at
	// index 1.
	if m.FocusPane != 0 {
		t.Fatalf("FocusPane after ClosePane = %d, want 0 (nearest surviving neighbor)", m.FocusPane)
	}
}

func TestClosePaneClosesTabWhenLastPaneRemoved(t *testing.T) {
	m := newTestMux(t)
	area := layout.Rect{X: 0, Y: 0, W: 80, H: 24}
	empty := m.ClosePane(area)
	if !empty {
		t.Fatal("expected ClosePane to report the multiplexer empty after closing the only pane")
	}
	if len(m.Tabs) != 0 {
		t.Fatalf("len(Tabs) = %d, want 0", len(m.Tabs))
	}
}

func TestCycleFocusWraps(t *testing.T) {
	m := newTestMux(t)
	next := func() *vterm.Terminal { return vterm.New(80, 24) }
	m.Split(next)
	m.FocusPane = 1
	m.CycleFocus()
	if m.FocusPane != 0 {
		t.Fatalf("FocusPane after wrap = %d, want 0", m.FocusPane)
	}
}

func TestCycleTabWraps(t *testing.T) {
	m := newTestMux(t)
	m.NewTab(vterm.New(80, 24))
	m.FocusPane = 0
	m.CycleTab()
	if m.FocusTab != 0 {
		t.Fatalf("FocusTab after wrap = %d, want 0", m.FocusTab)
	}
}

func TestFocusDirectionMovesToRightPane(t *testing.T) {
	m := newTestMux(t)
	next := func() *vterm.Terminal { return vterm.New(80, 24) }
	m.Split(next)
	area := layout.Rect{X: 0, Y: 0, W: 80, H: 24}
	m.FocusPane = 0
	m.FocusDirection("right", area)
	if m.FocusPane != 1 {
		t.Fatalf("FocusPane after FocusDirection(right) = %d, want 1", m.FocusPane)
	}
}

func TestPaneRectsMatchesLayoutSplit(t *testing.T) {
	m := newTestMux(t)
	next := func() *vterm.Terminal { return vterm.New(80, 24) }
	m.Split(next)
	area := layout.Rect{X: 0, Y: 0, W: 80, H: 24}
	rects := m.ActiveTab().PaneRects(area)
	if len(rects) != 2 {
		t.Fatalf("len(PaneRects) = %d, want 2", len(rects))
	}
	if rects[0].W+rects[1].W != area.W {
		t.Fatalf("pane widths %d+%d != area width %d", rects[0].W, rects[1].W, area.W)
	}
}
