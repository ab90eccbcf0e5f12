// Package multiplexer implements tabs and split-pane terminals (spec.md
// §4.5 "Multiplexer (C6)"): a Single/VerticalSplit/Quad2x2 layout state
// machine per tab, with focus tracked as a (tab, pane) pair.
//
// Grounded on _examples/dcosson-h2's multi-client attach shape (one VT per
// session, many clients) generalized to the inverse: one focus, many VTs
// per tab. Pane rectangle geometry used by directional focus is supplied by
// internal/layout.
package multiplexer

import (
	"rat/internal/layout"
	"rat/internal/vterm"
)

// Layout enumerates a tab's pane arrangement.
type Layout int

const (
	Single Layout = iota
	VerticalSplit
	Quad2x2
)

func (l Layout) paneCount() int {
	switch l {
	case VerticalSplit:
		return 2
	case Quad2x2:
		return 4
	default:
		return 1
	}
}

// Tab is one multiplexer tab: a layout and its live terminals, in pane
// order.
type Tab struct {
	Layout Layout
	Panes  []*vterm.Terminal
	Title  string
}

// PaneRects returns this tab's pane rectangles within area, in pane order,
// so the render layer can paint every pane at its own geometry instead of
// stretching a single terminal across the whole region (spec.md §4.5/§4.11).
func (t *Tab) PaneRects(area layout.Rect) []layout.Rect {
	return layout.PaneRects(toLayoutPaneLayout(t.Layout), area)
}

// Multiplexer owns all tabs and the current focus.
type Multiplexer struct {
	Tabs      []*Tab
	FocusTab  int
	FocusPane int
}

// New creates a Multiplexer with a single tab holding one terminal.
func New(first *vterm.Terminal) *Multiplexer {
	return &Multiplexer{Tabs: []*Tab{{Layout: Single, Panes: []*vterm.Terminal{first}}}}
}

// ActiveTab returns the focused tab, or nil if there are none.
func (m *Multiplexer) ActiveTab() *Tab {
	if m.FocusTab < 0 || m.FocusTab >= len(m.Tabs) {
		return nil
	}
	return m.Tabs[m.FocusTab]
}

// Focused returns the terminal under focus, or nil.
func (m *Multiplexer) Focused() *vterm.Terminal {
	t := m.ActiveTab()
	if t == nil || m.FocusPane < 0 || m.FocusPane >= len(t.Panes) {
		return nil
	}
	return t.Panes[m.FocusPane]
}

// NewTab opens a new Single-layout tab holding term and focuses it.
func (m *Multiplexer) NewTab(term *vterm.Terminal) {
	m.Tabs = append(m.Tabs, &Tab{Layout: Single, Panes: []*vterm.Terminal{term}})
	m.FocusTab = len(m.Tabs) - 1
	m.FocusPane = 0
}

// Split advances the active tab's layout Single -> VerticalSplit ->
// Quad2x2, calling newPane to fill each newly created pane slot (the state
// diagram in spec.md §4.5). Split is a no-op once already at Quad2x2.
func (m *Multiplexer) Split(newPane func() *vterm.Terminal) {
	t := m.ActiveTab()
	if t == nil {
		return
	}
	switch t.Layout {
	case Single:
		t.Layout = VerticalSplit
		t.Panes = append(t.Panes, newPane())
	case VerticalSplit:
		t.Layout = Quad2x2
		t.Panes = append(t.Panes, newPane(), newPane())
	case Quad2x2:
		// already at maximum pane count for this spec
	}
}

// ClosePane removes the focused pane. If it was the tab's last pane, the
// tab itself closes (spec.md §4.5 "last_pane_closed"); ClosePane reports
// whether the whole Multiplexer is now empty, which signals a shutdown
// request to the event loop. area is the screen region the tab's panes are
// drawn within, used to retarget focus to the geometrically closest
// remaining pane (spec.md §4.5 "removing the focused pane moves focus to
// the geometrically closest neighbor"), the same distance metric
// FocusDirection uses.
func (m *Multiplexer) ClosePane(area layout.Rect) (multiplexerEmpty bool) {
	t := m.ActiveTab()
	if t == nil {
		return len(m.Tabs) == 0
	}
	oldRects := t.PaneRects(area)
	var cx, cy int
	if m.FocusPane < len(oldRects) {
		cx, cy = oldRects[m.FocusPane].Center()
	}
	t.Panes = append(t.Panes[:m.FocusPane], t.Panes[m.FocusPane+1:]...)
	switch {
	case len(t.Panes) == 0:
		m.Tabs = append(m.Tabs[:m.FocusTab], m.Tabs[m.FocusTab+1:]...)
		if m.FocusTab >= len(m.Tabs) {
			m.FocusTab = len(m.Tabs) - 1
		}
		m.FocusPane = 0
		return len(m.Tabs) == 0
	default:
		t.Layout = layoutForCount(len(t.Panes))
		rects := t.PaneRects(area)
		if len(rects) > len(t.Panes) {
			rects = rects[:len(t.Panes)] // trailing slots in Quad2x2 unused below 4 panes
		}
		m.FocusPane = closestPaneIndex(rects, cx, cy)
		return false
	}
}

// layoutForCount picks the smallest layout whose PaneRects count covers n
// panes, so a tab that has shed panes (via ClosePane) still has one rect per
// surviving pane: 3 panes use Quad2x2's four rects with the last slot unused
// rather than VerticalSplit's two, which would leave a pane with no rect at
// all.
func layoutForCount(n int) Layout {
	switch {
	case n <= 1:
		return Single
	case n == 2:
		return VerticalSplit
	default:
		return Quad2x2
	}
}

// CycleFocus advances focus to the next pane within the active tab,
// wrapping (spec.md §4.5 "cycle_focus").
func (m *Multiplexer) CycleFocus() {
	t := m.ActiveTab()
	if t == nil || len(t.Panes) == 0 {
		return
	}
	m.FocusPane = (m.FocusPane + 1) % len(t.Panes)
}

// CycleTab switches focus to the next tab, wrapping, resetting pane focus
// to 0.
func (m *Multiplexer) CycleTab() {
	if len(m.Tabs) == 0 {
		return
	}
	m.FocusTab = (m.FocusTab + 1) % len(m.Tabs)
	m.FocusPane = 0
}
