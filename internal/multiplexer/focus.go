package multiplexer

import "rat/internal/layout"

// FocusDirection moves focus to the geometrically closest pane in the
// named direction, using the pane rectangles the compositor would draw for
// the active tab's layout within area (spec.md §4.5 "Directional focus").
func (m *Multiplexer) FocusDirection(dir string, area layout.Rect) {
	t := m.ActiveTab()
	if t == nil || len(t.Panes) < 2 {
		return
	}
	rects := layout.PaneRects(toLayoutPaneLayout(t.Layout), area)
	if m.FocusPane >= len(rects) {
		return
	}
	cx, cy := rects[m.FocusPane].Center()
	best := -1
	bestDist := 0
	for i, r := range rects {
		if i == m.FocusPane {
			continue
		}
		ox, oy := r.Center()
		if !inDirection(dir, cx, cy, ox, oy) {
			continue
		}
		d := (ox-cx)*(ox-cx) + (oy-cy)*(oy-cy)
		if best == -1 || d < bestDist {
			best, bestDist = i, d
		}
	}
	if best != -1 {
		m.FocusPane = best
	}
}

// closestPaneIndex returns the index of the rect geometrically nearest
// (cx, cy) by squared center distance, with no directional filter (used by
// ClosePane, where any surviving neighbor is a valid refocus target).
func closestPaneIndex(rects []layout.Rect, cx, cy int) int {
	best := 0
	bestDist := -1
	for i, r := range rects {
		ox, oy := r.Center()
		d := (ox-cx)*(ox-cx) + (oy-cy)*(oy-cy)
		if bestDist == -1 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func inDirection(dir string, cx, cy, ox, oy int) bool {
	switch dir {
	case "left":
		return ox < cx
	case "right":
		return ox > cx
	case "up":
		return oy < cy
	case "down":
		return oy > cy
	default:
		return false
	}
}

func toLayoutPaneLayout(l Layout) layout.PaneLayout {
	switch l {
	case VerticalSplit:
		return layout.VerticalSplit
	case Quad2x2:
		return layout.Quad2x2
	default:
		return layout.Single
	}
}
