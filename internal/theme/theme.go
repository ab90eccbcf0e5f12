// Package theme implements the theme sink spec.md §6 names: it holds a
// swappable theme descriptor, and a runtime theme change invalidates the
// entire damage set of every watched surface. The render layer does not
// read the descriptor: cells are painted with their own styles whatever
// theme is set. Grounded on the teacher's termenv-based
// background/foreground detection in session/client/overlay.go, generalized
// from "detect the real terminal's colors once" to "hold a swappable
// descriptor."
package theme

import (
	"rat/internal/cell"
	"rat/internal/eventbus"
)

// Descriptor is the theme payload spec.md §6 specifies:
// { fg, bg, cursor, selection, palette[0..=255] }.
type Descriptor struct {
	Fg        cell.Color
	Bg        cell.Color
	Cursor    cell.Color
	Selection cell.Color
	Palette   [256]cell.Color
}

// Default returns the descriptor a fresh session starts with: default fg/bg,
// a plain-white cursor, a dark-grey selection tint, and the standard
// 256-color ANSI palette expressed as indexed colors.
func Default() Descriptor {
	d := Descriptor{
		Fg:        cell.Color{},
		Bg:        cell.Color{},
		Cursor:    cell.RGB(255, 255, 255),
		Selection: cell.RGB(68, 68, 68),
	}
	for i := range d.Palette {
		d.Palette[i] = cell.Indexed(uint8(i))
	}
	return d
}

// Invalidator is implemented by anything whose damage tracking must be
// reset wholesale on a theme change (grid.Grid's MarkAllDamaged).
type Invalidator interface {
	MarkAllDamaged()
}

// Sink holds the active descriptor and the surfaces a theme change must
// invalidate (one per live terminal/editor pane). Bus, if set, is notified
// of every Set so external observers can react to ThemeChanged (spec.md §6).
type Sink struct {
	current      Descriptor
	invalidators []Invalidator

	Bus *eventbus.Bus
}

// New creates a Sink starting from Default().
func New() *Sink {
	return &Sink{current: Default()}
}

// Current returns the active descriptor.
func (s *Sink) Current() Descriptor { return s.current }

// Watch registers a surface to invalidate on the next Set.
func (s *Sink) Watch(inv Invalidator) {
	s.invalidators = append(s.invalidators, inv)
}

// Set installs a new descriptor and invalidates every watched surface's
// entire damage set (spec.md §6: "Runtime theme change invalidates entire
// damage set").
func (s *Sink) Set(d Descriptor) {
	s.current = d
	for _, inv := range s.invalidators {
		inv.MarkAllDamaged()
	}
	if s.Bus != nil {
		s.Bus.Publish(eventbus.Event{Topic: eventbus.ThemeChanged})
	}
}
