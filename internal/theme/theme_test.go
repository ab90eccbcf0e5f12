package theme

import (
	"testing"

	"rat/internal/cell"
)

type fakeInvalidator struct{ calls int }

func (f *fakeInvalidator) MarkAllDamaged() { f.calls++ }

func TestSetInvalidatesWatchedSurfaces(t *testing.T) {
	s := New()
	a, b := &fakeInvalidator{}, &fakeInvalidator{}
	s.Watch(a)
	s.Watch(b)

	s.Set(Default())

	if a.calls != 1 || b.calls != 1 {
		t.Fatalf("invalidator calls = %d,%d, want 1,1", a.calls, b.calls)
	}
}

func TestCurrentReflectsLastSet(t *testing.T) {
	s := New()
	d := Default()
	d.Cursor = cell.RGB(10, 20, 30)
	s.Set(d)
	if s.Current() != d {
		t.Fatal("Current() did not reflect the descriptor passed to Set")
	}
}
