package grid

import (
	"strings"
	"testing"

	"rat/internal/cell"
)

func TestPutAndCursorAdvance(t *testing.T) {
	g := New(10, 3)
	g.Put('h', 1)
	g.Put('i', 1)
	if got := g.Cursor(); got.Col != 2 || got.Row != 0 {
		t.Fatalf("cursor = %+v, want col=2 row=0", got)
	}
	if got := g.String(); !strings.HasPrefix(got, "hi") {
		t.Fatalf("grid content = %q", got)
	}
}

func TestWideCharSentinel(t *testing.T) {
	g := New(10, 1)
	g.Put('世', 2)
	c0, _ := g.Cell(0, 0)
	c1, _ := g.Cell(1, 0)
	if !c0.IsWide || c0.Ch != '世' {
		t.Fatalf("first cell = %+v", c0)
	}
	if !c1.IsWideTail {
		t.Fatalf("second cell should be wide tail, got %+v", c1)
	}
}

func TestScrollUpIntoScrollback(t *testing.T) {
	g := New(5, 2)
	g.Put('A', 1)
	g.LF()
	g.CR()
	g.Put('B', 1)
	g.LF() // scrolls: row0 "A...." leaves into scrollback
	if g.ScrollbackLen() != 1 {
		t.Fatalf("scrollback len = %d, want 1", g.ScrollbackLen())
	}
	row, ok := g.ScrollbackRow(0)
	if !ok || row[0].Ch != 'A' {
		t.Fatalf("scrollback row 0 = %+v", row)
	}
}

func TestAltScreenScrollIdentity(t *testing.T) {
	g := New(5, 4)
	g.SwitchToAlt(false)
	g.Put('X', 1)
	before := g.String()
	g.ScrollUp(2)
	g.ScrollDown(2)
	after := g.String()
	if before == after {
		t.Fatalf("expected scroll up/down to clear the line that scrolled off, got identical content")
	}
	// The X at (0,0) should have scrolled away and not returned (cleared
	// cells fill with blanks, not identity-preserving for content under the
	// scroll window — spec.md §8 "identity modulo cleared cells").
	if strings.Contains(after, "X") {
		t.Fatalf("expected X cleared after scroll up/down, got %q", after)
	}
}

func TestResizeNeverPanicsAtOneByOne(t *testing.T) {
	g := New(80, 24)
	g.Put('z', 1)
	g.Resize(1, 1)
	if g.Cols != 1 || g.Rows != 1 {
		t.Fatalf("resize dims = %dx%d", g.Cols, g.Rows)
	}
	cur := g.Cursor()
	if cur.Col != 0 || cur.Row != 0 {
		t.Fatalf("cursor after 1x1 resize = %+v", cur)
	}
}

func TestSelectionExtractCharMode(t *testing.T) {
	g := New(11, 1)
	for _, r := range "hello world" {
		g.Put(r, 1)
	}
	g.BeginSelection(6, 0, SelectChar)
	g.UpdateSelection(10, 0)
	if got := g.Extract(); got != "world" {
		t.Fatalf("Extract() = %q, want %q", got, "world")
	}
}

func TestSelectionRoundTrip(t *testing.T) {
	src := New(20, 1)
	for _, r := range "round trip me" {
		src.Put(r, 1)
	}
	src.BeginSelection(0, 0, SelectChar)
	src.UpdateSelection(12, 0)
	text := src.Extract()

	dst := New(20, 1)
	for _, r := range text {
		dst.Put(r, 1)
	}
	dst.BeginSelection(0, 0, SelectChar)
	dst.UpdateSelection(len([]rune(text))-1, 0)
	if got := dst.Extract(); got != text {
		t.Fatalf("round trip mismatch: %q != %q", got, text)
	}
}

func TestEraseInLineModes(t *testing.T) {
	g := New(5, 1)
	for _, r := range "abcde" {
		g.Put(r, 1)
	}
	g.MoveTo(2, 0)
	g.EraseInLine(0)
	if got := g.String(); got != "ab   " {
		t.Fatalf("EraseInLine(0) = %q", got)
	}
}

func TestChunkIndependence(t *testing.T) {
	whole := New(20, 3)
	for _, r := range "hello\nworld\n!" {
		if r == '\n' {
			whole.CR()
			whole.LF()
			continue
		}
		whole.Put(r, 1)
	}

	chunked := New(20, 3)
	data := "hello\nworld\n!"
	apply := func(b byte) {
		if b == '\n' {
			chunked.CR()
			chunked.LF()
			return
		}
		chunked.Put(rune(b), 1)
	}
	for i := 0; i < len(data); i += 3 {
		end := i + 3
		if end > len(data) {
			end = len(data)
		}
		for _, b := range []byte(data[i:end]) {
			apply(b)
		}
	}

	if whole.String() != chunked.String() {
		t.Fatalf("chunk independence violated:\n%q\n%q", whole.String(), chunked.String())
	}
}

func TestSGRColorAttributes(t *testing.T) {
	g := New(5, 1)
	g.SetStyle(cell.Style{Fg: cell.Indexed(1)})
	g.Put('X', 1)
	g.SetStyle(cell.Default())
	g.Put('Y', 1)
	c0, _ := g.Cell(0, 0)
	c1, _ := g.Cell(1, 0)
	if c0.Style.Fg.Kind != cell.ColorIndexed || c0.Style.Fg.Index != 1 {
		t.Fatalf("cell 0 fg = %+v, want red", c0.Style.Fg)
	}
	if c1.Style.Fg.Kind != cell.ColorDefault {
		t.Fatalf("cell 1 fg = %+v, want default", c1.Style.Fg)
	}
}
