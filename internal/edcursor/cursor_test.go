package edcursor

import (
	"testing"

	"rat/internal/rope"
)

func TestMoveLeftRight(t *testing.T) {
	buf := rope.NewFromString("hello")
	c := New()
	c.MoveRight(buf)
	c.MoveRight(buf)
	if c.Pos != 2 {
		t.Fatalf("Pos = %d, want 2", c.Pos)
	}
	c.MoveLeft(buf)
	if c.Pos != 1 {
		t.Fatalf("Pos = %d, want 1", c.Pos)
	}
}

func TestMoveUpDownPreservesDesiredColumn(t *testing.T) {
	buf := rope.NewFromString("abcdef\nxy\nabcdef")
	c := New()
	c.Pos = 5 // column 5 of line 0
	c.desiredCol = 5
	c.MoveDown(buf) // line 1 "xy" has len 2: clamp to col 2
	if c.Pos != 7+2 {
		t.Fatalf("Pos after MoveDown = %d, want %d", c.Pos, 7+2)
	}
	c.MoveDown(buf) // line 2 "abcdef": desiredCol still 5, should restore to col 5
	if want := buf.LineToChar(2) + 5; c.Pos != want {
		t.Fatalf("Pos after second MoveDown = %d, want %d", c.Pos, want)
	}
}

func TestMoveWordRightLeft(t *testing.T) {
	buf := rope.NewFromString("foo  bar baz")
	c := New()
	c.MoveWordRight(buf)
	if c.Pos != 3 {
		t.Fatalf("Pos after first word-right = %d, want 3", c.Pos)
	}
	c.MoveWordRight(buf)
	if c.Pos != 8 {
		t.Fatalf("Pos after second word-right = %d, want 8", c.Pos)
	}
	c.MoveWordLeft(buf)
	if c.Pos != 5 {
		t.Fatalf("Pos after word-left = %d, want 5", c.Pos)
	}
}

func TestMoveLineStartEnd(t *testing.T) {
	buf := rope.NewFromString("one\ntwo three\nfour")
	c := New()
	c.Pos = buf.LineToChar(1) + 4
	c.MoveLineEnd(buf)
	if got := buf.CharToLine(c.Pos); got != 1 {
		t.Fatalf("line after MoveLineEnd = %d", got)
	}
	c.MoveLineStart(buf)
	if c.Pos != buf.LineToChar(1) {
		t.Fatalf("Pos after MoveLineStart = %d, want %d", c.Pos, buf.LineToChar(1))
	}
}

func TestMoveBufferStartEnd(t *testing.T) {
	buf := rope.NewFromString("abc\ndef")
	c := New()
	c.Pos = 3
	c.MoveBufferEnd(buf)
	if c.Pos != buf.LenChars() {
		t.Fatalf("Pos = %d, want %d", c.Pos, buf.LenChars())
	}
	c.MoveBufferStart()
	if c.Pos != 0 {
		t.Fatalf("Pos = %d, want 0", c.Pos)
	}
}

func TestExtendToSetsAnchorOnce(t *testing.T) {
	c := New()
	c.Pos = 2
	c.ExtendTo(5)
	start, end, ok := c.Selection()
	if !ok || start != 2 || end != 5 {
		t.Fatalf("selection = (%d,%d,%v)", start, end, ok)
	}
	c.ExtendTo(0)
	start, end, ok = c.Selection()
	if !ok || start != 0 || end != 2 {
		t.Fatalf("selection after second ExtendTo = (%d,%d,%v)", start, end, ok)
	}
}

func TestPlainMotionClearsSelection(t *testing.T) {
	buf := rope.NewFromString("hello world")
	c := New()
	c.ExtendTo(5)
	c.MoveRight(buf)
	if _, _, ok := c.Selection(); ok {
		t.Fatal("expected selection cleared after plain motion")
	}
}
