package vterm

import (
	"strings"
	"testing"

	"rat/internal/cell"
)

func TestFeedBytesPrintsAndMovesCursor(t *testing.T) {
	term := New(10, 3)
	term.FeedBytes([]byte("hi"))
	if got := term.Grid.Cursor(); got.Col != 2 {
		t.Fatalf("cursor col = %d, want 2", got.Col)
	}
	if !strings.HasPrefix(term.Grid.String(), "hi") {
		t.Fatalf("grid = %q", term.Grid.String())
	}
}

func TestFeedBytesCSICursorPosition(t *testing.T) {
	term := New(10, 5)
	term.FeedBytes([]byte("\x1b[3;4Hx"))
	cur := term.Grid.Cursor()
	if cur.Row != 2 || cur.Col != 4 { // x advances the column by one after write
		t.Fatalf("cursor = %+v", cur)
	}
}

func TestFeedBytesOSCTitle(t *testing.T) {
	term := New(10, 5)
	term.FeedBytes([]byte("\x1b]0;hello\x07"))
	if term.Title() != "hello" {
		t.Fatalf("title = %q", term.Title())
	}
}

func TestFeedBytesSGRTrueColor(t *testing.T) {
	term := New(10, 5)
	term.FeedBytes([]byte("\x1b[38;2;10;20;30mX"))
	c, _ := term.Grid.Cell(0, 0)
	if c.Style.Fg.Kind != cell.ColorRGB || c.Style.Fg.R != 10 || c.Style.Fg.G != 20 || c.Style.Fg.B != 30 {
		t.Fatalf("fg = %+v", c.Style.Fg)
	}
}

func TestFeedBytesAltScreenSwitch(t *testing.T) {
	term := New(10, 5)
	term.FeedBytes([]byte("\x1b[?1049h"))
	if !term.Grid.OnAlt() {
		t.Fatal("expected alt screen active after 1049h")
	}
	term.FeedBytes([]byte("\x1b[?1049l"))
	if term.Grid.OnAlt() {
		t.Fatal("expected primary screen active after 1049l")
	}
}

func TestFeedBytesCursorVisibilityToggle(t *testing.T) {
	term := New(10, 5)
	term.FeedBytes([]byte("\x1b[?25l"))
	if term.CursorVisible() {
		t.Fatal("expected cursor hidden after ?25l")
	}
	term.FeedBytes([]byte("\x1b[?25h"))
	if !term.CursorVisible() {
		t.Fatal("expected cursor visible after ?25h")
	}
}

func TestFeedBytesDECCKMTracked(t *testing.T) {
	term := New(10, 5)
	term.FeedBytes([]byte("\x1b[?1h"))
	if !term.CursorKeysApp() {
		t.Fatal("expected application cursor-key mode after ?1h")
	}
}

func TestResizePropagatesToGrid(t *testing.T) {
	term := New(10, 5)
	if err := term.Resize(20, 8); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if term.Grid.Cols != 20 || term.Grid.Rows != 8 {
		t.Fatalf("grid size = %dx%d", term.Grid.Cols, term.Grid.Rows)
	}
}
