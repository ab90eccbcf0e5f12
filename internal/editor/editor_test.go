package editor

import (
	"os"
	"path/filepath"
	"testing"

	"rat/internal/eventbus"
	"rat/internal/keys"
)

func typeRune(e *Editor, r rune) bool { return e.HandleKey(keys.Event{Rune: r}) }

func TestDefaultKeymapInsertAndUndo(t *testing.T) {
	e := New()
	typeRune(e, 'a')
	typeRune(e, 'b')
	typeRune(e, 'c')
	if got := e.Current().Text().String(); got != "abc" {
		t.Fatalf("text = %q", got)
	}
	e.Current().Undo()
	if got := e.Current().Text().String(); got != "" {
		t.Fatalf("text after undo = %q, want empty (coalesced single entry)", got)
	}
}

func TestUndoCoalescingBreaksOnExplicitBreak(t *testing.T) {
	e := New()
	typeRune(e, 'a')
	typeRune(e, 'b')
	e.HandleKey(keys.Event{Name: keys.NameLeft})
	e.HandleKey(keys.Event{Name: keys.NameRight})
	typeRune(e, 'c')
	// "ab", then the cursor moves left and right again, then "c" is
	// appended; moving left+right lands back at the same spot so the edit
	// position is contiguous and "abc" stays one entry — this test instead
	// checks that an explicit BreakCoalescing (mode change) starts a fresh
	// undo entry.
	e.Current().BreakCoalescing()
	typeRune(e, 'd')
	if got := e.Current().Text().String(); got != "abcd" {
		t.Fatalf("text = %q", got)
	}
	e.Current().Undo()
	if got := e.Current().Text().String(); got != "abc" {
		t.Fatalf("text after one undo = %q, want %q", got, "abc")
	}
}

func TestVimModeTransitions(t *testing.T) {
	e := New()
	e.SetKeymap(KeymapVim)
	if e.Mode != ModeVimNormal {
		t.Fatalf("mode = %v, want Normal", e.Mode)
	}
	e.HandleKey(keys.Event{Rune: 'i'})
	if e.Mode != ModeVimInsert {
		t.Fatalf("mode = %v, want Insert", e.Mode)
	}
	e.HandleKey(keys.Event{Rune: 'h'})
	e.HandleKey(keys.Event{Rune: 'i'})
	if got := e.Current().Text().String(); got != "hi" {
		t.Fatalf("text = %q", got)
	}
	e.HandleKey(keys.Event{Name: keys.NameEsc})
	if e.Mode != ModeVimNormal {
		t.Fatalf("mode after Esc = %v, want Normal", e.Mode)
	}
}

func TestVimVisualDelete(t *testing.T) {
	e := New()
	e.Current().InsertText("hello world")
	e.Current().Cursor.Pos = 0
	e.SetKeymap(KeymapVim)
	e.HandleKey(keys.Event{Rune: 'v'})
	for i := 0; i < 4; i++ {
		e.HandleKey(keys.Event{Rune: 'l'})
	}
	e.HandleKey(keys.Event{Rune: 'd'})
	if got := e.Current().Text().String(); got != " world" {
		t.Fatalf("text = %q", got)
	}
}

func TestEmacsKillToEOL(t *testing.T) {
	e := New()
	e.Current().InsertText("hello world")
	e.Current().Cursor.Pos = 5
	e.SetKeymap(KeymapEmacs)
	e.HandleKey(keys.Event{Ctrl: true, Rune: 'k'})
	if got := e.Current().Text().String(); got != "hello" {
		t.Fatalf("text = %q", got)
	}
	if e.killReg != " world" {
		t.Fatalf("killReg = %q", e.killReg)
	}
}

func TestSaveWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	b, err := OpenFile(path, "")
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	b.InsertText("saved content")
	if err := b.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "saved content" {
		t.Fatalf("file content = %q", data)
	}
	if b.Dirty {
		t.Fatal("expected Dirty cleared after Save")
	}
}

func TestSaveActivePublishesFileSaved(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	b, err := OpenFile(path, "")
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	b.InsertText("saved content")

	e := New()
	e.Buffers = []*EditorBuffer{b}
	e.Active = 0
	e.Bus = eventbus.New()
	var got []eventbus.Event
	e.Bus.Subscribe(eventbus.FileSaved, func(ev eventbus.Event) { got = append(got, ev) })

	if err := e.SaveActive(); err != nil {
		t.Fatalf("SaveActive: %v", err)
	}
	if len(got) != 1 || got[0].Topic != eventbus.FileSaved || got[0].Path != path {
		t.Fatalf("events = %+v, want one FileSaved for %q", got, path)
	}
}

func TestSaveKeyDispatchesThroughSaveActiveInEveryKeymap(t *testing.T) {
	for _, km := range []Keymap{KeymapDefault, KeymapEmacs, KeymapVim} {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.txt")
		b, err := OpenFile(path, "")
		if err != nil {
			t.Fatalf("OpenFile: %v", err)
		}
		b.InsertText("x")

		e := New()
		e.Buffers = []*EditorBuffer{b}
		e.Active = 0
		e.SetKeymap(km)
		e.Bus = eventbus.New()
		saved := false
		e.Bus.Subscribe(eventbus.FileSaved, func(ev eventbus.Event) { saved = true })

		saveKey := 's' // Default and Vim save on Ctrl+S, Emacs on Ctrl+X
		if km == KeymapEmacs {
			saveKey = 'x'
		}
		e.HandleKey(keys.Event{Ctrl: true, Rune: saveKey})

		if !saved {
			t.Fatalf("keymap %v: Ctrl+%c did not publish FileSaved", km, saveKey)
		}
	}
}

func TestEnsureCursorVisibleScrollsMinimally(t *testing.T) {
	e := New()
	lines := ""
	for i := 0; i < 100; i++ {
		lines += "line\n"
	}
	e.Current().Text().Insert(0, lines)
	e.Height = 10
	e.Current().Cursor.Pos = e.Current().Text().LineToChar(50)
	e.EnsureCursorVisible()
	if e.Top == 0 {
		t.Fatal("expected viewport to scroll toward line 50")
	}
	line := e.Current().Text().CharToLine(e.Current().Cursor.Pos)
	if line < e.Top || line >= e.Top+e.Height {
		t.Fatalf("cursor line %d not within viewport [%d,%d)", line, e.Top, e.Top+e.Height)
	}
}
