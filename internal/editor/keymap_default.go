package editor

import "rat/internal/keys"

// defaultDispatch implements the Default keymap (spec.md §4.7): arrow keys,
// Home/End/PageUp/PageDown, Ctrl+Arrow for word motion, Ctrl+Z/Y for
// undo/redo, Ctrl+S to save. Closest in spirit to the teacher's plain
// readline-style input handling (client/cursor.go), extended to a
// multi-line buffer. A table lookup keyed by (key, modifiers) replaces the
// switch cascade spec.md §9's "Keybinding configuration" redesign flag
// names, so adding or rebinding a key never touches handleDefault itself.
var defaultDispatch = dispatchTable{
	{Name: keys.NameUp}: func(e *Editor, b *EditorBuffer) bool {
		b.Cursor.MoveUp(b.text)
		return true
	},
	{Name: keys.NameDown}: func(e *Editor, b *EditorBuffer) bool {
		b.Cursor.MoveDown(b.text)
		return true
	},
	{Name: keys.NameLeft, Ctrl: true}: func(e *Editor, b *EditorBuffer) bool {
		b.Cursor.MoveWordLeft(b.text)
		return true
	},
	{Name: keys.NameLeft}: func(e *Editor, b *EditorBuffer) bool {
		b.Cursor.MoveLeft(b.text)
		return true
	},
	{Name: keys.NameRight, Ctrl: true}: func(e *Editor, b *EditorBuffer) bool {
		b.Cursor.MoveWordRight(b.text)
		return true
	},
	{Name: keys.NameRight}: func(e *Editor, b *EditorBuffer) bool {
		b.Cursor.MoveRight(b.text)
		return true
	},
	{Name: keys.NameHome}: func(e *Editor, b *EditorBuffer) bool {
		b.Cursor.MoveLineStart(b.text)
		return true
	},
	{Name: keys.NameEnd}: func(e *Editor, b *EditorBuffer) bool {
		b.Cursor.MoveLineEnd(b.text)
		return true
	},
	{Name: keys.NamePgUp}: func(e *Editor, b *EditorBuffer) bool {
		for i := 0; i < e.Height; i++ {
			b.Cursor.MoveUp(b.text)
		}
		return true
	},
	{Name: keys.NamePgDn}: func(e *Editor, b *EditorBuffer) bool {
		for i := 0; i < e.Height; i++ {
			b.Cursor.MoveDown(b.text)
		}
		return true
	},
	{Name: keys.NameBackspace}: func(e *Editor, b *EditorBuffer) bool {
		b.DeleteBackward()
		return true
	},
	{Name: keys.NameEnter}: func(e *Editor, b *EditorBuffer) bool {
		b.InsertChar('\n')
		return true
	},
	{Rune: 'z', Ctrl: true}: func(e *Editor, b *EditorBuffer) bool {
		b.Undo()
		return true
	},
	{Rune: 'y', Ctrl: true}: func(e *Editor, b *EditorBuffer) bool {
		b.Redo()
		return true
	},
	{Rune: 's', Ctrl: true}: func(e *Editor, b *EditorBuffer) bool {
		e.SaveActive()
		return true
	},
}

func (e *Editor) handleDefault(b *EditorBuffer, ev keys.Event) bool {
	if ok, mutated := defaultDispatch.dispatch(e, b, ev); ok {
		return mutated
	}
	if isSelfInsert(ev) {
		b.InsertChar(ev.Rune)
		return true
	}
	return false
}
