package editor

import "rat/internal/keys"

// emacsDispatch implements the Emacs keymap (spec.md §4.7), grounded
// directly on _examples/dcosson-h2's client/cursor.go motion set
// (CursorLeft/Right, CursorToStart/End, CursorForwardWord/BackwardWord,
// KillToEnd, DeleteBackward), generalized to vertical motion and a real
// kill register. Table-driven per spec.md §9's "Keybinding configuration"
// redesign flag.
var emacsDispatch = dispatchTable{
	{Rune: 'b', Ctrl: true}: func(e *Editor, b *EditorBuffer) bool {
		b.Cursor.MoveLeft(b.text)
		return true
	},
	{Rune: 'f', Ctrl: true}: func(e *Editor, b *EditorBuffer) bool {
		b.Cursor.MoveRight(b.text)
		return true
	},
	{Rune: 'p', Ctrl: true}: func(e *Editor, b *EditorBuffer) bool {
		b.Cursor.MoveUp(b.text)
		return true
	},
	{Rune: 'n', Ctrl: true}: func(e *Editor, b *EditorBuffer) bool {
		b.Cursor.MoveDown(b.text)
		return true
	},
	{Rune: 'a', Ctrl: true}: func(e *Editor, b *EditorBuffer) bool {
		b.Cursor.MoveLineStart(b.text)
		return true
	},
	{Rune: 'e', Ctrl: true}: func(e *Editor, b *EditorBuffer) bool {
		b.Cursor.MoveLineEnd(b.text)
		return true
	},
	{Rune: 'f', Alt: true}: func(e *Editor, b *EditorBuffer) bool {
		b.Cursor.MoveWordRight(b.text)
		return true
	},
	{Rune: 'b', Alt: true}: func(e *Editor, b *EditorBuffer) bool {
		b.Cursor.MoveWordLeft(b.text)
		return true
	},
	{Rune: '<', Alt: true}: func(e *Editor, b *EditorBuffer) bool {
		b.Cursor.MoveBufferStart()
		return true
	},
	{Rune: '>', Alt: true}: func(e *Editor, b *EditorBuffer) bool {
		b.Cursor.MoveBufferEnd(b.text)
		return true
	},
	{Rune: 'd', Ctrl: true}: func(e *Editor, b *EditorBuffer) bool {
		end := b.Cursor.Pos + 1
		if end > b.text.LenChars() {
			end = b.text.LenChars()
		}
		b.DeleteRange(b.Cursor.Pos, end)
		return true
	},
	{Rune: 'k', Ctrl: true}: func(e *Editor, b *EditorBuffer) bool {
		line := b.text.CharToLine(b.Cursor.Pos)
		lineEnd := b.text.LineToChar(line) + len([]rune(b.text.Line(line)))
		if b.Cursor.Pos >= lineEnd {
			return false
		}
		e.killReg = b.text.Slice(b.Cursor.Pos, lineEnd)
		b.DeleteRange(b.Cursor.Pos, lineEnd)
		return true
	},
	{Name: keys.NameBackspace}: func(e *Editor, b *EditorBuffer) bool {
		b.DeleteBackward()
		return true
	},
	{Rune: '/', Ctrl: true}: func(e *Editor, b *EditorBuffer) bool {
		b.Undo()
		return true
	},
	{Rune: 'x', Ctrl: true}: func(e *Editor, b *EditorBuffer) bool {
		e.SaveActive()
		return true
	},
	{Name: keys.NameEnter}: func(e *Editor, b *EditorBuffer) bool {
		b.InsertChar('\n')
		return true
	},
}

func (e *Editor) handleEmacs(b *EditorBuffer, ev keys.Event) bool {
	if ok, mutated := emacsDispatch.dispatch(e, b, ev); ok {
		return mutated
	}
	if isSelfInsert(ev) {
		b.InsertChar(ev.Rune)
		return true
	}
	return false
}
