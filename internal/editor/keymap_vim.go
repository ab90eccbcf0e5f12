package editor

import "rat/internal/keys"

// handleVim implements the three Vim sub-modes spec.md §4.7 names: Normal
// motion set (h j k l, w b, 0 $, g G), mode transitions (i a v :), Insert
// (plain insertion, Esc returns to Normal), and Visual (motion extends
// selection, d/x deletes it, Esc clears). Counts are explicitly out of
// scope (spec.md §4.7 non-goal).
func (e *Editor) handleVim(b *EditorBuffer, ev keys.Event) bool {
	switch e.Mode {
	case ModeVimInsert:
		return e.handleVimInsert(b, ev)
	case ModeVimVisual:
		return e.handleVimVisual(b, ev)
	case ModeVimCommand:
		return e.handleVimCommand(b, ev)
	default:
		return e.handleVimNormal(b, ev)
	}
}

// vimNormalDispatch is keyed on plain runes plus the two Ctrl bindings
// Normal mode recognizes; an unbound key returns false rather than falling
// through to self-insert, since Normal mode never inserts text.
var vimNormalDispatch = dispatchTable{
	{Rune: 'r', Ctrl: true}: func(e *Editor, b *EditorBuffer) bool {
		b.Redo()
		return true
	},
	{Rune: 's', Ctrl: true}: func(e *Editor, b *EditorBuffer) bool {
		e.SaveActive()
		return true
	},
	{Rune: 'h'}: func(e *Editor, b *EditorBuffer) bool {
		b.Cursor.MoveLeft(b.text)
		return true
	},
	{Rune: 'l'}: func(e *Editor, b *EditorBuffer) bool {
		b.Cursor.MoveRight(b.text)
		return true
	},
	{Rune: 'k'}: func(e *Editor, b *EditorBuffer) bool {
		b.Cursor.MoveUp(b.text)
		return true
	},
	{Rune: 'j'}: func(e *Editor, b *EditorBuffer) bool {
		b.Cursor.MoveDown(b.text)
		return true
	},
	{Rune: 'w'}: func(e *Editor, b *EditorBuffer) bool {
		b.Cursor.MoveWordRight(b.text)
		return true
	},
	{Rune: 'b'}: func(e *Editor, b *EditorBuffer) bool {
		b.Cursor.MoveWordLeft(b.text)
		return true
	},
	{Rune: '0'}: func(e *Editor, b *EditorBuffer) bool {
		b.Cursor.MoveLineStart(b.text)
		return true
	},
	{Rune: '$'}: func(e *Editor, b *EditorBuffer) bool {
		b.Cursor.MoveLineEnd(b.text)
		return true
	},
	{Rune: 'g'}: func(e *Editor, b *EditorBuffer) bool {
		b.Cursor.MoveBufferStart()
		return true
	},
	{Rune: 'G'}: func(e *Editor, b *EditorBuffer) bool {
		b.Cursor.MoveBufferEnd(b.text)
		return true
	},
	{Rune: 'i'}: func(e *Editor, b *EditorBuffer) bool {
		e.Mode = ModeVimInsert
		b.BreakCoalescing()
		return true
	},
	{Rune: 'a'}: func(e *Editor, b *EditorBuffer) bool {
		b.Cursor.MoveRight(b.text)
		e.Mode = ModeVimInsert
		b.BreakCoalescing()
		return true
	},
	{Rune: 'v'}: func(e *Editor, b *EditorBuffer) bool {
		e.Mode = ModeVimVisual
		b.Cursor.ExtendTo(b.Cursor.Pos)
		return true
	},
	{Rune: ':'}: func(e *Editor, b *EditorBuffer) bool {
		e.Mode = ModeVimCommand
		e.commandLine = ""
		return true
	},
	{Rune: 'x'}: func(e *Editor, b *EditorBuffer) bool {
		end := b.Cursor.Pos + 1
		if end > b.text.LenChars() {
			end = b.text.LenChars()
		}
		b.DeleteRange(b.Cursor.Pos, end)
		return true
	},
	{Rune: 'u'}: func(e *Editor, b *EditorBuffer) bool {
		b.Undo()
		return true
	},
}

func (e *Editor) handleVimNormal(b *EditorBuffer, ev keys.Event) bool {
	_, mutated := vimNormalDispatch.dispatch(e, b, ev)
	return mutated
}

// vimInsertDispatch holds Insert mode's non-self-insert bindings; a plain
// printable rune falls through to self-insert in handleVimInsert.
var vimInsertDispatch = dispatchTable{
	{Name: keys.NameEsc}: func(e *Editor, b *EditorBuffer) bool {
		e.Mode = ModeVimNormal
		b.BreakCoalescing()
		return true
	},
	{Rune: 's', Ctrl: true}: func(e *Editor, b *EditorBuffer) bool {
		e.SaveActive()
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
}

func (e *Editor) handleVimInsert(b *EditorBuffer, ev keys.Event) bool {
	if ok, mutated := vimInsertDispatch.dispatch(e, b, ev); ok {
		return mutated
	}
	if isSelfInsert(ev) {
		b.InsertChar(ev.Rune)
		return true
	}
	return false
}

// vimVisualDispatch holds Visual mode's motion/delete bindings; Esc is
// handled separately since it also clears the selection state machine-wide.
var vimVisualDispatch = dispatchTable{
	{Rune: 'h'}: func(e *Editor, b *EditorBuffer) bool {
		b.Cursor.ExtendTo(clamp0(b.Cursor.Pos - 1))
		return true
	},
	{Rune: 'l'}: func(e *Editor, b *EditorBuffer) bool {
		b.Cursor.ExtendTo(min(b.Cursor.Pos+1, b.text.LenChars()))
		return true
	},
	{Rune: 'w'}: func(e *Editor, b *EditorBuffer) bool {
		b.Cursor.ExtendTo(wordRightPos(b))
		return true
	},
	{Rune: 'd'}: func(e *Editor, b *EditorBuffer) bool {
		return deleteVisualSelection(e, b)
	},
	{Rune: 'x'}: func(e *Editor, b *EditorBuffer) bool {
		return deleteVisualSelection(e, b)
	},
}

// deleteVisualSelection deletes the active selection and returns to Normal
// mode; Vim visual selections are inclusive of the character under the
// cursor, while cursor.Selection() reports a half-open range.
func deleteVisualSelection(e *Editor, b *EditorBuffer) bool {
	start, end, ok := b.Cursor.Selection()
	if !ok {
		return false
	}
	if end < b.text.LenChars() {
		end++
	}
	b.DeleteRange(start, end)
	e.Mode = ModeVimNormal
	return true
}

func (e *Editor) handleVimVisual(b *EditorBuffer, ev keys.Event) bool {
	if ev.Name == keys.NameEsc {
		e.Mode = ModeVimNormal
		b.Cursor.ClearSelection()
		return true
	}
	_, mutated := vimVisualDispatch.dispatch(e, b, ev)
	return mutated
}

func (e *Editor) handleVimCommand(b *EditorBuffer, ev keys.Event) bool {
	switch {
	case ev.Name == keys.NameEsc:
		e.Mode = ModeVimNormal
		e.commandLine = ""
		return true
	case ev.Name == keys.NameEnter:
		e.runCommand(b, e.commandLine)
		e.commandLine = ""
		e.Mode = ModeVimNormal
		return true
	case ev.Name == keys.NameBackspace:
		if len(e.commandLine) > 0 {
			r := []rune(e.commandLine)
			e.commandLine = string(r[:len(r)-1])
		}
		return true
	case ev.Name == keys.NameNone && ev.Rune != 0:
		e.commandLine += string(ev.Rune)
		return true
	}
	return false
}

// CommandLine returns the in-progress ':' command text for rendering.
func (e *Editor) CommandLine() string { return e.commandLine }

func (e *Editor) runCommand(b *EditorBuffer, cmd string) {
	switch cmd {
	case "w":
		e.SaveActive()
	case "q":
		// pane-close is the multiplexer's responsibility; nothing to do at
		// the editor level beyond leaving the buffer as-is.
	case "wq":
		e.SaveActive()
	}
}

func clamp0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func wordRightPos(b *EditorBuffer) int {
	c := *b.Cursor
	c.MoveWordRight(b.text)
	return c.Pos
}
