package editor

import "rat/internal/keys"

// action is one bound keymap behavior: given the active editor and its
// current buffer, it performs the action and reports whether it mutated
// the buffer.
type action func(e *Editor, b *EditorBuffer) bool

// binding is a dispatch table's lookup key: a key/modifier combination
// normalized the way keys.Event already shapes one (spec.md §9
// "Keybinding configuration" redesign flag: "dispatch is a lookup, not a
// pattern-match cascade").
type binding struct {
	Name keys.Name
	Rune rune
	Ctrl bool
	Alt  bool
}

func keyOf(ev keys.Event) binding {
	return binding{Name: ev.Name, Rune: ev.Rune, Ctrl: ev.Ctrl, Alt: ev.Alt}
}

// dispatchTable maps one editor context's bound keys straight to their
// action, built once per mode in each keymap_*.go file. A table miss falls
// through to the caller's own fallback (normally self-insert for a plain
// printable rune, or text accumulation for the Vim command line).
type dispatchTable map[binding]action

// dispatch looks ev up in t and runs the bound action. ok reports whether
// the table had an entry at all; mutated is the action's own report and is
// meaningless when ok is false.
func (t dispatchTable) dispatch(e *Editor, b *EditorBuffer, ev keys.Event) (ok, mutated bool) {
	act, found := t[keyOf(ev)]
	if !found {
		return false, false
	}
	return true, act(e, b)
}

// isSelfInsert reports whether ev is a plain printable rune with no
// modifier that changes its meaning (Ctrl/Alt), the shared fallback every
// keymap uses once its dispatch table reports no binding.
func isSelfInsert(ev keys.Event) bool {
	return ev.Name == keys.NameNone && !ev.Ctrl && !ev.Alt && ev.Rune != 0
}
