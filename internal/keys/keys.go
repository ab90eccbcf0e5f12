// Package keys encodes decoded key events into the byte sequences a
// terminal child process expects on its stdin, following legacy vt220/xterm
// conventions. Grounded on other_examples' gdamore/tcell vt-emulate.go
// keyLegacy/legacyKeys table — the same K (CSI)/P (SS3, application cursor
// keys) split, narrowed to the keys spec.md §3's AppEvent.Key can carry.
package keys

// Name enumerates the non-printable keys the event loop can deliver.
type Name int

const (
	NameNone Name = iota
	NameUp
	NameDown
	NameLeft
	NameRight
	NameHome
	NameEnd
	NamePgUp
	NamePgDn
	NameIns
	NameDel
	NameTab
	NameBackspace
	NameEnter
	NameEsc
	NameF1
	NameF2
	NameF3
	NameF4
	NameF5
	NameF6
	NameF7
	NameF8
	NameF9
	NameF10
	NameF11
	NameF12
)

// Event is one decoded key press.
type Event struct {
	Rune  rune // set when Name == NameNone: a printable or Ctrl-combined rune
	Name  Name
	Ctrl  bool
	Alt   bool
	Shift bool
}

var csiLetter = map[Name]byte{
	NameUp: 'A', NameDown: 'B', NameRight: 'C', NameLeft: 'D',
	NameHome: 'H', NameEnd: 'F',
}

var tildeCode = map[Name]int{
	NameIns: 2, NameDel: 3, NamePgUp: 5, NamePgDn: 6,
	NameF5: 15, NameF6: 17, NameF7: 18, NameF8: 19, NameF9: 20, NameF10: 21,
	NameF11: 23, NameF12: 24,
}

var ss3Letter = map[Name]byte{
	NameF1: 'P', NameF2: 'Q', NameF3: 'R', NameF4: 'S',
}

// Encode renders ev as the bytes to write to the child's stdin. appCursor
// selects SS3 (application mode, DECCKM set) vs CSI encoding for the arrow
// and Home/End keys; it has no effect on other keys.
func Encode(ev Event, appCursor bool) []byte {
	if ev.Alt {
		// Alt sends ESC followed by the unmodified encoding (xterm
		// metaSendsEscape convention).
		return append([]byte{0x1b}, Encode(Event{Rune: ev.Rune, Name: ev.Name, Ctrl: ev.Ctrl, Shift: ev.Shift}, appCursor)...)
	}

	switch ev.Name {
	case NameNone:
		return encodeRune(ev.Rune, ev.Ctrl)
	case NameEnter:
		return []byte{'\r'}
	case NameTab:
		if ev.Shift {
			return []byte("\x1b[Z")
		}
		return []byte{'\t'}
	case NameBackspace:
		return []byte{0x7f}
	case NameEsc:
		return []byte{0x1b}
	}

	if letter, ok := csiLetter[ev.Name]; ok {
		if appCursor {
			return []byte{0x1b, 'O', letter}
		}
		return []byte{0x1b, '[', letter}
	}
	if code, ok := tildeCode[ev.Name]; ok {
		return []byte("\x1b[" + itoa(code) + "~")
	}
	if letter, ok := ss3Letter[ev.Name]; ok {
		return []byte{0x1b, 'O', letter}
	}
	return nil
}

// encodeRune handles a printable rune, applying the Ctrl modifier's
// classic "mask to the low 5 bits" transform for letters and a handful of
// punctuation keys (Ctrl+[, Ctrl+\, …).
func encodeRune(r rune, ctrl bool) []byte {
	if !ctrl {
		return []byte(string(r))
	}
	switch {
	case r >= 'a' && r <= 'z':
		return []byte{byte(r) - 'a' + 1}
	case r >= 'A' && r <= 'Z':
		return []byte{byte(r) - 'A' + 1}
	case r == '[':
		return []byte{0x1b}
	case r == '\\':
		return []byte{0x1c}
	case r == ']':
		return []byte{0x1d}
	case r == '^' || r == '~':
		return []byte{0x1e}
	case r == '?':
		return []byte{0x7f}
	case r == ' ':
		return []byte{0x00}
	}
	return []byte(string(r))
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
