package eventloop

import (
	"time"

	"rat/internal/keys"
)

// escTimeout bounds how long the decoder waits for a byte following a bare
// ESC before concluding the user pressed the Esc key rather than starting
// an escape sequence. Grounded on dcosson-h2's PendingEsc/EscTimer field
// pair in session/client, generalized from a single-shot timer into the
// decoder's own state.
const escTimeout = 50 * time.Millisecond

// csiFinalToName is the inverse of keys.Encode's arrow/Home/End table.
var csiFinalToName = map[byte]keys.Name{
	'A': keys.NameUp, 'B': keys.NameDown, 'C': keys.NameRight, 'D': keys.NameLeft,
	'H': keys.NameHome, 'F': keys.NameEnd,
}

var ss3FinalToName = map[byte]keys.Name{
	'P': keys.NameF1, 'Q': keys.NameF2, 'R': keys.NameF3, 'S': keys.NameF4,
}

var tildeCodeToName = map[int]keys.Name{
	2: keys.NameIns, 3: keys.NameDel, 5: keys.NamePgUp, 6: keys.NamePgDn,
	15: keys.NameF5, 17: keys.NameF6, 18: keys.NameF7, 19: keys.NameF8,
	20: keys.NameF9, 21: keys.NameF10, 23: keys.NameF11, 24: keys.NameF12,
}

// Decoder converts raw bytes read from the terminal's input source into
// Key/Mouse events. It buffers an incomplete escape sequence across Feed
// calls; Flush forces a pending bare ESC into a Key event once escTimeout
// has elapsed with no continuation (spec.md §4.10 step 1, "poll the input
// source; collect Key/Mouse/Resize events").
type Decoder struct {
	pending    []byte
	pendingAt  time.Time
}

// Feed decodes as much of data as forms complete events, returning them in
// arrival order. Any trailing incomplete escape sequence is buffered for
// the next Feed or for Flush.
func (d *Decoder) Feed(data []byte) []AppEvent {
	var events []AppEvent
	buf := append(d.pending, data...)
	d.pending = nil
	i := 0
	for i < len(buf) {
		ev, consumed, complete := decodeOne(buf[i:])
		if !complete {
			d.pending = append([]byte(nil), buf[i:]...)
			d.pendingAt = time.Now()
			break
		}
		if consumed == 0 {
			break
		}
		if ev != nil {
			events = append(events, *ev)
		}
		i += consumed
	}
	return events
}

// Flush forces any buffered bare ESC (with no continuation byte arriving
// within escTimeout) into a standalone Esc key event, distinguishing it
// from the start of a CSI/SS3 sequence.
func (d *Decoder) Flush() []AppEvent {
	if len(d.pending) == 0 || time.Since(d.pendingAt) < escTimeout {
		return nil
	}
	if len(d.pending) == 1 && d.pending[0] == 0x1b {
		d.pending = nil
		return []AppEvent{{Kind: EventKey, Key: keys.Event{Name: keys.NameEsc}}}
	}
	// An incomplete multi-byte sequence that will never complete; drop it
	// rather than hang onto garbage forever.
	d.pending = nil
	return nil
}

// decodeOne decodes a single event from the front of buf. complete is
// false if buf ends mid-sequence (the caller should wait for more bytes).
func decodeOne(buf []byte) (ev *AppEvent, consumed int, complete bool) {
	b := buf[0]
	switch {
	case b == 0x1b:
		return decodeEscape(buf)
	case b == '\r':
		return keyEvent(keys.Event{Name: keys.NameEnter}), 1, true
	case b == '\t':
		return keyEvent(keys.Event{Name: keys.NameTab}), 1, true
	case b == 0x7f:
		return keyEvent(keys.Event{Name: keys.NameBackspace}), 1, true
	case b < 0x20:
		return keyEvent(keys.Event{Ctrl: true, Rune: rune(b | 0x60)}), 1, true
	default:
		r, size, ok := decodeRuneFrom(buf)
		if !ok {
			return nil, 0, false
		}
		return keyEvent(keys.Event{Rune: r}), size, true
	}
}

func keyEvent(ev keys.Event) *AppEvent {
	return &AppEvent{Kind: EventKey, Key: ev}
}

func decodeEscape(buf []byte) (*AppEvent, int, bool) {
	if len(buf) < 2 {
		return nil, 0, false
	}
	switch buf[1] {
	case '[':
		return decodeCSI(buf)
	case 'O':
		if len(buf) < 3 {
			return nil, 0, false
		}
		if name, ok := ss3FinalToName[buf[2]]; ok {
			return keyEvent(keys.Event{Name: name}), 3, true
		}
		return nil, 3, true
	default:
		// Alt+key: ESC followed immediately by a printable/control byte.
		inner, size, complete := decodeOne(buf[1:])
		if !complete {
			return nil, 0, false
		}
		if inner != nil && inner.Kind == EventKey {
			inner.Key.Alt = true
		}
		return inner, size + 1, true
	}
}

// decodeCSI handles arrow/Home/End/tilde sequences and SGR mouse reports
// (ESC [ < b ; x ; y M/m), grounded on the sequence literal documented in
// dcosson-h2's scroll_test.go ("ESC [ < 64 ; 1 ; 1 M").
func decodeCSI(buf []byte) (*AppEvent, int, bool) {
	// buf[0]==ESC, buf[1]=='['
	i := 2
	mouseMode := false
	if i < len(buf) && buf[i] == '<' {
		mouseMode = true
		i++
	} else if i >= len(buf) {
		return nil, 0, false
	}
	start := i
	for i < len(buf) && (buf[i] == ';' || (buf[i] >= '0' && buf[i] <= '9')) {
		i++
	}
	if i >= len(buf) {
		return nil, 0, false
	}
	final := buf[i]
	params := parseParams(string(buf[start:i]))
	consumed := i + 1

	if mouseMode {
		if len(params) < 3 {
			return nil, consumed, true
		}
		return &AppEvent{Kind: EventMouse, Mouse: MouseEvent{
			Button:  params[0],
			Col:     params[1] - 1,
			Row:     params[2] - 1,
			Pressed: final == 'M',
		}}, consumed, true
	}

	if name, ok := csiFinalToName[final]; ok {
		return keyEvent(keys.Event{Name: name}), consumed, true
	}
	if final == '~' && len(params) >= 1 {
		if name, ok := tildeCodeToName[params[0]]; ok {
			return keyEvent(keys.Event{Name: name}), consumed, true
		}
	}
	if final == 'Z' {
		return keyEvent(keys.Event{Name: keys.NameTab, Shift: true}), consumed, true
	}
	return nil, consumed, true
}

func parseParams(s string) []int {
	if s == "" {
		return nil
	}
	var params []int
	cur := 0
	has := false
	for _, r := range s {
		if r == ';' {
			params = append(params, cur)
			cur, has = 0, false
			continue
		}
		cur = cur*10 + int(r-'0')
		has = true
	}
	if has || len(params) > 0 {
		params = append(params, cur)
	}
	return params
}

func decodeRuneFrom(buf []byte) (rune, int, bool) {
	b := buf[0]
	if b < 0x80 {
		return rune(b), 1, true
	}
	var size int
	switch {
	case b&0xE0 == 0xC0:
		size = 2
	case b&0xF0 == 0xE0:
		size = 3
	case b&0xF8 == 0xF0:
		size = 4
	default:
		return 0xFFFD, 1, true
	}
	if len(buf) < size {
		return 0, 0, false
	}
	r := rune(b & (0xFF >> uint(size+1)))
	for i := 1; i < size; i++ {
		r = r<<6 | rune(buf[i]&0x3F)
	}
	return r, size, true
}
