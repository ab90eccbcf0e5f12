// Package ansi implements the byte-stream-to-actions half of the ANSI/VT
// parser (spec.md §4.1): a stateless state machine that turns a byte stream
// into a sequence of high-level actions. It holds no grid state — the
// Terminal layer (internal/vterm) interprets actions against a grid.Grid.
//
// Grounded on the state-machine shape of github.com/danielgatis/go-vte and
// github.com/danielgatis/go-ansicode as consumed by go-headless-term's
// handler.go, but implemented directly against the standard library: those
// packages' Handler interface covers Kitty graphics, sixel, semantic
// prompts and other callbacks far outside the CSI/SGR/OSC subset spec.md
// §4.1 enumerates, and wiring it here would leave most of that surface as
// dead stub methods.
package ansi

// ActionKind discriminates the decoded action.
type ActionKind int

const (
	ActionPrint ActionKind = iota
	ActionExecute
	ActionCsiDispatch
	ActionEscDispatch
	ActionOscDispatch
	ActionHook
	ActionPut
	ActionUnhook
)

// Action is one decoded unit of the byte stream.
type Action struct {
	Kind ActionKind

	// ActionPrint
	Rune rune

	// ActionExecute: the raw C0 control byte.
	C0 byte

	// ActionCsiDispatch
	Params        []int
	HasParam      []bool // per-param: whether it was present (vs. defaulted)
	Intermediates []byte
	Private       byte // '?' for DEC private sequences, 0 otherwise
	Final         byte

	// ActionEscDispatch
	EscIntermediates []byte
	EscFinal         byte

	// ActionOscDispatch
	OscParams [][]byte

	// ActionPut (DCS passthrough byte)
	Byte byte
}

// Param returns the i'th CSI parameter, or def if absent/unset (the
// standard VT convention: an omitted or zero parameter usually means "use
// the default").
func (a Action) Param(i, def int) int {
	if i < 0 || i >= len(a.Params) {
		return def
	}
	if i < len(a.HasParam) && !a.HasParam[i] {
		return def
	}
	if a.Params[i] == 0 {
		return def
	}
	return a.Params[i]
}

// ParamOrZero returns the i'th CSI parameter or 0 if absent, for CSI forms
// that distinguish "0" from "absent" (e.g. DSR).
func (a Action) ParamOrZero(i int) int {
	if i < 0 || i >= len(a.Params) {
		return 0
	}
	return a.Params[i]
}
