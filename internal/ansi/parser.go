package ansi

const maxParams = 32

type state int

const (
	stateGround state = iota
	stateEscape
	stateEscapeIntermediate
	stateCsiEntry
	stateCsiParam
	stateCsiIntermediate
	stateCsiIgnore
	stateOscString
	stateDcsEntry
	stateDcsParam
	stateDcsIntermediate
	stateDcsPassthrough
	stateDcsIgnore
	stateIgnoreString // SOS/PM/APC: collected and discarded
)

// Parser is the byte-stream state machine. It carries only its own FSM
// state between Feed calls, never grid or cell state (spec.md §4.1: "the
// parser itself is stateless between feeds").
type Parser struct {
	st state

	params   []int
	hasParam []bool
	curParam int
	curHas   bool

	intermediates []byte
	private       byte

	oscBuf    []byte
	oscParams [][]byte

	// pending holds UTF-8 continuation bytes spanning a Feed boundary.
	pending []byte
}

// New creates a Parser in the ground state.
func New() *Parser { return &Parser{} }

// Feed decodes data and returns the actions it produced. Feeding the same
// byte stream in any chunking yields the same sequence of actions
// (spec.md §8 "parser chunk-independence"), because all mid-sequence state
// — partial escape sequences, partial UTF-8 runes — is retained in the
// Parser across calls.
func (p *Parser) Feed(data []byte) []Action {
	var out []Action
	emit := func(a Action) { out = append(out, a) }

	buf := data
	if len(p.pending) > 0 {
		buf = append(append([]byte(nil), p.pending...), data...)
		p.pending = nil
	}

	i := 0
	for i < len(buf) {
		b := buf[i]
		if p.st == stateGround && b >= 0x20 && b != 0x7f {
			r, size, ok := decodeRune(buf[i:])
			if !ok {
				// incomplete multi-byte sequence at the end of this chunk
				p.pending = append(p.pending, buf[i:]...)
				break
			}
			emit(Action{Kind: ActionPrint, Rune: r})
			i += size
			continue
		}
		p.step(b, emit)
		i++
	}
	return out
}

func (p *Parser) step(b byte, emit func(Action)) {
	switch p.st {
	case stateGround:
		p.groundByte(b, emit)
	case stateEscape:
		p.escapeByte(b, emit)
	case stateEscapeIntermediate:
		p.escapeIntermediateByte(b, emit)
	case stateCsiEntry, stateCsiParam:
		p.csiByte(b, emit)
	case stateCsiIntermediate:
		p.csiIntermediateByte(b, emit)
	case stateCsiIgnore:
		if isCsiFinal(b) {
			p.reset()
		}
	case stateOscString:
		p.oscByte(b, emit)
	case stateDcsEntry, stateDcsParam:
		p.dcsParamByte(b, emit)
	case stateDcsIntermediate:
		p.dcsIntermediateByte(b, emit)
	case stateDcsPassthrough:
		p.dcsPassthroughByte(b, emit)
	case stateDcsIgnore, stateIgnoreString:
		p.stringIgnoreByte(b, emit)
	}
}

func (p *Parser) reset() {
	p.st = stateGround
	p.params = nil
	p.hasParam = nil
	p.curParam = 0
	p.curHas = false
	p.intermediates = nil
	p.private = 0
	p.oscBuf = nil
	p.oscParams = nil
}

func (p *Parser) groundByte(b byte, emit func(Action)) {
	switch {
	case b == 0x1b:
		p.st = stateEscape
	case b < 0x20 || b == 0x7f:
		emit(Action{Kind: ActionExecute, C0: b})
	}
}

func (p *Parser) escapeByte(b byte, emit func(Action)) {
	switch {
	case b == '[':
		p.st = stateCsiEntry
	case b == ']':
		p.st = stateOscString
	case b == 'P':
		p.st = stateDcsEntry
	case b == 'X' || b == '^' || b == '_':
		p.st = stateIgnoreString
	case b >= 0x20 && b <= 0x2f:
		p.intermediates = append(p.intermediates, b)
		p.st = stateEscapeIntermediate
	case b >= 0x30 && b <= 0x7e:
		emit(Action{Kind: ActionEscDispatch, EscIntermediates: p.intermediates, EscFinal: b})
		p.reset()
	default:
		p.reset()
	}
}

func (p *Parser) escapeIntermediateByte(b byte, emit func(Action)) {
	switch {
	case b >= 0x20 && b <= 0x2f:
		p.intermediates = append(p.intermediates, b)
	case b >= 0x30 && b <= 0x7e:
		emit(Action{Kind: ActionEscDispatch, EscIntermediates: p.intermediates, EscFinal: b})
		p.reset()
	default:
		p.reset()
	}
}

func (p *Parser) csiByte(b byte, emit func(Action)) {
	switch {
	case b >= '0' && b <= '9':
		p.st = stateCsiParam
		p.curParam = p.curParam*10 + int(b-'0')
		p.curHas = true
	case b == ';':
		p.st = stateCsiParam
		p.pushParam()
	case b == '?' || b == '<' || b == '=' || b == '>':
		if p.st == stateCsiEntry {
			p.private = b
		}
	case b >= 0x20 && b <= 0x2f:
		p.intermediates = append(p.intermediates, b)
		p.st = stateCsiIntermediate
	case isCsiFinal(b):
		p.pushParam()
		emit(Action{
			Kind: ActionCsiDispatch, Params: p.params, HasParam: p.hasParam,
			Intermediates: p.intermediates, Private: p.private, Final: b,
		})
		p.reset()
	case b == 0x18 || b == 0x1a:
		p.reset()
	default:
		p.st = stateCsiIgnore
	}
}

func (p *Parser) csiIntermediateByte(b byte, emit func(Action)) {
	switch {
	case b >= 0x20 && b <= 0x2f:
		p.intermediates = append(p.intermediates, b)
	case isCsiFinal(b):
		p.pushParam()
		emit(Action{
			Kind: ActionCsiDispatch, Params: p.params, HasParam: p.hasParam,
			Intermediates: p.intermediates, Private: p.private, Final: b,
		})
		p.reset()
	default:
		p.st = stateCsiIgnore
	}
}

func (p *Parser) pushParam() {
	if len(p.params) >= maxParams {
		return
	}
	p.params = append(p.params, p.curParam)
	p.hasParam = append(p.hasParam, p.curHas)
	p.curParam = 0
	p.curHas = false
}

func isCsiFinal(b byte) bool { return b >= 0x40 && b <= 0x7e }

func (p *Parser) oscByte(b byte, emit func(Action)) {
	switch b {
	case 0x07: // BEL terminator
		p.finishOsc(emit)
	case 0x1b:
		// Look for ST (ESC \); handled by re-entering escape state and
		// checking for '\\' next would require lookahead, so instead treat
		// ESC as a terminator candidate: consumers send ESC \ back-to-back.
		p.finishOsc(emit)
		p.st = stateEscape
	case ';':
		p.oscParams = append(p.oscParams, p.oscBuf)
		p.oscBuf = nil
	default:
		p.oscBuf = append(p.oscBuf, b)
	}
}

func (p *Parser) finishOsc(emit func(Action)) {
	p.oscParams = append(p.oscParams, p.oscBuf)
	emit(Action{Kind: ActionOscDispatch, OscParams: p.oscParams})
	p.reset()
}

func (p *Parser) dcsParamByte(b byte, emit func(Action)) {
	switch {
	case b >= '0' && b <= '9':
		p.st = stateDcsParam
		p.curParam = p.curParam*10 + int(b-'0')
		p.curHas = true
	case b == ';':
		p.st = stateDcsParam
		p.pushParam()
	case b >= 0x20 && b <= 0x2f:
		p.intermediates = append(p.intermediates, b)
		p.st = stateDcsIntermediate
	case isCsiFinal(b):
		p.pushParam()
		emit(Action{Kind: ActionHook, Params: p.params, Intermediates: p.intermediates, Final: b})
		p.st = stateDcsPassthrough
	default:
		p.st = stateDcsIgnore
	}
}

func (p *Parser) dcsIntermediateByte(b byte, emit func(Action)) {
	switch {
	case b >= 0x20 && b <= 0x2f:
		p.intermediates = append(p.intermediates, b)
	case isCsiFinal(b):
		p.pushParam()
		emit(Action{Kind: ActionHook, Params: p.params, Intermediates: p.intermediates, Final: b})
		p.st = stateDcsPassthrough
	default:
		p.st = stateDcsIgnore
	}
}

func (p *Parser) dcsPassthroughByte(b byte, emit func(Action)) {
	switch b {
	case 0x1b:
		emit(Action{Kind: ActionUnhook})
		p.reset()
	default:
		emit(Action{Kind: ActionPut, Byte: b})
	}
}

func (p *Parser) stringIgnoreByte(b byte, emit func(Action)) {
	if b == 0x1b || b == 0x07 {
		p.reset()
	}
}

// decodeRune decodes one UTF-8 rune from the front of buf. ok is false if
// buf holds a truncated multi-byte sequence (spec.md §7 ParseError::
// Truncated — the caller retains the bytes and waits for more).
func decodeRune(buf []byte) (r rune, size int, ok bool) {
	b0 := buf[0]
	switch {
	case b0 < 0x80:
		return rune(b0), 1, true
	case b0>>5 == 0x6:
		return decodeMultiByte(buf, 2, rune(b0&0x1f))
	case b0>>4 == 0xe:
		return decodeMultiByte(buf, 3, rune(b0&0x0f))
	case b0>>3 == 0x1e:
		return decodeMultiByte(buf, 4, rune(b0&0x07))
	default:
		return 0xfffd, 1, true // invalid lead byte: emit replacement, don't stall
	}
}

func decodeMultiByte(buf []byte, size int, lead rune) (rune, int, bool) {
	if len(buf) < size {
		return 0, 0, false
	}
	r := lead
	for i := 1; i < size; i++ {
		b := buf[i]
		if b>>6 != 0x2 {
			return 0xfffd, 1, true
		}
		r = r<<6 | rune(b&0x3f)
	}
	return r, size, true
}
