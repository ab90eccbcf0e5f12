package ansi

import "testing"

func feedAll(t *testing.T, chunks ...string) []Action {
	t.Helper()
	p := New()
	var all []Action
	for _, c := range chunks {
		all = append(all, p.Feed([]byte(c))...)
	}
	return all
}

func TestPrintASCII(t *testing.T) {
	acts := feedAll(t, "hi")
	if len(acts) != 2 || acts[0].Rune != 'h' || acts[1].Rune != 'i' {
		t.Fatalf("acts = %+v", acts)
	}
}

func TestPrintMultibyteRune(t *testing.T) {
	acts := feedAll(t, "世")
	if len(acts) != 1 || acts[0].Kind != ActionPrint || acts[0].Rune != '世' {
		t.Fatalf("acts = %+v", acts)
	}
}

func TestCSICursorPosition(t *testing.T) {
	acts := feedAll(t, "\x1b[12;5H")
	if len(acts) != 1 {
		t.Fatalf("acts = %+v", acts)
	}
	a := acts[0]
	if a.Kind != ActionCsiDispatch || a.Final != 'H' {
		t.Fatalf("a = %+v", a)
	}
	if a.Param(0, 1) != 12 || a.Param(1, 1) != 5 {
		t.Fatalf("params = %v", a.Params)
	}
}

func TestCSIDefaultParam(t *testing.T) {
	acts := feedAll(t, "\x1b[H")
	if len(acts) != 1 || acts[0].Param(0, 1) != 1 || acts[0].Param(1, 1) != 1 {
		t.Fatalf("acts = %+v", acts)
	}
}

func TestCSIPrivateMode(t *testing.T) {
	acts := feedAll(t, "\x1b[?1049h")
	if len(acts) != 1 {
		t.Fatalf("acts = %+v", acts)
	}
	a := acts[0]
	if a.Private != '?' || a.Final != 'h' || a.Param(0, 0) != 1049 {
		t.Fatalf("a = %+v", a)
	}
}

func TestSGRMultipleParams(t *testing.T) {
	acts := feedAll(t, "\x1b[1;31;48;5;22m")
	if len(acts) != 1 || acts[0].Final != 'm' {
		t.Fatalf("acts = %+v", acts)
	}
	want := []int{1, 31, 48, 5, 22}
	got := acts[0].Params
	if len(got) != len(want) {
		t.Fatalf("params = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("params = %v, want %v", got, want)
		}
	}
}

func TestOSCTitle(t *testing.T) {
	acts := feedAll(t, "\x1b]0;my title\x07")
	if len(acts) != 1 || acts[0].Kind != ActionOscDispatch {
		t.Fatalf("acts = %+v", acts)
	}
	params := acts[0].OscParams
	if len(params) != 2 || string(params[0]) != "0" || string(params[1]) != "my title" {
		t.Fatalf("params = %v", params)
	}
}

func TestExecuteC0(t *testing.T) {
	acts := feedAll(t, "\x0d\x0a")
	if len(acts) != 2 || acts[0].C0 != '\r' || acts[1].C0 != '\n' {
		t.Fatalf("acts = %+v", acts)
	}
}

func TestChunkIndependenceAcrossEscapeSplit(t *testing.T) {
	whole := feedAll(t, "\x1b[12;5H")

	p := New()
	var split []Action
	split = append(split, p.Feed([]byte("\x1b[12"))...)
	split = append(split, p.Feed([]byte(";5H"))...)

	if len(whole) != 1 || len(split) != 1 {
		t.Fatalf("whole=%+v split=%+v", whole, split)
	}
	if whole[0].Final != split[0].Final || whole[0].Param(0, 0) != split[0].Param(0, 0) || whole[0].Param(1, 0) != split[0].Param(1, 0) {
		t.Fatalf("mismatch: whole=%+v split=%+v", whole[0], split[0])
	}
}

func TestChunkIndependenceAcrossUTF8Split(t *testing.T) {
	raw := []byte("世")
	p1 := New()
	full := p1.Feed(raw)

	p2 := New()
	var split []Action
	split = append(split, p2.Feed(raw[:1])...)
	split = append(split, p2.Feed(raw[1:])...)

	if len(full) != 1 || len(split) != 1 || full[0].Rune != split[0].Rune {
		t.Fatalf("full=%+v split=%+v", full, split)
	}
}

func TestEscDispatch(t *testing.T) {
	acts := feedAll(t, "\x1bc") // RIS
	if len(acts) != 1 || acts[0].Kind != ActionEscDispatch || acts[0].EscFinal != 'c' {
		t.Fatalf("acts = %+v", acts)
	}
}

func TestUnknownCsiIgnoredCleanly(t *testing.T) {
	acts := feedAll(t, "\x1b[99zOK")
	// the bogus final 'z' still dispatches (any final in 0x40-0x7e terminates);
	// what must hold is that parsing resumes cleanly afterward.
	var prints []rune
	for _, a := range acts {
		if a.Kind == ActionPrint {
			prints = append(prints, a.Rune)
		}
	}
	if string(prints) != "OK" {
		t.Fatalf("prints = %q, acts = %+v", string(prints), acts)
	}
}
