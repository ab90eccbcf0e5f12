package cell

import "testing"

func TestAttrsHas(t *testing.T) {
	a := AttrBold | AttrItalic
	if !a.Has(AttrBold) {
		t.Fatalf("expected AttrBold set")
	}
	if a.Has(AttrUnderline) {
		t.Fatalf("did not expect AttrUnderline set")
	}
}

func TestBlankIsBlank(t *testing.T) {
	c := Blank(Default())
	if !c.IsBlank() {
		t.Fatalf("expected blank cell to report IsBlank")
	}
	c.Ch = 'x'
	if c.IsBlank() {
		t.Fatalf("did not expect 'x' to report IsBlank")
	}
}

func TestRuneWidth(t *testing.T) {
	cases := map[rune]int{
		'a': 1,
		'世': 2,
	}
	for r, want := range cases {
		if got := RuneWidth(r); got != want {
			t.Errorf("RuneWidth(%q) = %d, want %d", r, got, want)
		}
	}
}

func TestIndexedAndRGB(t *testing.T) {
	i := Indexed(42)
	if i.Kind != ColorIndexed || i.Index != 42 {
		t.Fatalf("Indexed(42) = %+v", i)
	}
	c := RGB(1, 2, 3)
	if c.Kind != ColorRGB || c.R != 1 || c.G != 2 || c.B != 3 {
		t.Fatalf("RGB(1,2,3) = %+v", c)
	}
}
