package stream

import "github.com/hnimtadd/termcore/terminal/charset"

// charsetState tracks the G0-G3 designations and which of them are invoked
// into the left (GL) and right (GR) halves of the code table.
type charsetState struct {
	g  [4]*charset.Table
	gl int
	gr int

	// single is the set selected by SS2 or SS3 for the next printable
	// character, or -1.
	single int

	// vt52Graphics is the VT52 graphics mode, which overrides GL.
	vt52Graphics bool
}

func newCharsetState() charsetState {
	return charsetState{
		g:      [4]*charset.Table{charset.ASCII, charset.ASCII, charset.Latin1, charset.Latin1},
		gl:     0,
		gr:     2,
		single: -1,
	}
}

func (cs *charsetState) designate(set int, t *charset.Table) {
	cs.g[set] = t
}

func (cs *charsetState) lockingShift(set int) {
	cs.gl = set
}

func (cs *charsetState) lockingShiftRight(set int) {
	cs.gr = set
}

func (cs *charsetState) singleShift(set int) {
	cs.single = set
}

// plainGL reports whether printable ASCII passes through untranslated.
func (cs *charsetState) plainGL() bool {
	return cs.single < 0 && !cs.vt52Graphics && cs.g[cs.gl].Is(charset.ASCII)
}

// translate maps a printed character through the invoked set and clears any
// pending single shift.
func (cs *charsetState) translate(r rune) rune {
	var t *charset.Table
	switch {
	case r >= 0x20 && r < 0x7F:
		t = cs.g[cs.gl]
		if cs.vt52Graphics {
			t = charset.DECSpecialGraphics
		}
	case r >= 0xA0 && r <= 0xFF:
		t = cs.g[cs.gr]
	}
	if cs.single >= 0 {
		if t != nil {
			t = cs.g[cs.single]
		}
		cs.single = -1
	}

	if t == nil || (r < 0x80 && t.Is(charset.ASCII)) {
		return r
	}
	return lookupIn(t, r)
}

// lookupIn looks r up in t, whichever half of the code table t was built
// for. Characters the set does not cover print as themselves.
func lookupIn(t *charset.Table, r rune) rune {
	c := r &^ 0x80
	if t.Upper() {
		c = r | 0x80
	}
	if c < t.Base() || c >= t.Base()+rune(t.Size()) {
		return r
	}
	return t.Lookup(c)
}
