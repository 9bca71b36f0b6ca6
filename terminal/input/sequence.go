package input

import (
	"fmt"
	"maps"
	"slices"

	"github.com/hnimtadd/termcore/terminal/ansi"
	"github.com/hnimtadd/termcore/terminal/core"
)

// Combination is a key pressed with a set of modifiers.
type Combination struct {
	Mods Modifiers
	Key  KeyCode
}

func (c Combination) String() string {
	if c.Mods == ModNone {
		return c.Key.String()
	}
	return c.Mods.String() + "+" + c.Key.String()
}

// SequenceMap maps key combinations to the bytes the terminal sends for
// them. A map is built once by Rebuild and never modified afterwards.
type SequenceMap struct {
	flags core.Flags
	seqs  map[Combination]string
}

// Lookup returns the sequence registered for key pressed with mods. A
// missing combination is not an error: the caller should send the key as
// ordinary text instead.
//
// Only Return has a separate Enhanced registration; for every other key an
// Enhanced press falls back to the plain registration.
func (m *SequenceMap) Lookup(mods Modifiers, key KeyCode) (string, bool) {
	if seq, ok := m.seqs[Combination{mods, key}]; ok {
		return seq, true
	}
	if mods.Has(ModEnhanced) {
		seq, ok := m.seqs[Combination{mods &^ ModEnhanced, key}]
		return seq, ok
	}
	return "", false
}

// Flags returns the modes the map was built for.
func (m *SequenceMap) Flags() core.Flags {
	return m.flags
}

func (m *SequenceMap) Len() int {
	return len(m.seqs)
}

// Combinations returns every registered combination, ordered by key and
// then by modifiers.
func (m *SequenceMap) Combinations() []Combination {
	return slices.SortedFunc(maps.Keys(m.seqs), func(a, b Combination) int {
		if a.Key != b.Key {
			return int(a.Key) - int(b.Key)
		}
		return int(a.Mods) - int(b.Mods)
	})
}

// builder accumulates the registrations of one Rebuild call.
type builder struct {
	seqs map[Combination]string
	csi  string
	ss3  string
}

func (b *builder) set(mods Modifiers, key KeyCode, seq string) {
	b.seqs[Combination{mods, key}] = seq
}

// Keys that send the same thing whatever the modifiers.
func (b *builder) defineKeyWithUnusedModifiers(mods Modifiers, key KeyCode, seq string) {
	for m := range Modifiers(8) {
		b.set(mods|m, key, seq)
	}
}

// Keys whose Alt variant is the plain sequence prefixed with ESC.
func (b *builder) defineKeyWithAltModifier(mods Modifiers, key KeyCode, seq string) {
	b.set(mods, key, seq)
	b.set(mods|ModAlt, key, "\x1b"+seq)
}

// Keys sent as introducer + final, or CSI 1;m final when modified.
func (b *builder) defineKeypadKey(key KeyCode, introducer string, final byte) {
	b.set(ModNone, key, fmt.Sprintf("%s%c", introducer, final))
	for m := Modifiers(1); m < 8; m++ {
		b.set(m, key, fmt.Sprintf("%s1;%d%c", b.csi, m.Parameter(), final))
	}
}

// Keys sent as CSI n ~, or CSI n;m ~ when modified.
func (b *builder) defineEditingKey(key KeyCode, param int) {
	b.set(ModNone, key, fmt.Sprintf("%s%d~", b.csi, param))
	for m := Modifiers(1); m < 8; m++ {
		b.set(m, key, fmt.Sprintf("%s%d;%d~", b.csi, param, m.Parameter()))
	}
}

// Application keypad keys, sent as SS3 final or SS3 m final when modified.
func (b *builder) defineNumericKey(mods Modifiers, key KeyCode, final byte) {
	b.set(mods, key, fmt.Sprintf("%s%c", b.ss3, final))
	for m := Modifiers(1); m < 8; m++ {
		b.set(mods|m, key, fmt.Sprintf("%s%d%c", b.ss3, m.Parameter(), final))
	}
}

// DECFNK parameters of F5 through F20.
var functionKeyParams = [16]int{15, 17, 18, 19, 20, 21, 23, 24, 25, 26, 28, 29, 31, 32, 33, 34}

var numericFinals = []struct {
	key   KeyCode
	final byte
}{
	{KeyMultiply, 'j'},
	{KeyAdd, 'k'},
	{KeySeparator, 'l'},
	{KeySubtract, 'm'},
	{KeyDecimal, 'n'},
	{KeyDivide, 'o'},
	{KeyNumpad0, 'p'},
	{KeyNumpad1, 'q'},
	{KeyNumpad2, 'r'},
	{KeyNumpad3, 's'},
	{KeyNumpad4, 't'},
	{KeyNumpad5, 'u'},
	{KeyNumpad6, 'v'},
	{KeyNumpad7, 'w'},
	{KeyNumpad8, 'x'},
	{KeyNumpad9, 'y'},
}

// Rebuild computes the complete key map for flags. It always returns a
// fresh map; maps built earlier are left untouched.
func Rebuild(flags core.Flags) *SequenceMap {
	b := &builder{seqs: make(map[Combination]string, 512)}
	b.csi, b.ss3 = ansi.Introducers(flags.SendC1)

	// Pause has no VT mapping; it traditionally sends ^Z.
	b.defineKeyWithUnusedModifiers(ModNone, KeyPause, "\x1a")

	// Backspace sends DEL or BS depending on the Backarrow Key mode, and
	// Ctrl swaps the two.
	back, ctrlBack := "\x7f", "\b"
	if flags.BackarrowKey {
		back, ctrlBack = ctrlBack, back
	}
	b.defineKeyWithAltModifier(ModNone, KeyBackspace, back)
	b.defineKeyWithAltModifier(ModCtrl, KeyBackspace, ctrlBack)
	b.defineKeyWithAltModifier(ModShift, KeyBackspace, back)
	b.defineKeyWithAltModifier(ModCtrl|ModShift, KeyBackspace, ctrlBack)

	// Ctrl has no effect on Tab; Shift+Tab is CBT.
	backTab := b.csi + "Z"
	b.defineKeyWithAltModifier(ModNone, KeyTab, "\t")
	b.defineKeyWithAltModifier(ModCtrl, KeyTab, "\t")
	b.defineKeyWithAltModifier(ModShift, KeyTab, backTab)
	b.defineKeyWithAltModifier(ModCtrl|ModShift, KeyTab, backTab)

	// Return sends CR or CR LF depending on the Line Feed mode, and LF with
	// Ctrl. Numpad Enter does the same unless the keypad is in application
	// mode, which is handled with the other keypad keys below.
	ret := "\r"
	if flags.LineFeed {
		ret = "\r\n"
	}
	for _, enhanced := range []Modifiers{ModNone, ModEnhanced} {
		b.defineKeyWithAltModifier(enhanced, KeyReturn, ret)
		b.defineKeyWithAltModifier(enhanced|ModShift, KeyReturn, ret)
		b.defineKeyWithAltModifier(enhanced|ModCtrl, KeyReturn, "\n")
		b.defineKeyWithAltModifier(enhanced|ModCtrl|ModShift, KeyReturn, "\n")
	}

	if flags.VT52 {
		b.vt52(flags)
	} else {
		b.ansi(flags)
	}

	return &SequenceMap{flags: flags, seqs: b.seqs}
}

func (b *builder) ansi(flags core.Flags) {
	b.defineKeypadKey(KeyF1, b.ss3, 'P')
	b.defineKeypadKey(KeyF2, b.ss3, 'Q')
	b.defineKeypadKey(KeyF3, b.ss3, 'R')
	b.defineKeypadKey(KeyF4, b.ss3, 'S')

	for i, param := range functionKeyParams {
		b.defineEditingKey(FunctionKey(i+5), param)
	}

	// Cursor keys only use SS3 when the Cursor Key mode is set.
	ck := b.csi
	if flags.CursorKey {
		ck = b.ss3
	}
	b.defineKeypadKey(KeyUp, ck, 'A')
	b.defineKeypadKey(KeyDown, ck, 'B')
	b.defineKeypadKey(KeyRight, ck, 'C')
	b.defineKeypadKey(KeyLeft, ck, 'D')
	b.defineKeypadKey(KeyClear, ck, 'E')
	b.defineKeypadKey(KeyHome, ck, 'H')
	b.defineKeypadKey(KeyEnd, ck, 'F')

	b.defineEditingKey(KeyInsert, 2)
	b.defineEditingKey(KeyDelete, 3)
	b.defineEditingKey(KeyPageUp, 5)
	b.defineEditingKey(KeyPageDown, 6)

	// With the keypad in numeric mode these keys send their characters
	// through the keyboard layout, so they stay unregistered.
	if flags.Keypad {
		for _, nk := range numericFinals {
			b.defineNumericKey(ModNone, nk.key, nk.final)
		}
		b.defineNumericKey(ModEnhanced, KeyReturn, 'M')
	}
}

func (b *builder) vt52(flags core.Flags) {
	b.defineKeyWithUnusedModifiers(ModNone, KeyF1, "\x1bP")
	b.defineKeyWithUnusedModifiers(ModNone, KeyF2, "\x1bQ")
	b.defineKeyWithUnusedModifiers(ModNone, KeyF3, "\x1bR")
	b.defineKeyWithUnusedModifiers(ModNone, KeyF4, "\x1bS")

	b.defineKeyWithUnusedModifiers(ModNone, KeyUp, "\x1bA")
	b.defineKeyWithUnusedModifiers(ModNone, KeyDown, "\x1bB")
	b.defineKeyWithUnusedModifiers(ModNone, KeyRight, "\x1bC")
	b.defineKeyWithUnusedModifiers(ModNone, KeyLeft, "\x1bD")

	// The VT52 application keypad uses ESC ? where ANSI uses SS3.
	if flags.Keypad {
		for _, nk := range numericFinals {
			b.defineKeyWithUnusedModifiers(ModNone, nk.key, "\x1b?"+string(nk.final))
		}
		b.defineKeyWithUnusedModifiers(ModEnhanced, KeyReturn, "\x1b?M")
	}
}
