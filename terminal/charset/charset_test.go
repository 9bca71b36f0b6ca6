package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestASCII_Identity(t *testing.T) {
	assert.Equal(t, rune(0x20), ASCII.Base())
	assert.Equal(t, 95, ASCII.Size())
	assert.Equal(t, rune(0x41), ASCII.Lookup(0x41))
	for i, r := range ASCII.View() {
		assert.Equal(t, rune(0x20+i), r)
	}
}

func TestDECSpecialGraphics(t *testing.T) {
	assert.Equal(t, rune(0x2500), DECSpecialGraphics.Lookup(0x71), "horizontal line")
	assert.Equal(t, rune(0x0020), DECSpecialGraphics.Lookup(0x20))
	assert.Equal(t, rune(0x0020), DECSpecialGraphics.Lookup(0x5F), "blank override")
	assert.Equal(t, rune(0x250C), DECSpecialGraphics.Lookup(0x6C))
	assert.Equal(t, rune('A'), DECSpecialGraphics.Lookup('A'))
}

func TestLookup_OutOfRangeIsIdentity(t *testing.T) {
	for _, table := range All() {
		for _, c := range []rune{0x00, 0x1F, 0x7F, 0x2500, 0x1F600} {
			if c >= table.Base() && c < table.Base()+rune(table.Size()) {
				continue
			}
			assert.Equal(t, c, table.Lookup(c), "%s: %#x", table.Name(), c)
		}
	}
}

func TestLookup_IdentityOutsideOverrides(t *testing.T) {
	// Every entry either keeps its own codepoint or is one of the few
	// national replacements; count the replacements per table.
	replaced := func(table *Table) int {
		n := 0
		for i, r := range table.View() {
			if r != table.Base()+rune(i) {
				n++
			}
		}
		return n
	}
	assert.Equal(t, 0, replaced(ASCII))
	assert.Equal(t, 0, replaced(Latin1))
	assert.Equal(t, 1, replaced(British))
	assert.Equal(t, 8, replaced(German))
	assert.Equal(t, 12, replaced(Swiss))
	// 0x5F -> 0x20 plus 0x60..0x7E.
	assert.Equal(t, 32, replaced(DECSpecialGraphics))
}

func TestNationalSets(t *testing.T) {
	tcs := []struct {
		table *Table
		from  rune
		to    rune
	}{
		{British, '#', '£'},
		{Dutch, '|', 'ƒ'},
		{Finnish, '[', 'Ä'},
		{French, '@', 'à'},
		{FrenchISO, '`', 'µ'},
		{French, '`', '`'},
		{FrenchCanadian, '^', 'î'},
		{German, '~', 'ß'},
		{Italian, '~', 'ì'},
		{NorwegianDanish, '@', 'Ä'},
		{NorwegianDanishISO, '@', '@'},
		{Portuguese, '}', 'õ'},
		{Spanish, '\\', 'Ñ'},
		{Swedish, '@', 'É'},
		{Swiss, '_', 'è'},
		{DECSupplemental, 0xD7, 'Œ'},
		{DECSupplemental, 0xA1, 0xA1},
		{Latin1, 0xE9, 0xE9},
	}
	for _, tc := range tcs {
		t.Run(tc.table.Name(), func(t *testing.T) {
			assert.Equal(t, tc.to, tc.table.Lookup(tc.from))
		})
	}
}

func TestAll(t *testing.T) {
	tables := All()
	assert.Len(t, tables, 18)
	seen := map[Tag]bool{}
	for _, table := range tables {
		assert.Contains(t, []int{94, 95, 96}, table.Size())
		assert.False(t, seen[table.Tag()], "duplicate tag for %s", table.Name())
		seen[table.Tag()] = true
	}
	assert.Equal(t, 96, Latin1.Size())
	assert.Equal(t, 94, DECSupplemental.Size())
}

func TestIdentityNotContent(t *testing.T) {
	clone := New("ASCII", 0x20, 95)
	assert.Equal(t, ASCII.View(), clone.View(), "same content")
	assert.False(t, clone.Is(ASCII), "independently built tables are different tables")
	assert.False(t, ASCII.IsView(clone.View()))

	assert.True(t, ASCII.Is(ASCII))
	assert.True(t, ASCII.IsView(ASCII.View()))
	assert.Equal(t, ASCII.Tag(), ASCII.Tag())
	assert.NotEqual(t, ASCII.Tag(), clone.Tag())

	var none *Table
	assert.False(t, none.Is(ASCII))
	assert.True(t, none.Is(nil))
}

func TestNew_OverrideOutOfRangePanics(t *testing.T) {
	assert.Panics(t, func() { New("bad", 0x20, 95, Override{0x7F, 'x'}) })
	assert.Panics(t, func() { New("bad", 0xA0, 96, Override{0x9F, 'x'}) })
	assert.Panics(t, func() { New("bad", 0x20, 100) })
	assert.NotPanics(t, func() { New("ok", 0x20, 95, Override{0x7E, 'x'}) })
}

func TestNew_LaterOverrideWins(t *testing.T) {
	table := New("twice", 0x20, 95, Override{'a', 'b'}, Override{'a', 'c'})
	assert.Equal(t, 'c', table.Lookup('a'))
}

func TestDesignate(t *testing.T) {
	tcs := map[string]*Table{
		"B":  ASCII,
		"0":  DECSpecialGraphics,
		"A":  British,
		"%6": Portuguese,
		"%5": DECSupplemental,
		"=":  Swiss,
		"`":  NorwegianDanishISO,
		"f":  FrenchISO,
		"R":  French,
	}
	for id, want := range tcs {
		got, ok := Designate94(id)
		require.True(t, ok, id)
		assert.True(t, want.Is(got), id)
	}

	_, ok := Designate94("%9")
	assert.False(t, ok)

	got, ok := Designate96("A")
	require.True(t, ok)
	assert.True(t, got.Is(Latin1))
}

func TestByName(t *testing.T) {
	got, ok := ByName("dec special graphics")
	require.True(t, ok)
	assert.True(t, got.Is(DECSpecialGraphics))

	_, ok = ByName("klingon")
	assert.False(t, ok)
}

func TestUpper(t *testing.T) {
	assert.True(t, Latin1.Upper())
	assert.True(t, DECSupplemental.Upper())
	assert.False(t, ASCII.Upper())
}
