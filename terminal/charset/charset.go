// Package charset holds the character set tables a terminal consults when it
// prints characters from a designated G0-G3 set.
//
// A Table maps a contiguous range of codepoints to their replacements.
// Tables are immutable and safe to share between goroutines.
//
// Tables compare by identity, not by content. The output decoder decides
// which set is active by comparing against the named instances of this
// package, so two tables built with the same contents are still different
// tables. Use Is or IsView; never compare View contents.
package charset

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/hnimtadd/termcore/terminal/utils"
)

// Tag identifies one Table instance for its whole lifetime.
type Tag uint64

var nextTag atomic.Uint64

// Override replaces the table entry for From with To.
type Override struct {
	From rune
	To   rune
}

type Table struct {
	name    string
	base    rune
	entries []rune
	tag     Tag
}

// New builds a table of size entries starting at base. Every entry defaults
// to its own codepoint, then overrides are applied in order.
//
// size must be 94, 95 or 96, and every override must lie in
// [base, base+size). Violations are programming errors and panic.
func New(name string, base rune, size int, overrides ...Override) *Table {
	utils.Assert(size == 94 || size == 95 || size == 96, "charset size must be 94, 95 or 96")

	entries := make([]rune, size)
	for i := range entries {
		entries[i] = base + rune(i)
	}
	for _, o := range overrides {
		utils.Assert(
			o.From >= base && o.From < base+rune(size),
			fmt.Sprintf("charset %s: override %#x outside [%#x, %#x)", name, o.From, base, base+rune(size)),
		)
		entries[o.From-base] = o.To
	}

	return &Table{
		name:    name,
		base:    base,
		entries: entries,
		tag:     Tag(nextTag.Add(1)),
	}
}

// Lookup translates c. Codepoints outside the table are returned unchanged.
func (t *Table) Lookup(c rune) rune {
	i := c - t.base
	if i < 0 || int(i) >= len(t.entries) {
		return c
	}
	return t.entries[i]
}

// View exposes the backing array for bulk decoding. It must not be modified.
func (t *Table) View() []rune {
	return t.entries
}

func (t *Table) Base() rune   { return t.base }
func (t *Table) Size() int    { return len(t.entries) }
func (t *Table) Name() string { return t.name }
func (t *Table) Tag() Tag     { return t.tag }

// Is reports whether t and other are the same table instance.
func (t *Table) Is(other *Table) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.tag == other.tag
}

// IsView reports whether v is the backing storage of t, as returned by View.
func (t *Table) IsView(v []rune) bool {
	if t == nil || len(v) != len(t.entries) {
		return false
	}
	return unsafe.SliceData(v) == unsafe.SliceData(t.entries)
}

// Upper reports whether the table covers the right half (GR) of an 8-bit
// code, i.e. 0xA0 and above.
func (t *Table) Upper() bool {
	return t.base >= 0xA0
}

func (t *Table) String() string {
	return fmt.Sprintf("%s[%#x+%d]", t.name, t.base, len(t.entries))
}
