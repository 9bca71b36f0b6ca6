package core

import "strings"

// Flags is an immutable snapshot of the modes that change what the keyboard
// sends. The zero value is an ANSI terminal with every mode reset.
type Flags struct {
	// VT52 selects the legacy protocol family (DECANM reset).
	VT52 bool
	// CursorKey sends cursor keys with SS3 instead of CSI (DECCKM).
	CursorKey bool
	// Keypad puts the numeric keypad in application mode (DECKPAM/DECNKM).
	Keypad bool
	// BackarrowKey makes Backspace send BS instead of DEL (DECBKM).
	BackarrowKey bool
	// LineFeed makes Return send CR LF instead of CR (LNM).
	LineFeed bool
	// SendC1 uses single-byte C1 introducers (S8C1T).
	SendC1 bool
}

func (f Flags) String() string {
	var parts []string
	if f.VT52 {
		parts = append(parts, "vt52")
	} else {
		parts = append(parts, "ansi")
	}
	if f.CursorKey {
		parts = append(parts, "cursor-keys")
	}
	if f.Keypad {
		parts = append(parts, "keypad")
	}
	if f.BackarrowKey {
		parts = append(parts, "backarrow")
	}
	if f.LineFeed {
		parts = append(parts, "linefeed")
	}
	if f.SendC1 {
		parts = append(parts, "c1")
	}
	return strings.Join(parts, "|")
}
