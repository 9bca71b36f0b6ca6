package input

import "strings"

// Modifiers is a modifier bitmask. The low three bits follow the xterm
// parameter encoding, so a bitmask m is sent as the parameter m+1.
// Enhanced is an independent axis marking keys from the numpad/arrow
// clusters.
type Modifiers uint8

const (
	ModNone     Modifiers = 0
	ModShift    Modifiers = 1
	ModAlt      Modifiers = 2
	ModCtrl     Modifiers = 4
	ModEnhanced Modifiers = 8

	// modifierMask selects the Shift/Alt/Ctrl bits.
	modifierMask = ModShift | ModAlt | ModCtrl
)

// Has returns true if m contains every modifier of mod.
func (m Modifiers) Has(mod Modifiers) bool {
	return m&mod == mod
}

// Index returns the Shift/Alt/Ctrl bits as an integer 0-7.
func (m Modifiers) Index() int {
	return int(m & modifierMask)
}

// Parameter is the value used in a modified CSI sequence.
func (m Modifiers) Parameter() int {
	return m.Index() + 1
}

func (m Modifiers) String() string {
	if m == ModNone {
		return "None"
	}
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	if m.Has(ModEnhanced) {
		parts = append(parts, "Enhanced")
	}
	return strings.Join(parts, "+")
}
