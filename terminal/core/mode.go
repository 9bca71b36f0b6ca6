package core

import (
	"maps"
	"slices"
)

// A struct that maintains the state of all settable modes
type Mode struct {
	Name  string
	Value int
	/// True if this is an ANSI mode
	Ansi    bool
	Default bool
}

func entryForMode(name string, value int, ansi bool, defaultMode bool) Mode {
	return Mode{
		Name:    name,
		Value:   value,
		Ansi:    ansi,
		Default: defaultMode,
	}
}

var (
	// ansi modes
	ModeLineFeed = entryForMode("line feed", 20, true, false) // LNM

	// DEC modes
	ModeCursorKeys   = entryForMode("cursor keys", 1, false, false)     // DECCKM
	ModeAnsi         = entryForMode("ansi", 2, false, true)             // DECANM
	ModeKeypad       = entryForMode("keypad", 66, false, false)         // DECNKM, also DECKPAM/DECKPNM
	ModeBackarrowKey = entryForMode("backarrow key", 67, false, false) // DECBKM

	// S8C1T/S7C1T have no mode number; they are set by ESC SP G and ESC SP F.
	ModeSendC1 = entryForMode("send c1", 0, false, false)

	// The full list of avialbe entries. For documentation on these modes, see
	// how they are used in the VT100 and ECMA-48 standards or google their values.
	entries = []Mode{
		ModeLineFeed,
		ModeCursorKeys,
		ModeAnsi,
		ModeKeypad,
		ModeBackarrowKey,
		ModeSendC1,
	}
)

// A Packed map of all settable modes. This shouldn't be used directly but
// rather through the ModeState struct
var ModePacked = func() map[Mode]bool {
	packed := make(map[Mode]bool, len(entries))
	for _, m := range entries {
		packed[m] = m.Default
	}
	return packed
}()

type ModeState struct {
	// The values of current modes
	values map[Mode]bool
	// The default values of modes
	defaults map[Mode]bool
}

func NewModeState(values map[Mode]bool, def map[Mode]bool) *ModeState {
	state := &ModeState{
		defaults: def,
		values:   make(map[Mode]bool),
	}
	if values != nil {
		maps.Copy(state.values, values)
	}
	if def == nil {
		state.defaults = make(map[Mode]bool)
	}
	return state
}

// NewDefaultModeState returns a state holding the power-on defaults.
func NewDefaultModeState() *ModeState {
	return NewModeState(ModePacked, ModePacked)
}

func (s *ModeState) Set(m Mode, value bool) {
	s.values[m] = value
}

func (s *ModeState) Get(m Mode) bool {
	return s.values[m]
}

func (s *ModeState) Reset() {
	s.values = make(map[Mode]bool)
	maps.Copy(s.values, s.defaults)
}

// Flags snapshots the input-related modes.
func (s *ModeState) Flags() Flags {
	return Flags{
		VT52:         !s.Get(ModeAnsi),
		CursorKey:    s.Get(ModeCursorKeys),
		Keypad:       s.Get(ModeKeypad),
		BackarrowKey: s.Get(ModeBackarrowKey),
		LineFeed:     s.Get(ModeLineFeed),
		SendC1:       s.Get(ModeSendC1),
	}
}

// Modes lists every settable mode.
func Modes() []Mode {
	return slices.Clone(entries)
}

// ModeFromInt finds the mode set by SM/RM (ansi) or DECSET/DECRST. Modes
// without a number are never returned.
func ModeFromInt(input int, ansi bool) *Mode {
	if input == 0 {
		return nil
	}
	for entry := range slices.Values(entries) {
		if entry.Value == input && entry.Ansi == ansi {
			return &entry
		}
	}
	return nil
}

/* Helpful doc:
DECCKM: https://vt100.net/docs/vt510-rm/DECCKM.html
DECANM: https://vt100.net/docs/vt510-rm/DECANM.html
DECNKM: https://vt100.net/docs/vt510-rm/DECNKM.html
DECBKM: https://vt100.net/docs/vt510-rm/DECBKM.html
LNM:    https://vt100.net/docs/vt510-rm/LNM.html
*/
