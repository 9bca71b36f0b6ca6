package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ModeState(t *testing.T) {
	// Create a new mode state
	state := NewModeState(nil, nil)

	assert.False(
		t,
		state.Get(ModeCursorKeys),
		"Expected ModeCursorKeys to be false by default",
	)

	// Set the mode
	state.Set(ModeCursorKeys, true)

	// Check if the mode is set correctly
	assert.True(
		t,
		state.Get(ModeCursorKeys),
		"Expected ModeCursorKeys to be set to true",
	)

	// Unset the mode
	state.Set(ModeCursorKeys, false)

	// Check if the mode is unset correctly
	assert.False(
		t,
		state.Get(ModeCursorKeys),
		"Expected ModeCursorKeys to be set to false",
	)
}

func TestModeFromInput(t *testing.T) {
	mode := ModeFromInt(1, false)
	assert.NotNil(t, mode)
	assert.True(t, *mode == ModeCursorKeys)

	mode = ModeFromInt(20, true)
	assert.NotNil(t, mode)
	assert.True(t, *mode == ModeLineFeed)

	assert.Nil(t, ModeFromInt(20, false))
	assert.Nil(t, ModeFromInt(0, false), "S8C1T has no mode number")
}

func TestModeState_Flags(t *testing.T) {
	state := NewDefaultModeState()
	assert.Equal(t, Flags{}, state.Flags(), "power-on state is plain ANSI")

	state.Set(ModeAnsi, false)
	state.Set(ModeKeypad, true)
	state.Set(ModeSendC1, true)
	assert.Equal(t, Flags{VT52: true, Keypad: true, SendC1: true}, state.Flags())

	state.Reset()
	assert.Equal(t, Flags{}, state.Flags())
}

func TestNewModeState_CopiesValues(t *testing.T) {
	state := NewModeState(ModePacked, ModePacked)
	state.Set(ModeLineFeed, true)
	assert.False(t, ModePacked[ModeLineFeed], "shared defaults must not change")
}

func TestFlags_String(t *testing.T) {
	assert.Equal(t, "ansi", Flags{}.String())
	assert.Equal(t, "vt52|keypad", Flags{VT52: true, Keypad: true}.String())
}
