package conpty

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreationFlags_String(t *testing.T) {
	assert.Equal(t, "none", CreationFlags(0).String())
	assert.Equal(t, "unicode-environment", FlagUnicodeEnvironment.String())
	assert.Equal(t, "new-console|new-process-group", (FlagNewConsole | FlagNewProcessGroup).String())
	assert.Equal(t, "new-console|0x8", (FlagNewConsole | 0x8).String())
}

func TestCreationFlags_Has(t *testing.T) {
	f := FlagNewProcessGroup | FlagUnicodeEnvironment
	assert.True(t, f.Has(FlagUnicodeEnvironment))
	assert.True(t, f.Has(FlagNewProcessGroup|FlagUnicodeEnvironment))
	assert.False(t, f.Has(FlagNewConsole))
}
