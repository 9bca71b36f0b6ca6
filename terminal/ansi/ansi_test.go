package ansi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntroducers(t *testing.T) {
	csi, ss3 := Introducers(false)
	assert.Equal(t, "\x1b[", csi)
	assert.Equal(t, "\x1bO", ss3)

	csi, ss3 = Introducers(true)
	assert.Equal(t, []byte{0x9B}, []byte(csi))
	assert.Equal(t, []byte{0x8F}, []byte(ss3))
}

func TestToC1(t *testing.T) {
	c, ok := ToC1('[')
	assert.True(t, ok)
	assert.Equal(t, C1.CSI, c)

	c, ok = ToC1('O')
	assert.True(t, ok)
	assert.Equal(t, C1.SS3, c)

	_, ok = ToC1('a')
	assert.False(t, ok)
}

func TestQuote(t *testing.T) {
	assert.Equal(t, "ESC [ 1 ; 5 A", Quote("\x1b[1;5A"))
	assert.Equal(t, "DEL", Quote("\x7f"))
	assert.Equal(t, "CSI Z", Quote("\x9bZ"))
}
