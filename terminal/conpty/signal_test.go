package conpty

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResizeMessage_Wire(t *testing.T) {
	b, err := ResizeMessage{Width: 120, Height: 30}.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{8, 0, 120, 0, 30, 0}, b)
	assert.Len(t, b, ResizeMessageSize)
}

func TestResizeMessage_RoundTrip(t *testing.T) {
	for _, m := range []ResizeMessage{{0, 0}, {80, 24}, {0xFFFF, 1}} {
		b, err := m.MarshalBinary()
		require.NoError(t, err)

		var got ResizeMessage
		require.NoError(t, got.UnmarshalBinary(b))
		assert.Equal(t, m, got)
	}
}

func TestResizeMessage_Invalid(t *testing.T) {
	var m ResizeMessage
	assert.Error(t, m.UnmarshalBinary([]byte{8, 0, 1}))
	assert.ErrorContains(t, m.UnmarshalBinary([]byte{9, 0, 1, 0, 1, 0}), "opcode 9")
}

func TestReadResizeMessage(t *testing.T) {
	r := bytes.NewReader([]byte{8, 0, 80, 0, 24, 0, 8, 0, 0x10, 0x01})

	m, err := ReadResizeMessage(r)
	require.NoError(t, err)
	assert.Equal(t, ResizeMessage{80, 24}, m)

	_, err = ReadResizeMessage(r)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = ReadResizeMessage(r)
	assert.ErrorIs(t, err, io.EOF)
}
