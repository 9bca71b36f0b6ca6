package conpty

import (
	"encoding/binary"
	"fmt"
	"io"
)

// OpResize is the opcode of a resize message.
const OpResize uint16 = 8

// ResizeMessageSize is the encoded size of a ResizeMessage.
const ResizeMessageSize = 6

// ResizeMessage asks the child to resize its console. On the wire it is
// [opcode, width, height], each a little-endian uint16.
type ResizeMessage struct {
	Width  uint16
	Height uint16
}

type resizeWire struct {
	Op     uint16
	Width  uint16
	Height uint16
}

func (m ResizeMessage) MarshalBinary() ([]byte, error) {
	return binary.Append(make([]byte, 0, ResizeMessageSize), binary.LittleEndian, resizeWire{OpResize, m.Width, m.Height})
}

func (m *ResizeMessage) UnmarshalBinary(b []byte) error {
	if len(b) != ResizeMessageSize {
		return fmt.Errorf("resize message: want %d bytes, got %d", ResizeMessageSize, len(b))
	}
	var w resizeWire
	if _, err := binary.Decode(b, binary.LittleEndian, &w); err != nil {
		return fmt.Errorf("resize message: %w", err)
	}
	if w.Op != OpResize {
		return fmt.Errorf("resize message: unknown opcode %d", w.Op)
	}
	m.Width, m.Height = w.Width, w.Height
	return nil
}

// ReadResizeMessage reads one message from the signal channel.
func ReadResizeMessage(r io.Reader) (ResizeMessage, error) {
	var (
		buf [ResizeMessageSize]byte
		m   ResizeMessage
	)
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return m, err
	}
	err := m.UnmarshalBinary(buf[:])
	return m, err
}
