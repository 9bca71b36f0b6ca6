package termcore

import (
	"io"
	"sync"
	"unicode/utf8"

	"github.com/hnimtadd/termcore/logger"
	"github.com/hnimtadd/termcore/terminal/core"
	"github.com/hnimtadd/termcore/terminal/input"
)

// This is used as the handler for the stream.Stream type. It re-encodes the
// decoded output, with character sets applied, into a buffer that is flushed
// to the output once per processed chunk, and keeps the input modes in sync
// with what the application asks for.
type StreamHandler struct {
	out io.Writer
	buf []byte

	// Guards modes; the stream runs on the output goroutine while mode
	// queries may come from anywhere.
	mu      sync.Mutex
	modes   *core.ModeState
	encoder *input.Encoder

	logger logger.Logger
}

func newStreamHandler(out io.Writer, encoder *input.Encoder, l logger.Logger) *StreamHandler {
	if out == nil {
		out = io.Discard
	}
	return &StreamHandler{
		out:     out,
		buf:     make([]byte, 0, 4096),
		modes:   core.NewDefaultModeState(),
		encoder: encoder,
		logger:  l,
	}
}

func (h *StreamHandler) Print(r rune) {
	h.buf = utf8.AppendRune(h.buf, r)
}

func (h *StreamHandler) Execute(c byte) {
	if c >= 0x80 {
		h.buf = utf8.AppendRune(h.buf, rune(c))
		return
	}
	h.buf = append(h.buf, c)
}

func (h *StreamHandler) Passthrough(seq []byte) {
	h.buf = append(h.buf, seq...)
}

// SetMode records the mode and rebuilds the key map when the input modes
// changed.
func (h *StreamHandler) SetMode(mode core.Mode, value bool) {
	h.mu.Lock()
	before := h.modes.Flags()
	h.modes.Set(mode, value)
	after := h.modes.Flags()
	h.mu.Unlock()

	if before != after {
		h.logger.Debug("input modes changed", "mode", mode.Name, "value", value, "modes", after.String())
		h.encoder.SetModes(after)
	}
}

// Flags returns the current input modes.
func (h *StreamHandler) Flags() core.Flags {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.modes.Flags()
}

func (h *StreamHandler) flush() error {
	if len(h.buf) == 0 {
		return nil
	}
	_, err := h.out.Write(h.buf)
	h.buf = h.buf[:0]
	return err
}
