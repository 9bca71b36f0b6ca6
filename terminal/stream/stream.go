package stream

import (
	"slices"
	"unicode/utf8"

	"github.com/hnimtadd/termcore/logger"
	"github.com/hnimtadd/termcore/terminal/ansi"
	"github.com/hnimtadd/termcore/terminal/charset"
	"github.com/hnimtadd/termcore/terminal/core"
)

// maxSequence bounds the bytes kept for one sequence. Longer sequences are
// dropped.
const maxSequence = 4096

type state uint8

const (
	stateGround state = iota
	stateEscape
	stateEscapeIntermediate
	stateCSI
	stateCSIIgnore
	stateString
	stateStringEscape
	stateVT52Cursor
)

// Stream decodes the output of a terminal application. It decodes UTF-8,
// frames escape sequences, tracks the G0-G3 character sets and translates
// printed characters through them.
//
// The handler is called for each decoded element; see PrintHandler,
// ExecuteHandler, PassthroughHandler and ModeHandler. A Stream is not safe
// for concurrent use.
type Stream struct {
	print       PrintHandler
	execute     ExecuteHandler
	passthrough PassthroughHandler
	modes       ModeHandler

	decoder utf8Decoder
	state   state

	// Raw bytes of the sequence in progress, and the parts of it that
	// dispatch looks at.
	seq           []byte
	intermediates []byte
	params        []byte
	overflow      bool

	// vt52Pending counts the bytes still expected by ESC Y.
	vt52Pending int
	vt52        bool

	charsets charsetState
	saved    charsetState

	logger logger.Logger
}

func NewStream(handler any, l logger.Logger) *Stream {
	s := &Stream{
		seq:      make([]byte, 0, 64),
		charsets: newCharsetState(),
		saved:    newCharsetState(),
		logger:   logger.OrDefault(l),
	}
	s.print, _ = handler.(PrintHandler)
	s.execute, _ = handler.(ExecuteHandler)
	s.passthrough, _ = handler.(PassthroughHandler)
	s.modes, _ = handler.(ModeHandler)
	s.logger.Debug("stream created",
		"print", s.print != nil,
		"execute", s.execute != nil,
		"passthrough", s.passthrough != nil,
		"modes", s.modes != nil,
	)
	return s
}

// NextSlice processes a chunk of output. Sequences and characters may be
// split across calls.
func (s *Stream) NextSlice(input []uint8) {
	for i := 0; i < len(input); {
		if s.state == stateGround && s.decoder.idle() && s.charsets.plainGL() {
			n := printableRun(input[i:])
			for c := range slices.Values(input[i : i+n]) {
				s.emit(rune(c))
			}
			i += n
			if i >= len(input) {
				return
			}
		}
		s.Next(input[i])
		i++
	}
}

// printableRun returns the length of the leading run of printable ASCII.
func printableRun(input []uint8) int {
	for i, c := range input {
		if c < 0x20 || c >= ansi.C0.DEL {
			return i
		}
	}
	return len(input)
}

// Next processes a single byte.
func (s *Stream) Next(c uint8) {
	if s.state == stateGround {
		s.nextUtf8(c)
		return
	}
	s.nextNonUtf8(c)
}

func (s *Stream) nextUtf8(c uint8) {
	r, generated, consumed := s.decoder.next(c)
	if generated {
		s.handleCodepoint(r)
	}
	if !consumed {
		// The rejected byte may itself start a sequence.
		s.Next(c)
	}
}

func (s *Stream) handleCodepoint(r rune) {
	switch {
	case r == rune(ansi.C0.ESC):
		s.begin(stateEscape, ansi.C0.ESC)
	case r < 0x20:
		s.control(uint8(r))
	case r == rune(ansi.C0.DEL):
		// Ignored.
	case r >= 0x80 && r < 0xA0:
		s.c1(uint8(r))
	default:
		s.printChar(r)
	}
}

func (s *Stream) printChar(r rune) {
	s.emit(s.charsets.translate(r))
}

func (s *Stream) emit(r rune) {
	if s.print != nil {
		s.print.Print(r)
	}
}

// control handles a C0 control outside of a sequence.
func (s *Stream) control(c uint8) {
	switch c {
	case ansi.C0.SO:
		s.charsets.lockingShift(1)
	case ansi.C0.SI:
		s.charsets.lockingShift(0)
	default:
		if s.execute != nil {
			s.execute.Execute(c)
		}
	}
}

// c1 handles a C1 control received as a UTF-8 encoded codepoint.
func (s *Stream) c1(c uint8) {
	switch c {
	case ansi.C1.SS2:
		s.charsets.singleShift(2)
	case ansi.C1.SS3:
		s.charsets.singleShift(3)
	case ansi.C1.CSI:
		s.begin(stateCSI, utf8.AppendRune(nil, rune(c))...)
	case ansi.C1.DCS, ansi.C1.SOS, ansi.C1.OSC, ansi.C1.PM, ansi.C1.APC:
		s.begin(stateString, utf8.AppendRune(nil, rune(c))...)
	case ansi.C1.ST:
		// Stray terminator.
	default:
		if s.execute != nil {
			s.execute.Execute(c)
		}
	}
}

func (s *Stream) begin(st state, prefix ...byte) {
	s.state = st
	s.seq = append(s.seq[:0], prefix...)
	s.intermediates = s.intermediates[:0]
	s.params = s.params[:0]
	s.overflow = false
}

func (s *Stream) ground() {
	s.state = stateGround
	s.seq = s.seq[:0]
}

func (s *Stream) collect(c uint8) {
	if len(s.seq) >= maxSequence {
		if !s.overflow {
			s.logger.Warn("sequence too long, dropping", "prefix", ansi.Quote(string(s.seq[:min(len(s.seq), 8)])))
		}
		s.overflow = true
		return
	}
	s.seq = append(s.seq, c)
}

// nextNonUtf8 advances a sequence in progress.
func (s *Stream) nextNonUtf8(c uint8) {
	// CAN and SUB abort any sequence; ESC starts a new one, except inside
	// a control string where it may begin the terminator.
	switch {
	case c == ansi.C0.CAN || c == ansi.C0.SUB:
		s.logger.Debug("sequence cancelled", "sequence", ansi.Quote(string(s.seq)))
		s.ground()
		return
	case c == ansi.C0.ESC && s.state != stateString && s.state != stateStringEscape:
		s.begin(stateEscape, c)
		return
	case c < 0x20 && s.state != stateString && s.state != stateStringEscape:
		s.control(c)
		return
	}

	switch s.state {
	case stateEscape:
		s.collect(c)
		if s.vt52 {
			s.vt52Dispatch(c)
			return
		}
		switch {
		case c >= 0x20 && c <= 0x2F:
			s.intermediates = append(s.intermediates, c)
			s.state = stateEscapeIntermediate
		case c == '[':
			s.state = stateCSI
		case c == ']' || c == 'P' || c == 'X' || c == '^' || c == '_':
			s.state = stateString
		case c >= 0x30 && c <= 0x7E:
			s.escDispatch(c)
		default:
			s.ground()
		}

	case stateEscapeIntermediate:
		s.collect(c)
		switch {
		case c >= 0x20 && c <= 0x2F:
			s.intermediates = append(s.intermediates, c)
		case c >= 0x30 && c <= 0x7E:
			s.escDispatch(c)
		default:
			s.ground()
		}

	case stateCSI:
		s.collect(c)
		switch {
		case c >= 0x30 && c <= 0x3F:
			if len(s.intermediates) > 0 {
				s.state = stateCSIIgnore
				return
			}
			if !s.overflow {
				s.params = append(s.params, c)
			}
		case c >= 0x20 && c <= 0x2F:
			s.intermediates = append(s.intermediates, c)
		case c >= 0x40 && c <= 0x7E:
			s.csiDispatch(c)
		default:
			s.ground()
		}

	case stateCSIIgnore:
		if c >= 0x40 && c <= 0x7E {
			s.logger.Debug("malformed control sequence dropped", "sequence", ansi.Quote(string(s.seq)))
			s.ground()
		}

	case stateString:
		switch c {
		case ansi.C0.BEL:
			s.collect(c)
			s.dispatch()
		case ansi.C0.ESC:
			s.state = stateStringEscape
		default:
			s.collect(c)
		}

	case stateStringEscape:
		if c == '\\' {
			s.collect(ansi.C0.ESC)
			s.collect(c)
			s.dispatch()
			return
		}
		// Any other sequence ends the string.
		s.dispatch()
		s.begin(stateEscape, ansi.C0.ESC)
		s.nextNonUtf8(c)

	case stateVT52Cursor:
		s.collect(c)
		s.vt52Pending--
		if s.vt52Pending == 0 {
			s.dispatch()
		}
	}
}

// dispatch hands the current sequence to the handler and returns to ground.
func (s *Stream) dispatch() {
	if s.overflow {
		s.ground()
		return
	}
	if s.passthrough != nil {
		s.passthrough.Passthrough(s.seq)
	}
	s.ground()
}

func (s *Stream) escDispatch(final uint8) {
	if len(s.intermediates) == 0 {
		s.escFinal(final)
		return
	}

	switch first := s.intermediates[0]; first {
	case '(', ')', '*', '+':
		id := string(s.intermediates[1:]) + string(final)
		s.designate(int(first-'('), id, charset.Designate94)
		s.ground()
	case '-', '.', '/':
		id := string(s.intermediates[1:]) + string(final)
		s.designate(int(first-','), id, charset.Designate96)
		s.ground()
	case '%':
		// Encoding selection; only UTF-8 is decoded.
		if final == 'G' {
			s.resetCharsets()
		}
		s.ground()
	case ' ':
		switch final {
		case 'F':
			s.setMode(core.ModeSendC1, false)
		case 'G':
			s.setMode(core.ModeSendC1, true)
		}
		s.dispatch()
	default:
		s.dispatch()
	}
}

func (s *Stream) designate(set int, id string, resolve func(string) (*charset.Table, bool)) {
	t, ok := resolve(id)
	if !ok {
		s.logger.Debug("unknown charset designator", "set", set, "id", id)
		return
	}
	s.charsets.designate(set, t)
	s.logger.Debug("charset designated", "set", set, "charset", t.Name())
}

func (s *Stream) escFinal(final uint8) {
	switch final {
	case 'N', 'O':
		c, _ := ansi.ToC1(final)
		s.ground()
		s.c1(c)
	case 'n': // LS2
		s.charsets.lockingShift(2)
		s.ground()
	case 'o': // LS3
		s.charsets.lockingShift(3)
		s.ground()
	case '~': // LS1R
		s.charsets.lockingShiftRight(1)
		s.ground()
	case '}': // LS2R
		s.charsets.lockingShiftRight(2)
		s.ground()
	case '|': // LS3R
		s.charsets.lockingShiftRight(3)
		s.ground()
	case '=': // DECKPAM
		s.setMode(core.ModeKeypad, true)
		s.dispatch()
	case '>': // DECKPNM
		s.setMode(core.ModeKeypad, false)
		s.dispatch()
	case '7': // DECSC
		s.saved = s.charsets
		s.dispatch()
	case '8': // DECRC
		s.charsets = s.saved
		s.dispatch()
	case 'c': // RIS
		s.resetCharsets()
		s.saved = newCharsetState()
		s.vt52 = false
		for _, mode := range core.Modes() {
			s.setMode(mode, mode.Default)
		}
		s.dispatch()
	default:
		s.dispatch()
	}
}

func (s *Stream) vt52Dispatch(c uint8) {
	switch c {
	case 'Y':
		s.vt52Pending = 2
		s.state = stateVT52Cursor
	case 'F':
		s.charsets.vt52Graphics = true
		s.ground()
	case 'G':
		s.charsets.vt52Graphics = false
		s.ground()
	case '<':
		s.vt52 = false
		s.charsets.vt52Graphics = false
		s.setMode(core.ModeAnsi, true)
		s.dispatch()
	case '=':
		s.setMode(core.ModeKeypad, true)
		s.dispatch()
	case '>':
		s.setMode(core.ModeKeypad, false)
		s.dispatch()
	default:
		s.dispatch()
	}
}

func (s *Stream) csiDispatch(final uint8) {
	marker, params := parseParams(s.params)

	switch {
	case (final == 'h' || final == 'l') && len(s.intermediates) == 0:
		// SM/RM for ANSI modes, DECSET/DECRST for DEC private modes.
		if marker != 0 && marker != '?' {
			break
		}
		value := final == 'h'
		for _, n := range params {
			mode := core.ModeFromInt(n, marker == 0)
			if mode == nil {
				continue
			}
			if *mode == core.ModeAnsi && !value {
				s.vt52 = true
			}
			s.setMode(*mode, value)
		}

	case final == 'p' && marker == 0 && string(s.intermediates) == "!":
		// DECSTR
		s.resetCharsets()
		s.setMode(core.ModeCursorKeys, false)
		s.setMode(core.ModeKeypad, false)
	}
	s.dispatch()
}

func (s *Stream) setMode(mode core.Mode, value bool) {
	s.logger.Debug("mode changed", "mode", mode.Name, "value", value)
	if s.modes != nil {
		s.modes.SetMode(mode, value)
	}
}

func (s *Stream) resetCharsets() {
	s.charsets = newCharsetState()
}

// parseParams splits CSI parameter bytes into the private marker, if any,
// and the numeric parameters. Empty parameters are 0 and sub-parameters
// are ignored.
func parseParams(p []byte) (marker byte, params []int) {
	if len(p) > 0 && p[0] >= 0x3C && p[0] <= 0x3F {
		marker, p = p[0], p[1:]
	}
	if len(p) == 0 {
		return marker, nil
	}

	n, sub := 0, false
	for _, c := range p {
		switch {
		case c == ';':
			params = append(params, n)
			n, sub = 0, false
		case c == ':':
			sub = true
		case c >= '0' && c <= '9' && !sub:
			n = min(n*10+int(c-'0'), 0xFFFF)
		}
	}
	return marker, append(params, n)
}
