package stream

// utf8Decoder is an incremental UTF-8 decoder that takes one byte at a time
// and replaces ill-formed input with U+FFFD.
//
// It is the DFA of Bjoern Hoehrmann, see
// http://bjoern.hoehrmann.de/utf-8/decoder/dfa
type utf8Decoder struct {
	state       uint8
	accumulator rune
}

const (
	stateUTF8Accept = 0
	stateUTF8Reject = 12
)

var utf8d = [364]uint8{
	// Byte to character class.
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9,
	7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7,
	8, 8, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2,
	10, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 4, 3, 3, 11, 6, 6, 6, 5, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8,

	// State and character class to next state.
	0, 12, 24, 36, 60, 96, 84, 12, 12, 12, 48, 72, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12,
	12, 0, 12, 12, 12, 12, 12, 0, 12, 0, 12, 12, 12, 24, 12, 12, 12, 12, 12, 24, 12, 24, 12, 12,
	12, 12, 12, 12, 12, 12, 12, 24, 12, 12, 12, 12, 12, 24, 12, 12, 12, 12, 12, 12, 12, 24, 12, 12,
	12, 12, 12, 12, 12, 12, 12, 36, 12, 36, 12, 12, 12, 36, 12, 12, 12, 12, 12, 36, 12, 36, 12, 12,
	12, 36, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12,
}

// idle reports whether the decoder is between characters.
func (d *utf8Decoder) idle() bool {
	return d.state == stateUTF8Accept
}

// next feeds one byte and returns
//   - the decoded character, if any,
//   - whether a character was produced,
//   - whether c was consumed.
//
// A byte that breaks a sequence produces U+FFFD and is not consumed; the
// caller must feed it again.
func (d *utf8Decoder) next(c uint8) (r rune, generated bool, consumed bool) {
	class := utf8d[c]
	initial := d.state

	if d.state != stateUTF8Accept {
		d.accumulator = d.accumulator<<6 | rune(c&0x3F)
	} else {
		d.accumulator = rune(0xFF>>class) & rune(c)
	}
	d.state = utf8d[256+int(d.state)+int(class)]

	switch d.state {
	case stateUTF8Accept:
		r, d.accumulator = d.accumulator, 0
		return r, true, true

	case stateUTF8Reject:
		d.accumulator = 0
		d.state = stateUTF8Accept
		// Only the first byte of a sequence is consumed on rejection.
		return 0xFFFD, true, initial == stateUTF8Accept

	default:
		return 0, false, true
	}
}
