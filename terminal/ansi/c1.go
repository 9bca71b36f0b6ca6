package ansi

type c1 struct {
	SS2 uint8 // SS2 single shift of G2 (ESC N).
	SS3 uint8 // SS3 single shift of G3 (ESC O).
	DCS uint8 // DCS device control string (ESC P).
	SOS uint8 // SOS start of string (ESC X).
	CSI uint8 // CSI control sequence introducer (ESC [).
	ST  uint8 // ST string terminator (ESC \).
	OSC uint8 // OSC operating system command (ESC ]).
	PM  uint8 // PM privacy message (ESC ^).
	APC uint8 // APC application program command (ESC _).
}

// C1 (8-bit) control characters. Each has a 7-bit equivalent made of ESC
// followed by the C1 value minus 0x40.
var C1 = c1{
	SS2: 0x8E,
	SS3: 0x8F,
	DCS: 0x90,
	SOS: 0x98,
	CSI: 0x9B,
	ST:  0x9C,
	OSC: 0x9D,
	PM:  0x9E,
	APC: 0x9F,
}

// Introducers for the two classes of sequences sent by the keyboard.
const (
	CSI7 = "\x1b["
	SS37 = "\x1bO"
	CSI8 = "\x9b"
	SS38 = "\x8f"
)

// Introducers returns the CSI and SS3 prefixes, either as single C1 bytes or
// as their two-byte ESC forms.
func Introducers(eightBit bool) (csi, ss3 string) {
	if eightBit {
		return CSI8, SS38
	}
	return CSI7, SS37
}

// ToC1 maps the final byte of a two-byte ESC form to its C1 control. The
// second result is false when f has no C1 equivalent.
func ToC1(f uint8) (uint8, bool) {
	if f < 0x40 || f > 0x5F {
		return 0, false
	}
	return f + 0x40, true
}
