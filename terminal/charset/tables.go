package charset

import "strings"

var (
	ASCII  = New("ASCII", 0x20, 95)
	Latin1 = New("Latin-1", 0xA0, 96)

	DECSpecialGraphics = New("DEC Special Graphics", 0x20, 95,
		Override{0x5F, 0x0020}, // Blank
		Override{0x60, 0x2666}, // Diamond
		Override{0x61, 0x2592}, // Checkerboard
		Override{0x62, 0x2409}, // HT
		Override{0x63, 0x240C}, // FF
		Override{0x64, 0x240D}, // CR
		Override{0x65, 0x240A}, // LF
		Override{0x66, 0x00B0}, // Degree symbol
		Override{0x67, 0x00B1}, // Plus/minus
		Override{0x68, 0x2424}, // NL
		Override{0x69, 0x240B}, // VT
		Override{0x6A, 0x2518}, // Lower-right corner
		Override{0x6B, 0x2510}, // Upper-right corner
		Override{0x6C, 0x250C}, // Upper-left corner
		Override{0x6D, 0x2514}, // Lower-left corner
		Override{0x6E, 0x253C}, // Crossing lines
		Override{0x6F, 0x23BA}, // Horizontal line - scan 1
		Override{0x70, 0x23BB}, // Horizontal line - scan 3
		Override{0x71, 0x2500}, // Horizontal line - scan 5
		Override{0x72, 0x23BC}, // Horizontal line - scan 7
		Override{0x73, 0x23BD}, // Horizontal line - scan 9
		Override{0x74, 0x251C}, // Left "T"
		Override{0x75, 0x2524}, // Right "T"
		Override{0x76, 0x2534}, // Bottom "T"
		Override{0x77, 0x252C}, // Top "T"
		Override{0x78, 0x2502}, // Vertical bar
		Override{0x79, 0x2264}, // Less than or equal to
		Override{0x7A, 0x2265}, // Greater than or equal to
		Override{0x7B, 0x03C0}, // Pi
		Override{0x7C, 0x2260}, // Not equal to
		Override{0x7D, 0x00A3}, // Pound sign
		Override{0x7E, 0x00B7}, // Centered dot
	)

	// DEC Supplemental Graphics differs from Latin-1 in a handful of
	// positions; the ones DEC left undefined show the substitute glyph.
	DECSupplemental = New("DEC Supplemental", 0xA1, 94,
		Override{0xA4, 0x2426},
		Override{0xA6, 0x2426},
		Override{0xA8, 0x00A4}, // Currency sign
		Override{0xAC, 0x2426},
		Override{0xAD, 0x2426},
		Override{0xAE, 0x2426},
		Override{0xAF, 0x2426},
		Override{0xB4, 0x2426},
		Override{0xB8, 0x2426},
		Override{0xBE, 0x2426},
		Override{0xD0, 0x2426},
		Override{0xD7, 0x0152}, // OE ligature
		Override{0xDD, 0x0178}, // Y with diaeresis
		Override{0xDE, 0x2426},
		Override{0xF0, 0x2426},
		Override{0xF7, 0x0153}, // oe ligature
		Override{0xFD, 0x00FF}, // y with diaeresis
		Override{0xFE, 0x2426},
	)
)

// National replacement character sets.
var (
	British = New("British", 0x20, 95,
		Override{0x23, 0x00A3}, // £
	)

	Dutch = New("Dutch", 0x20, 95,
		Override{0x23, 0x00A3}, // £
		Override{0x40, 0x00BE}, // ¾
		Override{0x5B, 0x0133}, // ĳ
		Override{0x5C, 0x00BD}, // ½
		Override{0x5D, 0x007C}, // |
		Override{0x7B, 0x00A8}, // ¨
		Override{0x7C, 0x0192}, // ƒ
		Override{0x7D, 0x00BC}, // ¼
		Override{0x7E, 0x00B4}, // ´
	)

	Finnish = New("Finnish", 0x20, 95,
		Override{0x5B, 0x00C4}, // Ä
		Override{0x5C, 0x00D6}, // Ö
		Override{0x5D, 0x00C5}, // Å
		Override{0x5E, 0x00DC}, // Ü
		Override{0x60, 0x00E9}, // é
		Override{0x7B, 0x00E4}, // ä
		Override{0x7C, 0x00F6}, // ö
		Override{0x7D, 0x00E5}, // å
		Override{0x7E, 0x00FC}, // ü
	)

	French = New("French", 0x20, 95,
		Override{0x23, 0x00A3}, // £
		Override{0x40, 0x00E0}, // à
		Override{0x5B, 0x00B0}, // °
		Override{0x5C, 0x00E7}, // ç
		Override{0x5D, 0x00A7}, // §
		Override{0x7B, 0x00E9}, // é
		Override{0x7C, 0x00F9}, // ù
		Override{0x7D, 0x00E8}, // è
		Override{0x7E, 0x00A8}, // ¨
	)

	// ISO 646-FR adds the micro sign in the grave accent position.
	FrenchISO = New("French (ISO)", 0x20, 95,
		Override{0x23, 0x00A3}, // £
		Override{0x40, 0x00E0}, // à
		Override{0x5B, 0x00B0}, // °
		Override{0x5C, 0x00E7}, // ç
		Override{0x5D, 0x00A7}, // §
		Override{0x60, 0x00B5}, // µ
		Override{0x7B, 0x00E9}, // é
		Override{0x7C, 0x00F9}, // ù
		Override{0x7D, 0x00E8}, // è
		Override{0x7E, 0x00A8}, // ¨
	)

	FrenchCanadian = New("French Canadian", 0x20, 95,
		Override{0x40, 0x00E0}, // à
		Override{0x5B, 0x00E2}, // â
		Override{0x5C, 0x00E7}, // ç
		Override{0x5D, 0x00EA}, // ê
		Override{0x5E, 0x00EE}, // î
		Override{0x60, 0x00F4}, // ô
		Override{0x7B, 0x00E9}, // é
		Override{0x7C, 0x00F9}, // ù
		Override{0x7D, 0x00E8}, // è
		Override{0x7E, 0x00FB}, // û
	)

	German = New("German", 0x20, 95,
		Override{0x40, 0x00A7}, // §
		Override{0x5B, 0x00C4}, // Ä
		Override{0x5C, 0x00D6}, // Ö
		Override{0x5D, 0x00DC}, // Ü
		Override{0x7B, 0x00E4}, // ä
		Override{0x7C, 0x00F6}, // ö
		Override{0x7D, 0x00FC}, // ü
		Override{0x7E, 0x00DF}, // ß
	)

	Italian = New("Italian", 0x20, 95,
		Override{0x23, 0x00A3}, // £
		Override{0x40, 0x00A7}, // §
		Override{0x5B, 0x00B0}, // °
		Override{0x5C, 0x00E7}, // ç
		Override{0x5D, 0x00E9}, // é
		Override{0x60, 0x00F9}, // ù
		Override{0x7B, 0x00E0}, // à
		Override{0x7C, 0x00F2}, // ò
		Override{0x7D, 0x00E8}, // è
		Override{0x7E, 0x00EC}, // ì
	)

	NorwegianDanish = New("Norwegian/Danish", 0x20, 95,
		Override{0x40, 0x00C4}, // Ä
		Override{0x5B, 0x00C6}, // Æ
		Override{0x5C, 0x00D8}, // Ø
		Override{0x5D, 0x00C5}, // Å
		Override{0x5E, 0x00DC}, // Ü
		Override{0x60, 0x00E4}, // ä
		Override{0x7B, 0x00E6}, // æ
		Override{0x7C, 0x00F8}, // ø
		Override{0x7D, 0x00E5}, // å
		Override{0x7E, 0x00FC}, // ü
	)

	// ISO 646-NO keeps @ and the accents of ASCII.
	NorwegianDanishISO = New("Norwegian/Danish (ISO)", 0x20, 95,
		Override{0x5B, 0x00C6}, // Æ
		Override{0x5C, 0x00D8}, // Ø
		Override{0x5D, 0x00C5}, // Å
		Override{0x7B, 0x00E6}, // æ
		Override{0x7C, 0x00F8}, // ø
		Override{0x7D, 0x00E5}, // å
		Override{0x7E, 0x203E}, // ‾
	)

	Portuguese = New("Portuguese", 0x20, 95,
		Override{0x5B, 0x00C3}, // Ã
		Override{0x5C, 0x00C7}, // Ç
		Override{0x5D, 0x00D5}, // Õ
		Override{0x7B, 0x00E3}, // ã
		Override{0x7C, 0x00E7}, // ç
		Override{0x7D, 0x00F5}, // õ
	)

	Spanish = New("Spanish", 0x20, 95,
		Override{0x23, 0x00A3}, // £
		Override{0x40, 0x00A7}, // §
		Override{0x5B, 0x00A1}, // ¡
		Override{0x5C, 0x00D1}, // Ñ
		Override{0x5D, 0x00BF}, // ¿
		Override{0x7B, 0x00B0}, // °
		Override{0x7C, 0x00F1}, // ñ
		Override{0x7D, 0x00E7}, // ç
	)

	Swedish = New("Swedish", 0x20, 95,
		Override{0x40, 0x00C9}, // É
		Override{0x5B, 0x00C4}, // Ä
		Override{0x5C, 0x00D6}, // Ö
		Override{0x5D, 0x00C5}, // Å
		Override{0x5E, 0x00DC}, // Ü
		Override{0x60, 0x00E9}, // é
		Override{0x7B, 0x00E4}, // ä
		Override{0x7C, 0x00F6}, // ö
		Override{0x7D, 0x00E5}, // å
		Override{0x7E, 0x00FC}, // ü
	)

	Swiss = New("Swiss", 0x20, 95,
		Override{0x23, 0x00F9}, // ù
		Override{0x40, 0x00E0}, // à
		Override{0x5B, 0x00E9}, // é
		Override{0x5C, 0x00E7}, // ç
		Override{0x5D, 0x00EA}, // ê
		Override{0x5E, 0x00EE}, // î
		Override{0x5F, 0x00E8}, // è
		Override{0x60, 0x00F4}, // ô
		Override{0x7B, 0x00E4}, // ä
		Override{0x7C, 0x00F6}, // ö
		Override{0x7D, 0x00FC}, // ü
		Override{0x7E, 0x00FB}, // û
	)
)

var all = []*Table{
	ASCII,
	Latin1,
	DECSpecialGraphics,
	DECSupplemental,
	British,
	Dutch,
	Finnish,
	French,
	FrenchISO,
	FrenchCanadian,
	German,
	Italian,
	NorwegianDanish,
	NorwegianDanishISO,
	Portuguese,
	Spanish,
	Swedish,
	Swiss,
}

// All returns the named tables of this package.
func All() []*Table {
	out := make([]*Table, len(all))
	copy(out, all)
	return out
}

// ByName finds a named table, ignoring case.
func ByName(name string) (*Table, bool) {
	for _, t := range all {
		if strings.EqualFold(t.name, name) {
			return t, true
		}
	}
	return nil, false
}
