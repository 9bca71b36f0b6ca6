package charset

// Designators for 94 (and 95) character sets, selected with ESC ( ) * +
// followed by an optional '%' or '"' and a final character.
var designators94 = map[string]*Table{
	"B":  ASCII,
	"0":  DECSpecialGraphics,
	"A":  British,
	"4":  Dutch,
	"C":  Finnish,
	"5":  Finnish,
	"R":  French,
	"f":  FrenchISO,
	"Q":  FrenchCanadian,
	"9":  FrenchCanadian,
	"K":  German,
	"Y":  Italian,
	"E":  NorwegianDanish,
	"6":  NorwegianDanish,
	"`":  NorwegianDanishISO,
	"%6": Portuguese,
	"Z":  Spanish,
	"H":  Swedish,
	"7":  Swedish,
	"=":  Swiss,
	"%5": DECSupplemental,
	"<":  DECSupplemental,
}

// Designators for 96 character sets, selected with ESC - . /.
var designators96 = map[string]*Table{
	"A": Latin1,
}

// Designate94 resolves the designator of a 94 character set.
func Designate94(id string) (*Table, bool) {
	t, ok := designators94[id]
	return t, ok
}

// Designate96 resolves the designator of a 96 character set.
func Designate96(id string) (*Table, bool) {
	t, ok := designators96[id]
	return t, ok
}
