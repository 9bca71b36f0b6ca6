package input

import "fmt"

// KeyCode is a logical key. Keys that share a code but sit on different
// physical clusters (numpad Enter and main Return) are told apart with the
// Enhanced modifier.
type KeyCode uint16

const (
	KeyNone KeyCode = iota

	KeyPause
	KeyBackspace
	KeyTab
	KeyReturn

	// Cursor and editing cluster
	KeyUp
	KeyDown
	KeyRight
	KeyLeft
	KeyClear
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyPageUp
	KeyPageDown

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20

	// Numeric keypad
	KeyMultiply
	KeyAdd
	KeySeparator
	KeySubtract
	KeyDecimal
	KeyDivide
	KeyNumpad0
	KeyNumpad1
	KeyNumpad2
	KeyNumpad3
	KeyNumpad4
	KeyNumpad5
	KeyNumpad6
	KeyNumpad7
	KeyNumpad8
	KeyNumpad9
)

var keyNames = map[KeyCode]string{
	KeyNone:      "None",
	KeyPause:     "Pause",
	KeyBackspace: "Backspace",
	KeyTab:       "Tab",
	KeyReturn:    "Return",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyRight:     "Right",
	KeyLeft:      "Left",
	KeyClear:     "Clear",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyInsert:    "Insert",
	KeyDelete:    "Delete",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyMultiply:  "Multiply",
	KeyAdd:       "Add",
	KeySeparator: "Separator",
	KeySubtract:  "Subtract",
	KeyDecimal:   "Decimal",
	KeyDivide:    "Divide",
}

func (k KeyCode) String() string {
	switch {
	case k >= KeyF1 && k <= KeyF20:
		return fmt.Sprintf("F%d", k-KeyF1+1)
	case k >= KeyNumpad0 && k <= KeyNumpad9:
		return fmt.Sprintf("Numpad%d", k-KeyNumpad0)
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", uint16(k))
}

// FunctionKey returns the code of function key n (1-20).
func FunctionKey(n int) KeyCode {
	if n < 1 || n > 20 {
		return KeyNone
	}
	return KeyF1 + KeyCode(n-1)
}

// NumpadKey returns the code of numpad digit n (0-9).
func NumpadKey(n int) KeyCode {
	if n < 0 || n > 9 {
		return KeyNone
	}
	return KeyNumpad0 + KeyCode(n)
}

// Keys lists every key code the encoder knows about, in declaration order.
func Keys() []KeyCode {
	keys := make([]KeyCode, 0, int(KeyNumpad9))
	for k := KeyPause; k <= KeyNumpad9; k++ {
		keys = append(keys, k)
	}
	return keys
}
