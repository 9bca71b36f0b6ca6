package stream

import "github.com/hnimtadd/termcore/terminal/core"

// The stream discovers what its handler can do with type assertions. A
// handler only implements the interfaces it cares about; everything else
// the stream sees is dropped.
type (
	PrintHandler interface {
		// Print receives a printable character after charset translation.
		Print(r rune)
	}

	ExecuteHandler interface {
		// Execute receives a C0 or C1 control that the stream does not
		// consume itself (SO, SI, SS2 and SS3 are consumed).
		Execute(c byte)
	}

	PassthroughHandler interface {
		// Passthrough receives every complete escape sequence, control
		// sequence or control string that is not a charset designation or
		// shift. The slice is only valid for the duration of the call.
		Passthrough(seq []byte)
	}

	ModeHandler interface {
		// SetMode reports a change of an input mode seen in the output.
		SetMode(mode core.Mode, value bool)
	}
)
