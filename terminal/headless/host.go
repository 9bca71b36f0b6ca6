// Package headless is the child side of a conpty session: it runs the
// session's command on a pseudo terminal of its own, pumps the command's I/O
// through its standard streams and applies the resize requests that arrive
// on the signal channel.
package headless

import (
	"io"

	"github.com/hnimtadd/termcore/logger"
)

type Options struct {
	// Args are the host arguments without the program name, as built by
	// conpty.BuildCommandLine.
	Args   []string
	Stdin  io.Reader
	Stdout io.Writer
	// Signal overrides the signal channel named by --signal.
	Signal io.Reader
	Logger logger.Logger
}
