package conpty

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// childSignalFD is the descriptor the child finds the signal channel at: the
// first slot after stdin, stdout and stderr.
const childSignalFD = 3

// HostArgs is the command line a headless host is started with.
type HostArgs struct {
	Headless bool
	Width    uint16
	Height   uint16
	Signal   uintptr
	// Command is everything after "--".
	Command []string
}

// BuildCommandLine renders the command line of the headless host:
//
//	<host> --headless [--width W --height H] --signal 0x<hex> -- <commandLine>
//
// Width and height are only passed when both are set. commandLine is
// appended as is.
func BuildCommandLine(host string, width, height uint16, signal uintptr, commandLine string) string {
	var b strings.Builder
	b.WriteString(quoteArg(host))
	b.WriteString(" --headless")
	if width != 0 && height != 0 {
		fmt.Fprintf(&b, " --width %d --height %d", width, height)
	}
	fmt.Fprintf(&b, " --signal 0x%x", signal)
	b.WriteString(" -- ")
	b.WriteString(commandLine)
	return b.String()
}

// quoteArg quotes s for the shell-style splitting applied to the command
// line.
func quoteArg(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n\"'\\#") {
		return s
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

// JoinArgs renders argv as a command line that splits back into argv.
func JoinArgs(argv []string) string {
	quoted := make([]string, len(argv))
	for i, a := range argv {
		quoted[i] = quoteArg(a)
	}
	return strings.Join(quoted, " ")
}

var errNotHeadless = errors.New("missing --headless")

// ParseHostArgs parses the arguments of a headless host, without the program
// name.
func ParseHostArgs(args []string) (HostArgs, error) {
	var (
		ha     HostArgs
		signal string
	)
	fs := pflag.NewFlagSet("headless", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&ha.Headless, "headless", false, "run as a headless host")
	fs.Uint16Var(&ha.Width, "width", 0, "initial width in columns")
	fs.Uint16Var(&ha.Height, "height", 0, "initial height in rows")
	fs.StringVar(&signal, "signal", "", "descriptor of the signal channel")

	if err := fs.Parse(args); err != nil {
		return HostArgs{}, fmt.Errorf("parse host arguments: %w", err)
	}
	if !ha.Headless {
		return HostArgs{}, errNotHeadless
	}
	if signal == "" {
		return HostArgs{}, errors.New("missing --signal")
	}
	fd, err := strconv.ParseUint(signal, 0, 64)
	if err != nil {
		return HostArgs{}, fmt.Errorf("invalid --signal %q: %w", signal, err)
	}
	ha.Signal = uintptr(fd)
	ha.Command = fs.Args()
	if len(ha.Command) == 0 {
		return HostArgs{}, errors.New("missing command")
	}
	return ha, nil
}
