package conpty

import (
	"strconv"
	"strings"
)

// CreationFlags are the process creation flags of a session. The values
// follow the console host's process creation flags.
type CreationFlags uint32

const (
	// FlagNewConsole gives the child its own console session.
	FlagNewConsole CreationFlags = 0x00000010
	// FlagNewProcessGroup puts the child in a new process group.
	FlagNewProcessGroup CreationFlags = 0x00000200
	// FlagUnicodeEnvironment marks the environment block as UTF-16. It is
	// forced whenever a session carries extra environment variables.
	FlagUnicodeEnvironment CreationFlags = 0x00000400
)

var flagNames = []struct {
	flag CreationFlags
	name string
}{
	{FlagNewConsole, "new-console"},
	{FlagNewProcessGroup, "new-process-group"},
	{FlagUnicodeEnvironment, "unicode-environment"},
}

// Has reports whether every bit of flag is set.
func (f CreationFlags) Has(flag CreationFlags) bool {
	return f&flag == flag
}

func (f CreationFlags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, n := range flagNames {
		if f.Has(n.flag) {
			parts = append(parts, n.name)
			f &^= n.flag
		}
	}
	if f != 0 {
		parts = append(parts, "0x"+strconv.FormatUint(uint64(f), 16))
	}
	return strings.Join(parts, "|")
}
