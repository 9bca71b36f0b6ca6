package conpty

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding/unicode"

	"github.com/hnimtadd/termcore/terminal/utils"
)

// EnvVar is one environment variable.
type EnvVar struct {
	Name  string
	Value string
}

func (v EnvVar) String() string {
	return v.Name + "=" + v.Value
}

// Environment is a set of variables with case-insensitively unique names,
// sorted by upper-cased name.
type Environment []EnvVar

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// splitEnv splits a NAME=value entry. Names may begin with '=' (per-drive
// directories on Windows), so the separator is searched after the first
// byte.
func splitEnv(entry string) (EnvVar, bool) {
	if entry == "" {
		return EnvVar{}, false
	}
	i := strings.IndexByte(entry[1:], '=')
	if i < 0 {
		return EnvVar{}, false
	}
	return EnvVar{Name: entry[:i+1], Value: entry[i+2:]}, true
}

// ValidateEnvVar checks that name=value survives a round trip through a
// block: the name is non-empty, has no '=' after its first byte and neither
// part contains NUL.
func ValidateEnvVar(name, value string) error {
	switch {
	case name == "":
		return errors.New("empty variable name")
	case strings.IndexByte(name, 0) >= 0:
		return fmt.Errorf("variable name %q contains NUL", name)
	case strings.IndexByte(name[1:], '=') >= 0:
		return fmt.Errorf("variable name %q contains '='", name)
	case strings.IndexByte(value, 0) >= 0:
		return fmt.Errorf("value of %q contains NUL", name)
	}
	return nil
}

func envKey(name string) string {
	return strings.ToUpper(name)
}

func compareEnv(a, b EnvVar) int {
	return strings.Compare(envKey(a.Name), envKey(b.Name))
}

// MergeEnvironment overlays extra onto the ambient NAME=value entries. A
// name in extra replaces an ambient entry of the same name regardless of
// case, and keeps the spelling from extra.
func MergeEnvironment(ambient []string, extra map[string]string) Environment {
	byKey := make(map[string]EnvVar, len(ambient)+len(extra))
	for _, entry := range ambient {
		if v, ok := splitEnv(entry); ok {
			byKey[envKey(v.Name)] = v
		}
	}
	for name, value := range extra {
		byKey[envKey(name)] = EnvVar{Name: name, Value: value}
	}

	env := make(Environment, 0, len(byKey))
	for _, v := range byKey {
		env = append(env, v)
	}
	slices.SortFunc(env, compareEnv)
	return env
}

// Get returns the value of name, compared case-insensitively.
func (e Environment) Get(name string) (string, bool) {
	i, ok := slices.BinarySearchFunc(e, EnvVar{Name: name}, compareEnv)
	if !ok {
		return "", false
	}
	return e[i].Value, true
}

// Strings returns the NAME=value form used by os/exec.
func (e Environment) Strings() []string {
	out := make([]string, len(e))
	for i, v := range e {
		out[i] = v.String()
	}
	return out
}

// BlockSize returns the size in bytes of the encoded block.
func (e Environment) BlockSize() int {
	units := 1
	for _, v := range e {
		units += utf16Len(v.Name) + 1 + utf16Len(v.Value) + 1
	}
	return units * 2
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// Block serializes the environment as NAME=value\0 entries followed by a
// terminating \0, in UTF-16LE.
//
// The block is allocated at BlockSize up front; writing a different number
// of bytes panics.
func (e Environment) Block() []byte {
	size := e.BlockSize()

	var staging []byte
	for _, v := range e {
		staging = append(staging, v.Name...)
		staging = append(staging, '=')
		staging = append(staging, v.Value...)
		staging = append(staging, 0)
	}
	staging = append(staging, 0)
	defer clear(staging)

	block := make([]byte, size)
	n, _, err := utf16le.NewEncoder().Transform(block, staging, true)
	utils.Assert(err == nil && n == size, fmt.Sprintf("environment block: wrote %d of %d bytes", n, size))
	return block
}

var errBlockTerminator = errors.New("environment block: missing terminator")

// ParseBlock decodes a block produced by Block. Entries come back in block
// order.
func ParseBlock(block []byte) (Environment, error) {
	if len(block)%2 != 0 {
		return nil, fmt.Errorf("environment block: odd length %d", len(block))
	}
	text, err := utf16le.NewDecoder().Bytes(block)
	if err != nil {
		return nil, fmt.Errorf("environment block: %w", err)
	}
	defer clear(text)

	var env Environment
	for len(text) > 0 {
		i := bytes.IndexByte(text, 0)
		if i < 0 {
			return nil, errBlockTerminator
		}
		if i == 0 {
			return env, nil
		}
		v, ok := splitEnv(string(text[:i]))
		if !ok {
			return nil, fmt.Errorf("environment block: malformed entry %q", text[:i])
		}
		env = append(env, v)
		text = text[i+1:]
	}
	return nil, errBlockTerminator
}
