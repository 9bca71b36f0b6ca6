//go:build !windows

package conpty

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnimtadd/termcore/logger"
)

const helperEnv = "TERMCORE_CONPTY_HELPER"

// The test binary doubles as the headless host of the sessions it creates.
func TestMain(m *testing.M) {
	if os.Getenv(helperEnv) == "1" {
		os.Exit(helperHost(os.Args[1:]))
	}
	os.Exit(m.Run())
}

func helperHost(args []string) int {
	ha, err := ParseHostArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	fmt.Printf("host %dx%d signal=%d command=%s\n", ha.Width, ha.Height, ha.Signal, strings.Join(ha.Command, "|"))
	fmt.Printf("FOO=%s\n", os.Getenv("FOO"))

	signal := os.NewFile(ha.Signal, "signal")
	for {
		m, err := ReadResizeMessage(signal)
		if err != nil {
			return 0
		}
		fmt.Printf("resize %dx%d\n", m.Width, m.Height)
	}
}

func TestCreate(t *testing.T) {
	t.Setenv("FOO", "baz")

	s, err := Create(Options{
		CommandLine: `sh -c "echo hi"`,
		Width:       80,
		Height:      24,
		Env:         map[string]string{helperEnv: "1", "FOO": "bar"},
		HostPath:    os.Args[0],
		Logger:      logger.Discard,
	})
	require.NoError(t, err)
	defer s.Close()

	assert.NotEmpty(t, s.ID())
	assert.Positive(t, s.Pid())
	assert.True(t, s.Flags().Has(FlagUnicodeEnvironment))
	assert.Contains(t, s.CommandLine(), " --headless --width 80 --height 24 --signal 0x3 -- ")

	out := bufio.NewReader(s)
	line, err := out.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "host 80x24 signal=3 command=sh|-c|echo hi\n", line)

	line, err = out.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "FOO=bar\n", line)

	require.NoError(t, s.Resize(120, 30))
	line, err = out.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "resize 120x30\n", line)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "close is idempotent")
	assert.NoError(t, s.Wait())
	assert.NoError(t, s.Wait())

	_, err = s.Write([]byte("x"))
	assert.ErrorIs(t, err, os.ErrClosed)
}

func TestCreate_InheritsEnvironmentWithoutExtras(t *testing.T) {
	t.Setenv(helperEnv, "1")
	t.Setenv("FOO", "ambient")

	s, err := Create(Options{
		CommandLine: "true",
		HostPath:    os.Args[0],
		Logger:      logger.Discard,
	})
	require.NoError(t, err)
	defer s.Close()

	assert.False(t, s.Flags().Has(FlagUnicodeEnvironment))
	assert.NotContains(t, s.CommandLine(), "--width")

	out := bufio.NewReader(s)
	_, err = out.ReadString('\n')
	require.NoError(t, err)
	line, err := out.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "FOO=ambient\n", line)

	require.NoError(t, s.Close())
	assert.NoError(t, s.Wait())
}

func TestCreate_KeepsAmbientBytesOutsideUTF8(t *testing.T) {
	t.Setenv("FOO", "caf\xe9")

	s, err := Create(Options{
		CommandLine: "true",
		Env:         map[string]string{helperEnv: "1", "OTHER": "x"},
		HostPath:    os.Args[0],
		Logger:      logger.Discard,
	})
	require.NoError(t, err)
	defer s.Close()

	out := bufio.NewReader(s)
	_, err = out.ReadString('\n')
	require.NoError(t, err)
	line, err := out.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "FOO=caf\xe9\n", line)

	require.NoError(t, s.Close())
	assert.NoError(t, s.Wait())
}

// recordChannels wraps newChannel to keep every channel created, optionally
// failing the n-th call.
func recordChannels(t *testing.T, failAt int) *[]*channel {
	t.Helper()
	orig := newChannel
	t.Cleanup(func() { newChannel = orig })

	var created []*channel
	newChannel = func(name string) (*channel, error) {
		if len(created)+1 == failAt {
			return nil, errors.New("out of descriptors")
		}
		c, err := orig(name)
		if err == nil {
			created = append(created, c)
		}
		return c, err
	}
	return &created
}

func assertClosed(t *testing.T, f *os.File) {
	t.Helper()
	_, err := f.Write([]byte{0})
	assert.ErrorIs(t, err, os.ErrClosed, f.Name())
}

func TestCreate_ChannelFailureClosesEverything(t *testing.T) {
	created := recordChannels(t, 3)

	s, err := Create(Options{CommandLine: "true", HostPath: os.Args[0], Logger: logger.Discard})
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrChannel)
	assert.ErrorContains(t, err, "out of descriptors")

	require.Len(t, *created, 2)
	for _, c := range *created {
		assertClosed(t, c.parent)
		assertClosed(t, c.child)
	}
}

func TestCreate_SpawnFailureClosesEverything(t *testing.T) {
	created := recordChannels(t, 0)

	s, err := Create(Options{
		CommandLine: "true",
		HostPath:    "/nonexistent/termcore-host",
		Env:         map[string]string{"FOO": "bar"},
		Logger:      logger.Discard,
	})
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrSpawn)
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.Len(t, *created, 3)
	for _, c := range *created {
		assertClosed(t, c.parent)
		assertClosed(t, c.child)
	}
}

func TestChannel_CloseOnce(t *testing.T) {
	c, err := newChannel("test")
	require.NoError(t, err)

	require.NoError(t, c.close())
	assert.NoError(t, c.close())
	assert.NoError(t, c.closeParent())
}

func TestCreate_InvalidEnvironment(t *testing.T) {
	created := recordChannels(t, 0)

	for _, env := range []map[string]string{
		{"A=B": "c"},
		{"": "x"},
		{"FOO": "a\x00b"},
	} {
		s, err := Create(Options{
			CommandLine: "true",
			Env:         env,
			HostPath:    os.Args[0],
			Logger:      logger.Discard,
		})
		assert.Nil(t, s)
		assert.ErrorIs(t, err, ErrEnvironment)
	}
	assert.Empty(t, *created)
}
