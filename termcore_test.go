package termcore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnimtadd/termcore/logger"
	"github.com/hnimtadd/termcore/terminal/conpty"
	"github.com/hnimtadd/termcore/terminal/core"
	"github.com/hnimtadd/termcore/terminal/input"
)

type fakeSession struct {
	io.Reader

	mu       sync.Mutex
	written  bytes.Buffer
	resized  []conpty.ResizeMessage
	closed   int
	writeErr error
}

func (s *fakeSession) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return 0, s.writeErr
	}
	return s.written.Write(p)
}

func (s *fakeSession) Resize(width, height uint16) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resized = append(s.resized, conpty.ResizeMessage{Width: width, Height: height})
	return nil
}

func (s *fakeSession) Wait() error { return nil }

func (s *fakeSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	if c, ok := s.Reader.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *fakeSession) sent() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.written.String()
	s.written.Reset()
	return out
}

func newTestTerminal(output string) (*TerminalIO, *fakeSession, *bytes.Buffer) {
	sess := &fakeSession{Reader: strings.NewReader(output)}
	out := &bytes.Buffer{}
	return newTerminalIO(sess, out, logger.Discard), sess, out
}

func TestSendKey_FollowsModesInOutput(t *testing.T) {
	term, sess, _ := newTestTerminal("")

	ok, err := term.SendKey(input.ModNone, input.KeyUp)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "\x1b[A", sess.sent())

	require.NoError(t, term.ProcessOutput([]byte("\x1b[?1h\x1b=")))
	assert.Equal(t, core.Flags{CursorKey: true, Keypad: true}, term.Modes())

	_, err = term.SendKey(input.ModNone, input.KeyUp)
	require.NoError(t, err)
	assert.Equal(t, "\x1bOA", sess.sent())

	_, err = term.SendKey(input.ModNone, input.KeyNumpad5)
	require.NoError(t, err)
	assert.Equal(t, "\x1bOu", sess.sent())

	require.NoError(t, term.ProcessOutput([]byte("\x1b[?2l")))
	_, err = term.SendKey(input.ModCtrl, input.KeyUp)
	require.NoError(t, err)
	assert.Equal(t, "\x1bA", sess.sent(), "VT52 ignores modifiers")

	require.NoError(t, term.ProcessOutput([]byte("\x1bc")))
	assert.Equal(t, core.Flags{}, term.Modes())
}

func TestSendKey_Unmapped(t *testing.T) {
	term, sess, _ := newTestTerminal("")

	ok, err := term.SendKey(input.ModNone, input.KeyNumpad5)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, sess.sent())

	require.NoError(t, term.SendText("5"))
	assert.Equal(t, "5", sess.sent())
}

func TestSendKey_WriteError(t *testing.T) {
	term, sess, _ := newTestTerminal("")
	sess.writeErr = errors.New("broken pipe")

	ok, err := term.SendKey(input.ModShift, input.KeyTab)
	assert.True(t, ok)
	assert.ErrorContains(t, err, "Shift+Tab")
}

func TestProcessOutput_TranslatesCharsets(t *testing.T) {
	term, _, out := newTestTerminal("")

	require.NoError(t, term.ProcessOutput([]byte("\x1b(0lqk\x1b(B ok\r\n\x1b[1m")))
	assert.Equal(t, "┌─┐ ok\r\n\x1b[1m", out.String())
}

func TestProcess_Bytewise(t *testing.T) {
	term, _, out := newTestTerminal("")
	for _, c := range []byte("\x1b)0\x0eq\x0f✓") {
		require.NoError(t, term.Process(c))
	}
	assert.Equal(t, "─✓", out.String())
}

type panicWriter struct{}

func (panicWriter) Write([]byte) (int, error) { panic("boom") }

func TestProcessOutput_RecoversPanic(t *testing.T) {
	term := newTerminalIO(&fakeSession{}, panicWriter{}, logger.Discard)
	err := term.ProcessOutput([]byte("x"))
	assert.ErrorContains(t, err, "boom")
}

func TestResize(t *testing.T) {
	term, sess, _ := newTestTerminal("")
	require.NoError(t, term.Resize(120, 30))
	assert.Equal(t, []conpty.ResizeMessage{{Width: 120, Height: 30}}, sess.resized)
}

func TestRun_PumpsOutput(t *testing.T) {
	term, sess, out := newTestTerminal("hello \x1b(0a\x1b(B\x1b[?1h")

	require.NoError(t, term.Run(context.Background()))
	assert.Equal(t, "hello ▒\x1b[?1h", out.String())
	assert.True(t, term.Modes().CursorKey)
	assert.Equal(t, 1, sess.closed)
}

func TestRun_ContextCancel(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	sess := &fakeSession{Reader: r}
	term := newTerminalIO(sess, io.Discard, logger.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, term.Run(ctx), context.Canceled)
}

func TestNewTerminalIO(t *testing.T) {
	orig := createSession
	t.Cleanup(func() { createSession = orig })

	var got conpty.Options
	createSession = func(opts conpty.Options) (session, error) {
		got = opts
		return &fakeSession{Reader: strings.NewReader("")}, nil
	}
	term, err := NewTerminalIO(Options{CommandLine: "vim", Width: 80, Height: 24, Logger: logger.Discard})
	require.NoError(t, err)
	assert.Equal(t, "vim", got.CommandLine)
	assert.Equal(t, uint16(80), got.Width)
	require.NoError(t, term.Close())

	createSession = func(conpty.Options) (session, error) {
		return nil, conpty.ErrChannel
	}
	_, err = NewTerminalIO(Options{CommandLine: "vim", Logger: logger.Discard})
	assert.ErrorIs(t, err, conpty.ErrChannel)
}
