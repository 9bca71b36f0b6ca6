// Package termcore ties a pseudo-console session to the terminal protocol:
// output of the session is decoded with character sets applied, and key
// presses are encoded for the modes the application has selected.
package termcore

import (
	"context"
	"fmt"
	"io"
	"runtime/debug"
	"sync"

	"github.com/oklog/run"

	"github.com/hnimtadd/termcore/logger"
	"github.com/hnimtadd/termcore/terminal/conpty"
	"github.com/hnimtadd/termcore/terminal/core"
	"github.com/hnimtadd/termcore/terminal/input"
	"github.com/hnimtadd/termcore/terminal/stream"
)

// session is the part of conpty.Session the terminal uses.
type session interface {
	io.ReadWriter
	Resize(width, height uint16) error
	Wait() error
	Close() error
}

var createSession = func(opts conpty.Options) (session, error) {
	return conpty.Create(opts)
}

type TerminalIO struct {
	session session

	// The stream parser. This parses the stream of escape codes and so on
	// from the child process and calls callbacks in the stream handler.
	streamMu       sync.Mutex
	terminalStream *stream.Stream
	handler        *StreamHandler

	encoder *input.Encoder

	logger logger.Logger
}

type Options struct {
	CommandLine string
	Dir         string
	Width       uint16
	Height      uint16
	Env         map[string]string
	Flags       conpty.CreationFlags
	HostPath    string

	// Output receives the decoded output of the session.
	Output io.Writer
	Logger logger.Logger
}

// NewTerminalIO starts the session and sets up decoding and key encoding.
func NewTerminalIO(opts Options) (*TerminalIO, error) {
	l := logger.OrDefault(opts.Logger)
	sess, err := createSession(conpty.Options{
		CommandLine: opts.CommandLine,
		Dir:         opts.Dir,
		Width:       opts.Width,
		Height:      opts.Height,
		Flags:       opts.Flags,
		Env:         opts.Env,
		HostPath:    opts.HostPath,
		Logger:      l,
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return newTerminalIO(sess, opts.Output, l), nil
}

func newTerminalIO(sess session, out io.Writer, l logger.Logger) *TerminalIO {
	encoder := input.NewEncoder(input.Options{
		Flags:  core.NewDefaultModeState().Flags(),
		Logger: l,
	})
	handler := newStreamHandler(out, encoder, l)
	return &TerminalIO{
		session:        sess,
		terminalStream: stream.NewStream(handler, l),
		handler:        handler,
		encoder:        encoder,
		logger:         l,
	}
}

// SendKey sends the sequence of a key press. It returns false when the key
// has no sequence in the current modes; the caller should then send the
// key's text with SendText.
func (t *TerminalIO) SendKey(mods input.Modifiers, key input.KeyCode) (bool, error) {
	seq, ok := t.encoder.SequenceFor(mods, key)
	if !ok {
		return false, nil
	}
	if _, err := io.WriteString(t.session, seq); err != nil {
		return true, fmt.Errorf("send %s: %w", input.Combination{Mods: mods, Key: key}, err)
	}
	return true, nil
}

// SendText sends text input as is.
func (t *TerminalIO) SendText(text string) error {
	_, err := io.WriteString(t.session, text)
	return err
}

// resize the terminal
func (t *TerminalIO) Resize(width, height uint16) error {
	return t.session.Resize(width, height)
}

// Modes returns the input modes currently selected by the application.
func (t *TerminalIO) Modes() core.Flags {
	return t.handler.Flags()
}

// ProcessOutput decodes output of the session. This is the manual API for
// callers that read the session themselves; Run calls it too.
func (t *TerminalIO) ProcessOutput(buf []byte) (err error) {
	t.streamMu.Lock()
	defer t.streamMu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("panic in ProcessOutput", "panic", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("panic in ProcessOutput: %v", r)
		}
	}()
	t.terminalStream.NextSlice(buf)
	return t.handler.flush()
}

// Process decodes output one byte at a time.
//
// NOTE, this is helpful for debugging as you can see the effect of each
// byte, but it is not as efficient as the slice version.
//
// consider ProcessOutput for better performance
func (t *TerminalIO) Process(c byte) error {
	t.streamMu.Lock()
	defer t.streamMu.Unlock()

	t.terminalStream.Next(c)
	return t.handler.flush()
}

// Write makes the terminal an io.Writer for session output.
func (t *TerminalIO) Write(p []byte) (n int, err error) {
	if err := t.ProcessOutput(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Run pumps the output of the session through the decoder until the session
// output ends or ctx is done. The session is closed on return.
func (t *TerminalIO) Run(ctx context.Context) error {
	var g run.Group
	{
		// output
		g.Add(func() error {
			_, err := io.Copy(t, t.session)
			return err
		}, func(err error) {
			_ = t.session.Close()
		})
	}
	{
		ctx, cancel := context.WithCancel(ctx)
		g.Add(func() error {
			<-ctx.Done()
			return ctx.Err()
		}, func(err error) {
			cancel()
		})
	}
	return g.Run()
}

// Wait waits for the session's child to exit.
func (t *TerminalIO) Wait() error {
	return t.session.Wait()
}

func (t *TerminalIO) Close() error {
	return t.session.Close()
}
