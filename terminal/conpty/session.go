// Package conpty creates pseudo-console sessions: a child host process whose
// standard I/O is carried over byte-stream channels, plus a signal channel
// for resize requests.
//
// The child is started as
//
//	<host> --headless [--width W --height H] --signal 0x3 -- <command line>
//
// and is expected to run the command line on a console of its own, see
// package headless.
package conpty

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"

	"github.com/google/shlex"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/xid"

	"github.com/hnimtadd/termcore/logger"
)

var (
	// ErrChannel is returned when a channel pair cannot be created. No
	// process has been started.
	ErrChannel = errors.New("conpty: unable to create channel")
	// ErrSpawn is returned when the child process cannot be started.
	ErrSpawn = errors.New("conpty: unable to start child")
	// ErrEnvironment is returned when Options.Env holds an entry that cannot
	// be carried in an environment block. No channel has been created.
	ErrEnvironment = errors.New("conpty: invalid environment")
)

type Options struct {
	// CommandLine is run by the headless host.
	CommandLine string
	// Dir is the working directory of the child, or the current one.
	Dir string
	// Width and Height are the initial console size. Both must be non-zero
	// to be passed on.
	Width  uint16
	Height uint16
	Flags  CreationFlags
	// Env is merged over the ambient environment. When empty the child
	// inherits the ambient environment as is.
	Env map[string]string
	// HostPath is the headless host executable, by default the running one.
	HostPath string
	Logger   logger.Logger
}

// Session is a running child host and the caller ends of its channels.
type Session struct {
	id          string
	commandLine string
	flags       CreationFlags

	input  *channel
	output *channel
	signal *channel

	cmd *exec.Cmd

	waitOnce sync.Once
	waitErr  error

	closeOnce sync.Once
	closeErr  error

	logger logger.Logger
}

// Create starts a session. Creation is synchronous: on return the child is
// running, or nothing is left behind.
func Create(opts Options) (_ *Session, err error) {
	id := xid.New().String()
	log := logger.With(logger.OrDefault(opts.Logger), "session", id)

	for name, value := range opts.Env {
		if verr := ValidateEnvVar(name, value); verr != nil {
			return nil, fmt.Errorf("%w: %w", ErrEnvironment, verr)
		}
	}

	var channels []*channel
	defer func() {
		if err == nil {
			return
		}
		for _, c := range channels {
			if cerr := c.close(); cerr != nil {
				log.Warn("unable to close channel", "channel", c.name, "error", cerr)
			}
		}
	}()
	for _, name := range []string{"input", "output", "signal"} {
		c, cerr := newChannel(name)
		if cerr != nil {
			return nil, fmt.Errorf("%w: %w", ErrChannel, cerr)
		}
		channels = append(channels, c)
	}
	input, output, signal := channels[0], channels[1], channels[2]

	// The child holds its own copies once started; ours must not keep the
	// channels open after it exits.
	defer func() {
		for _, c := range channels {
			if cerr := c.closeChild(); cerr != nil {
				log.Warn("unable to close child end", "channel", c.name, "error", cerr)
			}
		}
	}()

	host := opts.HostPath
	if host == "" {
		if host, err = os.Executable(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSpawn, err)
		}
	}
	commandLine := BuildCommandLine(host, opts.Width, opts.Height, childSignalFD, opts.CommandLine)
	argv, err := shlex.Split(commandLine)
	if err != nil {
		return nil, fmt.Errorf("%w: split command line: %w", ErrSpawn, err)
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = opts.Dir
	cmd.Stdin = input.child
	cmd.Stdout = output.child
	cmd.Stderr = output.child
	cmd.ExtraFiles = []*os.File{signal.child}

	flags := opts.Flags
	if len(opts.Env) > 0 {
		env := MergeEnvironment(os.Environ(), opts.Env)
		block := env.Block()
		defer clear(block)

		// The child gets the entries as they are; the block is only the
		// wire form and cannot carry bytes that are not UTF-8.
		cmd.Env = env.Strings()
		flags |= FlagUnicodeEnvironment
		log.Debug("environment block built", "entries", len(env), "size", len(block))
	}
	cmd.SysProcAttr = flags.sysProcAttr()

	if err = cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSpawn, err)
	}
	log.Info("session started", "pid", cmd.Process.Pid, "flags", flags.String())
	log.Debug("session command line", "command", commandLine)

	return &Session{
		id:          id,
		commandLine: commandLine,
		flags:       flags,
		input:       input,
		output:      output,
		signal:      signal,
		cmd:         cmd,
		logger:      log,
	}, nil
}

// Read reads output of the child.
func (s *Session) Read(p []byte) (int, error) {
	return s.output.parent.Read(p)
}

// Write sends input to the child.
func (s *Session) Write(p []byte) (int, error) {
	return s.input.parent.Write(p)
}

// Resize asks the child to resize its console. Nothing is read back.
func (s *Session) Resize(width, height uint16) error {
	msg, err := ResizeMessage{Width: width, Height: height}.MarshalBinary()
	if err != nil {
		return err
	}
	if _, err := s.signal.parent.Write(msg); err != nil {
		return fmt.Errorf("send resize: %w", err)
	}
	s.logger.Debug("resize sent", "width", width, "height", height)
	return nil
}

// Wait waits for the child to exit. It may be called more than once.
func (s *Session) Wait() error {
	s.waitOnce.Do(func() {
		s.waitErr = s.cmd.Wait()
		s.logger.Info("session exited", "error", s.waitErr)
	})
	return s.waitErr
}

func (s *Session) Pid() int {
	return s.cmd.Process.Pid
}

func (s *Session) ID() string {
	return s.id
}

// CommandLine returns the full command line the host was started with.
func (s *Session) CommandLine() string {
	return s.commandLine
}

// Flags returns the creation flags the child was started with, including
// forced ones.
func (s *Session) Flags() CreationFlags {
	return s.flags
}

// Close closes the caller ends of every channel. The child sees end of file
// on its input and is left to exit on its own.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		var result error
		for _, c := range []*channel{s.input, s.output, s.signal} {
			if err := c.closeParent(); err != nil {
				result = multierror.Append(result, fmt.Errorf("close %s: %w", c.name, err))
			}
		}
		s.closeErr = result
	})
	return s.closeErr
}
