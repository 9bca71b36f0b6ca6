package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/oklog/run"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hnimtadd/termcore"
	"github.com/hnimtadd/termcore/logger"
	"github.com/hnimtadd/termcore/terminal/conpty"
)

type runOptions struct {
	Width      uint16   `mapstructure:"width"`
	Height     uint16   `mapstructure:"height"`
	Env        []string `mapstructure:"env"`
	Dir        string   `mapstructure:"dir"`
	NewConsole bool     `mapstructure:"new-console"`
	Host       string   `mapstructure:"host"`

	LogLevel  string `mapstructure:"log-level"`
	LogFormat string `mapstructure:"log-format"`
	LogFile   string `mapstructure:"log-file"`
}

func (o runOptions) log() logOptions {
	return logOptions{LogLevel: o.LogLevel, LogFormat: o.LogFormat, LogFile: o.LogFile}
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [-- command...]",
		Short: "Run a command in a session attached to this terminal",
		Long: `Run a command in a pseudo-console session. Standard input is sent to the
session and its output, decoded with character sets applied, is written to
standard output. Without a command $SHELL is run.`,
		Example: `  # Run vim on a 100x30 console
  termcore run --width 100 --height 30 -- vim

  # Run with an extra environment variable
  termcore run --env EDITOR=nano -- bash`,
		RunE: runRun,
	}

	cmd.Flags().Uint16("width", 0, "console width in columns, by default the width of this terminal")
	cmd.Flags().Uint16("height", 0, "console height in rows, by default the height of this terminal")
	cmd.Flags().StringArray("env", nil, "environment variable NAME=value for the command (repeatable)")
	cmd.Flags().String("dir", "", "working directory of the command")
	cmd.Flags().Bool("new-console", false, "give the command a session of its own")
	cmd.Flags().String("host", "", "headless host executable, by default this one")

	return cmd
}

func runRun(c *cobra.Command, args []string) error {
	var opts runOptions
	if err := unmarshalFlags(c, &opts); err != nil {
		return err
	}
	env, err := validateRunOptions(opts)
	if err != nil {
		return err
	}

	log, closer, err := newLogger(opts.log())
	if err != nil {
		return err
	}
	defer closer.Close()

	if len(args) == 0 {
		args = []string{defaultShell()}
	}

	stdinFd, stdoutFd := int(os.Stdin.Fd()), int(os.Stdout.Fd())
	width, height := opts.Width, opts.Height
	if width == 0 && height == 0 && term.IsTerminal(stdoutFd) {
		if w, h, err := term.GetSize(stdoutFd); err == nil {
			width, height = uint16(w), uint16(h)
		}
	}

	var flags conpty.CreationFlags
	if opts.NewConsole {
		flags |= conpty.FlagNewConsole
	}

	tio, err := termcore.NewTerminalIO(termcore.Options{
		CommandLine: conpty.JoinArgs(args),
		Dir:         opts.Dir,
		Width:       width,
		Height:      height,
		Env:         env,
		Flags:       flags,
		HostPath:    opts.Host,
		Output:      os.Stdout,
		Logger:      log,
	})
	if err != nil {
		return err
	}
	defer tio.Close()

	if term.IsTerminal(stdinFd) {
		state, err := term.MakeRaw(stdinFd)
		if err != nil {
			return fmt.Errorf("unable to set terminal to raw mode: %w", err)
		}
		defer func() {
			_ = term.Restore(stdinFd, state)
		}()
	}

	// A blocked read of stdin cannot be interrupted; the pump ends with the
	// process.
	go func() {
		if err := pumpInput(tio, os.Stdin); err != nil {
			log.Debug("input pump stopped", "error", err)
		}
	}()

	var g run.Group
	{
		ctx, cancel := context.WithCancel(c.Context())
		g.Add(func() error {
			return tio.Run(ctx)
		}, func(err error) {
			cancel()
		})
	}
	{
		done := make(chan struct{})
		g.Add(func() error {
			watchSize(stdoutFd, tio, log, done)
			return nil
		}, func(err error) {
			close(done)
		})
	}
	if err := g.Run(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return tio.Wait()
}

func pumpInput(tio *termcore.TerminalIO, r io.Reader) error {
	buf := make([]byte, 1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if werr := tio.SendText(string(buf[:n])); werr != nil {
				return werr
			}
		}
		if err != nil {
			return err
		}
	}
}

// validateRunOptions checks opts and returns the parsed environment.
func validateRunOptions(opts runOptions) (map[string]string, error) {
	var result error
	if (opts.Width == 0) != (opts.Height == 0) {
		result = multierror.Append(result, errors.New("--width and --height must be given together"))
	}
	if _, err := logger.ParseLevel(opts.LogLevel); err != nil {
		result = multierror.Append(result, err)
	}
	if _, err := logger.ParseType(opts.LogFormat); err != nil {
		result = multierror.Append(result, err)
	}

	var env map[string]string
	for _, kv := range opts.Env {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			result = multierror.Append(result, fmt.Errorf("invalid --env %q, want NAME=value", kv))
			continue
		}
		if err := conpty.ValidateEnvVar(name, value); err != nil {
			result = multierror.Append(result, fmt.Errorf("invalid --env %q: %w", kv, err))
			continue
		}
		if env == nil {
			env = make(map[string]string)
		}
		env[name] = value
	}
	return env, result
}

func defaultShell() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}
