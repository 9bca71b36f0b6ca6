package command

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hnimtadd/termcore/logger"
	"github.com/hnimtadd/termcore/terminal/headless"
)

const envPrefix = "TERMCORE"

// logOptions are shared by every command.
type logOptions struct {
	LogLevel  string `mapstructure:"log-level"`
	LogFormat string `mapstructure:"log-format"`
	LogFile   string `mapstructure:"log-file"`
}

func Root() *cobra.Command {
	rootCmd := &rootCmd{}
	cmd := &cobra.Command{
		Use:   "termcore",
		Short: "Terminal input encoding and pseudo-console sessions",
		Long: `termcore runs commands on a pseudo console and translates between the
terminal protocol and text: key presses are encoded for the modes the
application selected, and output is decoded with character sets applied.

Invoked with --headless it is the host side of a session and runs the
command after "--" on a terminal of its own.`,
		Example: `  # Run $SHELL in a session
  termcore run

  # Show the keys sent in application cursor mode
  termcore keys --cursor-keys

  # Show the DEC Special Graphics table
  termcore charsets "DEC Special Graphics"`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          rootCmd.Run,
	}

	cmd.PersistentFlags().String("config", "", "config file")
	cmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
	cmd.PersistentFlags().String("log-format", "text", "log format: text or json")
	cmd.PersistentFlags().String("log-file", "", "append logs to this file instead of stderr")

	cmd.Flags().Bool("headless", false, "run as the host side of a session")
	cmd.Flags().Uint16("width", 0, "initial width in columns")
	cmd.Flags().Uint16("height", 0, "initial height in rows")
	cmd.Flags().String("signal", "", "descriptor of the signal channel")
	for _, name := range []string{"headless", "width", "height", "signal"} {
		_ = cmd.Flags().MarkHidden(name)
	}

	cmd.AddCommand(runCmd())
	cmd.AddCommand(charsetsCmd())
	cmd.AddCommand(keysCmd())

	return cmd
}

type rootCmd struct {
}

func (c *rootCmd) Run(cmd *cobra.Command, args []string) error {
	isHeadless, err := cmd.Flags().GetBool("headless")
	if err != nil {
		return err
	}
	if !isHeadless {
		if len(args) > 0 {
			return fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())
		}
		return cmd.Help()
	}

	var opts logOptions
	if err := unmarshalFlags(cmd, &opts); err != nil {
		return err
	}
	// The host's stderr is the session output; logs only go to a file.
	log := logger.Discard
	if opts.LogFile != "" {
		l, closer, err := newLogger(opts)
		if err != nil {
			return err
		}
		defer closer.Close()
		log = l
	}

	return headless.Run(cmd.Context(), headless.Options{
		Args:   hostArgs(cmd.Flags(), args),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Logger: log,
	})
}

// hostArgs rebuilds the host command line from the parsed flags.
func hostArgs(flags *pflag.FlagSet, command []string) []string {
	args := []string{"--headless"}
	for _, name := range []string{"width", "height", "signal"} {
		if f := flags.Lookup(name); f != nil && f.Changed {
			args = append(args, "--"+name, f.Value.String())
		}
	}
	args = append(args, "--")
	return append(args, command...)
}

func unmarshalFlags(cmd *cobra.Command, opts interface{}) error {
	v := viper.New()

	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		flagName := flag.Name
		if flagName != "config" && flagName != "help" {
			if err := v.BindPFlag(flagName, flag); err != nil {
				panic(fmt.Errorf("error binding flag '%s': %w", flagName, err).Error())
			}
		}
	})

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix(envPrefix)

	cfgFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfgFile); err == nil {
		v.SetConfigFile(cfgFile)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error loading config file %s: %w", cfgFile, err)
		}
	}

	return v.Unmarshal(opts)
}

// newLogger builds the logger described by opts. The returned closer
// releases the log file, if any.
func newLogger(opts logOptions) (logger.Logger, io.Closer, error) {
	level, err := logger.ParseLevel(opts.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	typ, err := logger.ParseType(opts.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	if opts.LogFile == "" {
		return logger.New(logger.Options{Buffer: os.Stderr, Level: level, Type: typ}), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return logger.New(logger.Options{Buffer: f, Level: level, Type: typ}), f, nil
}

// ExitCode maps an error returned by a command to a process exit status.
// The exit status of a session's command is passed on.
func ExitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}
	return 1
}
