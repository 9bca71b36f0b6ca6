//go:build !windows

package headless

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/creack/pty"
	"github.com/oklog/run"
	"golang.org/x/sys/unix"

	"github.com/hnimtadd/termcore/logger"
	"github.com/hnimtadd/termcore/terminal/conpty"
)

// Run hosts one command until it exits, the signal channel is closed or ctx
// is done. A closed signal channel means the session is over and is not an
// error; the command is killed.
func Run(ctx context.Context, opts Options) error {
	log := logger.OrDefault(opts.Logger)

	ha, err := conpty.ParseHostArgs(opts.Args)
	if err != nil {
		return err
	}

	signal := opts.Signal
	if signal == nil {
		f, err := openSignal(ha.Signal)
		if err != nil {
			return err
		}
		defer f.Close()
		signal = f
	}

	cmd := exec.CommandContext(ctx, ha.Command[0], ha.Command[1:]...)
	var size *pty.Winsize
	if ha.Width != 0 && ha.Height != 0 {
		size = &pty.Winsize{Rows: ha.Height, Cols: ha.Width}
	}
	ptmx, err := pty.StartWithSize(cmd, size)
	if err != nil {
		return fmt.Errorf("unable to start pty: %w", err)
	}
	defer ptmx.Close()
	log.Debug("headless host started", "command", ha.Command, "width", ha.Width, "height", ha.Height)

	// A blocked read of stdin cannot be interrupted; the pump ends with the
	// host process.
	go func() {
		if _, err := io.Copy(ptmx, opts.Stdin); err != nil {
			log.Debug("input pump stopped", "error", err)
		}
	}()

	var g run.Group
	{
		// output, then the exit status once the pty is drained
		g.Add(func() error {
			if _, err := io.Copy(opts.Stdout, ptmx); ptyError(err) != nil {
				return fmt.Errorf("output pump: %w", err)
			}
			return cmd.Wait()
		}, func(err error) {
			_ = cmd.Process.Kill()
		})
	}
	{
		// resize
		g.Add(func() error {
			for {
				m, err := conpty.ReadResizeMessage(signal)
				if err != nil {
					return err
				}
				if err := pty.Setsize(ptmx, &pty.Winsize{Rows: m.Height, Cols: m.Width}); err != nil {
					log.Warn("unable to resize pty", "width", m.Width, "height", m.Height, "error", err)
					continue
				}
				log.Debug("pty resized", "width", m.Width, "height", m.Height)
			}
		}, func(err error) {
			if c, ok := signal.(io.Closer); ok {
				_ = c.Close()
			}
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

	err = g.Run()
	if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
		log.Debug("signal channel closed, host exiting")
		return nil
	}
	return err
}

// openSignal opens the inherited signal descriptor in non-blocking mode so
// that closing it interrupts a pending read.
func openSignal(fd uintptr) (*os.File, error) {
	if err := unix.SetNonblock(int(fd), true); err != nil {
		return nil, fmt.Errorf("signal channel 0x%x: %w", fd, err)
	}
	return os.NewFile(fd, "signal"), nil
}

// Linux returns EIO when reading from a pty master whose slave has no open
// descriptor left, which is how the end of output shows up. See
// https://github.com/creack/pty/issues/21
func ptyError(err error) error {
	if pathErr, ok := err.(*os.PathError); !ok || pathErr.Err != syscall.EIO {
		return err
	}
	return nil
}
