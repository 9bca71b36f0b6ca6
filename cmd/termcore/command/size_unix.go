//go:build !windows

package command

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/hnimtadd/termcore/logger"
)

type resizer interface {
	Resize(width, height uint16) error
}

// watchSize forwards the size of the terminal at fd to r whenever it changes,
// until done is closed.
func watchSize(fd int, r resizer, log logger.Logger, done <-chan struct{}) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGWINCH)
	defer signal.Stop(ch)

	for {
		select {
		case <-done:
			return
		case <-ch:
			w, h, err := term.GetSize(fd)
			if err != nil {
				log.Debug("unable to get terminal size", "error", err)
				continue
			}
			if err := r.Resize(uint16(w), uint16(h)); err != nil {
				log.Warn("unable to resize session", "error", err)
			}
		}
	}
}
