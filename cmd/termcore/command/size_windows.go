//go:build windows

package command

import (
	"github.com/hnimtadd/termcore/logger"
)

type resizer interface {
	Resize(width, height uint16) error
}

// watchSize waits for done. There is no resize notification to forward.
func watchSize(fd int, r resizer, log logger.Logger, done <-chan struct{}) {
	<-done
}
