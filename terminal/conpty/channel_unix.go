//go:build !windows

package conpty

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

func socketPair(name string) (*channel, error) {
	// Hold the fork lock so no child forked meanwhile inherits the pair
	// before close-on-exec is set.
	syscall.ForkLock.RLock()
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err == nil {
		unix.CloseOnExec(fds[0])
		unix.CloseOnExec(fds[1])
	}
	syscall.ForkLock.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("socketpair %s: %w", name, err)
	}

	return &channel{
		name:   name,
		parent: os.NewFile(uintptr(fds[0]), name+"-parent"),
		child:  os.NewFile(uintptr(fds[1]), name+"-child"),
	}, nil
}
