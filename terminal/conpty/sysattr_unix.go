//go:build !windows

package conpty

import "syscall"

// sysProcAttr maps the creation flags onto process attributes. A new
// console becomes a new session, which is also a new process group.
func (f CreationFlags) sysProcAttr() *syscall.SysProcAttr {
	switch {
	case f.Has(FlagNewConsole):
		return &syscall.SysProcAttr{Setsid: true}
	case f.Has(FlagNewProcessGroup):
		return &syscall.SysProcAttr{Setpgid: true}
	default:
		return nil
	}
}
