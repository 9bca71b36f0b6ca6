//go:build windows

package conpty

import "syscall"

func (f CreationFlags) sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: uint32(f)}
}
