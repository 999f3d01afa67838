//go:build unix

package shell

import (
	"errors"
	"os"
	"syscall"
)

// sysProcAttr places the child in its own process group so the whole tree
// can be signaled at once.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}

// terminateGroup sends SIGKILL to the process group led by pid. A group
// that is already gone reports os.ErrProcessDone.
func terminateGroup(pid int) error {
	err := syscall.Kill(-pid, syscall.SIGKILL)
	if errors.Is(err, syscall.ESRCH) {
		return os.ErrProcessDone
	}
	return err
}
