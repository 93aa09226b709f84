//go:build !windows

package executor

import (
	"os/exec"
	"syscall"
)

// configureProcessGroup makes the shell lead its own process group so a
// timeout kills the whole tree, not just the shell.
func configureProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
