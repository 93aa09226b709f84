//go:build windows

package executor

import "os/exec"

func configureProcessGroup(cmd *exec.Cmd) {}
