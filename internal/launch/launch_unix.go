//go:build unix

package launch

import (
	"os/exec"
	"syscall"
)

// detach puts the child in a new session so it outlives the transfer.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}
}
