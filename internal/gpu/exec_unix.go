//go:build unix

package gpu

import (
	"os/exec"
	"syscall"
)

// configureCommand runs the query in its own process group so cancellation
// also kills any children a wrapper script started.
func configureCommand(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
