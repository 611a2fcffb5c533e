//go:build !unix

package gpu

import "os/exec"

func configureCommand(cmd *exec.Cmd) {}
