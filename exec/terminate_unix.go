//go:build unix

package exec

import (
	"os"
	"os/exec"
	"syscall"
)

// setProcessGroup starts the tool in its own process group so helpers it
// spawns are signalled with it.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// terminate asks the tool's process group to shut down cleanly.
func terminate(p *os.Process) error {
	return signalGroup(p, syscall.SIGTERM)
}

// kill stops the tool's process group immediately.
func kill(p *os.Process) error {
	return signalGroup(p, syscall.SIGKILL)
}

func signalGroup(p *os.Process, sig syscall.Signal) error {
	if err := syscall.Kill(-p.Pid, sig); err != nil {
		if err == syscall.ESRCH {
			return os.ErrProcessDone
		}
		return err
	}
	return nil
}
