//go:build unix

package launcher

import (
	"errors"
	"fmt"
	"os/exec"
	"syscall"
)

// shellStarter runs the command line through /bin/sh in its own process
// group, so the whole tree can be signalled at once.
type shellStarter struct{}

// NewStarter returns the platform Starter.
func NewStarter() Starter {
	return shellStarter{}
}

func (shellStarter) Start(commandLine string) (uint32, error) {
	cmd := exec.Command("/bin/sh", "-c", commandLine)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := cmd.Start(); err != nil {
		return 0, err
	}
	pid := uint32(cmd.Process.Pid)
	// Reap in the background so a killed child does not linger as a zombie.
	go cmd.Wait()
	return pid, nil
}

// groupKiller sends SIGKILL to the child's process group. The group
// outlives its leader, so descendants are reached even after the child
// itself exited.
type groupKiller struct{}

// NewKiller returns the platform Killer.
func NewKiller() Killer {
	return groupKiller{}
}

func (groupKiller) KillTree(pid uint32) error {
	err := syscall.Kill(-int(pid), syscall.SIGKILL)
	if errors.Is(err, syscall.ESRCH) {
		return fmt.Errorf("process group %d: %w", pid, ErrProcessGone)
	}
	if err != nil {
		return fmt.Errorf("kill process group %d: %w", pid, err)
	}
	return nil
}
