//go:build windows

package launcher

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"syscall"
	"unsafe"

	"github.com/shirou/gopsutil/v4/process"
	"golang.org/x/sys/windows"

	"github.com/goproxy/taskbar/internal/constants"
)

const swShowNormal = 1

// createProcessStarter starts the command line verbatim with CreateProcess,
// inheriting the environment and the hosted console.
type createProcessStarter struct{}

// NewStarter returns the platform Starter.
func NewStarter() Starter {
	return createProcessStarter{}
}

func (createProcessStarter) Start(commandLine string) (uint32, error) {
	// CreateProcessW may write into the command line buffer.
	cmdLine, err := windows.UTF16FromString(commandLine)
	if err != nil {
		return 0, fmt.Errorf("invalid command line: %w", err)
	}

	si := &windows.StartupInfo{
		Flags:      windows.STARTF_USESHOWWINDOW,
		ShowWindow: swShowNormal,
	}
	si.Cb = uint32(unsafe.Sizeof(*si))

	var pi windows.ProcessInformation
	if err := windows.CreateProcess(nil, &cmdLine[0], nil, nil, false, 0, nil, nil, si, &pi); err != nil {
		return 0, err
	}
	// Only the pid is kept; the child is signalled by id later.
	windows.CloseHandle(pi.Thread)
	windows.CloseHandle(pi.Process)

	return pi.ProcessId, nil
}

// taskKiller terminates a process tree with taskkill /f /t.
type taskKiller struct{}

// NewKiller returns the platform Killer. taskkill output goes to stdout,
// which is the hosted console once it exists. taskkill cannot walk the
// tree from a pid that already exited, so dead pids are skipped.
func NewKiller() Killer {
	return checkedKiller{exists: process.PidExists, next: taskKiller{}}
}

func (taskKiller) KillTree(pid uint32) error {
	cmd := exec.Command(constants.TaskKillExe, "/f", "/t", "/pid", strconv.FormatUint(uint64(pid), 10))
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NO_WINDOW,
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stdout
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("taskkill pid %d: %w", pid, err)
	}
	return nil
}
