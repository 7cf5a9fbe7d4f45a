// Package launcher owns the single child process: it launches the configured
// command line, remembers only its pid, and can kill and relaunch it.
package launcher

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/goproxy/taskbar/internal/constants"
	"github.com/goproxy/taskbar/internal/logging"
)

// Starter creates a process from a raw command line and returns its pid.
// Implementations must release any native handle before returning.
type Starter interface {
	Start(commandLine string) (uint32, error)
}

// Killer forcefully terminates a process and all of its descendants.
// It returns ErrProcessGone when there was nothing left to terminate.
type Killer interface {
	KillTree(pid uint32) error
}

// ErrProcessGone reports that the process tree had already exited.
var ErrProcessGone = errors.New("process already exited")

// LaunchError reports that the child could not be started. Callers treat it
// as fatal.
type LaunchError struct {
	CommandLine string
	Err         error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("cannot execute %q: %v", e.CommandLine, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Controller tracks at most one child process by pid.
// It is not safe for concurrent use; the message loop thread owns it.
type Controller struct {
	commandLine string
	starter     Starter
	killer      Killer
	logger      *logging.Logger

	// out receives the reload spacers.
	out io.Writer

	sleep  func(time.Duration)
	settle time.Duration

	pid uint32
}

// New creates a controller for commandLine.
func New(commandLine string, starter Starter, killer Killer, logger *logging.Logger) *Controller {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Controller{
		commandLine: commandLine,
		starter:     starter,
		killer:      killer,
		logger:      logger,
		out:         io.Discard,
		sleep:       time.Sleep,
		settle:      constants.ReloadSettleDelay,
	}
}

// SetOutput sets where reload spacers are written, normally the console.
func (c *Controller) SetOutput(w io.Writer) {
	c.out = w
}

// CommandLine returns the configured command line.
func (c *Controller) CommandLine() string {
	return c.commandLine
}

// Launch starts the configured command line and tracks the new pid.
// A failure is returned as *LaunchError and leaves no pid tracked.
func (c *Controller) Launch() (uint32, error) {
	pid, err := c.starter.Start(c.commandLine)
	if err != nil {
		c.pid = 0
		c.logger.Error().Err(err).Str("cmdline", c.commandLine).Msg("Failed to launch child process")
		return 0, &LaunchError{CommandLine: c.commandLine, Err: err}
	}

	c.pid = pid
	c.logger.Info().Uint32("pid", pid).Str("cmdline", c.commandLine).Msg("Child process started")
	return pid, nil
}

// ForceTerminate kills pid and its descendants. It is best effort: pid 0
// is a no-op and failures are only logged.
func (c *Controller) ForceTerminate(pid uint32) {
	if pid == 0 {
		return
	}

	if err := c.killer.KillTree(pid); err != nil {
		if errors.Is(err, ErrProcessGone) {
			c.logger.Debug().Uint32("pid", pid).Msg("Child process already gone")
			return
		}
		c.logger.Warn().Err(err).Uint32("pid", pid).Msg("Failed to terminate child process")
		return
	}
	c.logger.Info().Uint32("pid", pid).Msg("Child process terminated")
}

// Reload terminates the tracked child, waits for teardown to settle and
// launches the command line again. The old pid is always terminated before
// a new one is recorded.
func (c *Controller) Reload() (uint32, error) {
	old := c.pid

	c.writeSpacer()
	c.ForceTerminate(old)
	c.writeSpacer()

	c.pid = 0
	c.sleep(c.settle)

	pid, err := c.Launch()
	if err != nil {
		return 0, err
	}
	if pid == old {
		c.logger.Warn().Uint32("pid", pid).Msg("Relaunched child reused the previous pid")
	}
	return pid, nil
}

func (c *Controller) writeSpacer() {
	if _, err := io.WriteString(c.out, constants.ReloadSpacer); err != nil {
		c.logger.Debug().Err(err).Msg("Failed to write reload spacer")
	}
}

// Shutdown terminates the tracked child on application exit.
func (c *Controller) Shutdown() {
	c.ForceTerminate(c.pid)
	c.pid = 0
}
