//go:build windows

package console

import (
	"fmt"
	"io"
	"os"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"

	"github.com/goproxy/taskbar/internal/constants"
	"github.com/goproxy/taskbar/internal/logging"
)

var (
	modkernel32                    = windows.NewLazySystemDLL("kernel32.dll")
	procAllocConsole               = modkernel32.NewProc("AllocConsole")
	procGetConsoleWindow           = modkernel32.NewProc("GetConsoleWindow")
	procSetConsoleCtrlHandler      = modkernel32.NewProc("SetConsoleCtrlHandler")
	procSetConsoleScreenBufferSize = modkernel32.NewProc("SetConsoleScreenBufferSize")
	procSetConsoleTitleW           = modkernel32.NewProc("SetConsoleTitleW")
)

const (
	ctrlCloseEvent    = 2
	ctrlLogoffEvent   = 5
	ctrlShutdownEvent = 6
)

// The handler routine must stay reachable for the life of the process.
var (
	ctrlHandler  uintptr
	ctrlCallback CloseFunc
)

// Console is the allocated Windows console.
type Console struct {
	logger *logging.Logger
	hwnd   win.HWND
	out    *os.File
}

// Create allocates the console, rebinds the standard streams to it and
// installs the close handler. The console is hidden unless visible.
func Create(visible bool, onClose CloseFunc, logger *logging.Logger) (*Console, error) {
	if logger == nil {
		logger = logging.Nop()
	}

	// Fails when a console is already attached, which is fine.
	procAllocConsole.Call()

	c := &Console{logger: logger}
	if err := c.rebindStdio(); err != nil {
		return nil, err
	}

	hwnd, _, _ := procGetConsoleWindow.Call()
	c.hwnd = win.HWND(hwnd)

	if visible {
		win.SetForegroundWindow(c.hwnd)
	} else {
		win.ShowWindow(c.hwnd, win.SW_HIDE)
	}

	if err := installCtrlHandler(onClose); err != nil {
		logger.Warn().Err(err).Msg("Unable to install console handler")
	}

	c.growBuffer()
	return c, nil
}

func (c *Console) rebindStdio() error {
	in, err := os.OpenFile("CONIN$", os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("failed to open CONIN$: %w", err)
	}
	out, err := os.OpenFile("CONOUT$", os.O_RDWR, 0)
	if err != nil {
		in.Close()
		return fmt.Errorf("failed to open CONOUT$: %w", err)
	}

	os.Stdin = in
	os.Stdout = out
	os.Stderr = out
	windows.SetStdHandle(windows.STD_INPUT_HANDLE, windows.Handle(in.Fd()))
	windows.SetStdHandle(windows.STD_OUTPUT_HANDLE, windows.Handle(out.Fd()))
	windows.SetStdHandle(windows.STD_ERROR_HANDLE, windows.Handle(out.Fd()))

	c.out = out
	return nil
}

func installCtrlHandler(onClose CloseFunc) error {
	ctrlCallback = onClose
	if ctrlHandler == 0 {
		ctrlHandler = syscall.NewCallback(func(event uint32) uintptr {
			switch event {
			case ctrlCloseEvent, ctrlLogoffEvent, ctrlShutdownEvent:
				if ctrlCallback != nil {
					ctrlCallback()
				}
			}
			// Ctrl+C and Ctrl+Break are swallowed; only the child reacts to them.
			return 1
		})
	}
	ret, _, err := procSetConsoleCtrlHandler.Call(ctrlHandler, 1)
	if ret == 0 {
		return err
	}
	return nil
}

// growBuffer raises the stderr scrollback to ConsoleMinBufferLines.
func (c *Console) growBuffer() {
	h, err := windows.GetStdHandle(windows.STD_ERROR_HANDLE)
	if err != nil {
		c.logger.Debug().Err(err).Msg("No stderr handle for console buffer")
		return
	}

	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(h, &info); err != nil {
		c.logger.Debug().Err(err).Msg("Unable to read console buffer size")
		return
	}
	if info.Size.Y >= constants.ConsoleMinBufferLines {
		return
	}

	size := windows.Coord{X: info.Size.X, Y: constants.ConsoleMinBufferLines}
	// COORD is passed by value, packed into one register.
	packed := uintptr(uint16(size.X)) | uintptr(uint16(size.Y))<<16
	if ret, _, err := procSetConsoleScreenBufferSize.Call(uintptr(h), packed); ret == 0 {
		c.logger.Warn().Err(err).Msg("Unable to set console screen buffer size")
	}
}

// SetVisible shows or hides the console window.
func (c *Console) SetVisible(visible bool) {
	if visible {
		win.ShowWindow(c.hwnd, win.SW_SHOW)
	} else {
		win.ShowWindow(c.hwnd, win.SW_HIDE)
	}
}

// IsVisible reports whether the console window is visible.
func (c *Console) IsVisible() bool {
	return win.IsWindowVisible(c.hwnd)
}

// BringToForeground activates the console window.
func (c *Console) BringToForeground() {
	win.SetForegroundWindow(c.hwnd)
}

// SetTitle sets the console caption.
func (c *Console) SetTitle(title string) {
	p, err := windows.UTF16PtrFromString(title)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Invalid console title")
		return
	}
	procSetConsoleTitleW.Call(uintptr(unsafe.Pointer(p)))
}

// Writer returns CONOUT$.
func (c *Console) Writer() io.Writer {
	return c.out
}
