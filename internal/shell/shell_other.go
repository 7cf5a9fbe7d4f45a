//go:build !windows

package shell

import (
	"github.com/goproxy/taskbar/internal/logging"
	"github.com/goproxy/taskbar/internal/tray"
)

// Host is unavailable off Windows; New always fails.
type Host struct{}

// New reports ErrUnsupported.
func New(title string, logger *logging.Logger) (*Host, error) {
	return nil, ErrUnsupported
}

func (h *Host) SetHandler(fn func(tray.Event)) {}

func (h *Host) AddIcon(icon tray.Icon) error {
	return ErrUnsupported
}

func (h *Host) ModifyIcon(icon tray.Icon) error {
	return ErrUnsupported
}

func (h *Host) DeleteIcon() error {
	return ErrUnsupported
}

func (h *Host) ShowMenu(menu tray.Menu) (int, bool) {
	return 0, false
}

func (h *Host) ShowError(title, text string) {}

func (h *Host) Quit() {}

func (h *Host) Close() {}

func (h *Host) Run() int {
	return 0
}

// SystemLocale returns 0, which selects English labels.
func SystemLocale() uint32 {
	return 0
}
