//go:build !windows

package console

import (
	"io"
	"os"

	"github.com/goproxy/taskbar/internal/logging"
)

// Console is the headless console used off Windows.
type Console struct {
	out     io.Writer
	visible bool
	title   string
}

// Create returns a headless console writing to stdout. There is no window
// to close, so onClose is never called.
func Create(visible bool, onClose CloseFunc, logger *logging.Logger) (*Console, error) {
	return &Console{
		out:     os.Stdout,
		visible: visible,
	}, nil
}

// SetVisible records the visibility.
func (c *Console) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible reports the recorded visibility.
func (c *Console) IsVisible() bool {
	return c.visible
}

// BringToForeground is a no-op without a window.
func (c *Console) BringToForeground() {}

// SetTitle records the title.
func (c *Console) SetTitle(title string) {
	c.title = title
}

// Writer returns the console output.
func (c *Console) Writer() io.Writer {
	return c.out
}
