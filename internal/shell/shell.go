// Package shell hosts the hidden top-level window that owns the
// notification icon and runs the message loop.
package shell

import "errors"

// ErrUnsupported is returned by New on platforms without a Windows shell.
var ErrUnsupported = errors.New("the notification area is only available on Windows")
