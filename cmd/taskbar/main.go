// taskbar runs a console program behind a notification area icon.
//
// Build for Windows:
//
//	GOOS=windows go build -ldflags "-H=windowsgui" ./cmd/taskbar
//
// The launched command line, its environment and the proxy choices come
// from resources/taskbar.ini, linked into the binary.
package main

import (
	_ "embed"
	"errors"
	"os"

	"github.com/goproxy/taskbar/internal/cli"
	"github.com/goproxy/taskbar/internal/launcher"
)

//go:embed resources/taskbar.ini
var resources []byte

func main() {
	if err := cli.Execute(resources); err != nil {
		var launchErr *launcher.LaunchError
		if !errors.As(err, &launchErr) {
			cli.GetLogger().Error().Err(err).Msg("taskbar failed")
		}
		os.Exit(1)
	}
}
