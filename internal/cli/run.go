package cli

import (
	"fmt"

	"github.com/goproxy/taskbar/internal/config"
	"github.com/goproxy/taskbar/internal/console"
	"github.com/goproxy/taskbar/internal/launcher"
	"github.com/goproxy/taskbar/internal/logging"
	"github.com/goproxy/taskbar/internal/pathutil"
	"github.com/goproxy/taskbar/internal/shell"
	"github.com/goproxy/taskbar/internal/sysproxy"
	"github.com/goproxy/taskbar/internal/tray"
)

// loadResources reads path when given, else decodes the embedded document.
func loadResources(embedded []byte, path string) (config.Resources, error) {
	if path == "" {
		return config.ParseResources(embedded)
	}
	resolved, err := pathutil.ResolvePath(path)
	if err != nil {
		return config.Resources{}, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return config.LoadResourcesFile(resolved)
}

// run performs the startup sequence and pumps the message loop. It returns
// the launch error when the child could not be started, initially or on
// reload.
func run(res config.Resources, logger *logging.Logger) error {
	exeDir, err := pathutil.ExecutableDir()
	if err != nil {
		logger.Warn().Err(err).Msg("Cannot determine executable directory")
	} else if err := pathutil.PinWorkingDirectory(exeDir); err != nil {
		logger.Warn().Err(err).Msg("Cannot pin working directory")
	}

	cfg := config.Load(res, config.OSEnvironment{}, nil, logger.Component("config"))

	// The host shares the root logger so it follows the console rebind below.
	host, err := shell.New(cfg.Title, logger)
	if err != nil {
		return fmt.Errorf("failed to create tray window: %w", err)
	}

	con, err := console.Create(cfg.ConsoleVisible, host.Close, logger)
	if err != nil {
		return fmt.Errorf("failed to create console: %w", err)
	}
	logger.SetOutput(con.Writer())
	con.SetTitle(cfg.Title)

	proc := launcher.New(cfg.CommandLine, launcher.NewStarter(), launcher.NewKiller(), logger.Component("launcher"))
	proc.SetOutput(con.Writer())
	if _, err := proc.Launch(); err != nil {
		host.ShowError(tray.LaunchErrorTitle, cfg.CommandLine)
		return err
	}

	ctrl := tray.NewController(tray.Options{
		Config:  cfg,
		Shell:   host,
		Console: con,
		Process: proc,
		Proxy:   sysproxy.New(),
		Strings: tray.LocaleFor(shell.SystemLocale()),
		Logger:  logger.Component("tray"),
	})
	host.SetHandler(ctrl.Handle)
	ctrl.Start()

	if exeDir != "" {
		removed, err := pathutil.RemoveUpdateLeftovers(exeDir)
		if err != nil {
			logger.Debug().Err(err).Msg("Update cleanup failed")
		}
		for _, name := range removed {
			logger.Info().Str("file", name).Msg("Removed update leftover")
		}
	}

	host.Run()
	return ctrl.Err()
}
