package tray

import (
	"errors"
	"time"

	"github.com/goproxy/taskbar/internal/config"
	"github.com/goproxy/taskbar/internal/constants"
	"github.com/goproxy/taskbar/internal/logging"
	"github.com/goproxy/taskbar/internal/sysproxy"
)

// LaunchErrorTitle captions the dialog shown when the child cannot start.
const LaunchErrorTitle = "Error: Cannot execute!"

// Icon is the notify icon content.
type Icon struct {
	Tip            string
	Info           string
	InfoTitle      string
	BalloonTimeout time.Duration
}

// Shell is the native notification area and window host.
type Shell interface {
	// AddIcon registers the icon, or updates it if the shell already has it.
	AddIcon(icon Icon) error
	ModifyIcon(icon Icon) error
	DeleteIcon() error
	// ShowMenu tracks menu at the cursor until it is dismissed and returns
	// the selected id; ok is false when nothing was chosen.
	ShowMenu(menu Menu) (id int, ok bool)
	ShowError(title, text string)
	// Quit ends the message loop.
	Quit()
}

// Console is the hosted console window.
type Console interface {
	SetVisible(visible bool)
	IsVisible() bool
	BringToForeground()
}

// Process is the child process controller.
type Process interface {
	CommandLine() string
	Reload() (uint32, error)
	Shutdown()
}

// Controller drives the tray icon. Handle must only be called from the
// message loop thread.
type Controller struct {
	cfg     *config.LaunchConfig
	shell   Shell
	console Console
	process Process
	proxy   sysproxy.Accessor
	strings Strings
	expand  func(string) string
	logger  *logging.Logger

	state State
	err   error
}

// Options holds the collaborators of a Controller.
type Options struct {
	Config  *config.LaunchConfig
	Shell   Shell
	Console Console
	Process Process
	Proxy   sysproxy.Accessor
	Strings Strings

	// Expand resolves %VAR% in phonebook paths; nil uses config.ExpandEnv.
	Expand func(string) string
	Logger *logging.Logger
}

// NewController creates a controller in StateHidden.
func NewController(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	expand := opts.Expand
	if expand == nil {
		expand = config.ExpandEnv
	}
	strs := opts.Strings
	if strs == (Strings{}) {
		strs = English
	}
	return &Controller{
		cfg:     opts.Config,
		shell:   opts.Shell,
		console: opts.Console,
		process: opts.Process,
		proxy:   opts.Proxy,
		strings: strs,
		expand:  expand,
		logger:  logger,
		state:   StateHidden,
	}
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Err returns the launch failure that destroyed the controller, if any.
func (c *Controller) Err() error {
	return c.err
}

// Start registers the icon showing the live system proxy.
func (c *Controller) Start() {
	if c.state != StateHidden {
		return
	}
	c.register()
}

// Handle processes one event.
func (c *Controller) Handle(ev Event) {
	if c.state == StateDestroyed {
		return
	}
	c.logger.Debug().Str("event", ev.Kind.String()).Int("command", ev.Command).
		Str("state", c.state.String()).Msg("Tray event")

	switch ev.Kind {
	case EventTaskbarCreated:
		c.register()
	case EventLeftClick:
		c.toggleConsole()
	case EventRightClick:
		if c.state != StateIdle {
			return
		}
		c.popupMenu()
	case EventCommand:
		c.dispatch(ev.Command)
	case EventClose:
		c.exit()
	case EventDestroy:
		c.deleteIcon()
		c.state = StateDestroyed
		c.shell.Quit()
	}
}

// register adds the icon (or refreshes it after an Explorer restart).
func (c *Controller) register() {
	if err := c.shell.AddIcon(c.icon(c.currentProxy())); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to add tray icon")
	}
	c.state = StateIdle
}

func (c *Controller) currentProxy() string {
	current, err := c.proxy.Current()
	if err != nil && !errors.Is(err, sysproxy.ErrUnsupported) {
		c.logger.Warn().Err(err).Msg("Failed to read system proxy")
	}
	return current
}

// icon shows the active proxy, or the configured texts when proxying is off.
func (c *Controller) icon(proxy string) Icon {
	ic := Icon{
		Tip:            c.cfg.Tooltip,
		Info:           c.cfg.Balloon,
		InfoTitle:      c.cfg.Title,
		BalloonTimeout: constants.BalloonTimeout,
	}
	if proxy != "" {
		ic.Tip = proxy
		ic.Info = proxy
	}
	return ic
}

func (c *Controller) toggleConsole() {
	visible := !c.console.IsVisible()
	c.console.SetVisible(visible)
	if visible {
		c.console.BringToForeground()
	}
}

func (c *Controller) popupMenu() {
	menu := BuildMenu(c.strings, c.cfg.ProxyCandidates, c.currentProxy())

	c.state = StateMenuOpen
	id, ok := c.shell.ShowMenu(menu)
	if c.state == StateMenuOpen {
		c.state = StateIdle
	}
	if ok {
		c.dispatch(id)
	}
}

func (c *Controller) dispatch(id int) {
	switch {
	case id == CmdShow:
		c.console.SetVisible(true)
		c.console.BringToForeground()
	case id == CmdHide:
		c.console.SetVisible(false)
	case id == CmdReload:
		c.reload()
	case id == CmdExit:
		c.exit()
	case id >= CmdProxyBase && id < CmdProxyBase+len(c.cfg.ProxyCandidates):
		c.setProxy(c.cfg.ProxyCandidates[id-CmdProxyBase])
	default:
		c.logger.Debug().Int("command", id).Msg("Ignoring unknown menu command")
	}
}

func (c *Controller) setProxy(value string) {
	c.logger.Info().Str("proxy", value).Str("mode", sysproxy.Classify(value).String()).Msg("Setting system proxy")

	if err := c.proxy.Set(value, ""); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to set LAN proxy")
	}
	n := sysproxy.ApplyToProfiles(c.proxy, value, c.cfg.ProfilePaths, c.expand, c.logger)
	if n > 0 {
		c.logger.Info().Int("connections", n).Msg("Updated dial-up connections")
	}

	if err := c.shell.ModifyIcon(c.icon(value)); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to update tray icon")
	}
}

func (c *Controller) reload() {
	c.console.SetVisible(true)
	c.console.BringToForeground()

	if _, err := c.process.Reload(); err != nil {
		c.deleteIcon()
		c.shell.ShowError(LaunchErrorTitle, c.process.CommandLine())
		c.err = err
		c.state = StateDestroyed
		c.shell.Quit()
	}
}

func (c *Controller) exit() {
	c.deleteIcon()
	c.process.Shutdown()
	c.state = StateDestroyed
	c.shell.Quit()
}

func (c *Controller) deleteIcon() {
	if c.state == StateHidden {
		return
	}
	if err := c.shell.DeleteIcon(); err != nil {
		c.logger.Debug().Err(err).Msg("Failed to delete tray icon")
	}
}
