// Package constants holds fixed timings, sizes and identifiers shared by the
// launcher packages.
package constants

import (
	"time"
)

// Process control
const (
	// ReloadSettleDelay - pause between terminating the old child and launching
	// the new one, so the OS finishes tearing down the process tree.
	ReloadSettleDelay = 200 * time.Millisecond

	// TaskKillExe - platform task-termination utility used for tree kills.
	TaskKillExe = "taskkill"
)

// Console
const (
	// ConsoleMinBufferLines - minimum scrollback height of the stderr screen buffer.
	ConsoleMinBufferLines = 2048

	// ReloadSpacer is written to the console before and after terminating the
	// child, so the previous session's tail stays readable.
	ReloadSpacer = "\n\n"
)

// Tray
const (
	// WindowClass is the class name of the hidden host window.
	WindowClass = "taskbar"

	// IconUID identifies our notify icon to the shell.
	IconUID = 123

	// BalloonTimeout - how long the info balloon stays up.
	BalloonTimeout = 3 * time.Second

	// MaxProxyCandidates caps the proxy list, including the leading direct entry.
	MaxProxyCandidates = 8
)

// Locale
const (
	// LocaleZhCN is the LCID for which the menu renders in Simplified Chinese.
	LocaleZhCN = 2052
)

// Proxy
const (
	// ProxyBypassList is written with every proxy change, direct included.
	ProxyBypassList = "<local>"

	// InternetSettingsKey is the HKCU key holding the per-user proxy configuration.
	InternetSettingsKey = `Software\Microsoft\Windows\CurrentVersion\Internet Settings`
)

// Environment overrides
const (
	EnvTitle   = "TASKBAR_TITLE"
	EnvTooltip = "TASKBAR_TOOLTIP"
	EnvBalloon = "TASKBAR_BALLOON"
	EnvVisible = "TASKBAR_VISIBLE"

	// EnvCWD is exported with the executable directory at startup.
	EnvCWD = "CWD"
)

// UpdateLeftoverGlob matches temporary files left behind by interrupted updates.
const UpdateLeftoverGlob = "~*.tmp"
