// Package sysproxy reads and writes the per-user system HTTP proxy and
// propagates it into remote-access connection profiles.
package sysproxy

import (
	"errors"
	"strings"

	"github.com/goproxy/taskbar/internal/constants"
)

// ErrUnsupported is returned by accessors on platforms without WinINet.
var ErrUnsupported = errors.New("system proxy configuration is only supported on Windows")

// Mode is the proxy configuration mode selected for a value.
type Mode int

const (
	// ModeDirect disables proxying.
	ModeDirect Mode = iota
	// ModeAutoConfig points the system at a PAC script URL.
	ModeAutoConfig
	// ModeFixed uses a literal host:port proxy server.
	ModeFixed
)

func (m Mode) String() string {
	switch m {
	case ModeDirect:
		return "direct"
	case ModeAutoConfig:
		return "auto-config"
	case ModeFixed:
		return "fixed"
	default:
		return "unknown"
	}
}

// Classify selects the mode purely from the syntax of value.
func Classify(value string) Mode {
	switch {
	case value == "":
		return ModeDirect
	case strings.Contains(value, "://"):
		return ModeAutoConfig
	default:
		return ModeFixed
	}
}

// Accessor reads and writes the system proxy.
type Accessor interface {
	// Current returns the active auto-config URL, else the enabled proxy
	// server, else "".
	Current() (string, error)

	// Set applies value to connection ("" is the LAN / default connection)
	// and notifies the networking stack.
	Set(value, connection string) error
}

// Option IDs, matching INTERNET_PER_CONN_* in wininet.h.
const (
	OptionFlags         = 1
	OptionProxyServer   = 2
	OptionProxyBypass   = 3
	OptionAutoConfigURL = 4
)

// Flag bits for OptionFlags, matching PROXY_TYPE_* in wininet.h.
const (
	FlagDirect       = 0x00000001
	FlagProxy        = 0x00000002
	FlagAutoProxyURL = 0x00000004
)

// Option is one per-connection setting. Exactly one of Flags or Value is
// meaningful, depending on ID.
type Option struct {
	ID    uint32
	Flags uint32
	Value string
}

// Plan returns the per-connection options that configure value.
func Plan(value string) []Option {
	switch Classify(value) {
	case ModeAutoConfig:
		return []Option{
			{ID: OptionFlags, Flags: FlagDirect | FlagAutoProxyURL},
			{ID: OptionAutoConfigURL, Value: value},
			{ID: OptionProxyBypass, Value: constants.ProxyBypassList},
		}
	case ModeFixed:
		return []Option{
			{ID: OptionFlags, Flags: FlagDirect | FlagProxy},
			{ID: OptionProxyServer, Value: value},
			{ID: OptionProxyBypass, Value: constants.ProxyBypassList},
		}
	default:
		return []Option{
			{ID: OptionFlags, Flags: FlagDirect},
			{ID: OptionProxyBypass, Value: constants.ProxyBypassList},
		}
	}
}
