package config

import (
	"os"
	"strings"

	"github.com/goproxy/taskbar/internal/constants"
	"github.com/goproxy/taskbar/internal/logging"
)

// Assignment is a single KEY=VALUE environment entry.
type Assignment struct {
	Key   string
	Value string
}

// LaunchConfig is the immutable launcher configuration built once at startup.
type LaunchConfig struct {
	// CommandLine is executed as the child process.
	CommandLine string

	// Environment was applied to the process environment before the
	// overrides were read, in order.
	Environment []Assignment

	// ProxyCandidates always starts with "" (direct connection).
	ProxyCandidates []string

	// Title is used for the console, the host window and the balloon title.
	Title string

	// Tooltip and Balloon are shown when no proxy is active.
	Tooltip string
	Balloon string

	// ConsoleVisible is false when TASKBAR_VISIBLE starts with "0".
	ConsoleVisible bool

	// ProfilePaths are phonebook files, still holding %VAR% placeholders.
	ProfilePaths []string
}

// Environment is the process environment as seen by Load.
type Environment interface {
	LookupEnv(key string) (string, bool)
	Setenv(key, value string) error
}

// OSEnvironment is the real process environment.
type OSEnvironment struct{}

// LookupEnv implements Environment.
func (OSEnvironment) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }

// Setenv implements Environment.
func (OSEnvironment) Setenv(key, value string) error { return os.Setenv(key, value) }

func lookupEnv(key string) (string, bool) { return os.LookupEnv(key) }

// Load builds the LaunchConfig from resources and env.
//
// The environment assignments are applied first so resources may set the
// TASKBAR_* overrides themselves. expand resolves %VAR% references in the
// proxy list; pass nil to use ExpandEnv.
func Load(res Resources, env Environment, expand func(string) string, logger *logging.Logger) *LaunchConfig {
	if logger == nil {
		logger = logging.Nop()
	}
	if expand == nil {
		expand = ExpandEnv
	}

	cfg := &LaunchConfig{
		CommandLine: strings.TrimSpace(res.CommandLine),
	}

	for _, a := range ParseAssignments(res.Environment) {
		if err := env.Setenv(a.Key, a.Value); err != nil {
			logger.Warn().Err(err).Str("key", a.Key).Msg("Failed to set environment variable")
			continue
		}
		cfg.Environment = append(cfg.Environment, a)
	}

	cfg.Title = getenv(env, constants.EnvTitle)
	cfg.Tooltip = getenv(env, constants.EnvTooltip)
	cfg.Balloon = getenv(env, constants.EnvBalloon)
	cfg.ConsoleVisible = !strings.HasPrefix(getenv(env, constants.EnvVisible), "0")

	cfg.ProxyCandidates = ParseProxyList(res.ProxyList, expand)
	if dropped := countLines(expand(res.ProxyList)) + 1 - len(cfg.ProxyCandidates); dropped > 0 {
		logger.Warn().Int("dropped", dropped).Int("max", constants.MaxProxyCandidates).
			Msg("Proxy list too long, extra entries ignored")
	}
	cfg.ProfilePaths = ParseProfilePaths(res.ProfilePaths)

	return cfg
}

// ParseAssignments splits newline-separated KEY=VALUE lines.
// Lines without '=' or with an empty key are skipped; the value may itself
// contain '='.
func ParseAssignments(s string) []Assignment {
	var out []Assignment
	for _, line := range splitLines(s) {
		key, value, ok := strings.Cut(line, "=")
		if !ok || key == "" {
			continue
		}
		out = append(out, Assignment{Key: key, Value: value})
	}
	return out
}

func getenv(env Environment, key string) string {
	v, _ := env.LookupEnv(key)
	return v
}
