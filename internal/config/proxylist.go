package config

import (
	"strings"

	"github.com/goproxy/taskbar/internal/constants"
)

// ParseProxyList turns the newline-separated proxy resource into the ordered
// candidate list. %VAR% references are expanded first. The direct-connection
// entry "" is always first, and the list is capped at
// constants.MaxProxyCandidates entries in total.
func ParseProxyList(s string, expand func(string) string) []string {
	if expand != nil {
		s = expand(s)
	}

	candidates := []string{""}
	for _, line := range splitLines(s) {
		if len(candidates) == constants.MaxProxyCandidates {
			break
		}
		candidates = append(candidates, line)
	}
	return candidates
}

// ParseProfilePaths splits the newline-separated phonebook list. Paths keep
// their %VAR% placeholders; they are expanded when the files are scanned.
func ParseProfilePaths(s string) []string {
	return splitLines(s)
}

// splitLines splits on '\n', strips a trailing '\r' and drops empty lines.
func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

func countLines(s string) int {
	return len(splitLines(s))
}
