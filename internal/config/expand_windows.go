//go:build windows

package config

import (
	"golang.org/x/sys/windows/registry"
)

// ExpandEnv expands %NAME% references against the process environment using
// ExpandEnvironmentStrings.
func ExpandEnv(s string) string {
	expanded, err := registry.ExpandString(s)
	if err != nil {
		return ExpandPercent(s, lookupEnv)
	}
	return expanded
}
