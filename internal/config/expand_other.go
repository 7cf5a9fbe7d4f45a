//go:build !windows

package config

// ExpandEnv expands %NAME% references against the process environment.
func ExpandEnv(s string) string {
	return ExpandPercent(s, lookupEnv)
}
