// Package pathutil resolves the launcher's own location and cleans up
// files left next to it.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath makes path absolute relative to the working directory,
// expanding a leading ~ and resolving symlinks or junctions when the path
// exists. A path that does not exist yet is returned cleaned but unresolved.
func ResolvePath(path string) (string, error) {
	if path == "" {
		return os.Getwd()
	}

	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	if resolved, err := filepath.EvalSymlinks(absPath); err == nil {
		return resolved, nil
	}
	return absPath, nil
}
