package pathutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goproxy/taskbar/internal/constants"
)

// ExecutableDir returns the directory of the running executable.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// PinWorkingDirectory changes into dir and exports it as CWD, so relative
// paths in the child's command line resolve next to the launcher no matter
// how it was started.
func PinWorkingDirectory(dir string) error {
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("failed to change directory to %s: %w", dir, err)
	}
	if err := os.Setenv(constants.EnvCWD, dir); err != nil {
		return fmt.Errorf("failed to set %s: %w", constants.EnvCWD, err)
	}
	return nil
}

// RemoveUpdateLeftovers deletes the ~*.tmp files an interrupted update may
// leave in dir. Files that cannot be removed (typically still in use) are
// skipped. It returns the names it removed.
func RemoveUpdateLeftovers(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, constants.UpdateLeftoverGlob))
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, path := range matches {
		info, err := os.Lstat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if err := os.Remove(path); err != nil {
			continue
		}
		removed = append(removed, filepath.Base(path))
	}
	return removed, nil
}
