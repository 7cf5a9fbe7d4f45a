package launcher

import (
	"fmt"
)

// checkedKiller consults exists before delegating, so a pid that is known
// to be gone is never handed to the platform killer. Only suitable where
// the tree does not outlive its root, as with taskkill /t.
type checkedKiller struct {
	exists func(pid int32) (bool, error)
	next   Killer
}

func (k checkedKiller) KillTree(pid uint32) error {
	// A lookup error still attempts the kill.
	if alive, err := k.exists(int32(pid)); err == nil && !alive {
		return fmt.Errorf("pid %d: %w", pid, ErrProcessGone)
	}
	return k.next.KillTree(pid)
}
