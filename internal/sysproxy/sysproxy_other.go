//go:build !windows

package sysproxy

// unsupported is the accessor for platforms without WinINet. Reads report no
// proxy; writes fail with ErrUnsupported.
type unsupported struct{}

// New returns the platform accessor.
func New() Accessor {
	return unsupported{}
}

func (unsupported) Current() (string, error) { return "", nil }

func (unsupported) Set(value, connection string) error { return ErrUnsupported }
