//go:build !windows

package sysapi

// The registry-backed capabilities have no non-Windows implementation. The
// profile engines short-circuit on non-Windows platforms before reaching
// these, so the stubs only keep Real compiling everywhere.

func (r *Real) StartupEntry(name string) (string, bool, error) {
	return "", false, ErrUnsupported
}

func (r *Real) SetStartupEntry(name, value string) error { return ErrUnsupported }

func (r *Real) DeleteStartupEntry(name string) error { return ErrUnsupported }

func (r *Real) BackgroundAppsFlag() (uint32, bool, error) {
	return 0, false, ErrUnsupported
}

func (r *Real) SetBackgroundAppsFlag(value uint32) error { return ErrUnsupported }

func (r *Real) DeleteBackgroundAppsFlag() error { return ErrUnsupported }
