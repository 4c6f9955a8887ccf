package cli

import (
	"fmt"

	"opti2025/src/config"
	"opti2025/src/profile"
	"opti2025/src/profile/cleanup"
	"opti2025/src/profile/maxperf"
	"opti2025/src/profile/performance"
	"opti2025/src/session"
	"opti2025/src/sysapi"
)

// profileNames is the accepted argument set, in help order.
const profileNames = "cleanup|performance|max-performance"

// runnerFor builds the named profile engine wired to the real system.
func runnerFor(name string, cfg config.Config) (profile.Runner, error) {
	store := session.New()
	switch name {
	case "cleanup":
		return cleanup.New(cfg, store), nil
	case "performance":
		return performance.New(cfg, store, sysapi.NewReal()), nil
	case "max-performance":
		return maxperf.New(cfg, store, sysapi.NewReal()), nil
	}
	return nil, fmt.Errorf("unknown profile %q (expected %s)", name, profileNames)
}
