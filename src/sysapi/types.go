// Package sysapi is the boundary between the profile engines and the
// operating system: services, power schemes, startup registrations, the
// background-apps flag, and process termination. The engines depend only on
// the System interface; Real shells out to the Windows utilities and the
// registry, and Fake backs the unit tests.
package sysapi

import (
	"errors"
	"strings"
)

// ErrUnsupported is returned by Real adapters on platforms without the
// underlying facility.
var ErrUnsupported = errors.New("not supported on this platform")

// PowerScheme is one entry from the system power-scheme listing.
type PowerScheme struct {
	GUID string
	Name string
}

// Normalized service start modes accepted by SetServiceStartType.
const (
	StartAuto     = "auto"
	StartDemand   = "demand"
	StartDisabled = "disabled"
)

// System is a narrow interface over the OS facilities the profiles mutate.
// Keep it small and focused on what we actually need so it stays mockable.
type System interface {
	// Services
	ServiceStartType(name string) (string, error)
	ServiceRunning(name string) (bool, error)
	SetServiceStartType(name, startType string) error
	StopService(name string) error
	StartService(name string) error

	// Power schemes
	ActivePowerScheme() (string, error)
	PowerSchemes() ([]PowerScheme, error)
	SetActivePowerScheme(guid string) error

	// Startup registrations (per-user Run key)
	StartupEntry(name string) (value string, ok bool, err error)
	SetStartupEntry(name, value string) error
	DeleteStartupEntry(name string) error

	// Background-apps flag (per-user BackgroundAccessApplications value)
	BackgroundAppsFlag() (value uint32, ok bool, err error)
	SetBackgroundAppsFlag(value uint32) error
	DeleteBackgroundAppsFlag() error

	// Processes
	KillProcess(imageName string) error
}

// NormalizeStartType maps service-control START_TYPE tokens to the
// normalized constants used in manifests and SetServiceStartType.
func NormalizeStartType(raw string) string {
	switch strings.ToUpper(raw) {
	case "AUTO_START", "AUTO":
		return StartAuto
	case "DEMAND_START", "DEMAND":
		return StartDemand
	case "DISABLED":
		return StartDisabled
	}
	return strings.ToLower(raw)
}
