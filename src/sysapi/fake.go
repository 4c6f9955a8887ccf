package sysapi

import "fmt"

// Fake is an in-memory System implementation for unit tests.
type Fake struct {
	StartTypes map[string]string // service name -> start type token
	Running    map[string]bool
	QueryErrs  map[string]bool // services whose queries fail
	ConfigErrs map[string]bool // services whose SetServiceStartType fails

	Stopped []string // services stopped, in call order
	Started []string // services started, in call order

	Schemes      []PowerScheme
	ActiveScheme string
	SetSchemeErr error

	Startup    map[string]string
	StartupErr error

	Background    *uint32
	BackgroundErr error

	Killed  []string
	KillErr error
}

var _ System = (*Fake)(nil)

func NewFake() *Fake {
	return &Fake{
		StartTypes: map[string]string{},
		Running:    map[string]bool{},
		QueryErrs:  map[string]bool{},
		ConfigErrs: map[string]bool{},
		Startup:    map[string]string{},
	}
}

func (f *Fake) ServiceStartType(name string) (string, error) {
	if f.QueryErrs[name] {
		return "", fmt.Errorf("query %s: access denied", name)
	}
	st, ok := f.StartTypes[name]
	if !ok {
		return "", fmt.Errorf("service %s not found", name)
	}
	return st, nil
}

func (f *Fake) ServiceRunning(name string) (bool, error) {
	if f.QueryErrs[name] {
		return false, fmt.Errorf("query %s: access denied", name)
	}
	if _, ok := f.StartTypes[name]; !ok {
		return false, fmt.Errorf("service %s not found", name)
	}
	return f.Running[name], nil
}

func (f *Fake) SetServiceStartType(name, startType string) error {
	if f.ConfigErrs[name] {
		return fmt.Errorf("config %s: access denied", name)
	}
	f.StartTypes[name] = startType
	return nil
}

func (f *Fake) StopService(name string) error {
	f.Running[name] = false
	f.Stopped = append(f.Stopped, name)
	return nil
}

func (f *Fake) StartService(name string) error {
	f.Running[name] = true
	f.Started = append(f.Started, name)
	return nil
}

func (f *Fake) ActivePowerScheme() (string, error) {
	if f.ActiveScheme == "" {
		return "", fmt.Errorf("no active power scheme")
	}
	return f.ActiveScheme, nil
}

func (f *Fake) PowerSchemes() ([]PowerScheme, error) {
	return f.Schemes, nil
}

func (f *Fake) SetActivePowerScheme(guid string) error {
	if f.SetSchemeErr != nil {
		return f.SetSchemeErr
	}
	f.ActiveScheme = guid
	return nil
}

func (f *Fake) StartupEntry(name string) (string, bool, error) {
	if f.StartupErr != nil {
		return "", false, f.StartupErr
	}
	v, ok := f.Startup[name]
	return v, ok, nil
}

func (f *Fake) SetStartupEntry(name, value string) error {
	if f.StartupErr != nil {
		return f.StartupErr
	}
	f.Startup[name] = value
	return nil
}

func (f *Fake) DeleteStartupEntry(name string) error {
	if f.StartupErr != nil {
		return f.StartupErr
	}
	delete(f.Startup, name)
	return nil
}

func (f *Fake) BackgroundAppsFlag() (uint32, bool, error) {
	if f.BackgroundErr != nil {
		return 0, false, f.BackgroundErr
	}
	if f.Background == nil {
		return 0, false, nil
	}
	return *f.Background, true, nil
}

func (f *Fake) SetBackgroundAppsFlag(value uint32) error {
	if f.BackgroundErr != nil {
		return f.BackgroundErr
	}
	v := value
	f.Background = &v
	return nil
}

func (f *Fake) DeleteBackgroundAppsFlag() error {
	if f.BackgroundErr != nil {
		return f.BackgroundErr
	}
	f.Background = nil
	return nil
}

func (f *Fake) KillProcess(imageName string) error {
	if f.KillErr != nil {
		return f.KillErr
	}
	f.Killed = append(f.Killed, imageName)
	return nil
}
