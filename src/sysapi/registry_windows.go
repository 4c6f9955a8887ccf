//go:build windows

package sysapi

import "golang.org/x/sys/windows/registry"

const (
	runKeyPath            = `Software\Microsoft\Windows\CurrentVersion\Run`
	backgroundAppsKeyPath = `Software\Microsoft\Windows\CurrentVersion\BackgroundAccessApplications`
	backgroundAppsValue   = "GlobalUserDisabled"
)

func (r *Real) StartupEntry(name string) (string, bool, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.QUERY_VALUE)
	if err != nil {
		if err == registry.ErrNotExist {
			return "", false, nil
		}
		return "", false, err
	}
	defer key.Close()
	val, _, err := key.GetStringValue(name)
	if err == registry.ErrNotExist {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *Real) SetStartupEntry(name, value string) error {
	key, _, err := registry.CreateKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer key.Close()
	return key.SetStringValue(name, value)
}

func (r *Real) DeleteStartupEntry(name string) error {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		if err == registry.ErrNotExist {
			return nil
		}
		return err
	}
	defer key.Close()
	if err := key.DeleteValue(name); err != nil && err != registry.ErrNotExist {
		return err
	}
	return nil
}

func (r *Real) BackgroundAppsFlag() (uint32, bool, error) {
	key, _, err := registry.CreateKey(registry.CURRENT_USER, backgroundAppsKeyPath, registry.QUERY_VALUE|registry.SET_VALUE)
	if err != nil {
		return 0, false, err
	}
	defer key.Close()
	val, _, err := key.GetIntegerValue(backgroundAppsValue)
	if err == registry.ErrNotExist {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return uint32(val), true, nil
}

func (r *Real) SetBackgroundAppsFlag(value uint32) error {
	key, _, err := registry.CreateKey(registry.CURRENT_USER, backgroundAppsKeyPath, registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer key.Close()
	return key.SetDWordValue(backgroundAppsValue, value)
}

func (r *Real) DeleteBackgroundAppsFlag() error {
	key, err := registry.OpenKey(registry.CURRENT_USER, backgroundAppsKeyPath, registry.SET_VALUE)
	if err != nil {
		if err == registry.ErrNotExist {
			return nil
		}
		return err
	}
	defer key.Close()
	if err := key.DeleteValue(backgroundAppsValue); err != nil && err != registry.ErrNotExist {
		return err
	}
	return nil
}
