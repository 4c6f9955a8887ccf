package sysapi

import (
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Real implements System against the local machine through sc.exe, powercfg,
// taskkill, and the registry. The registry-backed methods live in the
// platform-specific files.
type Real struct{}

var _ System = (*Real)(nil)

func NewReal() *Real { return &Real{} }

func run(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		slog.Debug("command failed",
			"cmd", name, "args", strings.Join(args, " "), "err", err)
		return string(out), fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return string(out), nil
}

func (r *Real) ServiceStartType(name string) (string, error) {
	out, err := run("sc.exe", "qc", name)
	if err != nil {
		return "", err
	}
	st, ok := parseStartType(out)
	if !ok {
		return "", fmt.Errorf("sc.exe qc %s: no START_TYPE in output", name)
	}
	return st, nil
}

func (r *Real) ServiceRunning(name string) (bool, error) {
	out, err := run("sc.exe", "query", name)
	if err != nil {
		return false, err
	}
	running, ok := parseServiceState(out)
	if !ok {
		return false, fmt.Errorf("sc.exe query %s: no STATE in output", name)
	}
	return running, nil
}

func (r *Real) SetServiceStartType(name, startType string) error {
	_, err := run("sc.exe", "config", name, "start="+startType)
	return err
}

func (r *Real) StopService(name string) error {
	_, err := run("sc.exe", "stop", name)
	return err
}

func (r *Real) StartService(name string) error {
	_, err := run("sc.exe", "start", name)
	return err
}

func (r *Real) ActivePowerScheme() (string, error) {
	out, err := run("powercfg", "/getactivescheme")
	if err != nil {
		return "", err
	}
	guid, ok := parseActiveScheme(out)
	if !ok {
		return "", fmt.Errorf("powercfg /getactivescheme: no GUID in output")
	}
	return guid, nil
}

func (r *Real) PowerSchemes() ([]PowerScheme, error) {
	out, err := run("powercfg", "/list")
	if err != nil {
		return nil, err
	}
	return parseSchemeList(out), nil
}

func (r *Real) SetActivePowerScheme(guid string) error {
	_, err := run("powercfg", "/setactive", guid)
	return err
}

func (r *Real) KillProcess(imageName string) error {
	_, err := run("taskkill", "/IM", imageName, "/F")
	return err
}
