// Package performance implements the Performance profile: disable the
// configured startup registration, turn off background apps, and stop the
// configured process, all with the prior state captured in a manifest.
package performance

import (
	"fmt"
	"sync"
	"time"

	"opti2025/src/config"
	"opti2025/src/profile"
	"opti2025/src/session"
	"opti2025/src/sysapi"
)

// Result summarizes one apply or restore call. Each boolean reports whether
// the corresponding step succeeded during that call — on apply the mutation,
// on restore the inversion.
type Result struct {
	StartupEntry   bool     `json:"startupEntry"`
	BackgroundApps bool     `json:"backgroundApps"`
	ProcessStopped bool     `json:"processStopped"`
	Backup         string   `json:"backupDir,omitempty"`
	Errors         []string `json:"errors,omitempty"`
}

func (r Result) BackupDir() string { return r.Backup }

func (r Result) Failures() []string { return r.Errors }

func (r Result) Lines() []string {
	return []string{
		fmt.Sprintf("startup entry: %t", r.StartupEntry),
		fmt.Sprintf("background apps: %t", r.BackgroundApps),
		fmt.Sprintf("process stopped: %t", r.ProcessStopped),
	}
}

// Engine applies and restores the Performance profile.
type Engine struct {
	// mu makes the per-profile no-concurrent-calls precondition explicit.
	mu    sync.Mutex
	cfg   config.Config
	store *session.Store
	sys   sysapi.System
	now   func() time.Time
}

var _ profile.Runner = (*Engine)(nil)

func New(cfg config.Config, store *session.Store, sys sysapi.System) *Engine {
	return &Engine{cfg: cfg, store: store, sys: sys, now: time.Now}
}

func (e *Engine) Name() string { return "performance" }

func (e *Engine) Targets() []string {
	return []string{
		"startup entry " + e.cfg.StartupEntry,
		"background apps flag",
		"process " + e.cfg.ProcessName,
	}
}

// Apply captures and mutates each target, then writes the manifest covering
// every target attempted, whether or not its mutation succeeded.
func (e *Engine) Apply() profile.Report {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cfg.Platform != "windows" {
		return Result{Errors: []string{"the performance profile is only available on Windows"}}
	}

	var res Result
	sessionDir, err := e.store.Create(e.cfg.PerformanceRoot(), e.now())
	if err != nil {
		return Result{Errors: []string{fmt.Sprintf("create backup session: %v", err)}}
	}
	res.Backup = sessionDir

	disabled, startupPrev, errs := DisableStartup(e.sys, e.cfg.StartupEntry)
	res.StartupEntry = disabled
	res.Errors = append(res.Errors, errs...)

	var bgPrev *uint32
	flag, hadFlag, err := e.sys.BackgroundAppsFlag()
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("cannot reduce background apps: %v", err))
	} else {
		if hadFlag {
			v := flag
			bgPrev = &v
		}
		if err := e.sys.SetBackgroundAppsFlag(1); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("cannot reduce background apps: %v", err))
		} else {
			res.BackgroundApps = true
		}
	}

	stopped, errs := StopProcess(e.sys, e.cfg.ProcessName)
	res.ProcessStopped = stopped
	res.Errors = append(res.Errors, errs...)

	manifest := map[string]any{
		"startup_run_value":   startupPrev,
		"background_previous": bgPrev,
	}
	if err := e.store.WriteManifest(sessionDir, manifest); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("write manifest: %v", err))
	}
	return res
}

// Restore inverts the latest session's captured state. Every inversion is
// attempted; failures accumulate instead of aborting.
func (e *Engine) Restore() profile.Report {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cfg.Platform != "windows" {
		return Result{Errors: []string{"the performance profile is only available on Windows"}}
	}

	latest, ok := e.store.Latest(e.cfg.PerformanceRoot())
	if !ok {
		return Result{Errors: []string{"no backup available"}}
	}
	manifest, err := e.store.ReadManifest(latest)
	if err != nil {
		return Result{Backup: latest, Errors: []string{fmt.Sprintf("read manifest: %v", err)}}
	}
	if len(manifest) == 0 {
		return Result{Backup: latest, Errors: []string{"backup manifest not found"}}
	}

	res := Result{Backup: latest}

	if err := RestoreStartup(e.sys, e.cfg.StartupEntry, profile.StringField(manifest, "startup_run_value")); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("cannot restore startup entry %s: %v", e.cfg.StartupEntry, err))
	} else {
		res.StartupEntry = true
	}

	if err := restoreBackground(e.sys, profile.UintField(manifest, "background_previous")); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("cannot restore background apps: %v", err))
	} else {
		res.BackgroundApps = true
	}
	return res
}

// DisableStartup captures and removes the named Run-key entry. The returned
// previous value is nil when the entry did not exist; it is returned even
// when the delete fails so the manifest still records the capture.
func DisableStartup(sys sysapi.System, name string) (bool, *string, []string) {
	value, ok, err := sys.StartupEntry(name)
	if err != nil {
		return false, nil, []string{fmt.Sprintf("cannot modify startup entry %s: %v", name, err)}
	}
	if !ok {
		return false, nil, nil
	}
	prev := value
	if err := sys.DeleteStartupEntry(name); err != nil {
		return false, &prev, []string{fmt.Sprintf("cannot modify startup entry %s: %v", name, err)}
	}
	return true, &prev, nil
}

// RestoreStartup writes back a captured Run-key value, deleting the entry
// when it was captured as absent rather than writing an empty string.
func RestoreStartup(sys sysapi.System, name string, prev *string) error {
	if prev == nil {
		return sys.DeleteStartupEntry(name)
	}
	return sys.SetStartupEntry(name, *prev)
}

// StopProcess kills the named image, best-effort: its failure never blocks
// the other steps.
func StopProcess(sys sysapi.System, image string) (bool, []string) {
	if err := sys.KillProcess(image); err != nil {
		return false, []string{fmt.Sprintf("cannot stop %s: %v", image, err)}
	}
	return true, nil
}

// restoreBackground puts the background-apps flag back, deleting the value
// when it was previously absent rather than explicitly zero.
func restoreBackground(sys sysapi.System, prev *uint32) error {
	if prev == nil {
		return sys.DeleteBackgroundAppsFlag()
	}
	return sys.SetBackgroundAppsFlag(*prev)
}
