// Package maxperf implements the MaxPerformance profile: disable a fixed
// set of background services, switch to the high-performance power scheme,
// and apply the same startup-entry and process steps as the Performance
// profile, all reversible from the session manifest.
package maxperf

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"opti2025/src/config"
	"opti2025/src/profile"
	"opti2025/src/profile/performance"
	"opti2025/src/session"
	"opti2025/src/sysapi"
)

// ServiceTargets are the services the profile disables, with display labels.
var ServiceTargets = map[string]string{
	"WSearch":   "Windows Search indexing",
	"SysMain":   "application prefetch (SysMain)",
	"DiagTrack": "diagnostics telemetry (DiagTrack)",
}

// indexingService is the service whose disabling counts as "indexing off".
const indexingService = "WSearch"

// highPerfLabels are the power-scheme labels powercfg reports for the
// high-performance plan, per supported locale.
var highPerfLabels = []string{"High performance", "Performances élevées"}

// Result summarizes one apply or restore call. Services lists the services
// whose start mode was changed by that call (disabled on apply, restored on
// restore); the booleans likewise report the success of each step within
// that call. IndexingOff is apply-only: it means the indexing service was
// actually disabled.
type Result struct {
	Services       []string `json:"services,omitempty"`
	IndexingOff    bool     `json:"indexingOff"`
	PowerScheme    bool     `json:"powerScheme"`
	StartupEntry   bool     `json:"startupEntry"`
	ProcessStopped bool     `json:"processStopped"`
	Backup         string   `json:"backupDir,omitempty"`
	Errors         []string `json:"errors,omitempty"`
}

func (r Result) BackupDir() string { return r.Backup }

func (r Result) Failures() []string { return r.Errors }

func (r Result) Lines() []string {
	return []string{
		fmt.Sprintf("services: %s", strings.Join(r.Services, ", ")),
		fmt.Sprintf("indexing off: %t", r.IndexingOff),
		fmt.Sprintf("power scheme: %t", r.PowerScheme),
		fmt.Sprintf("startup entry: %t", r.StartupEntry),
		fmt.Sprintf("process stopped: %t", r.ProcessStopped),
	}
}

// Engine applies and restores the MaxPerformance profile.
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

func (e *Engine) Name() string { return "max-performance" }

func (e *Engine) Targets() []string {
	targets := make([]string, 0, len(ServiceTargets)+3)
	for _, name := range serviceNames() {
		targets = append(targets, fmt.Sprintf("service %s (%s)", name, ServiceTargets[name]))
	}
	targets = append(targets,
		"power scheme",
		"startup entry "+e.cfg.StartupEntry,
		"process "+e.cfg.ProcessName,
	)
	return targets
}

func serviceNames() []string {
	names := make([]string, 0, len(ServiceTargets))
	for name := range ServiceTargets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply captures and disables each target service, activates the
// high-performance power scheme, and runs the startup-entry and process
// steps. A query failure skips that one service; everything else is still
// attempted, and the manifest records every captured target.
func (e *Engine) Apply() profile.Report {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cfg.Platform != "windows" {
		return Result{Errors: []string{"the max-performance profile is only available on Windows"}}
	}

	var res Result
	sessionDir, err := e.store.Create(e.cfg.MaxPerfRoot(), e.now())
	if err != nil {
		return Result{Errors: []string{fmt.Sprintf("create backup session: %v", err)}}
	}
	res.Backup = sessionDir

	serviceStates := map[string]any{}
	for _, name := range serviceNames() {
		startType, err := e.sys.ServiceStartType(name)
		var running bool
		if err == nil {
			running, err = e.sys.ServiceRunning(name)
		}
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("cannot read state of service %s: %v", name, err))
			continue
		}
		serviceStates[name] = map[string]any{
			"start_type":  startType,
			"was_running": running,
		}
		if running {
			// Best-effort: a stop failure still leaves the start mode
			// change worth attempting.
			_ = e.sys.StopService(name)
		}
		if err := e.sys.SetServiceStartType(name, sysapi.StartDisabled); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("cannot disable service %s: %v", name, err))
			continue
		}
		res.Services = append(res.Services, name)
		if name == indexingService {
			res.IndexingOff = true
		}
	}

	var prevScheme *string
	if guid, err := e.sys.ActivePowerScheme(); err == nil {
		prevScheme = &guid
	}
	if guid := e.findHighPerfScheme(); guid != "" {
		if err := e.sys.SetActivePowerScheme(guid); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("cannot activate the high performance power scheme: %v", err))
		} else {
			res.PowerScheme = true
		}
	} else {
		res.Errors = append(res.Errors, "high performance power scheme unavailable on this system")
	}

	disabled, startupPrev, errs := performance.DisableStartup(e.sys, e.cfg.StartupEntry)
	res.StartupEntry = disabled
	res.Errors = append(res.Errors, errs...)

	stopped, errs := performance.StopProcess(e.sys, e.cfg.ProcessName)
	res.ProcessStopped = stopped
	res.Errors = append(res.Errors, errs...)

	manifest := map[string]any{
		"services":          serviceStates,
		"power_scheme":      prevScheme,
		"startup_run_value": startupPrev,
	}
	if err := e.store.WriteManifest(sessionDir, manifest); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("write manifest: %v", err))
	}
	return res
}

// findHighPerfScheme scans the available power schemes for a label matching
// one of the supported locale variants.
func (e *Engine) findHighPerfScheme() string {
	schemes, err := e.sys.PowerSchemes()
	if err != nil {
		return ""
	}
	for _, s := range schemes {
		for _, label := range highPerfLabels {
			if strings.Contains(s.Name, label) {
				return s.GUID
			}
		}
	}
	return ""
}

// Restore inverts every recorded capture from the latest session: start
// modes back to their normalized previous values, previously running
// services restarted, the power scheme reactivated, and the startup entry
// put back. It never aborts early.
func (e *Engine) Restore() profile.Report {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cfg.Platform != "windows" {
		return Result{Errors: []string{"the max-performance profile is only available on Windows"}}
	}

	latest, ok := e.store.Latest(e.cfg.MaxPerfRoot())
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

	services := profile.MapField(manifest, "services")
	names := make([]string, 0, len(services))
	for name := range services {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		state, ok := services[name].(map[string]any)
		if !ok {
			continue
		}
		restored := false
		if st := profile.StringField(state, "start_type"); st != nil {
			if err := e.sys.SetServiceStartType(name, sysapi.NormalizeStartType(*st)); err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("cannot restore service %s: %v", name, err))
			} else {
				restored = true
			}
		}
		if wasRunning := profile.BoolField(state, "was_running"); wasRunning != nil && *wasRunning {
			if err := e.sys.StartService(name); err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("cannot restart service %s: %v", name, err))
			}
		}
		if restored {
			res.Services = append(res.Services, name)
		}
	}

	if scheme := profile.StringField(manifest, "power_scheme"); scheme != nil {
		if err := e.sys.SetActivePowerScheme(*scheme); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("cannot restore the power scheme: %v", err))
		} else {
			res.PowerScheme = true
		}
	}

	if err := performance.RestoreStartup(e.sys, e.cfg.StartupEntry, profile.StringField(manifest, "startup_run_value")); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("cannot restore startup entry %s: %v", e.cfg.StartupEntry, err))
	} else {
		res.StartupEntry = true
	}
	return res
}
