// Package cleanup implements the temporary-file sweep profile: every entry
// of each configured temp directory is moved into a timestamped session so
// the sweep can be undone file by file.
package cleanup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"opti2025/src/config"
	"opti2025/src/profile"
	"opti2025/src/session"
)

// Result summarizes one apply or restore call. It is constructed once per
// call and never mutated after return.
type Result struct {
	Scanned int      `json:"scanned"`
	Moved   int      `json:"moved"`
	Failed  int      `json:"failed"`
	Skipped int      `json:"skipped"`
	Backup  string   `json:"backupDir,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func (r Result) BackupDir() string { return r.Backup }

func (r Result) Failures() []string { return r.Errors }

func (r Result) Lines() []string {
	return []string{
		fmt.Sprintf("scanned: %d", r.Scanned),
		fmt.Sprintf("moved: %d", r.Moved),
		fmt.Sprintf("failed: %d", r.Failed),
		fmt.Sprintf("skipped: %d", r.Skipped),
	}
}

// Engine applies and restores the Cleanup profile.
type Engine struct {
	// mu makes the per-profile no-concurrent-calls precondition explicit.
	mu    sync.Mutex
	cfg   config.Config
	store *session.Store
	now   func() time.Time
}

var _ profile.Runner = (*Engine)(nil)

func New(cfg config.Config, store *session.Store) *Engine {
	return &Engine{cfg: cfg, store: store, now: time.Now}
}

func (e *Engine) Name() string { return "cleanup" }

func (e *Engine) Targets() []string {
	return append([]string(nil), e.cfg.TempDirs...)
}

// subdirName collapses a directory path into a single joinable name, e.g.
// C:\Windows\Temp becomes C_Windows_Temp. The manifest maps this name back
// to the original absolute path.
func subdirName(dir string) string {
	parts := strings.FieldsFunc(dir, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	kept := parts[:0]
	for _, p := range parts {
		p = strings.ReplaceAll(p, ":", "")
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "_")
}

// writable reports whether entries can be moved out of dir. Renaming an
// entry away needs write access on the directory itself, so a short-lived
// marker file is created and removed to verify it up front.
func writable(dir string) error {
	f, err := os.CreateTemp(dir, ".opti2025-")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

// Apply moves every entry of each existing, accessible temp directory into a
// new session, then persists the name-to-origin manifest when anything was
// moved or failed. A target that cannot be listed or written is skipped with
// an access error before any of its entries are touched; per-entry failures
// never abort sibling entries.
func (e *Engine) Apply() profile.Report {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cfg.Platform != "windows" {
		return Result{Errors: []string{"the cleanup profile is only available on Windows"}}
	}

	var res Result
	sessionDir := e.store.SessionDir(e.cfg.CleanupRoot(), e.now())
	mapping := map[string]string{}

	for _, dir := range e.cfg.TempDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			res.Skipped++
			switch {
			case errors.Is(err, os.ErrNotExist):
			case errors.Is(err, os.ErrPermission):
				res.Errors = append(res.Errors, fmt.Sprintf("access denied: %s: %v", dir, err))
			default:
				res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", dir, err))
			}
			continue
		}
		if err := writable(dir); err != nil {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Sprintf("access denied: %s: %v", dir, err))
			continue
		}
		name := subdirName(dir)
		destRoot := filepath.Join(sessionDir, name)
		if err := os.MkdirAll(destRoot, 0o755); err != nil {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", dir, err))
			continue
		}
		mapping[name] = dir
		for _, entry := range entries {
			res.Scanned++
			src := filepath.Join(dir, entry.Name())
			if err := os.Rename(src, filepath.Join(destRoot, entry.Name())); err != nil {
				res.Failed++
				res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", src, err))
				continue
			}
			res.Moved++
		}
	}

	if res.Moved == 0 && res.Failed == 0 {
		// Nothing happened; drop the directories created for targets that
		// turned out to be empty.
		_ = os.RemoveAll(sessionDir)
		return res
	}
	res.Backup = sessionDir
	if err := e.store.WriteManifest(sessionDir, mapping); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("write manifest: %v", err))
	}
	return res
}

// Restore moves every entry of the latest session back to its recorded
// origin, recreating origin directories as needed. An absent or empty
// manifest yields a "nothing to restore" result rather than a failure.
func (e *Engine) Restore() profile.Report {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cfg.Platform != "windows" {
		return Result{Errors: []string{"the cleanup profile is only available on Windows"}}
	}

	latest, ok := e.store.Latest(e.cfg.CleanupRoot())
	if !ok {
		return Result{Skipped: 1, Errors: []string{"no backup available"}}
	}
	manifest, err := e.store.ReadManifest(latest)
	if err != nil {
		return Result{Skipped: 1, Errors: []string{fmt.Sprintf("read manifest: %v", err)}}
	}
	if len(manifest) == 0 {
		return Result{Skipped: 1, Errors: []string{"backup manifest not found"}}
	}

	res := Result{Backup: latest}
	names := make([]string, 0, len(manifest))
	for name := range manifest {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		dest := profile.StringField(manifest, name)
		if dest == nil {
			res.Skipped++
			continue
		}
		srcRoot := filepath.Join(latest, name)
		entries, err := os.ReadDir(srcRoot)
		if err != nil {
			res.Skipped++
			continue
		}
		if err := os.MkdirAll(*dest, 0o755); err != nil {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Sprintf("cannot recreate %s: %v", *dest, err))
			continue
		}
		for _, entry := range entries {
			res.Scanned++
			src := filepath.Join(srcRoot, entry.Name())
			if err := os.Rename(src, filepath.Join(*dest, entry.Name())); err != nil {
				res.Failed++
				res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", src, err))
				continue
			}
			res.Moved++
		}
	}
	return res
}
