// Package session owns the on-disk backup layout: one timestamp-named
// directory per apply invocation under a profile-specific root, each holding
// a manifest.json describing the pre-mutation state that was captured.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// ManifestName is the manifest file inside each session directory.
const ManifestName = "manifest.json"

// TimestampFormat names session directories so that descending lexicographic
// order is descending creation order; "latest" never needs an index file.
const TimestampFormat = "20060102_150405"

// Store persists and retrieves session manifests. It exclusively owns the
// session directory layout.
type Store struct{}

func New() *Store { return &Store{} }

// SessionDir returns the directory a session created at now would use,
// without creating anything.
func (s *Store) SessionDir(profileRoot string, now time.Time) string {
	return filepath.Join(profileRoot, now.Format(TimestampFormat))
}

// Create builds profileRoot/<timestamp>. It refuses to reuse an existing
// directory: two sessions for one profile never share one.
func (s *Store) Create(profileRoot string, now time.Time) (string, error) {
	dir := s.SessionDir(profileRoot, now)
	if _, err := os.Stat(dir); err == nil {
		return "", fmt.Errorf("session directory already exists: %s", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create session %s: %w", dir, err)
	}
	return dir, nil
}

// WriteManifest serializes v as the session's manifest, overwriting any
// previous one.
func (s *Store) WriteManifest(sessionDir string, v any) error {
	f, err := os.Create(filepath.Join(sessionDir, ManifestName))
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ReadManifest returns the session's manifest as a generic mapping. A
// missing manifest file yields an empty map: "nothing to restore" is not an
// error. Field-level type tolerance is the callers' concern.
func (s *Store) ReadManifest(sessionDir string) (map[string]any, error) {
	data, err := os.ReadFile(filepath.Join(sessionDir, ManifestName))
	if errors.Is(err, os.ErrNotExist) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest in %s: %w", sessionDir, err)
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

// Latest returns the newest session directory under profileRoot. ok is
// false when the root is absent or holds no sessions.
func (s *Store) Latest(profileRoot string) (string, bool) {
	names := sessionNames(profileRoot)
	if len(names) == 0 {
		return "", false
	}
	return filepath.Join(profileRoot, names[0]), true
}

// Entry describes one session in listings.
type Entry struct {
	Profile   string `json:"profile"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
}

// List enumerates the sessions under each named profile root, profiles in
// name order, sessions newest first. Roots that do not exist yet are empty.
func (s *Store) List(roots map[string]string) []Entry {
	profiles := make([]string, 0, len(roots))
	for p := range roots {
		profiles = append(profiles, p)
	}
	sort.Strings(profiles)

	var out []Entry
	for _, p := range profiles {
		for _, name := range sessionNames(roots[p]) {
			out = append(out, Entry{
				Profile:   p,
				Timestamp: name,
				Path:      filepath.Join(roots[p], name),
			})
		}
	}
	return out
}

// sessionNames lists the immediate subdirectories of root, newest first.
func sessionNames(root string) []string {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names
}
