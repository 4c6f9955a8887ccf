package cleanup

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opti2025/src/config"
	"opti2025/src/session"
)

func testConfig(t *testing.T, tempDirs ...string) config.Config {
	t.Helper()
	return config.Config{
		BackupRoot: t.TempDir(),
		TempDirs:   tempDirs,
		Platform:   "windows",
	}
}

func newTestEngine(cfg config.Config, ts time.Time) *Engine {
	e := New(cfg, session.New())
	e.now = func() time.Time { return ts }
	return e
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}
}

func TestApply(t *testing.T) {
	t.Run("moves every entry and writes the manifest", func(t *testing.T) {
		target := t.TempDir()
		writeFiles(t, target, "a.tmp", "b.tmp")
		cfg := testConfig(t, target)
		e := newTestEngine(cfg, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

		res := e.Apply().(Result)
		assert.Equal(t, 2, res.Scanned)
		assert.Equal(t, 2, res.Moved)
		assert.Equal(t, 0, res.Failed)
		assert.Equal(t, 0, res.Skipped)
		assert.Empty(t, res.Errors)
		require.NotEmpty(t, res.Backup)

		// Target emptied, entries parked under the derived subdir name.
		left, err := os.ReadDir(target)
		require.NoError(t, err)
		assert.Empty(t, left)
		moved, err := os.ReadDir(filepath.Join(res.Backup, subdirName(target)))
		require.NoError(t, err)
		assert.Len(t, moved, 2)

		manifest, err := session.New().ReadManifest(res.Backup)
		require.NoError(t, err)
		require.Len(t, manifest, 1)
		assert.Equal(t, target, manifest[subdirName(target)])
	})

	t.Run("nothing to do leaves no session behind", func(t *testing.T) {
		target := t.TempDir() // exists but empty
		cfg := testConfig(t, target)
		e := newTestEngine(cfg, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

		res := e.Apply().(Result)
		assert.Zero(t, res.Moved)
		assert.Zero(t, res.Failed)
		assert.Empty(t, res.Backup)

		_, ok := session.New().Latest(cfg.CleanupRoot())
		assert.False(t, ok, "empty sweep must not retain a session directory")
	})

	t.Run("unwritable target is skipped before touching entries", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("directory write bits are not enforced")
		}
		if os.Geteuid() == 0 {
			t.Skip("root bypasses directory permissions")
		}
		target := t.TempDir()
		writeFiles(t, target, "a.tmp")
		require.NoError(t, os.Chmod(target, 0o555))
		t.Cleanup(func() { _ = os.Chmod(target, 0o755) })
		cfg := testConfig(t, target)
		e := newTestEngine(cfg, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

		res := e.Apply().(Result)
		assert.Zero(t, res.Scanned)
		assert.Zero(t, res.Failed)
		assert.Equal(t, 1, res.Skipped)
		assert.Empty(t, res.Backup)
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0], "access denied")

		// The entry stays where it was and no session is retained.
		_, err := os.Stat(filepath.Join(target, "a.tmp"))
		assert.NoError(t, err)
		_, ok := session.New().Latest(cfg.CleanupRoot())
		assert.False(t, ok)
	})

	t.Run("target that is a regular file is not an access error", func(t *testing.T) {
		base := t.TempDir()
		target := filepath.Join(base, "notadir")
		require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))
		cfg := testConfig(t, target)
		e := newTestEngine(cfg, time.Now())

		res := e.Apply().(Result)
		assert.Equal(t, 1, res.Skipped)
		require.Len(t, res.Errors, 1)
		assert.NotContains(t, res.Errors[0], "access denied")
		assert.Contains(t, res.Errors[0], target)
	})

	t.Run("missing target is skipped silently", func(t *testing.T) {
		cfg := testConfig(t, filepath.Join(t.TempDir(), "gone"))
		e := newTestEngine(cfg, time.Now())

		res := e.Apply().(Result)
		assert.Equal(t, 1, res.Skipped)
		assert.Empty(t, res.Errors)
	})

	t.Run("platform guard", func(t *testing.T) {
		cfg := testConfig(t, t.TempDir())
		cfg.Platform = "linux"
		e := newTestEngine(cfg, time.Now())

		res := e.Apply().(Result)
		assert.Zero(t, res.Scanned)
		assert.Empty(t, res.Backup)
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0], "only available on Windows")
	})
}

func TestRestore(t *testing.T) {
	t.Run("round trip puts everything back", func(t *testing.T) {
		target := t.TempDir()
		writeFiles(t, target, "a.tmp", "b.tmp")
		cfg := testConfig(t, target)
		e := newTestEngine(cfg, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

		applied := e.Apply().(Result)
		require.Equal(t, 2, applied.Moved)

		restored := e.Restore().(Result)
		assert.Equal(t, 2, restored.Scanned)
		assert.Equal(t, applied.Moved, restored.Moved)
		assert.Equal(t, 0, restored.Failed)
		assert.Equal(t, applied.Backup, restored.Backup)

		entries, err := os.ReadDir(target)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("recreates a deleted origin directory", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "sub", "temp")
		require.NoError(t, os.MkdirAll(target, 0o755))
		writeFiles(t, target, "a.tmp")
		cfg := testConfig(t, target)
		e := newTestEngine(cfg, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

		require.Equal(t, 1, e.Apply().(Result).Moved)
		require.NoError(t, os.RemoveAll(target))

		res := e.Restore().(Result)
		assert.Equal(t, 1, res.Moved)
		_, err := os.Stat(filepath.Join(target, "a.tmp"))
		assert.NoError(t, err)
	})

	t.Run("no sessions means nothing to restore", func(t *testing.T) {
		cfg := testConfig(t, t.TempDir())
		e := newTestEngine(cfg, time.Now())

		res := e.Restore().(Result)
		assert.Zero(t, res.Moved)
		assert.Equal(t, 1, res.Skipped)
		require.Len(t, res.Errors, 1)
	})

	t.Run("session without manifest means nothing to restore", func(t *testing.T) {
		cfg := testConfig(t, t.TempDir())
		_, err := session.New().Create(cfg.CleanupRoot(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		e := newTestEngine(cfg, time.Now())

		res := e.Restore().(Result)
		assert.Zero(t, res.Moved)
		assert.Equal(t, 1, res.Skipped)
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0], "manifest")
	})

	t.Run("restores from the newest session only", func(t *testing.T) {
		target := t.TempDir()
		cfg := testConfig(t, target)

		writeFiles(t, target, "old.tmp")
		first := newTestEngine(cfg, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		require.Equal(t, 1, first.Apply().(Result).Moved)

		writeFiles(t, target, "new.tmp")
		second := newTestEngine(cfg, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
		require.Equal(t, 1, second.Apply().(Result).Moved)

		res := second.Restore().(Result)
		assert.Equal(t, 1, res.Moved)
		_, err := os.Stat(filepath.Join(target, "new.tmp"))
		assert.NoError(t, err)
		_, err = os.Stat(filepath.Join(target, "old.tmp"))
		assert.True(t, os.IsNotExist(err), "older session must stay untouched")
	})
}

func TestSubdirName(t *testing.T) {
	assert.Equal(t, "tmp_target", subdirName("/tmp/target"))
	assert.Equal(t, "C_Windows_Temp", subdirName(`C:\Windows\Temp`))
}
