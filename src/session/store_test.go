package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	t.Run("builds the timestamped directory", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "safe_backups")
		s := New()

		now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		dir, err := s.Create(root, now)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "20240102_030405"), dir)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("refuses to reuse an existing session", func(t *testing.T) {
		root := t.TempDir()
		s := New()

		now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		_, err := s.Create(root, now)
		require.NoError(t, err)

		_, err = s.Create(root, now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})
}

func TestLatest(t *testing.T) {
	t.Run("orders by name descending", func(t *testing.T) {
		root := t.TempDir()
		for _, name := range []string{"20240101_000000", "20240103_000000", "20240102_000000"} {
			require.NoError(t, os.Mkdir(filepath.Join(root, name), 0o755))
		}

		dir, ok := New().Latest(root)
		require.True(t, ok)
		assert.Equal(t, filepath.Join(root, "20240103_000000"), dir)
	})

	t.Run("absent root", func(t *testing.T) {
		_, ok := New().Latest(filepath.Join(t.TempDir(), "missing"))
		assert.False(t, ok)
	})

	t.Run("root with no session directories", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "stray.txt"), []byte("x"), 0o644))

		_, ok := New().Latest(root)
		assert.False(t, ok)
	})
}

func TestManifestRoundTrip(t *testing.T) {
	t.Run("write then read", func(t *testing.T) {
		dir := t.TempDir()
		s := New()

		require.NoError(t, s.WriteManifest(dir, map[string]string{"a": "/tmp/a"}))

		m, err := s.ReadManifest(dir)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": "/tmp/a"}, m)
	})

	t.Run("overwrites a previous manifest", func(t *testing.T) {
		dir := t.TempDir()
		s := New()

		require.NoError(t, s.WriteManifest(dir, map[string]string{"a": "1"}))
		require.NoError(t, s.WriteManifest(dir, map[string]string{"b": "2"}))

		m, err := s.ReadManifest(dir)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"b": "2"}, m)
	})

	t.Run("missing manifest reads as empty", func(t *testing.T) {
		m, err := New().ReadManifest(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, m)
	})

	t.Run("corrupt manifest is an error", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestName), []byte("{not json"), 0o644))

		_, err := New().ReadManifest(dir)
		require.Error(t, err)
	})
}

func TestList(t *testing.T) {
	base := t.TempDir()
	cleanupRoot := filepath.Join(base, "safe_backups")
	perfRoot := filepath.Join(base, "performance_backups")
	require.NoError(t, os.MkdirAll(filepath.Join(cleanupRoot, "20240101_000000"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(cleanupRoot, "20240102_000000"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(perfRoot, "20240105_000000"), 0o755))

	entries := New().List(map[string]string{
		"cleanup":     cleanupRoot,
		"performance": perfRoot,
		"max-perf":    filepath.Join(base, "missing"),
	})

	require.Len(t, entries, 3)
	// Profiles in name order, sessions newest first within a profile.
	assert.Equal(t, "cleanup", entries[0].Profile)
	assert.Equal(t, "20240102_000000", entries[0].Timestamp)
	assert.Equal(t, "20240101_000000", entries[1].Timestamp)
	assert.Equal(t, "performance", entries[2].Profile)
	assert.Equal(t, filepath.Join(perfRoot, "20240105_000000"), entries[2].Path)
}
