// Package config carries every environment-derived input the profile
// engines consume. Engines never read the process environment themselves;
// tests substitute fake roots and a fake platform through this struct.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileName is the optional configuration file looked up under BackupRoot.
const FileName = "config.yaml"

// Config describes where backups live and which targets the profiles touch.
type Config struct {
	// BackupRoot is the base directory for all session backups,
	// <home>/.opti2025 by default.
	BackupRoot string `yaml:"backup_root"`
	// TempDirs are the directories swept by the Cleanup profile.
	TempDirs []string `yaml:"temp_dirs"`
	// StartupEntry is the Run-key value name the Performance profiles
	// disable.
	StartupEntry string `yaml:"startup_entry"`
	// ProcessName is the image name stopped best-effort during apply.
	ProcessName string `yaml:"process_name"`
	// Platform is the runtime.GOOS value the engines guard on.
	Platform string `yaml:"-"`
}

// Default builds a Config from the process environment: TEMP (or TMP) and
// WINDIR\Temp as cleanup targets, the user's home for the backup root.
func Default() Config {
	cfg := Config{
		StartupEntry: "OneDrive",
		ProcessName:  "OneDrive.exe",
		Platform:     runtime.GOOS,
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.BackupRoot = filepath.Join(home, ".opti2025")
	}
	if t := os.Getenv("TEMP"); t != "" {
		cfg.TempDirs = append(cfg.TempDirs, t)
	} else if t := os.Getenv("TMP"); t != "" {
		cfg.TempDirs = append(cfg.TempDirs, t)
	}
	if windir := os.Getenv("WINDIR"); windir != "" {
		cfg.TempDirs = append(cfg.TempDirs, filepath.Join(windir, "Temp"))
	}
	return cfg
}

// Load returns Default overridden by OPTI_BACKUP_ROOT and, when present,
// by <BackupRoot>/config.yaml.
func Load() (Config, error) {
	cfg := Default()
	if root := os.Getenv("OPTI_BACKUP_ROOT"); root != "" {
		cfg.BackupRoot = root
	}
	if cfg.BackupRoot == "" {
		return cfg, errors.New("cannot determine backup root: no home directory")
	}
	path := filepath.Join(cfg.BackupRoot, FileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if file.BackupRoot != "" {
		cfg.BackupRoot = file.BackupRoot
	}
	if len(file.TempDirs) > 0 {
		cfg.TempDirs = file.TempDirs
	}
	if file.StartupEntry != "" {
		cfg.StartupEntry = file.StartupEntry
	}
	if file.ProcessName != "" {
		cfg.ProcessName = file.ProcessName
	}
	return cfg, nil
}

// CleanupRoot is the session root for the Cleanup profile.
func (c Config) CleanupRoot() string {
	return filepath.Join(c.BackupRoot, "safe_backups")
}

// PerformanceRoot is the session root for the Performance profile.
func (c Config) PerformanceRoot() string {
	return filepath.Join(c.BackupRoot, "performance_backups")
}

// MaxPerfRoot is the session root for the MaxPerformance profile.
func (c Config) MaxPerfRoot() string {
	return filepath.Join(c.BackupRoot, "max_backups")
}
