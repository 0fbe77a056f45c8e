// Package storage persists the clock session and the last computed reports
// under the worktally data directory.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/worktally/internal/engine"
	"github.com/worktally/internal/model"
)

const (
	sessionFile = "session.json"
	reportsFile = "reports.json"
)

// BaseDir returns the root data directory (~/.worktally).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".worktally"), nil
}

// CachedReports is the persisted result of the last reporting cycle, used to
// show something when the API is unreachable.
type CachedReports struct {
	ComputedAt time.Time           `json:"computed_at"`
	Reports    engine.CycleReports `json:"reports"`
}

// LoadSession reads the persisted clock session. The second return value is
// false when no session has been saved yet.
func LoadSession(base string) (model.ClockSession, bool, error) {
	var s model.ClockSession
	found, err := loadJSON(filepath.Join(base, sessionFile), &s)
	return s, found, err
}

// SaveSession atomically writes the clock session.
func SaveSession(base string, s model.ClockSession) error {
	return saveJSON(filepath.Join(base, sessionFile), s)
}

// LoadReports reads the cached reports. The second return value is false when
// no cycle has run yet.
func LoadReports(base string) (CachedReports, bool, error) {
	var r CachedReports
	found, err := loadJSON(filepath.Join(base, reportsFile), &r)
	return r, found, err
}

// SaveReports atomically writes the cached reports.
func SaveReports(base string, r CachedReports) error {
	return saveJSON(filepath.Join(base, reportsFile), r)
}

func loadJSON(path string, out any) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage error reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		// Back up corrupt file and abort.
		backupPath := path + ".corrupt"
		_ = os.Rename(path, backupPath)
		return false, fmt.Errorf("corrupt JSON in %s (backed up to %s): %w", path, backupPath, err)
	}
	return true, nil
}

func saveJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling JSON: %w", err)
	}

	// Atomic write: write to temp file then rename.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}
