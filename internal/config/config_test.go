package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/worktally/internal/config"
)

func TestLoadFromFirstRunWritesTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.DailyHours != config.DefaultDailyHours {
		t.Errorf("DailyHours = %v, want %v", cfg.DailyHours, config.DefaultDailyHours)
	}
	if !cfg.CarriesOvertime() {
		t.Error("CarriesOvertime should default to true")
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("template file not written: %v", err)
	}

	// The written template must parse back to the same defaults.
	again, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom template: %v", err)
	}
	if again.DailyHours != config.DefaultDailyHours || !again.CarriesOvertime() {
		t.Errorf("template round-trip = %+v", again)
	}
}

func TestLoadFromStripsComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `// my settings
{
  // token
  "access_token": "secret",
  "daily_hours": 7.5,
  "carry_overtime": false
}
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.AccessToken != "secret" {
		t.Errorf("AccessToken = %q", cfg.AccessToken)
	}
	if cfg.DailyHours != 7.5 {
		t.Errorf("DailyHours = %v, want 7.5", cfg.DailyHours)
	}
	if cfg.CarriesOvertime() {
		t.Error("CarriesOvertime should be false when set to false")
	}
}

func TestLoadFromPartialFileBackfillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"access_token": "secret"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.DailyHours != config.DefaultDailyHours {
		t.Errorf("DailyHours = %v, want backfilled default", cfg.DailyHours)
	}
	if !cfg.CarriesOvertime() {
		t.Error("unset carry_overtime should count as enabled")
	}
}

func TestLoadFromInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := config.LoadFrom(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	if err := (config.Config{AccessToken: "x", DailyHours: 8}).Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
	if err := (config.Config{DailyHours: 8}).Validate(); err == nil {
		t.Error("missing token accepted")
	}
	if err := (config.Config{AccessToken: "x", DailyHours: -1}).Validate(); err == nil {
		t.Error("negative daily_hours accepted")
	}
}
