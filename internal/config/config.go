package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the root configuration for worktally, stored in
// ~/.worktally/config.json. The file supports single-line // comments for
// documentation purposes.
type Config struct {
	// AccessToken is the Humaans personal access token. Required.
	AccessToken string `json:"access_token"`
	// DailyHours is the length of a full working day in hours.
	DailyHours float64 `json:"daily_hours"`
	// CarryOvertime controls whether overtime from earlier periods is carried
	// into week and day reports. Unset means enabled.
	CarryOvertime *bool `json:"carry_overtime"`
	// Timezone is the IANA timezone used for "now" (e.g. "Europe/Berlin").
	// Empty = the system's local timezone.
	Timezone string `json:"timezone"`
	// BaseURL overrides the Humaans API host. Empty = production.
	BaseURL string `json:"base_url"`
}

// DefaultDailyHours is the working-day length used when none is configured.
const DefaultDailyHours = 8

// CarriesOvertime reports whether carry-forward is enabled; unset counts as
// enabled.
func (c Config) CarriesOvertime() bool {
	return c.CarryOvertime == nil || *c.CarryOvertime
}

// Validate rejects configs the reporting cycle cannot work with.
func (c Config) Validate() error {
	if c.AccessToken == "" {
		return fmt.Errorf("access_token is not set; add your Humaans personal access token to the config file")
	}
	if c.DailyHours <= 0 {
		return fmt.Errorf("daily_hours must be positive, got %v", c.DailyHours)
	}
	return nil
}

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig() Config {
	return Config{
		DailyHours: DefaultDailyHours,
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// worktally configuration – ~/.worktally/config.json
//
// Only access_token is required; the other settings have built-in defaults.
// Edit this file to customise worktally behaviour.
{
  // Humaans personal access token. Create one under
  // Settings → API access tokens in the Humaans app.
  "access_token": "",

  // Length of a full working day in hours. Half days count half of this.
  "daily_hours": 8,

  // Carry overtime from earlier periods into week and day reports.
  // When false, each period starts from its own baseline instead.
  "carry_overtime": true,

  // IANA timezone for interpreting "now", e.g. "Europe/Berlin".
  // Leave empty to use the system timezone.
  "timezone": "",

  // Humaans API host override. Leave empty for production.
  "base_url": ""
}
`

// configFilePath returns the path to ~/.worktally/config.json.
func configFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".worktally", "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads ~/.worktally/config.json, creating it with annotated defaults on
// first run. Lines starting with // are treated as comments and stripped
// before JSON parsing.
func Load() (Config, error) {
	path, err := configFilePath()
	if err != nil {
		return defaultConfig(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads a config file from an explicit path; see Load.
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return defaultConfig(), nil
	}
	if err != nil {
		return defaultConfig(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	cleaned := stripLineComments(data)
	var cfg Config
	if err := json.Unmarshal(cleaned, &cfg); err != nil {
		return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	// Fill zero-value fields with built-in defaults so callers always get
	// a usable Config even if the user only partially fills in the file.
	if cfg.DailyHours == 0 {
		cfg.DailyHours = DefaultDailyHours
	}

	return cfg, nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
