// Package state reads and writes appneural.config.json, the workspace
// record of the active role and its accumulated settings.
//
// The file is read-modify-written on each role application with no locking;
// the tool is meant for single-operator interactive use and the last writer
// wins.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/appneural/setup/internal/branding"
	"github.com/appneural/setup/internal/manifest"
)

// HistoryEntry records one role application.
type HistoryEntry struct {
	Role      string    `json:"role"`
	AppliedAt time.Time `json:"appliedAt"`
}

// Config mirrors the on-disk appneural.config.json shape. Shortcuts,
// instructions, templates, and snippets always hold the last-applied role's
// values; settings accumulate across applications; history is append-only.
type Config struct {
	CurrentRole  string              `json:"currentRole,omitempty"`
	Shortcuts    []manifest.Shortcut `json:"shortcuts,omitempty"`
	Instructions []string            `json:"instructions,omitempty"`
	Templates    []string            `json:"templates,omitempty"`
	Snippets     []string            `json:"snippets,omitempty"`
	Settings     map[string]any      `json:"settings,omitempty"`
	HealthChecks []string            `json:"healthChecks,omitempty"`
	History      []HistoryEntry      `json:"history,omitempty"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// Path returns the config file path for a workspace directory.
func Path(dir string) string {
	return filepath.Join(dir, branding.ConfigFile())
}

// Load reads the persisted config from a workspace directory. An absent
// file yields an empty config, created on first save.
func Load(dir string) (*Config, error) {
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", Path(dir), err)
	}

	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", Path(dir), err)
	}
	return &c, nil
}

// Save writes the config as pretty-printed JSON, overwriting any prior file.
func (c *Config) Save(dir string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(Path(dir), data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", Path(dir), err)
	}
	return nil
}

// ApplyRole folds a role definition into the config. Shortcuts,
// instructions, templates, and snippets are replaced wholesale; the role's
// config map is shallow-merged over settings with the role's keys winning;
// healthChecks is taken from the role config when present, otherwise the
// prior value is retained; a history entry is appended.
func (c *Config) ApplyRole(name string, role manifest.Role, now time.Time) {
	c.CurrentRole = name
	c.Shortcuts = append([]manifest.Shortcut(nil), role.Shortcuts...)
	c.Instructions = append([]string(nil), role.Instructions...)
	c.Templates = append([]string(nil), role.Templates...)
	c.Snippets = append([]string(nil), role.Snippets...)

	if len(role.Config) > 0 {
		if c.Settings == nil {
			c.Settings = make(map[string]any, len(role.Config))
		}
		for k, v := range role.Config {
			c.Settings[k] = v
		}
	}

	if urls := role.HealthChecks(); len(urls) > 0 {
		c.HealthChecks = urls
	}

	c.History = append(c.History, HistoryEntry{Role: name, AppliedAt: now})
	c.UpdatedAt = now
}
