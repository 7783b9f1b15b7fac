package state

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/appneural/setup/internal/manifest"
)

var (
	roleA = manifest.Role{
		Description: "role A",
		Shortcuts:   []manifest.Shortcut{{Name: "dev", Command: "npm run dev"}},
		Templates:   []string{"api-service"},
		Snippets:    []string{"http-errors"},
		Config: map[string]any{
			"defaultPort": 8080,
			"database":    "postgres",
			"healthChecks": []any{
				"http://localhost:8080/health",
			},
		},
	}
	roleB = manifest.Role{
		Description: "role B",
		Shortcuts:   []manifest.Shortcut{{Name: "storybook", Command: "npm run storybook"}},
		Templates:   []string{"web-app"},
		Snippets:    []string{"component-patterns"},
		Config: map[string]any{
			"defaultPort": 3000,
			"bundler":     "vite",
		},
	}
)

func TestLoad_AbsentFileIsEmptyConfig(t *testing.T) {
	c, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.CurrentRole != "" || len(c.History) != 0 {
		t.Errorf("expected empty config, got %+v", c)
	}
}

func TestApplyRole_SettingsMergeAndReplacement(t *testing.T) {
	c := &Config{}
	t0 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	c.ApplyRole("backend-dev", roleA, t0)
	c.ApplyRole("frontend-dev", roleB, t1)

	// Settings: shallow union, B's keys win on conflict.
	if got := c.Settings["defaultPort"]; got != 3000 {
		t.Errorf("defaultPort = %v, want 3000", got)
	}
	if got := c.Settings["database"]; got != "postgres" {
		t.Errorf("database = %v, want postgres (retained from A)", got)
	}
	if got := c.Settings["bundler"]; got != "vite" {
		t.Errorf("bundler = %v, want vite", got)
	}

	// Lists: full replacement with B's values.
	if len(c.Shortcuts) != 1 || c.Shortcuts[0].Name != "storybook" {
		t.Errorf("shortcuts not replaced: %+v", c.Shortcuts)
	}
	if len(c.Templates) != 1 || c.Templates[0] != "web-app" {
		t.Errorf("templates not replaced: %+v", c.Templates)
	}
	if len(c.Snippets) != 1 || c.Snippets[0] != "component-patterns" {
		t.Errorf("snippets not replaced: %+v", c.Snippets)
	}

	// B's config has no healthChecks, so A's value is retained.
	if len(c.HealthChecks) != 1 || c.HealthChecks[0] != "http://localhost:8080/health" {
		t.Errorf("healthChecks should be retained from A: %+v", c.HealthChecks)
	}

	if c.CurrentRole != "frontend-dev" {
		t.Errorf("currentRole = %s", c.CurrentRole)
	}
	if !c.UpdatedAt.Equal(t1) {
		t.Errorf("updatedAt = %v, want %v", c.UpdatedAt, t1)
	}
}

func TestApplyRole_HistoryAppendOnly(t *testing.T) {
	c := &Config{}
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	names := []string{"backend-dev", "frontend-dev", "backend-dev"}
	for i, name := range names {
		c.ApplyRole(name, roleA, base.Add(time.Duration(i)*time.Minute))
	}

	if len(c.History) != len(names) {
		t.Fatalf("history length = %d, want %d", len(c.History), len(names))
	}
	for i, name := range names {
		if c.History[i].Role != name {
			t.Errorf("history[%d].Role = %s, want %s", i, c.History[i].Role, name)
		}
	}
	for i := 1; i < len(c.History); i++ {
		if c.History[i].AppliedAt.Before(c.History[i-1].AppliedAt) {
			t.Error("history out of application order")
		}
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	c := &Config{}
	c.ApplyRole("backend-dev", roleA, time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC))

	if err := c.Save(dir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Pretty-printed JSON on disk.
	raw, err := os.ReadFile(filepath.Join(dir, "appneural.config.json"))
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.Contains(string(raw), "\n  \"currentRole\"") {
		t.Error("config file should be pretty-printed")
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.CurrentRole != "backend-dev" {
		t.Errorf("currentRole = %s", loaded.CurrentRole)
	}
	if len(loaded.History) != 1 || loaded.History[0].Role != "backend-dev" {
		t.Errorf("history not round-tripped: %+v", loaded.History)
	}
	if len(loaded.Shortcuts) != 1 || loaded.Shortcuts[0].Command != "npm run dev" {
		t.Errorf("shortcuts not round-tripped: %+v", loaded.Shortcuts)
	}
}

func TestLoad_CorruptFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "appneural.config.json"), []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("expected parse error for corrupt config")
	}
}
