package role

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/appneural/setup/internal/registry"
	"github.com/appneural/setup/internal/state"
)

// testWorkspace builds a workspace with a two-role manifest and backing
// template/snippet sources for role "backend-dev" only.
func testWorkspace(t *testing.T) Workspace {
	t.Helper()
	dir := t.TempDir()

	manifestYAML := `roles:
  backend-dev:
    description: Backend development
    shortcuts:
      - name: dev
        command: npm run dev
    templates:
      - api-service
    snippets:
      - http-errors
    instructions:
      - Run setup local first
    config:
      defaultPort: 8080
      healthChecks:
        - http://localhost:8080/health
  ghost-dev:
    description: Role with no backing sources
    templates:
      - missing-template
`
	if err := os.WriteFile(filepath.Join(dir, "appneural.roles.yaml"), []byte(manifestYAML), 0644); err != nil {
		t.Fatal(err)
	}

	write := func(path, content string) {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	write(filepath.Join(dir, ".appneural", "templates", "api-service", "main.go.tmpl"), "package main")
	write(filepath.Join(dir, ".appneural", "snippets", "http-errors.md"), "# HTTP errors")

	return Workspace{
		Dir:           dir,
		TemplatesRoot: t.TempDir(),
		SnippetsRoot:  t.TempDir(),
	}
}

func TestApply_ReturnsDefinitionVerbatim(t *testing.T) {
	ws := testWorkspace(t)
	var out bytes.Buffer

	result, err := Apply(&out, ws, "backend-dev")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if result.Role != "backend-dev" {
		t.Errorf("role = %s", result.Role)
	}
	if len(result.Shortcuts) != 1 || result.Shortcuts[0].Command != "npm run dev" {
		t.Errorf("shortcuts: %+v", result.Shortcuts)
	}
	if len(result.Templates) != 1 || result.Templates[0] != "api-service" {
		t.Errorf("templates: %+v", result.Templates)
	}
	if len(result.Snippets) != 1 || result.Snippets[0] != "http-errors" {
		t.Errorf("snippets: %+v", result.Snippets)
	}
	if len(result.Instructions) != 1 {
		t.Errorf("instructions: %+v", result.Instructions)
	}
}

func TestApply_InstallsAndPersists(t *testing.T) {
	ws := testWorkspace(t)
	var out bytes.Buffer

	if _, err := Apply(&out, ws, "backend-dev"); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	installedTemplate := filepath.Join(ws.TemplatesRoot, "roles", "backend-dev", "api-service", "main.go.tmpl")
	if _, err := os.Stat(installedTemplate); err != nil {
		t.Errorf("template not installed: %v", err)
	}
	installedSnippet := filepath.Join(ws.SnippetsRoot, "http-errors.md")
	if _, err := os.Stat(installedSnippet); err != nil {
		t.Errorf("snippet not installed: %v", err)
	}

	cfg, err := state.Load(ws.Dir)
	if err != nil {
		t.Fatalf("state.Load failed: %v", err)
	}
	if cfg.CurrentRole != "backend-dev" {
		t.Errorf("currentRole = %s", cfg.CurrentRole)
	}
	if len(cfg.History) != 1 || cfg.History[0].Role != "backend-dev" {
		t.Errorf("history: %+v", cfg.History)
	}
	if len(cfg.HealthChecks) != 1 {
		t.Errorf("healthChecks: %+v", cfg.HealthChecks)
	}
}

func TestApply_UnknownRole_NoWrites(t *testing.T) {
	ws := testWorkspace(t)
	var out bytes.Buffer

	_, err := Apply(&out, ws, "data-scientist")
	var unknown *UnknownRoleError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownRoleError, got %v", err)
	}
	if unknown.Role != "data-scientist" {
		t.Errorf("role in error = %s", unknown.Role)
	}
	if len(unknown.Known) != 2 {
		t.Errorf("known set: %v", unknown.Known)
	}

	if _, statErr := os.Stat(filepath.Join(ws.Dir, "appneural.config.json")); !os.IsNotExist(statErr) {
		t.Error("config file should not exist after failed apply")
	}
	entries, _ := os.ReadDir(ws.TemplatesRoot)
	if len(entries) != 0 {
		t.Error("no templates should be installed after failed apply")
	}
}

func TestApply_MissingSource_AbortsBeforeAnyCopy(t *testing.T) {
	ws := testWorkspace(t)
	var out bytes.Buffer

	_, err := Apply(&out, ws, "ghost-dev")
	var missing *registry.MissingSourceError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingSourceError, got %v", err)
	}

	entries, _ := os.ReadDir(ws.TemplatesRoot)
	if len(entries) != 0 {
		t.Error("nothing should be copied when a source is missing")
	}
	if _, statErr := os.Stat(filepath.Join(ws.Dir, "appneural.config.json")); !os.IsNotExist(statErr) {
		t.Error("config should not be persisted when a source is missing")
	}
}

func TestApply_SecondRoleReplacesFirst(t *testing.T) {
	ws := testWorkspace(t)
	var out bytes.Buffer

	if _, err := Apply(&out, ws, "backend-dev"); err != nil {
		t.Fatalf("first apply failed: %v", err)
	}
	if _, err := Apply(&out, ws, "backend-dev"); err != nil {
		t.Fatalf("second apply failed: %v", err)
	}

	cfg, err := state.Load(ws.Dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.History) != 2 {
		t.Errorf("history length = %d, want 2", len(cfg.History))
	}
}
