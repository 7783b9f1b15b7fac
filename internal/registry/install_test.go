package registry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestInstallTemplate_CopiesTree(t *testing.T) {
	srcRoot := t.TempDir()
	dstRoot := t.TempDir()

	writeFile(t, filepath.Join(srcRoot, "api-service", "main.go.tmpl"), "package main")
	writeFile(t, filepath.Join(srcRoot, "api-service", "config", "app.yaml"), "port: 8080")
	writeFile(t, filepath.Join(srcRoot, "api-service", "node_modules", "junk.js"), "x")
	writeFile(t, filepath.Join(srcRoot, "api-service", ".git", "HEAD"), "ref")

	if err := InstallTemplate(srcRoot, dstRoot, "backend-dev", "api-service"); err != nil {
		t.Fatalf("InstallTemplate failed: %v", err)
	}

	installed := filepath.Join(dstRoot, "roles", "backend-dev", "api-service")
	if _, err := os.Stat(filepath.Join(installed, "main.go.tmpl")); err != nil {
		t.Errorf("expected main.go.tmpl to be installed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(installed, "config", "app.yaml")); err != nil {
		t.Errorf("expected nested file to be installed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(installed, "node_modules")); !os.IsNotExist(err) {
		t.Error("node_modules should be excluded from the copy")
	}
	if _, err := os.Stat(filepath.Join(installed, ".git")); !os.IsNotExist(err) {
		t.Error(".git should be excluded from the copy")
	}
}

func TestInstallTemplate_ReplacesExisting(t *testing.T) {
	srcRoot := t.TempDir()
	dstRoot := t.TempDir()

	writeFile(t, filepath.Join(srcRoot, "api-service", "new.txt"), "new")

	stale := filepath.Join(dstRoot, "roles", "backend-dev", "api-service", "stale.txt")
	writeFile(t, stale, "old")

	if err := InstallTemplate(srcRoot, dstRoot, "backend-dev", "api-service"); err != nil {
		t.Fatalf("InstallTemplate failed: %v", err)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale file from previous installation should be gone")
	}
}

func TestInstallTemplate_MissingSource(t *testing.T) {
	err := InstallTemplate(t.TempDir(), t.TempDir(), "backend-dev", "nope")
	var missing *MissingSourceError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingSourceError, got %v", err)
	}
	if missing.Kind != KindTemplate || missing.Key != "nope" {
		t.Errorf("unexpected error contents: %+v", missing)
	}
}

func TestInstallSnippet(t *testing.T) {
	srcRoot := t.TempDir()
	dstRoot := t.TempDir()

	writeFile(t, filepath.Join(srcRoot, "http-errors.md"), "# HTTP errors")

	if err := InstallSnippet(srcRoot, dstRoot, "http-errors"); err != nil {
		t.Fatalf("InstallSnippet failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dstRoot, "http-errors.md"))
	if err != nil {
		t.Fatalf("snippet not installed: %v", err)
	}
	if string(data) != "# HTTP errors" {
		t.Errorf("unexpected snippet content: %s", data)
	}
}

func TestInstallSnippet_MissingSource(t *testing.T) {
	err := InstallSnippet(t.TempDir(), t.TempDir(), "absent")
	var missing *MissingSourceError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingSourceError, got %v", err)
	}
	if missing.Kind != KindSnippet {
		t.Errorf("unexpected kind: %s", missing.Kind)
	}
}

func TestSecurePath_RejectsEscape(t *testing.T) {
	if _, err := ValidateTemplateSource(t.TempDir(), "../outside"); err == nil {
		t.Error("expected error for key escaping the source root")
	}
}
