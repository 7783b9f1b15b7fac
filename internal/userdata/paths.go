// Package userdata resolves the global and workspace-internal directories
// the setup CLI reads from and writes to.
//
// Global layout under ~/.appneural/ (override the root with APPNEURAL_HOME):
//
//	templates/roles/<role>/<templateKey>/...  installed role templates
//	snippets/<snippetKey>.md                  installed reference snippets
//	config.yaml                               CLI-wide config (viper)
//
// Workspace-internal sources live under .appneural/ in the workspace root:
//
//	.appneural/templates/<templateKey>/...
//	.appneural/snippets/<snippetKey>.md
package userdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/appneural/setup/internal/branding"
)

// Directory name constants for the global layout.
const (
	TemplatesDir     = "templates"
	SnippetsDir      = "snippets"
	RolesSubdir      = "roles"
	InternalDir      = ".appneural"
	SnippetExtension = ".md"
)

// HomeRoot returns the global root directory (~/.appneural by default).
// The APPNEURAL_HOME environment variable overrides it.
func HomeRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// TemplatesRoot returns the global templates directory.
// The APPNEURAL_TEMPLATES environment variable overrides it.
func TemplatesRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("TEMPLATES")); v != "" {
		return v, nil
	}
	root, err := HomeRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, TemplatesDir), nil
}

// SnippetsRoot returns the global snippets directory.
// The APPNEURAL_SNIPPETS environment variable overrides it.
func SnippetsRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("SNIPPETS")); v != "" {
		return v, nil
	}
	root, err := HomeRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, SnippetsDir), nil
}

// RoleTemplatePath returns the install destination for one template key of a
// role: <templates-root>/roles/<role>/<key>.
func RoleTemplatePath(templatesRoot, role, key string) string {
	return filepath.Join(templatesRoot, RolesSubdir, role, key)
}

// SnippetPath returns the install destination for one snippet key:
// <snippets-root>/<key>.md.
func SnippetPath(snippetsRoot, key string) string {
	return filepath.Join(snippetsRoot, key+SnippetExtension)
}

// InternalTemplatesDir returns the workspace-internal template source root.
func InternalTemplatesDir(workspace string) string {
	return filepath.Join(workspace, InternalDir, TemplatesDir)
}

// InternalSnippetsDir returns the workspace-internal snippet source root.
func InternalSnippetsDir(workspace string) string {
	return filepath.Join(workspace, InternalDir, SnippetsDir)
}
