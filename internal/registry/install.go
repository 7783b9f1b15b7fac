// Package registry installs role templates and snippets from the
// workspace-internal source tree into the global roots.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/appneural/setup/internal/platform"
	"github.com/appneural/setup/internal/userdata"
)

// Source kinds reported in MissingSourceError.
const (
	KindTemplate = "template"
	KindSnippet  = "snippet"
)

// MissingSourceError reports a template or snippet key whose source does not
// exist in the workspace-internal tree. It is a validation error: the key
// came from the role manifest, the file tree disagrees.
type MissingSourceError struct {
	Kind string
	Key  string
	Path string
}

func (e *MissingSourceError) Error() string {
	return fmt.Sprintf("%s %q not found at %s", e.Kind, e.Key, e.Path)
}

// excludedNames are entries skipped during template copies.
var excludedNames = map[string]bool{
	"node_modules": true,
	".git":         true,
	".DS_Store":    true,
}

// ValidateTemplateSource checks that the source directory for a template key
// exists. Keys may contain slashes but must stay inside the source root.
func ValidateTemplateSource(internalTemplates, key string) (string, error) {
	src, err := securePath(internalTemplates, key)
	if err != nil {
		return "", err
	}
	info, statErr := os.Stat(src)
	if statErr != nil || !info.IsDir() {
		return "", &MissingSourceError{Kind: KindTemplate, Key: key, Path: src}
	}
	return src, nil
}

// ValidateSnippetSource checks that the source markdown file for a snippet
// key exists.
func ValidateSnippetSource(internalSnippets, key string) (string, error) {
	src, err := securePath(internalSnippets, key+userdata.SnippetExtension)
	if err != nil {
		return "", err
	}
	info, statErr := os.Stat(src)
	if statErr != nil || info.IsDir() {
		return "", &MissingSourceError{Kind: KindSnippet, Key: key, Path: src}
	}
	return src, nil
}

// InstallTemplate copies the template directory for key into
// <templatesRoot>/roles/<role>/<key>/, replacing any prior installation.
func InstallTemplate(internalTemplates, templatesRoot, role, key string) error {
	src, err := ValidateTemplateSource(internalTemplates, key)
	if err != nil {
		return err
	}

	dst := userdata.RoleTemplatePath(templatesRoot, role, key)
	if _, err := os.Stat(dst); err == nil {
		if err := os.RemoveAll(dst); err != nil {
			return fmt.Errorf("removing existing installation at %s: %w", dst, err)
		}
	}
	if err := copyDir(src, dst); err != nil {
		return fmt.Errorf("copying template %q to %s: %w", key, dst, err)
	}
	return nil
}

// InstallSnippet copies the snippet markdown file for key into
// <snippetsRoot>/<key>.md, replacing any prior copy.
func InstallSnippet(internalSnippets, snippetsRoot, key string) error {
	src, err := ValidateSnippetSource(internalSnippets, key)
	if err != nil {
		return err
	}

	dst := userdata.SnippetPath(snippetsRoot, key)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("creating snippets directory: %w", err)
	}
	if err := copyFile(src, dst); err != nil {
		return fmt.Errorf("copying snippet %q to %s: %w", key, dst, err)
	}
	return nil
}

// securePath joins key onto root and rejects keys that escape it.
func securePath(root, key string) (string, error) {
	joined := filepath.Join(root, filepath.FromSlash(key))
	rel, err := filepath.Rel(root, joined)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("key %q escapes the source root", key)
	}
	return joined, nil
}

// copyDir recursively copies src to dst, skipping excluded entries and
// special files.
func copyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dst, srcInfo.Mode()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if excludedNames[entry.Name()] {
			continue
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
		} else if entry.Type().IsRegular() {
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
		// Symlinks and other special files are not copied.
	}

	return nil
}

// copyFile copies a single file, preserving permissions.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return err
	}
	return platform.Chmod(dst, srcInfo.Mode().Perm())
}
