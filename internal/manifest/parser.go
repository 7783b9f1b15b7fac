// Package manifest loads and validates the role manifest that drives role
// setup. A workspace may supply appneural.roles.yaml; otherwise the
// embedded default role set is used. Both go through the same YAML parsing
// and schema validation path.
package manifest

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/appneural/setup/internal/branding"
	"go.yaml.in/yaml/v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Load returns the role manifest for a workspace directory. The workspace
// file wins when it exists and defines at least one role; the embedded
// defaults are the fallback. Malformed YAML or a schema violation in the
// workspace file is an error, not a silent fallback.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, branding.RolesFile())
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Defaults()
		}
		return nil, fmt.Errorf("reading role manifest %s: %w", path, err)
	}

	m, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing role manifest %s: %w", path, err)
	}
	if len(m.Roles) == 0 {
		return Defaults()
	}

	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating role manifest %s: %w", path, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("role manifest %s is invalid:\n%s", path, result.Summary())
	}

	return m, nil
}

// DefaultsYAML returns the embedded default manifest source, for writing a
// starter workspace file.
func DefaultsYAML() []byte {
	out := make([]byte, len(defaultsYAML))
	copy(out, defaultsYAML)
	return out
}

// Defaults returns the embedded built-in role set.
func Defaults() (*Manifest, error) {
	m, err := parse(defaultsYAML)
	if err != nil {
		return nil, fmt.Errorf("parsing embedded default roles: %w", err)
	}
	return m, nil
}

func readManifestFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return data, nil
}

func parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
