package manifest

import "sort"

// Shortcut is a named command a role makes available to the developer.
type Shortcut struct {
	Name        string `yaml:"name" json:"name"`
	Command     string `yaml:"command" json:"command"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Role describes one developer persona: the templates and snippets to
// install, the shortcuts and instructions to surface, and free-form
// configuration merged into the workspace settings on apply.
type Role struct {
	Description  string         `yaml:"description" json:"description"`
	Shortcuts    []Shortcut     `yaml:"shortcuts,omitempty" json:"shortcuts,omitempty"`
	Templates    []string       `yaml:"templates,omitempty" json:"templates,omitempty"`
	Snippets     []string       `yaml:"snippets,omitempty" json:"snippets,omitempty"`
	Instructions []string       `yaml:"instructions,omitempty" json:"instructions,omitempty"`
	Config       map[string]any `yaml:"config,omitempty" json:"config,omitempty"`
}

// Manifest maps role names to their definitions. Role names double as path
// segments under the global templates root, so the schema restricts them to
// filesystem-safe characters.
type Manifest struct {
	Roles map[string]Role `yaml:"roles" json:"roles"`
}

// Names returns the role names in sorted order. The CLI derives the
// supported-role set from this, so the manifest is the single source of
// truth for validation.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Roles))
	for name := range m.Roles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the role definition for name.
func (m *Manifest) Lookup(name string) (Role, bool) {
	r, ok := m.Roles[name]
	return r, ok
}

// HealthChecks extracts the optional healthChecks URL list from the role's
// free-form config map. Returns nil if absent or not a string list.
func (r Role) HealthChecks() []string {
	raw, ok := r.Config["healthChecks"]
	if !ok {
		return nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	var urls []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			urls = append(urls, s)
		}
	}
	return urls
}
