// Package role applies a named role to the workspace: it installs the
// role's templates and snippets into the global roots and folds the role's
// definition into the persisted workspace config.
package role

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/appneural/setup/internal/manifest"
	"github.com/appneural/setup/internal/registry"
	"github.com/appneural/setup/internal/state"
	"github.com/appneural/setup/internal/userdata"
)

// UnknownRoleError reports a role name absent from the loaded manifest,
// along with the valid set. Raised before any file I/O.
type UnknownRoleError struct {
	Role  string
	Known []string
}

func (e *UnknownRoleError) Error() string {
	return fmt.Sprintf("unknown role %q (supported: %s)", e.Role, strings.Join(e.Known, ", "))
}

// Workspace carries the directories an application reads from and writes to.
// All fields default from the current directory and the global home; tests
// override them.
type Workspace struct {
	Dir           string // workspace root (manifest, config file, internal sources)
	TemplatesRoot string // global templates root
	SnippetsRoot  string // global snippets root
}

// NewWorkspace resolves a Workspace for dir using the global defaults.
func NewWorkspace(dir string) (Workspace, error) {
	templatesRoot, err := userdata.TemplatesRoot()
	if err != nil {
		return Workspace{}, err
	}
	snippetsRoot, err := userdata.SnippetsRoot()
	if err != nil {
		return Workspace{}, err
	}
	return Workspace{Dir: dir, TemplatesRoot: templatesRoot, SnippetsRoot: snippetsRoot}, nil
}

// Result reports what a role application did. Shortcuts, templates,
// snippets, and instructions are the manifest definition's values verbatim.
type Result struct {
	Role         string
	Shortcuts    []manifest.Shortcut
	Templates    []string
	Snippets     []string
	Instructions []string
}

// Apply installs the named role into the workspace. The copy sequence is
// validate-then-copy: every template and snippet source is checked for
// existence before the first copy, so a manifest entry with no backing
// source aborts the whole application with nothing written.
func Apply(out io.Writer, ws Workspace, name string) (*Result, error) {
	m, err := manifest.Load(ws.Dir)
	if err != nil {
		return nil, err
	}

	def, ok := m.Lookup(name)
	if !ok {
		return nil, &UnknownRoleError{Role: name, Known: m.Names()}
	}

	internalTemplates := userdata.InternalTemplatesDir(ws.Dir)
	internalSnippets := userdata.InternalSnippetsDir(ws.Dir)

	// Validate every source before copying anything.
	for _, key := range def.Templates {
		if _, err := registry.ValidateTemplateSource(internalTemplates, key); err != nil {
			return nil, err
		}
	}
	for _, key := range def.Snippets {
		if _, err := registry.ValidateSnippetSource(internalSnippets, key); err != nil {
			return nil, err
		}
	}

	for _, key := range def.Templates {
		if err := registry.InstallTemplate(internalTemplates, ws.TemplatesRoot, name, key); err != nil {
			return nil, err
		}
		fmt.Fprintf(out, "  ✓ template: %s\n", key)
	}
	for _, key := range def.Snippets {
		if err := registry.InstallSnippet(internalSnippets, ws.SnippetsRoot, key); err != nil {
			return nil, err
		}
		fmt.Fprintf(out, "  ✓ snippet: %s\n", key)
	}

	cfg, err := state.Load(ws.Dir)
	if err != nil {
		return nil, err
	}
	cfg.ApplyRole(name, def, time.Now().UTC())
	if err := cfg.Save(ws.Dir); err != nil {
		return nil, err
	}

	for _, instruction := range def.Instructions {
		fmt.Fprintf(out, "  • %s\n", instruction)
	}
	for _, shortcut := range def.Shortcuts {
		fmt.Fprintf(out, "  %s → %s\n", shortcut.Name, shortcut.Command)
	}

	return &Result{
		Role:         name,
		Shortcuts:    def.Shortcuts,
		Templates:    def.Templates,
		Snippets:     def.Snippets,
		Instructions: def.Instructions,
	}, nil
}
