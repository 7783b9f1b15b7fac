package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/appneural/setup/internal/branding"
	"github.com/appneural/setup/internal/manifest"
)

//go:embed templates
var scaffoldFS embed.FS

// Data holds the variables available to the starter templates.
type Data struct {
	Workspace string // directory base name, used in generated URLs
}

// Result reports what Generate wrote and what it left alone.
type Result struct {
	Files   []string
	Skipped []string
}

// Generate writes the starter role manifest and .env.example into dir. An
// existing file is skipped unless force is set; the role manifest content
// is the embedded default role set, so editing it and re-running
// "setup role" picks the changes up.
func Generate(dir string, force bool) (*Result, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace directory: %w", err)
	}
	data := &Data{Workspace: filepath.Base(abs)}

	result := &Result{}

	files := []struct {
		name    string
		content func() ([]byte, error)
	}{
		{branding.RolesFile(), func() ([]byte, error) { return manifest.DefaultsYAML(), nil }},
		{".env.example", func() ([]byte, error) { return renderTemplate("env.example.tmpl", data) }},
	}

	for _, f := range files {
		outPath := filepath.Join(dir, f.name)
		if _, err := os.Stat(outPath); err == nil && !force {
			result.Skipped = append(result.Skipped, f.name)
			continue
		}

		content, err := f.content()
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(outPath, content, 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", outPath, err)
		}
		result.Files = append(result.Files, f.name)
	}

	return result, nil
}

func renderTemplate(name string, data *Data) ([]byte, error) {
	raw, err := scaffoldFS.ReadFile("templates/" + name)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", name, err)
	}

	tmpl, err := template.New(name).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
