// Package toolchain detects the external CLI tools the provisioner depends
// on: the node toolchain, the package manager, and the compose command
// variant.
package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrToolMissing is returned when a required tool cannot be invoked.
var ErrToolMissing = errors.New("required tool not available")

// RunFunc invokes a command and returns its combined output.
type RunFunc func(ctx context.Context, name string, args ...string) (string, error)

// LookPathFunc reports the binary path for a tool name.
type LookPathFunc func(name string) (string, error)

// Checker probes the host for external tools. The function fields default
// to os/exec and are replaceable in tests.
type Checker struct {
	Run      RunFunc
	LookPath LookPathFunc
}

// NewChecker returns a Checker backed by os/exec.
func NewChecker() *Checker {
	return &Checker{
		Run: func(ctx context.Context, name string, args ...string) (string, error) {
			out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
			return string(out), err
		},
		LookPath: exec.LookPath,
	}
}

// Tool is one entry in the verification list.
type Tool struct {
	Name       string
	Required   bool
	MinVersion string // advisory; empty means no minimum
}

// DefaultTools is the fixed verification list, in check order.
var DefaultTools = []Tool{
	{Name: "node", Required: true, MinVersion: "18.0.0"},
	{Name: "npm", Required: true, MinVersion: "9.0.0"},
	{Name: "pnpm", Required: false},
	{Name: "yarn", Required: false},
	{Name: "docker", Required: true, MinVersion: "24.0.0"},
}

// ToolStatus reports the outcome of one tool check.
type ToolStatus struct {
	Tool      Tool
	Available bool
	Version   string
	Outdated  bool // below the advisory minimum
}

// VerifyTools invokes each tool with its version flag, in order. A missing
// required tool is fatal; a missing optional tool or an advisory version
// shortfall is reflected in the returned statuses and left to the caller to
// report.
func (c *Checker) VerifyTools(ctx context.Context, tools []Tool) ([]ToolStatus, error) {
	statuses := make([]ToolStatus, 0, len(tools))
	for _, tool := range tools {
		status := ToolStatus{Tool: tool}

		out, err := c.Run(ctx, tool.Name, "--version")
		if err != nil {
			if tool.Required {
				return statuses, fmt.Errorf("%w: %s (install it and retry)", ErrToolMissing, tool.Name)
			}
			statuses = append(statuses, status)
			continue
		}

		status.Available = true
		status.Version = versionFromOutput(out)
		if tool.MinVersion != "" && status.Version != "" {
			if cmp, cmpErr := CompareVersions(status.Version, tool.MinVersion); cmpErr == nil && cmp < 0 {
				status.Outdated = true
			}
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// versionFromOutput extracts the first semver-looking token from version
// command output ("v22.1.0", "Docker version 24.0.5, build ...").
func versionFromOutput(out string) string {
	for _, field := range strings.Fields(out) {
		candidate := strings.TrimSuffix(strings.TrimPrefix(field, "v"), ",")
		if _, err := parseSemver(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
