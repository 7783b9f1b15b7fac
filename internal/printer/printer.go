// Package printer provides colored terminal output helpers shared by the
// CLI commands. Output goes to stdout; warnings keep the flow readable
// during multi-step provisioning.
package printer

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func init() {
	// Respect NO_COLOR; otherwise keep color on even without a TTY so piped
	// summaries stay readable in CI logs.
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}
}

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
)

// Success prints a success line in green with a checkmark prefix.
func Success(format string, a ...any) {
	green.Printf("✓ %s\n", fmt.Sprintf(format, a...))
}

// Info prints an informational line in the default color.
func Info(format string, a ...any) {
	fmt.Printf("%s\n", fmt.Sprintf(format, a...))
}

// Warn prints a warning line in yellow.
func Warn(format string, a ...any) {
	yellow.Printf("⚠ %s\n", fmt.Sprintf(format, a...))
}

// Step prints a step header for multi-step operations.
func Step(format string, a ...any) {
	cyan.Printf("→ %s\n", fmt.Sprintf(format, a...))
}

// Fail prints a failure line in red to stderr.
func Fail(format string, a ...any) {
	red.Fprintf(os.Stderr, "✗ %s\n", fmt.Sprintf(format, a...))
}
