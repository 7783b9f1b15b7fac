package toolchain

import (
	"context"
	"fmt"
)

// ComposeCommand is the argv prefix for the detected compose variant,
// either {"docker", "compose"} or {"docker-compose"}.
type ComposeCommand []string

// Name returns the human-readable command name.
func (c ComposeCommand) Name() string {
	if len(c) == 0 {
		return ""
	}
	if len(c) == 1 {
		return c[0]
	}
	return c[0] + " " + c[1]
}

// Args returns the full argv for an invocation with extra arguments.
func (c ComposeCommand) Args(extra ...string) (string, []string) {
	args := append(append([]string(nil), c[1:]...), extra...)
	return c[0], args
}

// DetectCompose probes for the compose plugin first and falls back to the
// standalone docker-compose binary. Both failing is fatal.
func (c *Checker) DetectCompose(ctx context.Context) (ComposeCommand, error) {
	if _, err := c.Run(ctx, "docker", "compose", "version"); err == nil {
		return ComposeCommand{"docker", "compose"}, nil
	}
	if _, err := c.Run(ctx, "docker-compose", "--version"); err != nil {
		return nil, fmt.Errorf("neither 'docker compose' nor 'docker-compose' is available: %w", err)
	}
	return ComposeCommand{"docker-compose"}, nil
}
