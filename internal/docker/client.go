// Package docker wraps daemon reachability checks for the provisioner and
// the doctor command.
package docker

import (
	"context"
	"fmt"

	"github.com/docker/docker/client"
)

// Ping verifies the Docker daemon is reachable. The docker binary being on
// PATH says nothing about the daemon, so this runs before any compose
// invocation.
func Ping(ctx context.Context) error {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return fmt.Errorf("creating Docker client: %w", err)
	}
	defer cli.Close()

	if _, err := cli.Ping(ctx); err != nil {
		return fmt.Errorf(`Docker daemon not accessible: %w

Ensure Docker is running:
  • macOS: start Docker Desktop
  • Linux: sudo systemctl start docker`, err)
	}
	return nil
}
