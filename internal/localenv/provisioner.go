// Package localenv provisions a local development environment: it verifies
// external tools, installs dependencies, generates the workspace .env,
// starts container services, runs optional migrate/seed scripts, and
// probes service health endpoints.
//
// The flow is strictly sequential; each step finishes before the next
// starts. Only the health probes and the redis readiness check carry
// timeouts — subprocesses run until they exit or the user interrupts.
package localenv

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/appneural/setup/internal/docker"
	"github.com/appneural/setup/internal/envfile"
	"github.com/appneural/setup/internal/state"
	"github.com/appneural/setup/internal/toolchain"
	"github.com/google/uuid"
)

// Result aggregates what provisioning did.
type Result struct {
	RunID              string                   `json:"runId"`
	PackageManager     toolchain.PackageManager `json:"packageManager"`
	EnvGenerated       bool                     `json:"envGenerated"`
	ServicesStarted    []string                 `json:"servicesStarted"`
	MigrationsExecuted bool                     `json:"migrationsExecuted"`
	SeedersExecuted    bool                     `json:"seedersExecuted"`
	RedisReady         bool                     `json:"redisReady"`
	HealthChecks       []HealthCheck            `json:"healthChecks"`
}

// Provisioner runs the local environment setup. Zero-value fields are
// filled with real implementations by New; tests override them.
type Provisioner struct {
	Dir     string
	Out     io.Writer
	Checker *toolchain.Checker

	// RunInteractive executes a subprocess with inherited standard streams.
	RunInteractive func(ctx context.Context, name string, args ...string) error
	// PingDocker verifies the docker daemon is reachable.
	PingDocker func(ctx context.Context) error
	// PingRedisAddr probes the redis service after startup.
	PingRedisAddr func(ctx context.Context, addr string) error
	// Probe runs the health checks.
	Probe func(ctx context.Context, urls []string) []HealthCheck
}

// New returns a Provisioner for the workspace directory backed by the real
// toolchain, docker daemon, and network.
func New(dir string, out io.Writer) *Provisioner {
	return &Provisioner{
		Dir:     dir,
		Out:     out,
		Checker: toolchain.NewChecker(),
		RunInteractive: func(ctx context.Context, name string, args ...string) error {
			cmd := exec.CommandContext(ctx, name, args...)
			cmd.Stdin = os.Stdin
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			return cmd.Run()
		},
		PingDocker:    docker.Ping,
		PingRedisAddr: PingRedis,
		Probe:         RunHealthChecks,
	}
}

// Run executes the provisioning flow. Required-tool absence, compose
// detection failure, daemon unreachability, dependency-install failure, and
// service-start failure abort the flow; script failures and probe failures
// degrade the result instead.
func (p *Provisioner) Run(ctx context.Context) (*Result, error) {
	result := &Result{RunID: uuid.New().String()}

	// 1. Tool verification.
	fmt.Fprintln(p.Out, "→ Checking required tools")
	statuses, err := p.Checker.VerifyTools(ctx, toolchain.DefaultTools)
	if err != nil {
		return nil, err
	}
	for _, s := range statuses {
		switch {
		case !s.Available:
			fmt.Fprintf(p.Out, "  ⚠ %s not found (optional, continuing)\n", s.Tool.Name)
		case s.Outdated:
			fmt.Fprintf(p.Out, "  ⚠ %s %s is below the recommended %s\n", s.Tool.Name, s.Version, s.Tool.MinVersion)
		default:
			fmt.Fprintf(p.Out, "  ✓ %s %s\n", s.Tool.Name, s.Version)
		}
	}

	// 2. Docker daemon reachability.
	if err := p.PingDocker(ctx); err != nil {
		return nil, err
	}

	// 3. Compose variant.
	compose, err := p.Checker.DetectCompose(ctx)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(p.Out, "  ✓ compose command: %s\n", compose.Name())

	// 4. Package manager + dependency install.
	result.PackageManager = p.Checker.DetectPackageManager(p.Dir)
	fmt.Fprintf(p.Out, "→ Installing dependencies with %s\n", result.PackageManager)
	pm := string(result.PackageManager)
	if err := p.RunInteractive(ctx, pm, result.PackageManager.InstallArgs()...); err != nil {
		return nil, fmt.Errorf("installing dependencies with %s: %w", pm, err)
	}

	// 5. Env generation.
	generated, err := envfile.Generate(p.Dir)
	if err != nil {
		return nil, err
	}
	result.EnvGenerated = generated
	if generated {
		fmt.Fprintln(p.Out, "  ✓ generated .env from .env.example")
	}

	// 6. Container services.
	fmt.Fprintf(p.Out, "→ Starting services: %v\n", ServiceNames)
	if err := p.startServices(ctx, compose); err != nil {
		return nil, err
	}
	result.ServicesStarted = ServiceNames

	if err := p.PingRedisAddr(ctx, redisAddr()); err != nil {
		fmt.Fprintf(p.Out, "  ⚠ redis not ready yet: %v\n", err)
	} else {
		result.RedisReady = true
		fmt.Fprintln(p.Out, "  ✓ redis is accepting connections")
	}

	// 7. Migrations and seeders, each independently non-fatal.
	result.MigrationsExecuted = p.runScript(ctx, result.PackageManager, "migrate")
	result.SeedersExecuted = p.runScript(ctx, result.PackageManager, "seed")

	// 8. Health checks.
	fmt.Fprintln(p.Out, "→ Probing health endpoints")
	result.HealthChecks = p.Probe(ctx, p.healthURLs())

	return result, nil
}

// runScript runs a package.json script through the package manager.
// Failures are logged and reported as false; they never abort the flow.
func (p *Provisioner) runScript(ctx context.Context, pm toolchain.PackageManager, script string) bool {
	fmt.Fprintf(p.Out, "→ Running %s script\n", script)
	if err := p.RunInteractive(ctx, string(pm), pm.RunScriptArgs(script)...); err != nil {
		fmt.Fprintf(p.Out, "  ⚠ %s script failed (continuing): %v\n", script, err)
		return false
	}
	return true
}

// healthURLs returns the persisted healthChecks list when present,
// otherwise the fixed defaults. A broken config file falls back to the
// defaults rather than aborting a nearly finished provisioning run.
func (p *Provisioner) healthURLs() []string {
	cfg, err := state.Load(p.Dir)
	if err == nil && len(cfg.HealthChecks) > 0 {
		return cfg.HealthChecks
	}
	return DefaultHealthChecks
}
