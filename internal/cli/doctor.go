package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/appneural/setup/internal/branding"
	"github.com/appneural/setup/internal/docker"
	"github.com/appneural/setup/internal/envfile"
	"github.com/appneural/setup/internal/manifest"
	"github.com/appneural/setup/internal/state"
	"github.com/appneural/setup/internal/toolchain"
	"github.com/spf13/cobra"
)

var doctorManifest string

func init() {
	doctorCmd.Flags().StringVar(&doctorManifest, "check-manifest", "", "Validate a role manifest file at the given path")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the workspace and host tools",
	Long:  `Run diagnostic checks on the host toolchain, the docker daemon, and the workspace files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if doctorManifest != "" {
			return runManifestCheck(doctorManifest)
		}

		runToolCheck(cmd)
		runDaemonCheck(cmd)
		runWorkspaceCheck(cmd)
		return nil
	},
}

func runToolCheck(cmd *cobra.Command) {
	fmt.Fprintln(cmd.OutOrStdout(), "Toolchain check:")

	checker := toolchain.NewChecker()
	statuses, err := checker.VerifyTools(cmd.Context(), toolchain.DefaultTools)
	for _, s := range statuses {
		switch {
		case !s.Available:
			fmt.Fprintf(cmd.OutOrStdout(), "  [MISS] %s not found\n", s.Tool.Name)
		case s.Outdated:
			fmt.Fprintf(cmd.OutOrStdout(), "  [WARN] %s %s (recommended >= %s)\n", s.Tool.Name, s.Version, s.Tool.MinVersion)
		default:
			fmt.Fprintf(cmd.OutOrStdout(), "  [ OK ] %s %s\n", s.Tool.Name, s.Version)
		}
	}
	if err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "  [FAIL] %v\n", err)
	}

	if compose, composeErr := checker.DetectCompose(cmd.Context()); composeErr != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "  [MISS] no compose command available\n")
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "  [ OK ] compose command: %s\n", compose.Name())
	}
}

func runDaemonCheck(cmd *cobra.Command) {
	fmt.Fprintln(cmd.OutOrStdout(), "Docker daemon check:")
	if err := docker.Ping(cmd.Context()); err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "  [FAIL] %v\n", err)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), "  [ OK ] daemon reachable")
}

func runWorkspaceCheck(cmd *cobra.Command) {
	fmt.Fprintln(cmd.OutOrStdout(), "Workspace check:")

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "  [FAIL] cannot determine working directory: %v\n", err)
		return
	}

	checkFile(cmd, filepath.Join(cwd, branding.RolesFile()), "role manifest (built-in defaults apply)")
	checkFile(cmd, filepath.Join(cwd, envfile.ExampleFile), ".env.example (run `"+branding.CLIName()+" init`)")

	cfg, err := state.Load(cwd)
	switch {
	case err != nil:
		fmt.Fprintf(cmd.OutOrStdout(), "  [FAIL] %s is unreadable: %v\n", branding.ConfigFile(), err)
	case cfg.CurrentRole == "":
		fmt.Fprintf(cmd.OutOrStdout(), "  [INFO] no role applied yet (run `%s role <role>`)\n", branding.CLIName())
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "  [ OK ] current role: %s (%d applies in history)\n", cfg.CurrentRole, len(cfg.History))
	}
}

func checkFile(cmd *cobra.Command, path, hint string) {
	name := filepath.Base(path)
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "  [INFO] %s missing: %s\n", name, hint)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  [ OK ] %s present\n", name)
}

func runManifestCheck(path string) error {
	fmt.Printf("Manifest validation: %s\n", path)

	result, err := manifest.ValidateFile(path)
	if err != nil {
		fmt.Printf("  [FAIL] %v\n", err)
		return fmt.Errorf("manifest validation failed: %w", err)
	}

	if result.Valid {
		fmt.Println("  [ OK ] Valid role manifest")
		return nil
	}

	for _, issue := range result.Issues {
		msg := issue.Message
		if issue.Path != "" {
			msg = issue.Path + ": " + msg
		}
		fmt.Printf("  [FAIL] %s\n", msg)
	}
	return fmt.Errorf("manifest has %d validation issue(s)", len(result.Issues))
}
