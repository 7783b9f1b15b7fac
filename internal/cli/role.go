package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/appneural/setup/internal/printer"
	"github.com/appneural/setup/internal/role"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(roleCmd)
}

var roleCmd = &cobra.Command{
	Use:   "role <role>",
	Short: "Apply a role preset to this workspace",
	Long: `Apply a role preset: copy its templates and snippets into the global
store and merge its shortcuts, instructions, and settings into the workspace
config. The valid role names come from the workspace role manifest, or from
the built-in defaults when no manifest is present.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		ws, err := role.NewWorkspace(cwd)
		if err != nil {
			return err
		}

		printer.Step("Applying role %s", args[0])
		result, err := role.Apply(cmd.OutOrStdout(), ws, args[0])
		if err != nil {
			var unknown *role.UnknownRoleError
			if errors.As(err, &unknown) {
				printer.Fail("Unknown role %q", unknown.Role)
				fmt.Fprintf(os.Stderr, "Available roles: %s\n", strings.Join(unknown.Known, ", "))
			}
			return err
		}

		printer.Success("Role %s applied (%d templates, %d snippets, %d shortcuts)",
			result.Role, len(result.Templates), len(result.Snippets), len(result.Shortcuts))
		return nil
	},
}
