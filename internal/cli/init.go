package cli

import (
	"fmt"
	"os"

	"github.com/appneural/setup/internal/printer"
	"github.com/appneural/setup/internal/scaffold"
	"github.com/spf13/cobra"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing workspace files")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold workspace starter files",
	Long: `Write a starter role manifest (seeded from the built-in defaults) and a
.env.example into the current directory. Existing files are left alone
unless --force is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		result, err := scaffold.Generate(cwd, initForce)
		if err != nil {
			return fmt.Errorf("initializing workspace: %w", err)
		}

		for _, name := range result.Files {
			printer.Success("wrote %s", name)
		}
		for _, name := range result.Skipped {
			printer.Info("  %s already exists, skipped (use --force to overwrite)", name)
		}
		return nil
	},
}
