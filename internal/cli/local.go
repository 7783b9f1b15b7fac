package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/appneural/setup/internal/localenv"
	"github.com/appneural/setup/internal/printer"
	"github.com/spf13/cobra"
)

var localJSON bool

func init() {
	localCmd.Flags().BoolVar(&localJSON, "json", false, "Print the provisioning result as JSON")
	rootCmd.AddCommand(localCmd)
}

var localCmd = &cobra.Command{
	Use:   "local",
	Short: "Provision the local development environment",
	Long: `Provision the local development environment: verify tools, install
dependencies, generate .env from .env.example, start the db/redis/mq
containers, run migrations and seeders, and probe service health endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		p := localenv.New(cwd, cmd.OutOrStdout())
		result, err := p.Run(cmd.Context())
		if err != nil {
			return err
		}

		if localJSON {
			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling result: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		printSummary(result)
		return nil
	},
}

func printSummary(result *localenv.Result) {
	printer.Step("Summary (run %s)", result.RunID)
	printer.Info("  package manager: %s", result.PackageManager)
	if result.EnvGenerated {
		printer.Info("  .env generated from .env.example")
	}
	printer.Info("  services: %v", result.ServicesStarted)

	reportStep("migrations", result.MigrationsExecuted)
	reportStep("seeders", result.SeedersExecuted)
	reportStep("redis", result.RedisReady)

	for _, check := range result.HealthChecks {
		if check.Healthy {
			printer.Success("%s (%d)", check.URL, check.Status)
		} else if check.Status != 0 {
			printer.Warn("%s returned %d", check.URL, check.Status)
		} else {
			printer.Warn("%s is unreachable", check.URL)
		}
	}
}

func reportStep(name string, ok bool) {
	if ok {
		printer.Success("%s", name)
	} else {
		printer.Warn("%s skipped or failed", name)
	}
}
