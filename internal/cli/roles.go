package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/appneural/setup/internal/manifest"
	"github.com/spf13/cobra"
)

var rolesJSON bool

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List available roles",
	Long:  `List the roles defined by the workspace manifest or the built-in defaults.`,
	RunE:  runRoles,
}

func init() {
	rolesCmd.Flags().BoolVar(&rolesJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(rolesCmd)
}

// roleEntry represents one role for display.
type roleEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Templates   int    `json:"templates"`
	Snippets    int    `json:"snippets"`
	Shortcuts   int    `json:"shortcuts"`
}

func runRoles(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	m, err := manifest.Load(cwd)
	if err != nil {
		return err
	}

	entries := make([]roleEntry, 0, len(m.Roles))
	for _, name := range m.Names() {
		r := m.Roles[name]
		entries = append(entries, roleEntry{
			Name:        name,
			Description: r.Description,
			Templates:   len(r.Templates),
			Snippets:    len(r.Snippets),
			Shortcuts:   len(r.Shortcuts),
		})
	}

	if rolesJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ROLE\tDESCRIPTION\tTEMPLATES\tSNIPPETS\tSHORTCUTS")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n", e.Name, e.Description, e.Templates, e.Snippets, e.Shortcuts)
	}
	return w.Flush()
}
