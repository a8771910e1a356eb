// Package health implements the health command.
package health

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/aishield/internal/health"
)

// NewCommand creates the health command for the given build version.
func NewCommand(version string) *cobra.Command {
	var templatePath string

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Report runtime and configuration status as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := health.NewChecker(version, templatePath).Check()

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(r); err != nil {
				return fmt.Errorf("encoding health report: %w", err)
			}
			if r.Status != health.StatusHealthy {
				return fmt.Errorf("status %s", r.Status)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "Template to check (defaults to the built-in one)")
	return cmd
}
