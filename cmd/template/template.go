// Package template implements questionnaire template commands.
package template

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Veraticus/aishield/internal/audit"
	"github.com/Veraticus/aishield/internal/config"
)

// NewCommand creates the template command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Inspect and validate questionnaire templates",
	}
	cmd.AddCommand(newValidateCommand(), newShowCommand())
	return cmd
}

func newValidateCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a questionnaire template",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			tmpl, err := config.LoadTemplate(path)
			if err != nil {
				fmt.Fprintln(out, "❌ Template is invalid")
				return err
			}

			fmt.Fprintln(out, "✅ Template is valid")
			fmt.Fprintf(out, "\n📋 %d sections, %d questions\n", len(tmpl.Sections), tmpl.TotalQuestions())

			registry := audit.DefaultRegistry()
			for _, s := range tmpl.Sections {
				mode := "built-in rules"
				if !registry.Has(s.Name) {
					mode = "generic yes/no average"
				}
				fmt.Fprintf(out, "  • %s: %d questions (%s)\n", s.Name, len(s.Questions), mode)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "template", "t", "", "Template file (defaults to the built-in one)")
	return cmd
}

func newShowCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a template, the built-in one by default",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tmpl, err := config.LoadTemplate(path)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(tmpl); err != nil {
				return fmt.Errorf("encoding template: %w", err)
			}
			return enc.Close()
		},
	}
	cmd.Flags().StringVarP(&path, "template", "t", "", "Template file")
	return cmd
}
