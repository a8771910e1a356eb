// Package report implements re-exporting a saved JSON audit.
package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/aishield/internal/report"
	"github.com/Veraticus/aishield/pkg/logger"
)

// Options are the flags of the report command.
type Options struct {
	Input     string
	OutputDir string
	Formats   []string
}

// NewCommand creates the report command.
func NewCommand() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export a saved JSON audit to other formats",
		Long: `Read an audit previously written as JSON and export it again.

The summary is recomputed from the category results, so hand-edited or
placeholder summary values are ignored.`,
		Example: `  aishield report --input audit.json --format pdf,html`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			files, err := Execute(opts)
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Fprintf(cmd.OutOrStdout(), "📄 %s\n", f)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "JSON audit file (required)")
	cmd.Flags().StringVarP(&opts.OutputDir, "output", "o", "", "Output directory (defaults to the input's directory)")
	cmd.Flags().StringSliceVarP(&opts.Formats, "format", "f", []string{"pdf"}, "Export formats: json, yaml, html, pdf")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// Execute loads opts.Input and writes each requested format next to it.
func Execute(opts *Options) ([]string, error) {
	log := logger.GetGlobalLogger()

	r, err := report.LoadJSON(opts.Input)
	if err != nil {
		return nil, err
	}

	dir := opts.OutputDir
	if dir == "" {
		dir = filepath.Dir(opts.Input)
	}
	base := strings.TrimSuffix(filepath.Base(opts.Input), filepath.Ext(opts.Input))

	var files []string
	for _, name := range opts.Formats {
		name = strings.ToLower(strings.TrimSpace(name))
		format, err := report.GetFormat(name, log)
		if err != nil {
			return nil, err
		}
		path, err := report.OutputPath(dir, base, name)
		if err != nil {
			return nil, fmt.Errorf("output path for %s: %w", name, err)
		}
		if err := format.Generate(r, path); err != nil {
			return nil, fmt.Errorf("generating %s report: %w", name, err)
		}
		files = append(files, path)
	}
	return files, nil
}
