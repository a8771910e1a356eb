// Package main is the entry point for the AI Shield auditor CLI.
// AI Shield scores an AI assistant deployment against a security questionnaire,
// then exports the resulting audit as JSON, YAML, HTML or PDF.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/aishield/cmd/detect"
	"github.com/Veraticus/aishield/cmd/example"
	"github.com/Veraticus/aishield/cmd/health"
	"github.com/Veraticus/aishield/cmd/report"
	"github.com/Veraticus/aishield/cmd/run"
	"github.com/Veraticus/aishield/cmd/template"
	"github.com/Veraticus/aishield/pkg/logger"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		debug     bool
		logFormat string
	)

	root := &cobra.Command{
		Use:   "aishield",
		Short: "🛡  AI Shield security auditor",
		Long: `AI Shield audits an AI assistant deployment.

Lock the deployment environment, answer the questionnaire, and get a scored
report per category with findings and recommendations.`,
		Version:       fmt.Sprintf("%s (built %s)", version, buildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger.SetupLogger(debug, logFormat)
		},
	}

	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text or json)")

	root.AddCommand(
		run.NewCommand(),
		report.NewCommand(),
		template.NewCommand(),
		example.NewCommand(),
		detect.NewCommand(),
		health.NewCommand(version),
	)
	return root
}
