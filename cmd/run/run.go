// Package run implements the audit command.
package run

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/user"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Veraticus/aishield/internal/audit"
	"github.com/Veraticus/aishield/internal/auditor"
	"github.com/Veraticus/aishield/internal/config"
	"github.com/Veraticus/aishield/internal/environment"
	"github.com/Veraticus/aishield/internal/ratelimit"
	"github.com/Veraticus/aishield/internal/report"
	"github.com/Veraticus/aishield/internal/security"
	"github.com/Veraticus/aishield/internal/ui/wizard"
	"github.com/Veraticus/aishield/pkg/logger"
	"github.com/Veraticus/aishield/pkg/pathutil"
)

// Options are the flags of the run command.
type Options struct {
	ConfigPath      string
	EnvironmentPath string
	AnswersPath     string
	TemplatePath    string
	OutputDir       string
	Name            string
	Formats         []string
	Interactive     bool
	Publish         bool

	// Limiter is shared across runs in one process. Nil builds one from the config.
	Limiter *ratelimit.Limiter
	// CallerID is charged against the limiter. Empty uses CallerIdentity.
	CallerID string
}

// NewCommand creates the run command.
func NewCommand() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run an audit and export the report",
		Long: `Run an audit for a locked environment.

The environment file declares the deployment (platform, connectors, vector store,
sensitive data, agent mode). Answers come from an answers file, the interactive
questionnaire, or both; unanswered questions stay unanswered.`,
		Example: `  # Audit from files and write JSON + PDF
  aishield run --environment env.yaml --answers answers.yaml --format json,pdf

  # Fill in the questionnaire interactively
  aishield run --environment env.yaml --interactive

  # Publish the exported files to the configured S3 bucket
  aishield run --config aishield.yaml --environment env.yaml --answers answers.yaml --publish`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Execute(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to config file")
	cmd.Flags().StringVarP(&opts.EnvironmentPath, "environment", "e", "", "Environment file (required)")
	cmd.Flags().StringVarP(&opts.AnswersPath, "answers", "a", "", "Answers file")
	cmd.Flags().StringVarP(&opts.TemplatePath, "template", "t", "", "Question template (defaults to the built-in one)")
	cmd.Flags().StringVarP(&opts.OutputDir, "output", "o", "", "Output directory (overrides config)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "Base file name for exports (default ai-shield-audit-<timestamp>)")
	cmd.Flags().StringSliceVarP(&opts.Formats, "format", "f", nil, "Export formats: json, yaml, html, pdf (overrides config)")
	cmd.Flags().BoolVarP(&opts.Interactive, "interactive", "i", false, "Answer the questionnaire in the terminal")
	cmd.Flags().BoolVar(&opts.Publish, "publish", false, "Upload exports to the configured S3 bucket")

	_ = cmd.MarkFlagRequired("environment")

	return cmd
}

// Execute runs the audit pipeline for opts and prints a summary to cmd's output.
func Execute(ctx context.Context, cmd *cobra.Command, opts *Options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log := logger.GetGlobalLogger()

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.OutputDir != "" {
		cfg.OutputDir = opts.OutputDir
	}
	if len(opts.Formats) > 0 {
		cfg.Formats = opts.Formats
	}
	if opts.TemplatePath != "" {
		cfg.Template = opts.TemplatePath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	tmpl, err := config.LoadTemplate(cfg.Template)
	if err != nil {
		return fmt.Errorf("loading template: %w", err)
	}

	in, err := environment.LoadInput(opts.EnvironmentPath)
	if err != nil {
		return err
	}

	answers := config.Answers{}
	if opts.AnswersPath != "" {
		answers, err = config.LoadAnswers(opts.AnswersPath)
		if err != nil {
			return err
		}
	}

	if opts.Interactive {
		answers, err = ask(tmpl, answers)
		if err != nil {
			return err
		}
	}

	limiter := opts.Limiter
	if limiter == nil {
		limiter = ratelimit.New(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
	}
	caller := opts.CallerID
	if caller == "" {
		caller = CallerIdentity()
	}

	session := auditor.NewSession(tmpl, audit.DefaultRegistry(),
		auditor.WithLogger(log),
		auditor.WithLimiter(limiter),
	)
	if _, err := session.LockEnvironment(*in); err != nil {
		return err
	}
	if err := session.LoadAnswers(answers); err != nil {
		return err
	}

	answered, total := session.Progress()
	log.Info("Running audit", "answered", answered, "questions", total, "sections", len(tmpl.Sections))

	r, err := session.Run(caller)
	if err != nil {
		return err
	}

	name := opts.Name
	if name == "" {
		name = "ai-shield-audit-" + r.GeneratedAt.Format("20060102-150405")
	}
	files, err := export(r, cfg, name, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, wizard.RenderSummary(r))
	for _, f := range files {
		fmt.Fprintf(out, "📄 %s\n", f)
	}

	if opts.Publish {
		uris, err := publish(ctx, cfg, files, log)
		if err != nil {
			return err
		}
		for _, u := range uris {
			fmt.Fprintf(out, "☁️  %s\n", u)
		}
	}
	return nil
}

// CallerIdentity identifies the operator running the CLI as a hash of the OS user
// and host, so repeated runs are charged to the same caller.
func CallerIdentity() string {
	name := "unknown"
	if u, err := user.Current(); err == nil && u.Username != "" {
		name = u.Username
	}
	host, err := os.Hostname()
	if err != nil {
		host = "localhost"
	}
	return security.ShortHash(name + "@" + host)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	valid, err := pathutil.ValidateConfigPath(path)
	if err != nil {
		return nil, fmt.Errorf("invalid config path: %w", err)
	}
	return config.LoadConfig(valid)
}

func ask(tmpl *config.Template, known config.Answers) (config.Answers, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("--interactive requires a terminal")
	}
	answers, done, err := wizard.Run(tmpl, known)
	if err != nil {
		return nil, fmt.Errorf("running questionnaire: %w", err)
	}
	if !done {
		return nil, errors.New("questionnaire aborted")
	}
	return answers, nil
}

func export(r *report.AuditReport, cfg *config.Config, base string, log logger.Logger) ([]string, error) {
	formats := uniqueFormats(cfg.Formats)
	written := make([]string, 0, len(formats))
	for _, format := range formats {
		f, err := report.GetFormat(format, log)
		if err != nil {
			return nil, err
		}
		path, err := report.OutputPath(cfg.OutputDir, base, format)
		if err != nil {
			return nil, fmt.Errorf("output path for %s: %w", format, err)
		}
		if err := f.Generate(r, path); err != nil {
			return nil, fmt.Errorf("generating %s report: %w", format, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func uniqueFormats(formats []string) []string {
	seen := make(map[string]bool, len(formats))
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

func publish(ctx context.Context, cfg *config.Config, files []string, log logger.Logger) ([]string, error) {
	if cfg.S3 == nil {
		return nil, errors.New("--publish requires an s3 section in the config file")
	}
	region := cfg.S3.Region
	if region == "" {
		region = cfg.AWS.Region
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	awsCfg, err := environment.LoadAWSConfig(ctx, cfg.AWS.Profile, region)
	if err != nil {
		return nil, err
	}
	pub := report.NewS3Publisher(s3.NewFromConfig(awsCfg), cfg.S3.Bucket, cfg.S3.Prefix, log)
	return pub.Publish(ctx, files...)
}
