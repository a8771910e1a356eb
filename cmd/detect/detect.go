// Package detect implements pre-filling Identity & Access answers from AWS IAM.
package detect

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/spf13/cobra"

	"github.com/Veraticus/aishield/internal/audit"
	"github.com/Veraticus/aishield/internal/config"
	"github.com/Veraticus/aishield/internal/environment"
	"github.com/Veraticus/aishield/internal/models"
	"github.com/Veraticus/aishield/pkg/logger"
)

// Options are the flags of the detect command.
type Options struct {
	Profile string
	Region  string
	Output  string
	Merge   string
	Timeout time.Duration
}

// NewCommand creates the detect command.
func NewCommand() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Pre-fill Identity & Access answers from AWS IAM",
		Long: `Probe an AWS account and write the answers it can observe.

mfa_enabled comes from the account summary and key_rotation from the age of
active access keys. Everything else is left for the operator to answer.`,
		Example: `  aishield detect --profile prod --region us-east-1 --output answers.yaml
  aishield detect --merge answers.yaml --output answers.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
			defer cancel()

			awsCfg, err := environment.LoadAWSConfig(ctx, opts.Profile, opts.Region)
			if err != nil {
				return err
			}
			probe := environment.NewIAMProbe(iam.NewFromConfig(awsCfg), logger.GetGlobalLogger())

			n, err := Execute(ctx, probe, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Wrote %d detected answers to %s\n", n, opts.Output)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Profile, "profile", "", "AWS shared config profile")
	cmd.Flags().StringVar(&opts.Region, "region", "", "AWS region")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "answers.yaml", "Answers file to write")
	cmd.Flags().StringVar(&opts.Merge, "merge", "", "Existing answers file to merge detected answers into")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 2*time.Minute, "Timeout for AWS calls")

	return cmd
}

// Prober answers Identity & Access questions.
type Prober interface {
	IdentityAnswers(ctx context.Context) (map[string]models.Answer, error)
}

// Execute runs the probe, merges over opts.Merge when set, writes opts.Output and
// returns how many answers were detected.
func Execute(ctx context.Context, probe Prober, opts *Options) (int, error) {
	detected, err := probe.IdentityAnswers(ctx)
	if err != nil {
		return 0, err
	}

	answers := config.Answers{}
	if opts.Merge != "" {
		answers, err = config.LoadAnswers(opts.Merge)
		if err != nil {
			return 0, err
		}
	}
	if answers[audit.CategoryIdentityAccess] == nil {
		answers[audit.CategoryIdentityAccess] = make(map[string]models.Answer, len(detected))
	}
	for k, v := range detected {
		answers[audit.CategoryIdentityAccess][k] = v
	}

	if err := config.WriteAnswers(opts.Output, answers); err != nil {
		return 0, err
	}
	return len(detected), nil
}
