// Package example implements writing starter input files.
package example

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/aishield/internal/config"
	"github.com/Veraticus/aishield/internal/models"
	"github.com/Veraticus/aishield/pkg/pathutil"
)

// File names written by the example command.
const (
	EnvironmentFile = "environment.yaml"
	AnswersFile     = "answers.yaml"
	ConfigFile      = "aishield.yaml"
)

const environmentExample = `# Declared deployment environment. Values are locked for the whole audit.
platform: OpenAI         # OpenAI, Azure, Anthropic, Google or Custom
vector_store: Pinecone   # leave empty if there is none
connectors:
  - Slack
  - Google Drive
sensitive_data_types:
  - PII
agent_mode: true
`

const configExample = `# AI Shield configuration.
output_dir: reports
formats:
  - json
  - pdf
rate_limit:
  max_requests: 50
  window: 60s
# template: questions.yml
# aws:
#   profile: default
#   region: us-east-1
# s3:
#   bucket: my-audit-reports
#   prefix: ai-shield
`

// NewCommand creates the example command.
func NewCommand() *cobra.Command {
	var (
		dir   string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "example",
		Short: "Write example environment, answers and config files",
		Example: `  aishield example
  aishield example --dir ./audit --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			files, err := Write(dir, force)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, f := range files {
				fmt.Fprintf(out, "✅ Wrote %s\n", f)
			}
			fmt.Fprintf(out, "\nNext: aishield run --config %s --environment %s --answers %s\n",
				files[2], files[0], files[1])
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory to write into")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")

	return cmd
}

// Write creates the environment, answers and config examples in dir and returns
// their paths in that order. Existing files are kept unless force is set.
func Write(dir string, force bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}

	paths := make([]string, 0, 3)
	for _, name := range []string{EnvironmentFile, AnswersFile, ConfigFile} {
		p, err := pathutil.JoinAndValidate(dir, name)
		if err != nil {
			return nil, err
		}
		if !force {
			if _, err := os.Stat(p); err == nil {
				return nil, fmt.Errorf("%s already exists (use --force to overwrite)", p)
			} else if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("checking %s: %w", p, err)
			}
		}
		paths = append(paths, p)
	}

	if err := os.WriteFile(paths[0], []byte(environmentExample), 0o600); err != nil {
		return nil, fmt.Errorf("writing environment example: %w", err)
	}
	if err := config.WriteAnswers(paths[1], Answers(config.DefaultTemplate())); err != nil {
		return nil, err
	}
	if err := os.WriteFile(paths[2], []byte(configExample), 0o600); err != nil {
		return nil, fmt.Errorf("writing config example: %w", err)
	}
	return paths, nil
}

// Answers fills every question of tmpl, cycling through the answer choices so
// the example exercises each of them.
func Answers(tmpl *config.Template) config.Answers {
	choices := []models.Answer{models.AnswerYes, models.AnswerNo, models.AnswerUnknown}
	answers := make(config.Answers, len(tmpl.Sections))
	i := 0
	for _, s := range tmpl.Sections {
		answers[s.Name] = make(map[string]models.Answer, len(s.Questions))
		for _, q := range s.Questions {
			answers[s.Name][q] = choices[i%len(choices)]
			i++
		}
	}
	return answers
}

