package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Veraticus/aishield/internal/apperrors"
	"github.com/Veraticus/aishield/internal/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		check   func(t *testing.T, cfg *Config)
		name    string
		content string
		wantErr bool
	}{
		{
			name: "full config",
			content: `template: questions.yml
output_dir: reports
formats: [JSON, pdf]
rate_limit:
  max_requests: 10
  window: 30s
s3:
  bucket: audit-reports
  prefix: ai-shield/
aws:
  profile: security
  region: us-east-1
`,
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "reports", cfg.OutputDir)
				assert.Equal(t, []string{"json", "pdf"}, cfg.Formats)
				assert.Equal(t, 10, cfg.RateLimit.MaxRequests)
				assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
				require.NotNil(t, cfg.S3)
				assert.Equal(t, "audit-reports", cfg.S3.Bucket)
				assert.Equal(t, "security", cfg.AWS.Profile)
			},
		},
		{
			name:    "partial config keeps defaults",
			content: "output_dir: out\n",
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, []string{"json"}, cfg.Formats)
				assert.Equal(t, DefaultMaxRequests, cfg.RateLimit.MaxRequests)
				assert.Equal(t, DefaultWindow, cfg.RateLimit.Window)
				assert.Nil(t, cfg.S3)
			},
		},
		{
			name:    "unknown format",
			content: "formats: [docx]\n",
			wantErr: true,
		},
		{
			name:    "zero rate limit",
			content: "rate_limit:\n  max_requests: 0\n  window: 60s\n",
			wantErr: true,
		},
		{
			name:    "s3 without bucket",
			content: "s3:\n  prefix: reports/\n",
			wantErr: true,
		},
		{
			name:    "invalid yaml",
			content: "formats: [json\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeFile(t, "config.yaml", tt.content))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsConfiguration(err), "expected configuration error, got %v", err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidateNamesField(t *testing.T) {
	cfg := Default()
	cfg.RateLimit.MaxRequests = -1
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate_limit.max_requests")
}

func TestDefaultTemplate(t *testing.T) {
	tmpl := DefaultTemplate()
	assert.Equal(t, []string{"Compliance", "Identity & Access", "Integrations", "RAG Privacy", "Agent Safety"}, tmpl.SectionNames())
	assert.Equal(t, 17, tmpl.TotalQuestions())

	ia, ok := tmpl.Section("Identity & Access")
	require.True(t, ok)
	assert.Equal(t, []string{"mfa_enabled", "key_rotation", "privileged_access_review"}, ia.Questions)
	assert.Contains(t, ia.Prompt("mfa_enabled"), "multi-factor")

	comp, ok := tmpl.Section("Compliance")
	require.True(t, ok)
	assert.Equal(t, comp.Questions[0], comp.Prompt(comp.Questions[0]))
}

func TestParseTemplateKeepsDocumentOrder(t *testing.T) {
	tmpl, err := ParseTemplate([]byte(`sections:
  Zeta:
    questions: [z1]
  Alpha:
    questions: [a1, a2]
  Mid:
    questions: [m1]
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, tmpl.SectionNames())
}

func TestParseTemplateErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty document", ""},
		{"no sections", "title: x\n"},
		{"sections not a mapping", "sections: [a, b]\n"},
		{"empty section", "sections:\n  A:\n    questions: []\n"},
		{"duplicate question", "sections:\n  A:\n    questions: [q, q]\n"},
		{"blank question", "sections:\n  A:\n    questions: ['  ']\n"},
		{"malformed", "sections:\n  A: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTemplate([]byte(tt.content))
			require.Error(t, err)
			assert.True(t, apperrors.IsConfiguration(err))
		})
	}
}

func TestLoadTemplate(t *testing.T) {
	tmpl, err := LoadTemplate("")
	require.NoError(t, err)
	assert.Len(t, tmpl.Sections, 5)

	path := writeFile(t, "q.yml", "sections:\n  Custom:\n    questions: [Is it safe?]\n")
	tmpl, err = LoadTemplate(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Custom"}, tmpl.SectionNames())

	_, err = LoadTemplate(filepath.Join(t.TempDir(), "none.yml"))
	assert.True(t, apperrors.IsConfiguration(err))
}

func TestTemplateMarshalRoundTrip(t *testing.T) {
	tmpl := DefaultTemplate()

	data, err := yaml.Marshal(tmpl)
	require.NoError(t, err)

	again, err := ParseTemplate(data)
	require.NoError(t, err)
	assert.Equal(t, tmpl.SectionNames(), again.SectionNames())
	for _, s := range tmpl.Sections {
		got, ok := again.Section(s.Name)
		require.True(t, ok, s.Name)
		assert.Equal(t, s.Questions, got.Questions)
		assert.Equal(t, len(s.Prompts), len(got.Prompts))
	}
}

func TestAnswersRoundTrip(t *testing.T) {
	path := writeFile(t, "answers.yaml", `Identity & Access:
  mfa_enabled: "No"
  key_rotation: "yes"
Compliance:
  Is MFA enforced for all admin and user accounts?: Unknown
`)
	answers, err := LoadAnswers(path)
	require.NoError(t, err)
	assert.Equal(t, models.Answer("No"), answers["Identity & Access"]["mfa_enabled"])
	assert.Equal(t, models.Answer("yes"), answers["Identity & Access"]["key_rotation"])
	assert.Equal(t, models.AnswerUnknown, answers["Compliance"]["Is MFA enforced for all admin and user accounts?"])

	out := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, WriteAnswers(out, answers))
	again, err := LoadAnswers(out)
	require.NoError(t, err)
	assert.Equal(t, answers, again)

	_, err = LoadAnswers(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, apperrors.IsConfiguration(err))
}
