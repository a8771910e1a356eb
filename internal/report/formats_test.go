package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Veraticus/aishield/internal/apperrors"
	"github.com/Veraticus/aishield/internal/models"
	"github.com/Veraticus/aishield/pkg/logger"
)

func TestListFormats(t *testing.T) {
	assert.Equal(t, []string{"html", "json", "pdf", "yaml"}, ListFormats())
}

func TestGetFormat(t *testing.T) {
	log := logger.NewMockLogger()
	for _, name := range ListFormats() {
		f, err := GetFormat(name, log)
		require.NoError(t, err, name)
		assert.Equal(t, name, f.Name())
		assert.NotEmpty(t, f.Description())
	}

	_, err := GetFormat("docx", log)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown report format")
}

func TestRegisterFormatPanics(t *testing.T) {
	assert.Panics(t, func() { RegisterFormat("json", func(logger.Logger) (Format, error) { return nil, nil }) })
	assert.Panics(t, func() { RegisterFormat("nil-factory", nil) })
}

func TestOutputPath(t *testing.T) {
	dir := t.TempDir()
	p, err := OutputPath(dir, "audit", "pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "audit.pdf"), p)

	_, err = OutputPath(dir, "../escape", "json")
	assert.Error(t, err)
}

func generate(t *testing.T, format string, r *AuditReport) (string, *logger.MockLogger) {
	t.Helper()
	log := logger.NewMockLogger()
	f, err := GetFormat(format, log)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "nested", "audit."+format)
	require.NoError(t, f.Generate(r, out))
	return out, log
}

func TestJSONFormat(t *testing.T) {
	r := sampleReport(t)
	out, log := generate(t, "json", r)

	loaded, err := LoadJSON(out)
	require.NoError(t, err)
	assert.Equal(t, r.Summary(), loaded.Summary())
	assert.Equal(t, r.AuditCategories, loaded.AuditCategories)
	assert.True(t, log.HasMessage("INFO", "Generated JSON report"))
}

func TestLoadJSONErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadJSON(filepath.Join(dir, "missing.json"))
	assert.True(t, apperrors.IsConfiguration(err))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	_, err = LoadJSON(bad)
	assert.True(t, apperrors.IsConfiguration(err))

	noEnv := filepath.Join(dir, "noenv.json")
	require.NoError(t, os.WriteFile(noEnv, []byte(`{"audit_categories": []}`), 0o600))
	_, err = LoadJSON(noEnv)
	assert.True(t, apperrors.IsConfiguration(err))
}

func TestLoadJSONAcceptsPlaceholderSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "placeholder.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "user_environment": {"platform": "Custom", "agent_mode": false, "connectors": [], "vector_store": null, "sensitive_data_types": []},
  "audit_categories": [],
  "summary": {"overall_score": "auto", "overall_risk": "auto", "report_generated": "auto"}
}`), 0o600))

	r, err := LoadJSON(path)
	require.NoError(t, err)
	assert.True(t, r.GeneratedAt.IsZero())
	assert.InDelta(t, 0.0, r.OverallScore(), 1e-9)
}

func TestYAMLFormat(t *testing.T) {
	r := sampleReport(t)
	out, _ := generate(t, "yaml", r)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	summary := doc["summary"].(map[string]any)
	assert.InDelta(t, 6.5, summary["overall_score"], 1e-9)
	assert.Equal(t, "Medium", summary["overall_risk"])
	assert.Len(t, doc["audit_categories"], 2)
}

func TestHTMLFormat(t *testing.T) {
	r := sampleReport(t)
	out, log := generate(t, "html", r)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	html := string(data)

	assert.Contains(t, html, "AI Shield Security Audit Report")
	assert.Contains(t, html, "Identity &amp; Access")
	assert.Contains(t, html, "Multi-factor authentication is disabled.")
	assert.Contains(t, html, "Slack, Jira")
	assert.Contains(t, html, "Mfa Enabled")
	assert.Contains(t, html, "6.50")
	assert.True(t, log.HasMessage("INFO", "Generated HTML report"))
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Privileged Access Review", humanize("privileged_access_review"))
	assert.Equal(t, "Is MFA enforced?", humanize("Is MFA enforced?"))
}

func TestPDFFormat(t *testing.T) {
	r := sampleReport(t)
	out, log := generate(t, "pdf", r)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	pages, ok := log.ArgValue("Generated PDF report", "pages")
	require.True(t, ok)
	assert.Equal(t, 1, pages)
}

func TestPDFPaginates(t *testing.T) {
	var results []models.CategoryResult
	for i := 0; i < 12; i++ {
		c := category(fmt.Sprintf("Category %d", i), 4, models.RiskHigh)
		for j := 0; j < 8; j++ {
			c.Findings = append(c.Findings, models.Finding{
				Text:     strings.Repeat(fmt.Sprintf("finding %d detail ", j), 12),
				Severity: models.LevelHigh,
			})
		}
		results = append(results, c)
	}
	r, err := NewAggregator().Build(testEnvironment(), results)
	require.NoError(t, err)

	doc := NewPDFGenerator(logger.NewMockLogger()).Render(r)
	require.NoError(t, doc.Error())
	assert.Greater(t, doc.PageCount(), 1)
}

func TestWrapText(t *testing.T) {
	width := func(s string) float64 { return float64(len(s)) }

	tests := []struct {
		name     string
		text     string
		want     []string
		maxWidth float64
	}{
		{name: "fits", text: "short line", maxWidth: 20, want: []string{"short line"}},
		{name: "wraps on words", text: "aaa bbb ccc ddd", maxWidth: 8, want: []string{"aaa bbb", "ccc ddd"}},
		{name: "long word alone", text: "a supercalifragilistic b", maxWidth: 6, want: []string{"a", "supercalifragilistic", "b"}},
		{name: "collapses whitespace", text: "  x   y  ", maxWidth: 10, want: []string{"x y"}},
		{name: "empty", text: "", maxWidth: 10, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapText(tt.text, tt.maxWidth, width))
		})
	}
}

func TestJSONExportMatchesMarshal(t *testing.T) {
	r := sampleReport(t)
	out, _ := generate(t, "json", r)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	want, err := json.Marshal(r)
	require.NoError(t, err)

	var compact bytes.Buffer
	require.NoError(t, json.Compact(&compact, data))
	assert.JSONEq(t, string(want), compact.String())
}
