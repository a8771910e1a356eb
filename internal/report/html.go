package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Veraticus/aishield/internal/models"
	"github.com/Veraticus/aishield/pkg/logger"
)

//go:embed templates/*
var templateFS embed.FS

// HTMLGenerator renders a standalone HTML report.
type HTMLGenerator struct {
	logger logger.Logger
	tmpl   *template.Template
}

// NewHTMLGenerator parses the embedded report template.
func NewHTMLGenerator(log logger.Logger) (*HTMLGenerator, error) {
	tmpl, err := template.New("report").Funcs(templateFuncs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &HTMLGenerator{logger: log, tmpl: tmpl}, nil
}

// Generate creates the HTML report.
func (g *HTMLGenerator) Generate(report *AuditReport, outputPath string) error {
	data := prepareTemplateData(report)
	err := writeFile(outputPath, func(w io.Writer) error {
		if err := g.tmpl.ExecuteTemplate(w, "report.html", data); err != nil {
			return fmt.Errorf("executing template: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	g.logger.Info("Generated HTML report", "path", outputPath, "overall_risk", data.Summary.OverallRisk)
	return nil
}

// Name returns the format identifier.
func (g *HTMLGenerator) Name() string {
	return "html"
}

// Description returns a human-readable description.
func (g *HTMLGenerator) Description() string {
	return "Standalone HTML report with per-category findings"
}

// TemplateData holds all data for the report template.
type TemplateData struct {
	Environment *models.UserEnvironment
	Summary     Summary
	Categories  []CategoryView
	HighCount   int
	MediumCount int
	LowCount    int
}

// CategoryView is one category prepared for display.
type CategoryView struct {
	Result    models.CategoryResult
	Questions []AnsweredQuestion
}

// AnsweredQuestion pairs a question with the raw answer given, if any.
type AnsweredQuestion struct {
	Text     string
	Answer   models.Answer
	Answered bool
}

func prepareTemplateData(report *AuditReport) *TemplateData {
	data := &TemplateData{
		Environment: report.UserEnvironment,
		Summary:     report.Summary(),
	}
	if data.Environment == nil {
		data.Environment = &models.UserEnvironment{}
	}

	for _, c := range report.AuditCategories {
		view := CategoryView{Result: c}
		for _, q := range c.Questions {
			a, ok := c.Answers[q]
			view.Questions = append(view.Questions, AnsweredQuestion{Text: q, Answer: a, Answered: ok})
		}
		counts := c.CountBySeverity()
		data.HighCount += counts[models.LevelHigh]
		data.MediumCount += counts[models.LevelMedium]
		data.LowCount += counts[models.LevelLow]
		data.Categories = append(data.Categories, view)
	}
	return data
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"levelClass": func(level string) string {
			return "level-" + strings.ToLower(level)
		},
		"riskIcon": func(risk models.RiskLevel) string {
			switch risk {
			case models.RiskHigh:
				return "🔴"
			case models.RiskMedium:
				return "🟡"
			case models.RiskLow:
				return "🟢"
			default:
				return "⚪"
			}
		},
		"humanize": humanize,
		"score": func(v float64) string {
			return fmt.Sprintf("%.2f", v)
		},
		"join": strings.Join,
	}
}

// humanize turns an answer key like "mfa_enabled" into "Mfa Enabled". Question
// text is returned unchanged.
func humanize(key string) string {
	if strings.ContainsAny(key, " ?") {
		return key
	}
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}
