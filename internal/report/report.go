// Package report builds audit reports from category results and renders them as
// JSON, YAML, HTML and PDF documents.
package report

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/aishield/internal/models"
	"github.com/Veraticus/aishield/internal/scoring"
)

// TimestampLayout is how report_generated is rendered.
const TimestampLayout = "2006-01-02T15:04:05Z"

// AuditReport is the aggregate of one audit run. Overall values are derived from
// the categories on every call and never stored.
type AuditReport struct {
	GeneratedAt     time.Time
	UserEnvironment *models.UserEnvironment
	AuditCategories []models.CategoryResult
	ID              uuid.UUID
}

// Summary is the roll-up block of an exported report.
type Summary struct {
	OverallScore    float64          `json:"overall_score" yaml:"overall_score"`
	OverallRisk     models.RiskLevel `json:"overall_risk" yaml:"overall_risk"`
	ReportGenerated string           `json:"report_generated" yaml:"report_generated"`
}

// OverallScore is the mean of the category scores rounded to 2 decimals, or 0 when
// there are no categories.
func (r *AuditReport) OverallScore() float64 {
	scores := make([]float64, len(r.AuditCategories))
	for i, c := range r.AuditCategories {
		scores[i] = c.Score
	}
	return scoring.Mean(scores)
}

// OverallRisk applies the risk thresholds to OverallScore.
func (r *AuditReport) OverallRisk() models.RiskLevel {
	return scoring.RiskFromScore(r.OverallScore())
}

// ReportGenerated is the UTC build timestamp.
func (r *AuditReport) ReportGenerated() string {
	return r.GeneratedAt.UTC().Format(TimestampLayout)
}

// Summary returns the derived roll-up.
func (r *AuditReport) Summary() Summary {
	return Summary{
		OverallScore:    r.OverallScore(),
		OverallRisk:     r.OverallRisk(),
		ReportGenerated: r.ReportGenerated(),
	}
}

// Category returns the result for name.
func (r *AuditReport) Category(name string) (models.CategoryResult, bool) {
	for _, c := range r.AuditCategories {
		if c.Category == name {
			return c, true
		}
	}
	return models.CategoryResult{}, false
}

// document is the exported shape of a report.
type document struct {
	UserEnvironment *models.UserEnvironment `json:"user_environment" yaml:"user_environment"`
	AuditCategories []models.CategoryResult `json:"audit_categories" yaml:"audit_categories"`
	Summary         Summary                 `json:"summary" yaml:"summary"`
}

func (r *AuditReport) document() document {
	categories := r.AuditCategories
	if categories == nil {
		categories = []models.CategoryResult{}
	}
	env := r.UserEnvironment.Clone()
	if env == nil {
		env = &models.UserEnvironment{Connectors: []string{}, SensitiveDataTypes: []string{}}
	}
	return document{
		UserEnvironment: env,
		AuditCategories: categories,
		Summary:         r.Summary(),
	}
}

// MarshalJSON emits the export shape with a freshly computed summary.
func (r *AuditReport) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.document())
}

// UnmarshalJSON reads an exported report. Only the timestamp is taken from the
// stored summary, which may still hold placeholders; score and risk are recomputed
// from the categories. A timestamp that does not parse leaves GeneratedAt zero.
func (r *AuditReport) UnmarshalJSON(data []byte) error {
	var doc struct {
		UserEnvironment *models.UserEnvironment `json:"user_environment"`
		AuditCategories []models.CategoryResult `json:"audit_categories"`
		Summary         struct {
			ReportGenerated string `json:"report_generated"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	var generated time.Time
	if t, err := time.Parse(TimestampLayout, doc.Summary.ReportGenerated); err == nil {
		generated = t
	}

	*r = AuditReport{
		ID:              uuid.New(),
		UserEnvironment: doc.UserEnvironment,
		AuditCategories: doc.AuditCategories,
		GeneratedAt:     generated,
	}
	return nil
}
