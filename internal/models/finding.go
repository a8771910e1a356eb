// Package models contains the data structures shared across the auditor.
package models

// Finding is a discovered risk with a severity.
type Finding struct {
	Text     string `json:"text" yaml:"text"`
	Severity Level  `json:"severity" yaml:"severity"`
}

// Recommendation is a suggested remediation with an effort estimate.
type Recommendation struct {
	Text   string `json:"text" yaml:"text"`
	Effort Level  `json:"effort" yaml:"effort"`
}

// CategoryResult is the evaluated outcome of one audit category.
type CategoryResult struct {
	Category        string            `json:"category" yaml:"category"`
	Score           float64           `json:"score" yaml:"score"`
	RiskLevel       RiskLevel         `json:"risk_level" yaml:"risk_level"`
	Questions       []string          `json:"questions" yaml:"questions"`
	Answers         map[string]Answer `json:"answers" yaml:"answers"`
	Findings        []Finding         `json:"findings" yaml:"findings"`
	Recommendations []Recommendation  `json:"recommendations" yaml:"recommendations"`
}

// CountBySeverity tallies findings per severity.
func (r CategoryResult) CountBySeverity() map[Level]int {
	counts := make(map[Level]int, 3)
	for _, f := range r.Findings {
		counts[f.Severity]++
	}
	return counts
}
