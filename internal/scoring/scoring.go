// Package scoring turns answer sets into numeric scores and risk labels.
package scoring

import (
	"math"

	"github.com/Veraticus/aishield/internal/models"
)

// Thresholds shared by category and report risk labels.
const (
	LowRiskThreshold    = 8.5
	MediumRiskThreshold = 6.5

	// NeutralScore is returned for an empty answer set.
	NeutralScore = 5.0
	// MaxScore is the top of the 0–10 scale.
	MaxScore = 10.0
)

// ScoreYesNo averages answers mapped Yes=1, No=0, anything else 0.5, scaled to 0–10
// and rounded to two decimals.
func ScoreYesNo(answers map[string]models.Answer) float64 {
	if len(answers) == 0 {
		return NeutralScore
	}

	total := 0.0
	for _, a := range answers {
		switch a.Normalize() {
		case models.AnswerYes:
			total += 1.0
		case models.AnswerNo:
		default:
			total += 0.5
		}
	}
	return Round2(total / float64(len(answers)) * MaxScore)
}

// RiskFromScore maps a score onto a risk label. Boundaries belong to the lower-risk band.
func RiskFromScore(score float64) models.RiskLevel {
	if score >= LowRiskThreshold {
		return models.RiskLow
	}
	if score >= MediumRiskThreshold {
		return models.RiskMedium
	}
	return models.RiskHigh
}

// Mean returns the rounded average of scores, or 0 for none.
func Mean(scores []float64) float64 {
	if len(scores) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return Round2(sum / float64(len(scores)))
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
