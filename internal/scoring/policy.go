package scoring

import "github.com/Veraticus/aishield/internal/models"

// Policy computes a category score. penalty is the sum of deductions from triggered
// rules; policies that do not deduct ignore it.
type Policy interface {
	Score(answers map[string]models.Answer, penalty float64) float64
	Name() string
}

// AveragedYesNo scores a category by averaging every answer it was given.
type AveragedYesNo struct{}

// Score implements Policy.
func (AveragedYesNo) Score(answers map[string]models.Answer, _ float64) float64 {
	return ScoreYesNo(answers)
}

// Name implements Policy.
func (AveragedYesNo) Name() string {
	return "averaged"
}

// FixedDeduction starts from Base and subtracts rule penalties, never dropping below zero.
type FixedDeduction struct {
	Base float64
}

// NewFixedDeduction returns the standard policy starting at 10.
func NewFixedDeduction() FixedDeduction {
	return FixedDeduction{Base: MaxScore}
}

// Score implements Policy.
func (p FixedDeduction) Score(_ map[string]models.Answer, penalty float64) float64 {
	return Round2(max(p.Base-penalty, 0))
}

// Name implements Policy.
func (FixedDeduction) Name() string {
	return "fixed-deduction"
}
