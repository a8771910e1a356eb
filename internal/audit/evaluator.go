// Package audit evaluates questionnaire answers per category.
//
// Each category is described by a Definition: a scoring policy plus an ordered list of
// rules. Categories are resolved through an explicit Registry populated at startup.
package audit

import (
	"github.com/Veraticus/aishield/internal/models"
	"github.com/Veraticus/aishield/internal/scoring"
)

// Evaluator produces a CategoryResult from a category's answers.
type Evaluator interface {
	Evaluate(answers map[string]models.Answer) models.CategoryResult
	Name() string
	Questions() []string
}

// Definition describes how one category is scored and which rules it applies.
type Definition struct {
	Policy           scoring.Policy
	Name             string
	DefaultQuestions []string
	Rules            []Rule
}

// CategoryEvaluator evaluates answers against a Definition.
type CategoryEvaluator struct {
	def       Definition
	questions []string
}

// NewEvaluator binds def to the question list it will be asked about. An empty list
// falls back to the definition's default questions.
func NewEvaluator(def Definition, questions []string) *CategoryEvaluator {
	if len(questions) == 0 {
		questions = def.DefaultQuestions
	}
	if def.Policy == nil {
		def.Policy = scoring.AveragedYesNo{}
	}
	return &CategoryEvaluator{
		def:       def,
		questions: append([]string{}, questions...),
	}
}

// Name returns the category name.
func (e *CategoryEvaluator) Name() string {
	return e.def.Name
}

// Questions returns a copy of the questions this evaluator was built with.
func (e *CategoryEvaluator) Questions() []string {
	return append([]string{}, e.questions...)
}

// Policy returns the scoring policy in use.
func (e *CategoryEvaluator) Policy() scoring.Policy {
	return e.def.Policy
}

// Evaluate applies every rule in declaration order and scores the category.
// It never mutates answers and never fails; absent keys simply do not match.
// An evaluator built without questions reports the answered keys, sorted.
func (e *CategoryEvaluator) Evaluate(answers map[string]models.Answer) models.CategoryResult {
	findings := []models.Finding{}
	recs := []models.Recommendation{}
	penalty := 0.0

	for _, rule := range e.def.Rules {
		if !rule.Fires(e.questions, answers) {
			continue
		}
		if rule.Finding != nil {
			findings = append(findings, *rule.Finding)
		}
		if rule.Recommendation != nil {
			recs = append(recs, *rule.Recommendation)
		}
		penalty += rule.Penalty
	}

	score := e.def.Policy.Score(answers, penalty)

	questions := e.Questions()
	if len(questions) == 0 {
		questions = sortedKeys(answers)
	}

	return models.CategoryResult{
		Category:        e.def.Name,
		Score:           score,
		RiskLevel:       scoring.RiskFromScore(score),
		Questions:       questions,
		Answers:         models.CloneAnswers(answers),
		Findings:        findings,
		Recommendations: recs,
	}
}
