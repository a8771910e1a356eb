package audit

import (
	"slices"
	"sort"
	"strings"

	"github.com/Veraticus/aishield/internal/models"
)

// Condition requires the answer stored under Key to normalize to Is.
type Condition struct {
	Key string
	Is  models.Answer
}

// Rule is one check in a category. Keyed rules look up a well-known answer key;
// text rules match any question whose text contains Contains (case-insensitive).
// A rule fires at most once per evaluation.
type Rule struct {
	Recommendation *models.Recommendation
	Finding        *models.Finding
	Key            string
	Contains       string
	Triggers       []models.Answer
	Requires       []Condition
	Penalty        float64
}

// Fires reports whether the rule is triggered by answers. questions fixes the scan
// order for text rules.
func (r Rule) Fires(questions []string, answers map[string]models.Answer) bool {
	for _, c := range r.Requires {
		a, ok := lookup(answers, c.Key)
		if !ok || !a.Is(c.Is) {
			return false
		}
	}

	if r.Key != "" {
		a, ok := lookup(answers, r.Key)
		return ok && r.triggeredBy(a)
	}

	needle := strings.ToLower(r.Contains)
	for _, q := range scanOrder(questions, answers) {
		if !strings.Contains(strings.ToLower(q), needle) {
			continue
		}
		if a, ok := answers[q]; ok && r.triggeredBy(a) {
			return true
		}
	}
	return false
}

func (r Rule) triggeredBy(a models.Answer) bool {
	return slices.Contains(r.Triggers, a.Normalize())
}

// lookup finds key exactly, falling back to a case-insensitive match.
func lookup(answers map[string]models.Answer, key string) (models.Answer, bool) {
	if a, ok := answers[key]; ok {
		return a, true
	}
	for _, k := range sortedKeys(answers) {
		if strings.EqualFold(k, key) {
			return answers[k], true
		}
	}
	return "", false
}

// scanOrder lists declared questions first, then any extra answered keys sorted.
func scanOrder(questions []string, answers map[string]models.Answer) []string {
	order := make([]string, 0, len(answers))
	seen := make(map[string]bool, len(questions))
	for _, q := range questions {
		if _, ok := answers[q]; ok && !seen[q] {
			order = append(order, q)
			seen[q] = true
		}
	}
	for _, k := range sortedKeys(answers) {
		if !seen[k] {
			order = append(order, k)
		}
	}
	return order
}

func sortedKeys(answers map[string]models.Answer) []string {
	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
