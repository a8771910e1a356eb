package audit

import "github.com/Veraticus/aishield/internal/models"

// AnswerStore holds the user's raw answers for one audit run, keyed by category
// and question. Each question holds at most one answer.
type AnswerStore struct {
	answers map[string]map[string]models.Answer
}

// NewAnswerStore returns an empty store.
func NewAnswerStore() *AnswerStore {
	return &AnswerStore{answers: make(map[string]map[string]models.Answer)}
}

// Set records an answer, replacing any previous answer to the same question.
func (s *AnswerStore) Set(category, question string, answer models.Answer) {
	section, ok := s.answers[category]
	if !ok {
		section = make(map[string]models.Answer)
		s.answers[category] = section
	}
	section[question] = answer
}

// Get returns the answer to question, if any.
func (s *AnswerStore) Get(category, question string) (models.Answer, bool) {
	a, ok := s.answers[category][question]
	return a, ok
}

// Delete removes an answer so the question is absent again.
func (s *AnswerStore) Delete(category, question string) {
	delete(s.answers[category], question)
}

// Answers returns a copy of the answers recorded for category.
func (s *AnswerStore) Answers(category string) map[string]models.Answer {
	return models.CloneAnswers(s.answers[category])
}

// Load records every answer in all, grouped by category.
func (s *AnswerStore) Load(all map[string]map[string]models.Answer) {
	for category, section := range all {
		for question, answer := range section {
			s.Set(category, question, answer)
		}
	}
}

// Count returns the number of answered questions across all categories.
func (s *AnswerStore) Count() int {
	n := 0
	for _, section := range s.answers {
		n += len(section)
	}
	return n
}

// Clear drops every answer.
func (s *AnswerStore) Clear() {
	s.answers = make(map[string]map[string]models.Answer)
}
