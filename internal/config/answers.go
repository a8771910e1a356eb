package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/aishield/internal/apperrors"
	"github.com/Veraticus/aishield/internal/models"
)

// Answers maps section name to question to the raw answer given.
type Answers map[string]map[string]models.Answer

// LoadAnswers reads an answers file. Values are kept verbatim; scoring normalizes them.
func LoadAnswers(path string) (Answers, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is supplied by the operator
	if err != nil {
		return nil, apperrors.WrapConfiguration("read answers", err)
	}

	var raw map[string]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, apperrors.WrapConfiguration("parse answers", err)
	}

	answers := make(Answers, len(raw))
	for section, qs := range raw {
		answers[section] = make(map[string]models.Answer, len(qs))
		for q, a := range qs {
			answers[section][q] = models.Answer(a)
		}
	}
	return answers, nil
}

// WriteAnswers writes answers as YAML, for example files and probe output.
func WriteAnswers(path string, answers Answers) error {
	data, err := yaml.Marshal(answers)
	if err != nil {
		return apperrors.WrapConfiguration("encode answers", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return apperrors.WrapConfiguration("write answers", err)
	}
	return nil
}
