package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/aishield/internal/apperrors"
	"github.com/Veraticus/aishield/pkg/logger"
)

type jsonFormat struct {
	logger logger.Logger
}

func (f *jsonFormat) Generate(report *AuditReport, outputPath string) error {
	err := writeFile(outputPath, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	})
	if err != nil {
		return err
	}
	f.logger.Info("Generated JSON report", "path", outputPath, "categories", len(report.AuditCategories))
	return nil
}

func (f *jsonFormat) Name() string { return "json" }

func (f *jsonFormat) Description() string {
	return "Machine-readable JSON export with recomputed summary"
}

type yamlFormat struct {
	logger logger.Logger
}

func (f *yamlFormat) Generate(report *AuditReport, outputPath string) error {
	err := writeFile(outputPath, func(w io.Writer) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report.document()); err != nil {
			return err
		}
		return enc.Close()
	})
	if err != nil {
		return err
	}
	f.logger.Info("Generated YAML report", "path", outputPath, "categories", len(report.AuditCategories))
	return nil
}

func (f *yamlFormat) Name() string { return "yaml" }

func (f *yamlFormat) Description() string {
	return "YAML export with the same shape as the JSON export"
}

// LoadJSON reads a report previously written by the json format.
func LoadJSON(path string) (*AuditReport, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is supplied by the operator
	if err != nil {
		return nil, apperrors.WrapConfiguration("read report", err)
	}

	var r AuditReport
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, apperrors.WrapConfiguration("parse report", fmt.Errorf("%s: %w", path, err))
	}
	if r.UserEnvironment == nil {
		return nil, apperrors.Configuration("parse report", "report has no user_environment")
	}
	return &r, nil
}
