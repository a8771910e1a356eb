// Package environment turns user-declared deployment details into a locked
// UserEnvironment, and optionally probes cloud accounts to pre-fill answers.
package environment

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/Veraticus/aishield/internal/apperrors"
	"github.com/Veraticus/aishield/internal/models"
	"github.com/Veraticus/aishield/internal/security"
)

// Field limits for declared environment values.
const (
	maxVectorStoreLength = 256
	maxConnectorLength   = 128
	maxDataTypeLength    = 64
)

// KnownConnectors are offered as choices by interactive front ends.
var KnownConnectors = []string{"Slack", "Google Drive", "Jira", "SharePoint", "Custom API"}

// KnownDataTypes are offered as choices by interactive front ends.
var KnownDataTypes = []string{"PII", "PHI", "PCI", "Secrets", "Proprietary"}

// Input is the environment as declared by the user.
type Input struct {
	Platform           string   `yaml:"platform" validate:"max=32"`
	VectorStore        string   `yaml:"vector_store" validate:"max=256"`
	Connectors         []string `yaml:"connectors" validate:"max=32,dive,required,max=128"`
	SensitiveDataTypes []string `yaml:"sensitive_data_types" validate:"max=16,dive,required,max=64"`
	AgentMode          bool     `yaml:"agent_mode"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadInput reads a declared environment from a YAML file.
func LoadInput(path string) (*Input, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is supplied by the operator
	if err != nil {
		return nil, apperrors.WrapConfiguration("read environment", err)
	}

	var in Input
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, apperrors.WrapConfiguration("parse environment", err)
	}
	return &in, nil
}

// Detect validates in and returns the environment to lock. No inference happens
// yet: declared values are passed through once they are clean.
func Detect(in Input) (*models.UserEnvironment, error) {
	if err := validate.Struct(in); err != nil {
		return nil, apperrors.WrapValidation("detect environment", describe(err))
	}

	platform, err := models.ParsePlatform(in.Platform)
	if err != nil {
		return nil, apperrors.WrapValidation("detect environment", err)
	}

	connectors, err := cleanSet(in.Connectors, maxConnectorLength)
	if err != nil {
		return nil, fmt.Errorf("connectors: %w", err)
	}
	dataTypes, err := cleanSet(in.SensitiveDataTypes, maxDataTypeLength)
	if err != nil {
		return nil, fmt.Errorf("sensitive data types: %w", err)
	}

	env := &models.UserEnvironment{
		Platform:           platform,
		AgentMode:          in.AgentMode,
		Connectors:         connectors,
		SensitiveDataTypes: dataTypes,
	}

	store, err := security.SanitizeInput(in.VectorStore, maxVectorStoreLength)
	if err != nil {
		return nil, fmt.Errorf("vector store: %w", err)
	}
	if store != "" {
		env.VectorStore = &store
	}

	return env, nil
}

// cleanSet sanitizes values and drops case-insensitive duplicates, keeping first-seen order.
func cleanSet(values []string, maxLength int) ([]string, error) {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		clean, err := security.SanitizeInput(v, maxLength)
		if err != nil {
			return nil, err
		}
		key := strings.ToLower(clean)
		if clean == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, clean)
	}
	return out, nil
}

// describe flattens validator errors into one readable message.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
	}
	return errors.New(strings.Join(parts, "; "))
}
