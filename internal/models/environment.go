package models

import (
	"fmt"
	"strings"
)

// Platform is the LLM platform hosting the audited deployment.
type Platform string

// Supported platforms.
const (
	PlatformOpenAI    Platform = "OpenAI"
	PlatformAzure     Platform = "Azure"
	PlatformAnthropic Platform = "Anthropic"
	PlatformGoogle    Platform = "Google"
	PlatformCustom    Platform = "Custom"
)

// Platforms returns the supported platforms in display order.
func Platforms() []Platform {
	return []Platform{PlatformOpenAI, PlatformAzure, PlatformAnthropic, PlatformGoogle, PlatformCustom}
}

// ParsePlatform matches s case-insensitively against the supported platforms.
// An empty value is Custom.
func ParsePlatform(s string) (Platform, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PlatformCustom, nil
	}
	for _, p := range Platforms() {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unsupported platform %q", s)
}

// UserEnvironment describes the deployment being audited. It is locked once per
// audit session and copied into every report built from it.
type UserEnvironment struct {
	Platform           Platform `json:"platform" yaml:"platform"`
	AgentMode          bool     `json:"agent_mode" yaml:"agent_mode"`
	Connectors         []string `json:"connectors" yaml:"connectors"`
	VectorStore        *string  `json:"vector_store" yaml:"vector_store"`
	SensitiveDataTypes []string `json:"sensitive_data_types" yaml:"sensitive_data_types"`
}

// Clone returns a deep copy so reports hold a snapshot, not a live pointer.
func (e *UserEnvironment) Clone() *UserEnvironment {
	if e == nil {
		return nil
	}
	out := &UserEnvironment{
		Platform:           e.Platform,
		AgentMode:          e.AgentMode,
		Connectors:         append([]string{}, e.Connectors...),
		SensitiveDataTypes: append([]string{}, e.SensitiveDataTypes...),
	}
	if e.VectorStore != nil {
		vs := *e.VectorStore
		out.VectorStore = &vs
	}
	return out
}

// VectorStoreName returns the vector store or "Unknown" when none was declared.
func (e *UserEnvironment) VectorStoreName() string {
	if e.VectorStore == nil || *e.VectorStore == "" {
		return "Unknown"
	}
	return *e.VectorStore
}

// ConnectorList renders connectors for display.
func (e *UserEnvironment) ConnectorList() string {
	if len(e.Connectors) == 0 {
		return "None"
	}
	return strings.Join(e.Connectors, ", ")
}
