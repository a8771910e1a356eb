// Package health reports runtime and configuration status.
package health

import (
	"os"
	"runtime"
	"time"

	"github.com/Veraticus/aishield/internal/config"
	"github.com/Veraticus/aishield/internal/report"
	"github.com/Veraticus/aishield/internal/security"
)

// Status values.
const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
)

// Report is the health snapshot.
type Report struct {
	Components  map[string]bool `json:"components"`
	Providers   Providers       `json:"llm_providers"`
	Status      string          `json:"status"`
	Timestamp   string          `json:"timestamp"`
	Version     string          `json:"version"`
	GoVersion   string          `json:"go_version"`
	Platform    string          `json:"platform"`
	Environment string          `json:"environment"`
	Formats     []string        `json:"formats"`
}

// Providers tells which LLM provider credentials are configured.
type Providers struct {
	ActiveProvider string `json:"active_provider"`
	OpenAI         bool   `json:"openai"`
	Anthropic      bool   `json:"anthropic"`
}

// Checker builds health reports.
type Checker struct {
	getenv       func(string) string
	now          func() time.Time
	version      string
	templatePath string
}

// NewChecker returns a checker reading the process environment.
func NewChecker(version, templatePath string) *Checker {
	return &Checker{getenv: os.Getenv, now: time.Now, version: version, templatePath: templatePath}
}

// Check collects the current status. A template that fails to load degrades it.
func (c *Checker) Check() Report {
	r := Report{
		Status:      StatusHealthy,
		Timestamp:   c.now().UTC().Format(report.TimestampLayout),
		Version:     c.version,
		GoVersion:   runtime.Version(),
		Platform:    runtime.GOOS + "/" + runtime.GOARCH,
		Environment: c.env("ENV", "production"),
		Providers:   c.providers(),
		Formats:     report.ListFormats(),
		Components:  make(map[string]bool),
	}

	_, err := config.LoadTemplate(c.templatePath)
	r.Components["template"] = err == nil
	r.Components["formats"] = len(r.Formats) > 0

	for _, ok := range r.Components {
		if !ok {
			r.Status = StatusDegraded
		}
	}
	return r
}

func (c *Checker) providers() Providers {
	return Providers{
		OpenAI:         security.ValidateAPIKey(c.getenv("OPENAI_API_KEY")),
		Anthropic:      security.ValidateAPIKey(c.getenv("ANTHROPIC_API_KEY")),
		ActiveProvider: c.env("LLM_PROVIDER", "none"),
	}
}

func (c *Checker) env(key, fallback string) string {
	if v := c.getenv(key); v != "" {
		return v
	}
	return fallback
}
