// Package auditor runs one audit session: lock the environment, collect answers,
// then evaluate every template section and aggregate the report.
package auditor

import (
	"fmt"
	"sync"

	"github.com/Veraticus/aishield/internal/apperrors"
	"github.com/Veraticus/aishield/internal/audit"
	"github.com/Veraticus/aishield/internal/config"
	"github.com/Veraticus/aishield/internal/environment"
	"github.com/Veraticus/aishield/internal/models"
	"github.com/Veraticus/aishield/internal/ratelimit"
	"github.com/Veraticus/aishield/internal/report"
	"github.com/Veraticus/aishield/internal/security"
	"github.com/Veraticus/aishield/pkg/logger"
)

// MaxAnswerLength bounds a single free-text answer.
const MaxAnswerLength = 1000

// Session holds the state of one audit in progress.
type Session struct {
	logger     logger.Logger
	template   *config.Template
	registry   *audit.Registry
	limiter    *ratelimit.Limiter
	aggregator *report.Aggregator
	answers    *audit.AnswerStore
	env        *models.UserEnvironment
	last       *report.AuditReport
	mu         sync.Mutex
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Session) { s.logger = log }
}

// WithLimiter shares a rate limiter across sessions.
func WithLimiter(l *ratelimit.Limiter) Option {
	return func(s *Session) { s.limiter = l }
}

// WithAggregator replaces the report aggregator, typically to fix the clock.
func WithAggregator(a *report.Aggregator) Option {
	return func(s *Session) { s.aggregator = a }
}

// NewSession creates a session over tmpl whose categories resolve through registry.
func NewSession(tmpl *config.Template, registry *audit.Registry, opts ...Option) *Session {
	s := &Session{
		template:   tmpl,
		registry:   registry,
		answers:    audit.NewAnswerStore(),
		logger:     logger.GetGlobalLogger(),
		limiter:    ratelimit.New(ratelimit.DefaultLimit, ratelimit.DefaultWindow),
		aggregator: report.NewAggregator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LockEnvironment validates in and makes it the session environment. Any report
// built against a previous environment is discarded.
func (s *Session) LockEnvironment(in environment.Input) (*models.UserEnvironment, error) {
	env, err := environment.Detect(in)
	if err != nil {
		s.logger.Warn("Environment rejected", "error", security.RedactSensitive(err.Error()))
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.env = env
	s.last = nil

	s.logger.Info("Environment locked",
		"platform", env.Platform,
		"agent_mode", env.AgentMode,
		"connectors", security.RedactSensitive(env.ConnectorList()),
		"vector_store", security.RedactSensitive(env.VectorStoreName()),
		"sensitive_data_types", len(env.SensitiveDataTypes))
	return env.Clone(), nil
}

// Environment returns a copy of the locked environment, or nil.
func (s *Session) Environment() *models.UserEnvironment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.env.Clone()
}

// Answer records the answer to question in section. Unknown sections are rejected;
// questions outside the template are kept so keyed rules can still see them.
func (s *Session) Answer(section, question string, answer models.Answer) error {
	if _, ok := s.template.Section(section); !ok {
		return apperrors.Validation("record answer", "unknown section %q", section)
	}
	clean, err := security.SanitizeInput(string(answer), MaxAnswerLength)
	if err != nil {
		return fmt.Errorf("answer to %q: %w", question, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers.Set(section, question, models.Answer(clean))
	return nil
}

// LoadAnswers records every answer in all.
func (s *Session) LoadAnswers(all config.Answers) error {
	for section, qs := range all {
		for q, a := range qs {
			if err := s.Answer(section, q, a); err != nil {
				return err
			}
		}
	}
	return nil
}

// Answers returns a copy of the answers recorded for section.
func (s *Session) Answers(section string) map[string]models.Answer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.Answers(section)
}

// Progress reports how many template questions have an answer.
func (s *Session) Progress() (answered, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sec := range s.template.Sections {
		total += len(sec.Questions)
		for _, q := range sec.Questions {
			if _, ok := s.answers.Get(sec.Name, q); ok {
				answered++
			}
		}
	}
	return answered, total
}

// Run evaluates every template section in order and builds the report. The
// environment must be locked, and callerID is charged against the rate limit.
func (s *Session) Run(callerID string) (*report.AuditReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller := security.ShortHash(callerID)
	log := s.logger.With("caller", caller)

	if s.env == nil {
		return nil, apperrors.Configuration("run audit", "environment not locked")
	}
	if err := s.limiter.Check(callerID); err != nil {
		log.Warn("Rate limit exceeded", "error", err)
		return nil, err
	}

	results := make([]models.CategoryResult, 0, len(s.template.Sections))
	for _, sec := range s.template.Sections {
		evaluator := s.registry.Evaluator(sec.Name, sec.Questions)
		result := evaluator.Evaluate(s.answers.Answers(sec.Name))
		log.Debug("Evaluated category",
			"category", result.Category,
			"score", result.Score,
			"risk", result.RiskLevel,
			"findings", len(result.Findings),
			"dedicated", s.registry.Has(sec.Name))
		results = append(results, result)
	}

	r, err := s.aggregator.Build(s.env, results)
	if err != nil {
		return nil, err
	}
	s.last = r

	log.Info("Audit completed",
		"report_id", r.ID,
		"categories", len(r.AuditCategories),
		"overall_score", r.OverallScore(),
		"overall_risk", r.OverallRisk())
	return r, nil
}

// Report returns the most recent report, if it is still valid.
func (s *Session) Report() (*report.AuditReport, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.last != nil
}

// Reset clears all session state except the caller's rate limit.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.env = nil
	s.last = nil
	s.answers.Clear()
	s.logger.Info("Session reset")
}
