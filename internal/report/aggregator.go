package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/aishield/internal/apperrors"
	"github.com/Veraticus/aishield/internal/models"
)

// Aggregator combines category results into a report.
type Aggregator struct {
	now func() time.Time
}

// NewAggregator returns an aggregator stamping reports with the wall clock.
func NewAggregator() *Aggregator {
	return &Aggregator{now: time.Now}
}

// NewAggregatorWithClock returns an aggregator using now for timestamps.
func NewAggregatorWithClock(now func() time.Time) *Aggregator {
	return &Aggregator{now: now}
}

// Build snapshots env and results into a new report. The environment must be
// locked before a report can exist.
func (a *Aggregator) Build(env *models.UserEnvironment, results []models.CategoryResult) (*AuditReport, error) {
	if env == nil {
		return nil, apperrors.Configuration("build report", "environment not locked")
	}

	categories := make([]models.CategoryResult, len(results))
	copy(categories, results)

	return &AuditReport{
		ID:              uuid.New(),
		UserEnvironment: env.Clone(),
		AuditCategories: categories,
		GeneratedAt:     a.now().UTC().Truncate(time.Second),
	}, nil
}
