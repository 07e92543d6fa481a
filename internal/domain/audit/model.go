// Package audit defines the per-analysis audit trail. Every delivered or
// blocked analysis leaves one record, so any emitted number can be traced
// back to the fixture ids and exclusion counts that produced it.
package audit

import (
	"context"
	"time"

	"github.com/betfaro/engine/internal/domain/analysis"
)

// Record is one audited analysis of one team.
type Record struct {
	ID         string              `json:"id"`
	Time       time.Time           `json:"time"`
	TeamID     int64               `json:"team_id"`
	TeamName   string              `json:"team_name,omitempty"`
	Requested  int                 `json:"requested"`
	FixtureIDs []int64             `json:"fixture_ids"`
	Exclusions analysis.Exclusions `json:"exclusions"`
	Stats      analysis.TeamStats  `json:"stats"`
	Form       string              `json:"form"`
	Consistent bool                `json:"consistent"`
	Issues     []string            `json:"issues,omitempty"`
}

// Sink receives audit records. Implementations must be safe for
// concurrent writers.
type Sink interface {
	Write(ctx context.Context, record Record) error
	Close() error
}
