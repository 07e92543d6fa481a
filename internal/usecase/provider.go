package usecase

import (
	"context"

	"github.com/betfaro/engine/internal/domain/fixture"
)

// ProviderTeam is one club returned by the upstream team search.
type ProviderTeam struct {
	ID       int64
	Name     string
	Country  string
	National bool
}

// TeamDirectory searches the upstream provider for clubs by free text.
type TeamDirectory interface {
	SearchTeams(ctx context.Context, query string) ([]ProviderTeam, error)
}

// FixtureProvider returns a team's most recent fixtures, raw and unvalidated.
type FixtureProvider interface {
	LastFixtures(ctx context.Context, teamID int64, last int) ([]fixture.Record, error)
}
