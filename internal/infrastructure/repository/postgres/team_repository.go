package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/betfaro/engine/internal/domain/team"
	"github.com/betfaro/engine/internal/platform/textnorm"
)

// TeamRepository loads curated resolution tables from Postgres. All keys
// are normalized on the way out, so hand-edited rows with accents or
// stray casing still resolve.
type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Load(ctx context.Context) (team.Tables, error) {
	tables := team.Tables{
		Canonical: make(map[string]team.Team),
		Aliases:   make(map[string]string),
		Markers:   make(map[string][]string),
		Conflicts: make(map[string][]team.Conflict),
	}

	var teams []teamTableModel
	if err := r.db.SelectContext(ctx, &teams,
		`SELECT id, team_id, name, country, created_at, updated_at, deleted_at
		 FROM resolver_teams WHERE deleted_at IS NULL ORDER BY id`); err != nil {
		return team.Tables{}, fmt.Errorf("select resolver teams: %w", err)
	}
	for _, row := range teams {
		key := textnorm.TeamKey(row.Name)
		if key == "" || row.TeamID <= 0 {
			continue
		}
		tables.Canonical[key] = team.Team{
			ID:      row.TeamID,
			Name:    row.Name,
			Country: row.Country,
		}
	}

	var aliases []aliasTableModel
	if err := r.db.SelectContext(ctx, &aliases,
		`SELECT id, alias, canonical, created_at, deleted_at
		 FROM resolver_aliases WHERE deleted_at IS NULL ORDER BY id`); err != nil {
		return team.Tables{}, fmt.Errorf("select resolver aliases: %w", err)
	}
	for _, row := range aliases {
		aliasKey := textnorm.TeamKey(row.Alias)
		canonicalKey := textnorm.TeamKey(row.Canonical)
		if aliasKey == "" || canonicalKey == "" {
			continue
		}
		tables.Aliases[aliasKey] = canonicalKey
	}

	var markers []markerTableModel
	if err := r.db.SelectContext(ctx, &markers,
		`SELECT id, country, marker FROM resolver_markers ORDER BY id`); err != nil {
		return team.Tables{}, fmt.Errorf("select resolver markers: %w", err)
	}
	for _, row := range markers {
		marker := textnorm.FoldASCII(row.Marker)
		if row.Country == "" || marker == "" {
			continue
		}
		tables.Markers[row.Country] = append(tables.Markers[row.Country], marker)
	}

	var conflicts []conflictTableModel
	if err := r.db.SelectContext(ctx, &conflicts,
		`SELECT id, stem, team_id, name, country FROM resolver_conflicts ORDER BY id`); err != nil {
		return team.Tables{}, fmt.Errorf("select resolver conflicts: %w", err)
	}
	for _, row := range conflicts {
		stem := textnorm.TeamKey(row.Stem)
		if stem == "" {
			continue
		}
		tables.Conflicts[stem] = append(tables.Conflicts[stem], team.Conflict{
			TeamID:  row.TeamID,
			Name:    row.Name,
			Country: row.Country,
		})
	}

	return tables, nil
}
