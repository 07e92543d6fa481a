package memory

import (
	"context"
	"sync"

	"github.com/betfaro/engine/internal/domain/team"
)

// TeamRepository serves curated resolution tables from memory. It is the
// default table source when no database is configured, and the snapshot
// the resolver receives is always a copy, never shared mutable state.
type TeamRepository struct {
	mu     sync.RWMutex
	tables team.Tables
}

func NewTeamRepository(tables team.Tables) *TeamRepository {
	return &TeamRepository{tables: tables}
}

func NewSeededTeamRepository() *TeamRepository {
	return NewTeamRepository(SeedTables())
}

func (r *TeamRepository) Load(_ context.Context) (team.Tables, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return copyTables(r.tables), nil
}

// Replace swaps the whole table set, used by table reload tooling.
func (r *TeamRepository) Replace(_ context.Context, tables team.Tables) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tables = copyTables(tables)
	return nil
}

func copyTables(in team.Tables) team.Tables {
	out := team.Tables{
		Canonical: make(map[string]team.Team, len(in.Canonical)),
		Aliases:   make(map[string]string, len(in.Aliases)),
		Markers:   make(map[string][]string, len(in.Markers)),
		Conflicts: make(map[string][]team.Conflict, len(in.Conflicts)),
	}
	for key, value := range in.Canonical {
		out.Canonical[key] = value
	}
	for key, value := range in.Aliases {
		out.Aliases[key] = value
	}
	for key, value := range in.Markers {
		out.Markers[key] = append([]string(nil), value...)
	}
	for key, value := range in.Conflicts {
		out.Conflicts[key] = append([]team.Conflict(nil), value...)
	}
	return out
}
