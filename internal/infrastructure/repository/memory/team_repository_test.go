package memory

import (
	"context"
	"testing"

	"github.com/betfaro/engine/internal/platform/textnorm"
)

func TestSeedTables_CanonicalKeysAreNormalized(t *testing.T) {
	t.Parallel()

	tables := SeedTables()
	for key := range tables.Canonical {
		if key != textnorm.TeamKey(key) {
			t.Fatalf("canonical key %q is not normalized", key)
		}
	}
}

func TestSeedTables_AliasesPointAtCanonicalEntries(t *testing.T) {
	t.Parallel()

	tables := SeedTables()
	for alias, target := range tables.Aliases {
		if _, ok := tables.Canonical[target]; !ok {
			t.Fatalf("alias %q points at missing canonical key %q", alias, target)
		}
	}
}

func TestSeedTables_ConflictsHaveAtLeastTwoCountries(t *testing.T) {
	t.Parallel()

	tables := SeedTables()
	for stem, clubs := range tables.Conflicts {
		countries := make(map[string]struct{})
		for _, club := range clubs {
			countries[club.Country] = struct{}{}
			if club.TeamID <= 0 {
				t.Fatalf("conflict %q club %q has no provider id", stem, club.Name)
			}
		}
		if len(countries) < 2 {
			t.Fatalf("conflict %q does not span countries", stem)
		}
	}
}

func TestLoad_ReturnsIndependentCopy(t *testing.T) {
	t.Parallel()

	repo := NewSeededTeamRepository()

	first, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	delete(first.Canonical, "flamengo")
	first.Aliases["mengao"] = "palmeiras"

	second, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load again: %v", err)
	}
	if _, ok := second.Canonical["flamengo"]; !ok {
		t.Fatal("mutating a loaded snapshot leaked into the repository")
	}
	if second.Aliases["mengao"] != "flamengo" {
		t.Fatal("alias mutation leaked into the repository")
	}
}
