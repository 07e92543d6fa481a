package analysis

import (
	"fmt"
	"time"

	"github.com/betfaro/engine/internal/domain/fixture"
)

const testTeamID int64 = 42

var testNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

type recordSpec struct {
	id         int64
	daysAgo    int
	status     string
	homeID     int64
	awayID     int64
	homeGoals  int
	awayGoals  int
	noScore    bool
	leagueName string
	leagueType string
	rawDate    string
}

func buildRecord(spec recordSpec) fixture.Record {
	if spec.status == "" {
		spec.status = fixture.StatusFullTime
	}
	if spec.leagueName == "" {
		spec.leagueName = "Serie A"
	}
	if spec.leagueType == "" {
		spec.leagueType = "League"
	}
	if spec.homeID == 0 && spec.awayID == 0 {
		spec.homeID = testTeamID
		spec.awayID = 99
	}

	date := spec.rawDate
	if date == "" {
		date = testNow.AddDate(0, 0, -spec.daysAgo).Format(time.RFC3339)
	}

	record := fixture.Record{
		Fixture: fixture.Meta{
			ID:     spec.id,
			Date:   date,
			Status: fixture.Status{Short: spec.status},
		},
		League: fixture.League{Name: spec.leagueName, Type: spec.leagueType},
		Teams: fixture.Teams{
			Home: fixture.Side{ID: spec.homeID, Name: fmt.Sprintf("Home %d", spec.homeID)},
			Away: fixture.Side{ID: spec.awayID, Name: fmt.Sprintf("Away %d", spec.awayID)},
		},
	}
	if !spec.noScore {
		home, away := spec.homeGoals, spec.awayGoals
		record.Goals = fixture.Goals{Home: &home, Away: &away}
	}
	return record
}

// sampleSeasonRecords builds the ten-match scenario for team 42, newest
// first: (2,1), (0,3) away, (1,1), (2,0) away, (3,2), (1,2) away, (0,0),
// (3,4) away, (2,2), (1,3) away.
func sampleSeasonRecords() []fixture.Record {
	type game struct {
		homeGoals, awayGoals int
		away                 bool
	}
	games := []game{
		{2, 1, false},
		{0, 3, true},
		{1, 1, false},
		{2, 0, true},
		{3, 2, false},
		{1, 2, true},
		{0, 0, false},
		{3, 4, true},
		{2, 2, false},
		{1, 3, true},
	}

	records := make([]fixture.Record, 0, len(games))
	for i, g := range games {
		spec := recordSpec{
			id:        int64(1000 - i),
			daysAgo:   i + 1,
			homeGoals: g.homeGoals,
			awayGoals: g.awayGoals,
		}
		if g.away {
			spec.homeID = 77
			spec.awayID = testTeamID
		} else {
			spec.homeID = testTeamID
			spec.awayID = 77
		}
		records = append(records, buildRecord(spec))
	}
	return records
}

func validatedScenarioSet() FixtureSet {
	return Validate(sampleSeasonRecords(), testTeamID, 10, testNow)
}
