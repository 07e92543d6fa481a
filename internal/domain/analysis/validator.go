package analysis

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/betfaro/engine/internal/domain/fixture"
)

// League name fragments that mark a match as non-official, matched
// case-insensitively as substrings.
var friendlyKeywords = []string{
	"friendly",
	"amistoso",
	"charity",
	"beneficente",
	"test match",
	"exhibition",
	"testimonial",
	"memorial",
	"trophy friendly",
	"pre-season",
	"pre season",
	"preseason",
	"club friendly",
}

// League types excluded outright.
var excludedLeagueTypes = map[string]struct{}{
	"friendly":               {},
	"club friendly":          {},
	"international friendly": {},
}

// Validate filters a raw provider batch down to the deterministic last-n
// officially finished matches for teamID. now anchors the future-match
// check; callers pass time.Now().UTC() outside tests.
//
// The stages run in a fixed order, each counting its own exclusions:
// duplicates, participation, friendly category, temporal validity,
// finality, score completeness, team-id completeness. Survivors sort by
// (kickoff desc, fixture id desc) and the first n are kept.
//
// Validate never mutates records. A negative n is a programming error.
func Validate(records []fixture.Record, teamID int64, n int, now time.Time) FixtureSet {
	if n < 0 {
		panic(fmt.Sprintf("analysis: negative sample size %d", n))
	}

	set := FixtureSet{TeamID: teamID, Requested: n}

	type accepted struct {
		record  fixture.Record
		kickoff time.Time
	}

	seen := make(map[int64]struct{}, len(records))
	kept := make([]accepted, 0, minCap(len(records), n*2))

	for _, record := range records {
		id := record.Fixture.ID
		if id <= 0 {
			set.Exclusions.MissingID++
			continue
		}
		if _, dup := seen[id]; dup {
			set.Exclusions.Duplicates++
			continue
		}
		seen[id] = struct{}{}

		if !record.HasTeam(teamID) {
			set.Exclusions.NotParticipant++
			continue
		}

		if isFriendly(record.League) {
			set.Exclusions.Friendlies++
			continue
		}

		kickoff, ok := record.KickoffTime()
		if !ok {
			set.Exclusions.BadDate++
			continue
		}
		if kickoff.After(now) {
			set.Exclusions.Future++
			continue
		}

		if !fixture.IsFinishedStatus(record.Fixture.Status.Short) {
			set.Exclusions.Unfinished++
			continue
		}

		if !record.HasScore() {
			set.Exclusions.NoScore++
			continue
		}

		if !record.HasTeamIDs() {
			set.Exclusions.NoTeamID++
			continue
		}

		kept = append(kept, accepted{record: record, kickoff: kickoff})
	}

	// Kickoff desc, fixture id desc. The id tiebreak exists only to make
	// ordering deterministic when two matches share a timestamp.
	sort.SliceStable(kept, func(i, j int) bool {
		if !kept[i].kickoff.Equal(kept[j].kickoff) {
			return kept[i].kickoff.After(kept[j].kickoff)
		}
		return kept[i].record.Fixture.ID > kept[j].record.Fixture.ID
	})

	if len(kept) > n {
		kept = kept[:n]
	}

	set.Records = make([]fixture.Record, 0, len(kept))
	set.FixtureIDs = make([]int64, 0, len(kept))
	for _, item := range kept {
		set.Records = append(set.Records, item.record)
		set.FixtureIDs = append(set.FixtureIDs, item.record.Fixture.ID)
	}

	if len(kept) > 0 {
		set.Range.End = kept[0].kickoff
		set.Range.Start = kept[len(kept)-1].kickoff
	}

	switch {
	case len(kept) >= MinFixtures:
		set.Valid = true
		if len(kept) < n {
			set.Notices = append(set.Notices,
				fmt.Sprintf("only %d fixtures available (requested %d)", len(kept), n))
		}
	default:
		set.Valid = false
		set.Notices = append(set.Notices,
			fmt.Sprintf("only %d valid fixtures (minimum %d)", len(kept), MinFixtures))
	}

	return set
}

func isFriendly(league fixture.League) bool {
	leagueType := strings.ToLower(strings.TrimSpace(league.Type))
	if _, excluded := excludedLeagueTypes[leagueType]; excluded {
		return true
	}

	leagueName := strings.ToLower(league.Name)
	for _, keyword := range friendlyKeywords {
		if strings.Contains(leagueName, keyword) {
			return true
		}
	}
	return false
}

func minCap(have, want int) int {
	if want > 0 && want < have {
		return want
	}
	return have
}
