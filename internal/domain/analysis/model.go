// Package analysis is the canonical fixture validation and statistics
// engine. Every caller that needs match statistics goes through this
// package; there is deliberately no second code path, so the same input
// always yields the same numbers.
package analysis

import (
	"time"

	"github.com/betfaro/engine/internal/domain/fixture"
)

// MinFixtures is the default floor below which a fixture set is too small
// to support statistics.
const MinFixtures = 5

// FormWindow is the default number of most recent matches in a form string.
const FormWindow = 5

// Exclusions counts records dropped per validation stage, in stage order.
type Exclusions struct {
	MissingID      int `json:"missing_id"`
	Duplicates     int `json:"duplicates"`
	NotParticipant int `json:"not_participant"`
	Friendlies     int `json:"friendlies"`
	BadDate        int `json:"bad_date"`
	Future         int `json:"future"`
	Unfinished     int `json:"unfinished"`
	NoScore        int `json:"no_score"`
	NoTeamID       int `json:"no_team_id"`
}

func (e Exclusions) Total() int {
	return e.MissingID + e.Duplicates + e.NotParticipant + e.Friendlies +
		e.BadDate + e.Future + e.Unfinished + e.NoScore + e.NoTeamID
}

// DateRange spans the accepted records, Start = oldest, End = newest.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// FixtureSet is the deterministic output of validation for one
// (team, batch) pair. Records are ordered newest first.
type FixtureSet struct {
	TeamID     int64            `json:"team_id"`
	Requested  int              `json:"requested"`
	Records    []fixture.Record `json:"-"`
	FixtureIDs []int64          `json:"fixture_ids"`
	Exclusions Exclusions       `json:"exclusions"`
	Range      DateRange        `json:"range"`
	Valid      bool             `json:"valid"`
	Notices    []string         `json:"notices,omitempty"`
}

func (s FixtureSet) Len() int { return len(s.Records) }

// TeamStats holds the percentage and average metrics for one fixture set,
// always alongside the raw counts that produced them. Every percentage uses
// the same denominator FixturesUsed.
type TeamStats struct {
	FixturesUsed int `json:"fixtures_used"`

	Over05Pct        float64 `json:"over_0_5_pct"`
	Over15Pct        float64 `json:"over_1_5_pct"`
	Over25Pct        float64 `json:"over_2_5_pct"`
	Over35Pct        float64 `json:"over_3_5_pct"`
	BTTSPct          float64 `json:"btts_pct"`
	WinPct           float64 `json:"win_pct"`
	DrawPct          float64 `json:"draw_pct"`
	LossPct          float64 `json:"loss_pct"`
	CleanSheetPct    float64 `json:"clean_sheet_pct"`
	FailedToScorePct float64 `json:"failed_to_score_pct"`

	AvgGoalsFor     float64 `json:"avg_goals_for"`
	AvgGoalsAgainst float64 `json:"avg_goals_against"`
	AvgTotalGoals   float64 `json:"avg_total_goals_per_match"`

	Wins            int `json:"wins"`
	Draws           int `json:"draws"`
	Losses          int `json:"losses"`
	Over25Count     int `json:"over_2_5_count"`
	BTTSCount       int `json:"btts_count"`
	SumGoalsFor     int `json:"sum_goals_for"`
	SumGoalsAgainst int `json:"sum_goals_against"`
	SumTotalGoals   int `json:"sum_total_goals"`
}

// Outcome of one match from the analyzed team's perspective.
type Outcome int

const (
	OutcomeWin Outcome = iota
	OutcomeDraw
	OutcomeLoss
)

// Form symbols, pt-BR: Vitória, Empate, Derrota.
var formSymbols = map[Outcome]string{
	OutcomeWin:  "V",
	OutcomeDraw: "E",
	OutcomeLoss: "D",
}

// ConsistencyReport is the result of the mandatory recomputation gate.
// An invalid report means the caller must not deliver the analysis.
type ConsistencyReport struct {
	Valid          bool      `json:"valid"`
	Issues         []string  `json:"issues,omitempty"`
	Recomputed     TeamStats `json:"recomputed"`
	RecomputedForm string    `json:"recomputed_form"`
}
