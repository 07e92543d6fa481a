package analysis

// perspective is one record seen from the analyzed team's side. goalsFor
// and goalsAgainst depend on home/away role; totalGoals never does, it is
// the over/under quantity and must not be conflated with the former two.
type perspective struct {
	isHome       bool
	goalsFor     int
	goalsAgainst int
	homeGoals    int
	awayGoals    int
	totalGoals   int
}

func perspectiveOf(homeTeamID int64, homeGoals, awayGoals int, teamID int64) perspective {
	p := perspective{
		isHome:     homeTeamID == teamID,
		homeGoals:  homeGoals,
		awayGoals:  awayGoals,
		totalGoals: homeGoals + awayGoals,
	}
	if p.isHome {
		p.goalsFor, p.goalsAgainst = homeGoals, awayGoals
	} else {
		p.goalsFor, p.goalsAgainst = awayGoals, homeGoals
	}
	return p
}

func (p perspective) outcome() Outcome {
	switch {
	case p.goalsFor > p.goalsAgainst:
		return OutcomeWin
	case p.goalsFor == p.goalsAgainst:
		return OutcomeDraw
	default:
		return OutcomeLoss
	}
}

// Aggregate computes TeamStats over a validated fixture set from teamID's
// perspective. Over-K is strict greater-than K. With an empty set it
// returns the zero record instead of dividing by zero.
func Aggregate(set FixtureSet, teamID int64) TeamStats {
	stats := TeamStats{}
	n := 0

	var over05, over15, over35, cleanSheets, failedToScore int

	for _, record := range set.Records {
		if !record.HasScore() {
			continue
		}
		n++

		p := perspectiveOf(record.Teams.Home.ID, *record.Goals.Home, *record.Goals.Away, teamID)

		stats.SumGoalsFor += p.goalsFor
		stats.SumGoalsAgainst += p.goalsAgainst
		stats.SumTotalGoals += p.totalGoals

		if p.totalGoals > 0 {
			over05++
		}
		if p.totalGoals > 1 {
			over15++
		}
		if p.totalGoals > 2 {
			stats.Over25Count++
		}
		if p.totalGoals > 3 {
			over35++
		}

		// BTTS is decided on the raw home/away goals, never on the
		// perspective pair.
		if p.homeGoals > 0 && p.awayGoals > 0 {
			stats.BTTSCount++
		}

		switch p.outcome() {
		case OutcomeWin:
			stats.Wins++
		case OutcomeDraw:
			stats.Draws++
		default:
			stats.Losses++
		}

		if p.goalsAgainst == 0 {
			cleanSheets++
		}
		if p.goalsFor == 0 {
			failedToScore++
		}
	}

	stats.FixturesUsed = n
	if n == 0 {
		return stats
	}

	denom := float64(n)
	stats.Over05Pct = float64(over05) / denom * 100
	stats.Over15Pct = float64(over15) / denom * 100
	stats.Over25Pct = float64(stats.Over25Count) / denom * 100
	stats.Over35Pct = float64(over35) / denom * 100
	stats.BTTSPct = float64(stats.BTTSCount) / denom * 100
	stats.WinPct = float64(stats.Wins) / denom * 100
	stats.DrawPct = float64(stats.Draws) / denom * 100
	stats.LossPct = float64(stats.Losses) / denom * 100
	stats.CleanSheetPct = float64(cleanSheets) / denom * 100
	stats.FailedToScorePct = float64(failedToScore) / denom * 100
	stats.AvgGoalsFor = float64(stats.SumGoalsFor) / denom
	stats.AvgGoalsAgainst = float64(stats.SumGoalsAgainst) / denom
	stats.AvgTotalGoals = float64(stats.SumTotalGoals) / denom

	return stats
}
