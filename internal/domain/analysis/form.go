package analysis

import "strings"

// Form builds the recent-form string for teamID over the first window
// records of the (already newest-first) fixture set: one symbol per match,
// space-joined, newest first. It shares the exact per-record outcome
// function with Aggregate, so the form string and the win/draw/loss
// percentages can never disagree.
func Form(set FixtureSet, teamID int64, window int) string {
	if window <= 0 {
		window = FormWindow
	}

	symbols := make([]string, 0, window)
	for _, record := range set.Records {
		if len(symbols) >= window {
			break
		}
		if !record.HasScore() {
			continue
		}
		p := perspectiveOf(record.Teams.Home.ID, *record.Goals.Home, *record.Goals.Away, teamID)
		symbols = append(symbols, formSymbols[p.outcome()])
	}

	return strings.Join(symbols, " ")
}
