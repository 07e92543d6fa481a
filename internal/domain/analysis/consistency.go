package analysis

import (
	"fmt"
	"math"
)

// Tolerances for the recomputation gate. Rates are percentage points.
const (
	rateTolerance    = 0.5
	averageTolerance = 0.5
)

// CheckConsistency independently recomputes statistics and form from the
// same fixture set and compares them field by field against the values the
// caller is about to emit. Any mismatch invalidates the report; an invalid
// report is a hard gate, the analysis must not be delivered.
func CheckConsistency(set FixtureSet, teamID int64, claimed TeamStats, claimedForm string) ConsistencyReport {
	report := ConsistencyReport{}

	if set.Len() == 0 {
		report.Issues = append(report.Issues, "no fixtures to validate")
		return report
	}

	report.Recomputed = Aggregate(set, teamID)
	report.RecomputedForm = Form(set, teamID, FormWindow)

	type rateField struct {
		name     string
		claimed  float64
		expected float64
	}

	rates := []rateField{
		{"over_0_5_pct", claimed.Over05Pct, report.Recomputed.Over05Pct},
		{"over_1_5_pct", claimed.Over15Pct, report.Recomputed.Over15Pct},
		{"over_2_5_pct", claimed.Over25Pct, report.Recomputed.Over25Pct},
		{"over_3_5_pct", claimed.Over35Pct, report.Recomputed.Over35Pct},
		{"btts_pct", claimed.BTTSPct, report.Recomputed.BTTSPct},
		{"win_pct", claimed.WinPct, report.Recomputed.WinPct},
		{"draw_pct", claimed.DrawPct, report.Recomputed.DrawPct},
		{"loss_pct", claimed.LossPct, report.Recomputed.LossPct},
		{"clean_sheet_pct", claimed.CleanSheetPct, report.Recomputed.CleanSheetPct},
		{"failed_to_score_pct", claimed.FailedToScorePct, report.Recomputed.FailedToScorePct},
	}
	for _, field := range rates {
		if math.Abs(field.claimed-field.expected) > rateTolerance {
			report.Issues = append(report.Issues, fmt.Sprintf(
				"%s: got %.1f%%, expected %.1f%%", field.name, field.claimed, field.expected))
		}
	}

	averages := []rateField{
		{"avg_goals_for", claimed.AvgGoalsFor, report.Recomputed.AvgGoalsFor},
		{"avg_goals_against", claimed.AvgGoalsAgainst, report.Recomputed.AvgGoalsAgainst},
		{"avg_total_goals_per_match", claimed.AvgTotalGoals, report.Recomputed.AvgTotalGoals},
	}
	for _, field := range averages {
		if math.Abs(field.claimed-field.expected) > averageTolerance {
			report.Issues = append(report.Issues, fmt.Sprintf(
				"%s: got %.2f, expected %.2f", field.name, field.claimed, field.expected))
		}
	}

	if claimedForm != report.RecomputedForm {
		report.Issues = append(report.Issues, fmt.Sprintf(
			"form: got %q, expected %q", claimedForm, report.RecomputedForm))
	}

	report.Valid = len(report.Issues) == 0
	return report
}
