package analysis

import (
	"strings"
	"testing"
)

func TestCheckConsistency_CleanPass(t *testing.T) {
	t.Parallel()

	set := validatedScenarioSet()
	stats := Aggregate(set, testTeamID)
	form := Form(set, testTeamID, FormWindow)

	report := CheckConsistency(set, testTeamID, stats, form)
	if !report.Valid {
		t.Fatalf("honest values rejected: %v", report.Issues)
	}
	if len(report.Issues) != 0 {
		t.Fatalf("unexpected issues: %v", report.Issues)
	}
}

func TestCheckConsistency_DetectsPerturbedRate(t *testing.T) {
	t.Parallel()

	set := validatedScenarioSet()
	stats := Aggregate(set, testTeamID)
	form := Form(set, testTeamID, FormWindow)

	stats.Over25Pct += 10

	report := CheckConsistency(set, testTeamID, stats, form)
	if report.Valid {
		t.Fatal("perturbed over_2_5_pct slipped through the gate")
	}
	if len(report.Issues) != 1 {
		t.Fatalf("issues = %v, want exactly one", report.Issues)
	}
	if !strings.Contains(report.Issues[0], "over_2_5_pct") {
		t.Fatalf("issue does not name the field: %q", report.Issues[0])
	}
}

func TestCheckConsistency_ToleratesRoundingDrift(t *testing.T) {
	t.Parallel()

	set := validatedScenarioSet()
	stats := Aggregate(set, testTeamID)
	form := Form(set, testTeamID, FormWindow)

	// Values rounded for presentation stay inside the half-point tolerance.
	stats.WinPct += 0.4
	stats.AvgGoalsAgainst -= 0.3

	report := CheckConsistency(set, testTeamID, stats, form)
	if !report.Valid {
		t.Fatalf("rounding drift rejected: %v", report.Issues)
	}
}

func TestCheckConsistency_DetectsWrongForm(t *testing.T) {
	t.Parallel()

	set := validatedScenarioSet()
	stats := Aggregate(set, testTeamID)

	report := CheckConsistency(set, testTeamID, stats, "V V V V V")
	if report.Valid {
		t.Fatal("wrong form string slipped through the gate")
	}
	found := false
	for _, issue := range report.Issues {
		if strings.HasPrefix(issue, "form:") {
			found = true
		}
	}
	if !found {
		t.Fatalf("no form issue reported: %v", report.Issues)
	}
}

func TestCheckConsistency_DetectsPerturbedAverage(t *testing.T) {
	t.Parallel()

	set := validatedScenarioSet()
	stats := Aggregate(set, testTeamID)
	form := Form(set, testTeamID, FormWindow)

	stats.AvgGoalsFor += 1

	report := CheckConsistency(set, testTeamID, stats, form)
	if report.Valid {
		t.Fatal("perturbed avg_goals_for slipped through the gate")
	}
	if !strings.Contains(report.Issues[0], "avg_goals_for") {
		t.Fatalf("issue does not name the field: %v", report.Issues)
	}
}

func TestCheckConsistency_EmptySet(t *testing.T) {
	t.Parallel()

	report := CheckConsistency(FixtureSet{}, testTeamID, TeamStats{}, "")
	if report.Valid {
		t.Fatal("empty set must not validate")
	}
	if len(report.Issues) != 1 || report.Issues[0] != "no fixtures to validate" {
		t.Fatalf("issues = %v", report.Issues)
	}
}

func TestCheckConsistency_ReportsAllMismatches(t *testing.T) {
	t.Parallel()

	set := validatedScenarioSet()
	stats := Aggregate(set, testTeamID)
	form := Form(set, testTeamID, FormWindow)

	stats.BTTSPct += 20
	stats.LossPct += 20

	report := CheckConsistency(set, testTeamID, stats, form)
	if len(report.Issues) != 2 {
		t.Fatalf("issues = %v, want two", report.Issues)
	}
}
