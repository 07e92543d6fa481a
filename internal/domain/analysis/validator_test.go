package analysis

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/betfaro/engine/internal/domain/fixture"
)

func TestValidate_Deterministic(t *testing.T) {
	t.Parallel()

	records := sampleSeasonRecords()
	first := Validate(records, testTeamID, 10, testNow)

	for i := 0; i < 20; i++ {
		again := Validate(records, testTeamID, 10, testNow)
		if !reflect.DeepEqual(first.FixtureIDs, again.FixtureIDs) {
			t.Fatalf("run %d: fixture ids diverged: %v vs %v", i, first.FixtureIDs, again.FixtureIDs)
		}
	}
}

func TestValidate_DeterministicAcrossConcurrentCallers(t *testing.T) {
	t.Parallel()

	records := sampleSeasonRecords()
	want := Validate(records, testTeamID, 10, testNow).FixtureIDs

	const callers = 8
	results := make(chan []int64, callers)
	for i := 0; i < callers; i++ {
		go func() {
			results <- Validate(records, testTeamID, 10, testNow).FixtureIDs
		}()
	}
	for i := 0; i < callers; i++ {
		if got := <-results; !reflect.DeepEqual(got, want) {
			t.Fatalf("concurrent caller diverged: %v vs %v", got, want)
		}
	}
}

func TestValidate_RemovesDuplicates(t *testing.T) {
	t.Parallel()

	records := sampleSeasonRecords()
	// Replay the whole batch once more: every id is now a duplicate.
	records = append(records, sampleSeasonRecords()...)

	set := Validate(records, testTeamID, 10, testNow)

	if set.Exclusions.Duplicates != 10 {
		t.Fatalf("duplicates counter = %d, want 10", set.Exclusions.Duplicates)
	}
	seen := make(map[int64]struct{})
	for _, id := range set.FixtureIDs {
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate fixture id %d in output", id)
		}
		seen[id] = struct{}{}
	}
}

func TestValidate_Ordering(t *testing.T) {
	t.Parallel()

	sameInstant := testNow.Add(-48 * time.Hour).Format(time.RFC3339)
	records := []fixture.Record{
		buildRecord(recordSpec{id: 5, daysAgo: 5}),
		buildRecord(recordSpec{id: 20, rawDate: sameInstant}),
		buildRecord(recordSpec{id: 30, rawDate: sameInstant}),
		buildRecord(recordSpec{id: 1, daysAgo: 1}),
		buildRecord(recordSpec{id: 9, daysAgo: 9}),
		buildRecord(recordSpec{id: 3, daysAgo: 3}),
		buildRecord(recordSpec{id: 7, daysAgo: 7}),
	}

	set := Validate(records, testTeamID, 10, testNow)

	want := []int64{1, 30, 20, 3, 5, 7, 9}
	if !reflect.DeepEqual(set.FixtureIDs, want) {
		t.Fatalf("fixture ids = %v, want %v", set.FixtureIDs, want)
	}

	for i := 1; i < set.Len(); i++ {
		prev, _ := set.Records[i-1].KickoffTime()
		curr, _ := set.Records[i].KickoffTime()
		if curr.After(prev) {
			t.Fatalf("record %d is newer than record %d", i, i-1)
		}
		if curr.Equal(prev) && set.Records[i].Fixture.ID > set.Records[i-1].Fixture.ID {
			t.Fatalf("timestamp tie broken wrong way at index %d", i)
		}
	}
}

func TestValidate_TimezoneEquivalentTimestamps(t *testing.T) {
	t.Parallel()

	// Same instant written with an explicit offset and in UTC; the offset
	// one carries the larger id, so it must sort first.
	records := []fixture.Record{
		buildRecord(recordSpec{id: 100, rawDate: "2026-07-30T12:00:00Z"}),
		buildRecord(recordSpec{id: 200, rawDate: "2026-07-30T09:00:00-03:00"}),
	}

	set := Validate(records, testTeamID, 10, testNow)
	want := []int64{200, 100}
	if !reflect.DeepEqual(set.FixtureIDs, want) {
		t.Fatalf("fixture ids = %v, want %v", set.FixtureIDs, want)
	}
}

func TestValidate_ExcludesFriendlies(t *testing.T) {
	t.Parallel()

	records := sampleSeasonRecords()[:8]
	records = append(records,
		buildRecord(recordSpec{id: 9001, daysAgo: 11, leagueType: "Friendly"}),
		buildRecord(recordSpec{id: 9002, daysAgo: 12, leagueName: "Copa Amistoso Internacional"}),
	)

	set := Validate(records, testTeamID, 10, testNow)

	if set.Exclusions.Friendlies != 2 {
		t.Fatalf("friendlies counter = %d, want 2", set.Exclusions.Friendlies)
	}
	if set.Len() != 8 {
		t.Fatalf("accepted = %d, want 8", set.Len())
	}
}

func TestValidate_ExclusionReasons(t *testing.T) {
	t.Parallel()

	records := []fixture.Record{
		buildRecord(recordSpec{id: 1, daysAgo: 1}),
		buildRecord(recordSpec{id: 0, daysAgo: 2}),                                         // missing id
		buildRecord(recordSpec{id: 3, daysAgo: 3, homeID: 7, awayID: 8}),                   // not a participant
		buildRecord(recordSpec{id: 4, rawDate: "not-a-date"}),                              // unparseable date
		buildRecord(recordSpec{id: 5, rawDate: testNow.AddDate(0, 0, 7).Format(time.RFC3339)}), // future
		buildRecord(recordSpec{id: 6, daysAgo: 6, status: "NS"}),                           // not started
		buildRecord(recordSpec{id: 7, daysAgo: 7, status: "PST"}),                          // postponed
		buildRecord(recordSpec{id: 8, daysAgo: 8, status: "1H"}),                           // live
		buildRecord(recordSpec{id: 9, daysAgo: 9, noScore: true}),                          // score missing
		buildRecord(recordSpec{id: 10, daysAgo: 10, homeID: testTeamID, awayID: -1}),       // away id missing
	}

	set := Validate(records, testTeamID, 10, testNow)

	want := Exclusions{
		MissingID:      1,
		NotParticipant: 1,
		BadDate:        1,
		Future:         1,
		Unfinished:     3,
		NoScore:        1,
		NoTeamID:       1,
	}
	if set.Exclusions != want {
		t.Fatalf("exclusions = %+v, want %+v", set.Exclusions, want)
	}
	if set.Len() != 1 || set.FixtureIDs[0] != 1 {
		t.Fatalf("accepted ids = %v, want [1]", set.FixtureIDs)
	}
}

func TestValidate_AcceptsAllFinishedStatuses(t *testing.T) {
	t.Parallel()

	records := []fixture.Record{
		buildRecord(recordSpec{id: 1, daysAgo: 1, status: "FT"}),
		buildRecord(recordSpec{id: 2, daysAgo: 2, status: "AET"}),
		buildRecord(recordSpec{id: 3, daysAgo: 3, status: "PEN"}),
		buildRecord(recordSpec{id: 4, daysAgo: 4, status: "ft"}),
		buildRecord(recordSpec{id: 5, daysAgo: 5, status: "SUSP"}),
		buildRecord(recordSpec{id: 6, daysAgo: 6, status: "ABD"}),
		buildRecord(recordSpec{id: 7, daysAgo: 7, status: "TBD"}),
	}

	set := Validate(records, testTeamID, 10, testNow)
	if set.Len() != 4 {
		t.Fatalf("accepted = %d, want 4 (FT, AET, PEN, ft)", set.Len())
	}
	if set.Exclusions.Unfinished != 3 {
		t.Fatalf("unfinished counter = %d, want 3", set.Exclusions.Unfinished)
	}
}

func TestValidate_MinimumFloor(t *testing.T) {
	t.Parallel()

	three := sampleSeasonRecords()[:3]
	set := Validate(three, testTeamID, 10, testNow)
	if set.Valid {
		t.Fatal("3 fixtures must be invalid")
	}
	if len(set.Notices) == 0 || !strings.Contains(set.Notices[0], "minimum 5") {
		t.Fatalf("floor notice missing: %v", set.Notices)
	}

	five := sampleSeasonRecords()[:5]
	set = Validate(five, testTeamID, 10, testNow)
	if !set.Valid {
		t.Fatal("5 fixtures must be valid")
	}
	found := false
	for _, notice := range set.Notices {
		if strings.Contains(notice, "requested 10") {
			found = true
		}
	}
	if !found {
		t.Fatalf("fewer-than-requested notice missing: %v", set.Notices)
	}

	full := sampleSeasonRecords()
	set = Validate(full, testTeamID, 10, testNow)
	if !set.Valid || len(set.Notices) != 0 {
		t.Fatalf("full set: valid=%v notices=%v", set.Valid, set.Notices)
	}
}

func TestValidate_EmptyBatch(t *testing.T) {
	t.Parallel()

	set := Validate(nil, testTeamID, 10, testNow)
	if set.Valid {
		t.Fatal("empty batch must be invalid")
	}
	if set.Len() != 0 || len(set.FixtureIDs) != 0 {
		t.Fatalf("unexpected records in empty batch result: %+v", set)
	}
}

func TestValidate_TruncatesToRequestedN(t *testing.T) {
	t.Parallel()

	set := Validate(sampleSeasonRecords(), testTeamID, 6, testNow)
	if set.Len() != 6 {
		t.Fatalf("accepted = %d, want 6", set.Len())
	}
	// Newest six by construction.
	want := []int64{1000, 999, 998, 997, 996, 995}
	if !reflect.DeepEqual(set.FixtureIDs, want) {
		t.Fatalf("fixture ids = %v, want %v", set.FixtureIDs, want)
	}
}

func TestValidate_DateRange(t *testing.T) {
	t.Parallel()

	set := validatedScenarioSet()
	if !set.Range.End.After(set.Range.Start) {
		t.Fatalf("range end %v not after start %v", set.Range.End, set.Range.Start)
	}
	newest, _ := set.Records[0].KickoffTime()
	oldest, _ := set.Records[set.Len()-1].KickoffTime()
	if !set.Range.End.Equal(newest) || !set.Range.Start.Equal(oldest) {
		t.Fatalf("range = %+v, newest=%v oldest=%v", set.Range, newest, oldest)
	}
}

func TestValidate_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	records := sampleSeasonRecords()
	snapshot := make([]fixture.Record, len(records))
	copy(snapshot, records)

	_ = Validate(records, testTeamID, 10, testNow)

	for i := range records {
		if records[i].Fixture != snapshot[i].Fixture {
			t.Fatalf("input record %d mutated", i)
		}
	}
}

func TestValidate_NegativeSampleSizePanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for negative n")
		}
	}()
	_ = Validate(nil, testTeamID, -1, testNow)
}
