package team

import "fmt"

// Team is a canonical club entry carrying the upstream provider id.
type Team struct {
	ID      int64
	Name    string
	Country string
}

func (t Team) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// Conflict is one club among several that share a normalized name stem
// across countries, e.g. "barcelona" in Spain and Ecuador. TeamID is zero
// when the club is outside the curated canonical table.
type Conflict struct {
	TeamID  int64
	Name    string
	Country string
}

// Tables is one immutable snapshot of the curated resolution data. A
// resolver swaps whole snapshots atomically and never mutates one in
// place, so concurrent lookups always see a coherent set.
type Tables struct {
	// Canonical maps a normalized club name to its team entry.
	Canonical map[string]Team
	// Aliases maps a normalized nickname or abbreviation to a canonical key.
	Aliases map[string]string
	// Markers maps a country name to context substrings that indicate the
	// query refers to that country's club.
	Markers map[string][]string
	// Conflicts maps a normalized stem shared by clubs in several
	// countries to the clubs that share it.
	Conflicts map[string][]Conflict
}

// Method records which stage of the resolution ladder produced a match.
type Method string

const (
	MethodAlias  Method = "alias"
	MethodExact  Method = "exact"
	MethodFuzzy  Method = "fuzzy"
	MethodRemote Method = "remote"
)

// Suggestion is one candidate offered back when a query is ambiguous.
type Suggestion struct {
	TeamID  int64  `json:"team_id,omitempty"`
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
}

// Resolution is the outcome of resolving one free-text team query. Either
// Team is populated with a confidence and method, or Ambiguous is set with
// up to three suggestions and the caller must ask the user to pick.
type Resolution struct {
	Query       string       `json:"query"`
	Team        Team         `json:"team"`
	Confidence  float64      `json:"confidence"`
	Method      Method       `json:"method"`
	Ambiguous   bool         `json:"ambiguous"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

// PairResolution resolves both sides of a fixture; Confidence is the mean
// of the two sides.
type PairResolution struct {
	Home       Resolution `json:"home"`
	Away       Resolution `json:"away"`
	Confidence float64    `json:"confidence"`
}
