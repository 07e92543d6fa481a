package fixture

import (
	"strings"
	"time"
)

// Finished-match status codes: the match reached a conclusive result.
const (
	StatusFullTime       = "FT"
	StatusAfterExtraTime = "AET"
	StatusPenalties      = "PEN"
)

// Record is one match as received from the data provider. Records are owned
// by the caller and borrowed read-only for the duration of a validation call.
type Record struct {
	Fixture Meta   `json:"fixture"`
	League  League `json:"league"`
	Teams   Teams  `json:"teams"`
	Goals   Goals  `json:"goals"`
}

type Meta struct {
	ID     int64  `json:"id"`
	Date   string `json:"date"`
	Status Status `json:"status"`
}

type Status struct {
	Short string `json:"short"`
}

type League struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type Teams struct {
	Home Side `json:"home"`
	Away Side `json:"away"`
}

type Side struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Goals struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

func IsFinishedStatus(status string) bool {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case StatusFullTime, StatusAfterExtraTime, StatusPenalties:
		return true
	default:
		return false
	}
}

// KickoffTime parses the record's ISO-8601 timestamp. Offsets are honored so
// an explicit-offset time and its UTC representation compare equal.
func (r Record) KickoffTime() (time.Time, bool) {
	raw := strings.TrimSpace(r.Fixture.Date)
	if raw == "" {
		return time.Time{}, false
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

func (r Record) HasTeam(teamID int64) bool {
	return r.Teams.Home.ID == teamID || r.Teams.Away.ID == teamID
}

func (r Record) HasScore() bool {
	return r.Goals.Home != nil && r.Goals.Away != nil
}

func (r Record) HasTeamIDs() bool {
	return r.Teams.Home.ID > 0 && r.Teams.Away.ID > 0
}
