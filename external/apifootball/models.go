package apifootball

import "github.com/betfaro/engine/internal/domain/fixture"

type paging struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

type teamsEnvelope struct {
	Results  int         `json:"results"`
	Paging   paging      `json:"paging"`
	Response []teamEntry `json:"response"`
}

type teamEntry struct {
	Team teamData `json:"team"`
}

type teamData struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Country  string `json:"country"`
	National bool   `json:"national"`
}

type fixturesEnvelope struct {
	Results  int              `json:"results"`
	Paging   paging           `json:"paging"`
	Response []fixture.Record `json:"response"`
}
