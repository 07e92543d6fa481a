package memory

import (
	"github.com/betfaro/engine/internal/domain/team"
	"github.com/betfaro/engine/internal/platform/textnorm"
)

// SeedTables builds the curated resolution tables for the Brazilian top
// flights plus the clubs that commonly collide with European names.
// Provider ids are API-Football team ids.
func SeedTables() team.Tables {
	clubs := []team.Team{
		{ID: 127, Name: "Flamengo", Country: "Brazil"},
		{ID: 121, Name: "Palmeiras", Country: "Brazil"},
		{ID: 131, Name: "Corinthians", Country: "Brazil"},
		{ID: 126, Name: "Sao Paulo", Country: "Brazil"},
		{ID: 128, Name: "Santos", Country: "Brazil"},
		{ID: 130, Name: "Gremio", Country: "Brazil"},
		{ID: 119, Name: "Internacional", Country: "Brazil"},
		{ID: 1062, Name: "Atletico Mineiro", Country: "Brazil"},
		{ID: 135, Name: "Cruzeiro", Country: "Brazil"},
		{ID: 120, Name: "Botafogo", Country: "Brazil"},
		{ID: 133, Name: "Vasco da Gama", Country: "Brazil"},
		{ID: 124, Name: "Fluminense", Country: "Brazil"},
		{ID: 118, Name: "Bahia", Country: "Brazil"},
		{ID: 134, Name: "Athletico Paranaense", Country: "Brazil"},
		{ID: 154, Name: "Fortaleza", Country: "Brazil"},
		{ID: 129, Name: "Ceara", Country: "Brazil"},
		{ID: 123, Name: "Sport Recife", Country: "Brazil"},
		{ID: 146, Name: "Juventude", Country: "Brazil"},
		{ID: 794, Name: "Bragantino", Country: "Brazil"},
		{ID: 1193, Name: "Cuiaba", Country: "Brazil"},
		{ID: 125, Name: "America Mineiro", Country: "Brazil"},
		{ID: 151, Name: "Goias", Country: "Brazil"},
		{ID: 147, Name: "Coritiba", Country: "Brazil"},
		{ID: 136, Name: "Vitoria", Country: "Brazil"},
		{ID: 132, Name: "Chapecoense", Country: "Brazil"},
		{ID: 2246, Name: "Barcelona SC", Country: "Ecuador"},
	}

	canonical := make(map[string]team.Team, len(clubs))
	for _, club := range clubs {
		canonical[textnorm.TeamKey(club.Name)] = club
	}

	aliases := map[string]string{
		"mengao":            "flamengo",
		"fla":               "flamengo",
		"verdao":            "palmeiras",
		"porco":             "palmeiras",
		"timao":             "corinthians",
		"tricolor paulista": "sao paulo",
		"peixe":             "santos",
		"imortal":           "gremio",
		"colorado":          "internacional",
		"galo":              "atletico mineiro",
		"raposa":            "cruzeiro",
		"fogao":             "botafogo",
		"vasco":             "vasco da gama",
		"flu":               "fluminense",
		"tricolor carioca":  "fluminense",
		"furacao":           "athletico paranaense",
		"leao do pici":      "fortaleza",
		"vozao":             "ceara",
		"massa bruta":       "bragantino",
		"coelho":            "america mineiro",
	}

	markers := map[string][]string{
		"Brazil":   {"brasileirao", "serie a", "serie b", "brasil", "brazil", "copa do brasil", "campeonato brasileiro"},
		"Spain":    {"la liga", "espanha", "spain"},
		"Ecuador":  {"guayaquil", "ecuador", "liga pro"},
		"England":  {"premier league", "inglaterra", "england"},
		"Uruguay":  {"uruguai", "uruguay", "montevideo"},
		"Colombia": {"colombia", "cali", "medellin"},
		"Chile":    {"chile", "vina del mar"},
	}

	conflicts := map[string][]team.Conflict{
		"barcelona": {
			{TeamID: 529, Name: "Barcelona", Country: "Spain"},
			{TeamID: 2246, Name: "Barcelona SC", Country: "Ecuador"},
		},
		"america": {
			{TeamID: 125, Name: "America Mineiro", Country: "Brazil"},
			{TeamID: 1237, Name: "America de Cali", Country: "Colombia"},
		},
		"atletico": {
			{TeamID: 530, Name: "Atletico Madrid", Country: "Spain"},
			{TeamID: 1062, Name: "Atletico Mineiro", Country: "Brazil"},
		},
		"nacional": {
			{TeamID: 2350, Name: "Nacional", Country: "Uruguay"},
			{TeamID: 1240, Name: "Atletico Nacional", Country: "Colombia"},
		},
		"liverpool": {
			{TeamID: 40, Name: "Liverpool", Country: "England"},
			{TeamID: 2354, Name: "Liverpool", Country: "Uruguay"},
		},
		"everton": {
			{TeamID: 45, Name: "Everton", Country: "England"},
			{TeamID: 2334, Name: "Everton", Country: "Chile"},
		},
	}

	return team.Tables{
		Canonical: canonical,
		Aliases:   aliases,
		Markers:   markers,
		Conflicts: conflicts,
	}
}
