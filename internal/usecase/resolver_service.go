package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/betfaro/engine/internal/domain/team"
	"github.com/betfaro/engine/internal/platform/cache"
	"github.com/betfaro/engine/internal/platform/logging"
	"github.com/betfaro/engine/internal/platform/resilience"
	"github.com/betfaro/engine/internal/platform/textnorm"
)

const (
	aliasConfidence       = 0.95
	exactConfidence       = 0.95
	fuzzyThreshold        = 0.85
	fuzzyCountryThreshold = 0.75
	countryBonus          = 0.15
	remoteAcceptThreshold = 0.75
	remoteConfidenceCap   = 0.99
	maxSuggestions        = 3
)

type tableSnapshot struct {
	tables   team.Tables
	loadedAt time.Time
}

// TeamResolverService turns free-text team names into provider ids. The
// ladder is alias, exact, fuzzy against the curated tables, then the
// remote directory; ambiguous stems without country context come back as
// suggestions instead of a guess.
//
// Curated tables are swapped as whole snapshots behind an atomic pointer,
// so a lookup never observes a half-refreshed table.
type TeamResolverService struct {
	repo      team.Repository
	directory TeamDirectory
	logger    *logging.Logger
	ttl       time.Duration
	now       func() time.Time

	snapshot    atomic.Pointer[tableSnapshot]
	refresh     resilience.Flight[*tableSnapshot]
	searchCache *cache.Store[[]ProviderTeam]
}

func NewTeamResolverService(
	repo team.Repository,
	directory TeamDirectory,
	tableTTL time.Duration,
	searchCacheTTL time.Duration,
	logger *logging.Logger,
) *TeamResolverService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamResolverService{
		repo:        repo,
		directory:   directory,
		logger:      logger,
		ttl:         tableTTL,
		now:         time.Now,
		searchCache: cache.NewStore[[]ProviderTeam](searchCacheTTL),
	}
}

// Resolve maps one query to a team. The hint is free context text
// ("serie a", "liga pro") that only biases country preference; it never
// becomes part of the lookup key, so a hint the tables know nothing about
// cannot break an alias or canonical hit. An ambiguous query returns a
// Resolution with Ambiguous set and no error; only hard failures error.
func (s *TeamResolverService) Resolve(ctx context.Context, query, hint string) (team.Resolution, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamResolverService.Resolve")
	defer span.End()

	raw := strings.TrimSpace(query)
	if raw == "" {
		return team.Resolution{}, fmt.Errorf("%w: team query is required", ErrInvalidInput)
	}

	key := textnorm.TeamKey(raw)
	if key == "" {
		return team.Resolution{}, fmt.Errorf("%w: team query %q has no resolvable content", ErrInvalidInput, raw)
	}

	tables, err := s.tables(ctx)
	if err != nil {
		return team.Resolution{}, err
	}

	resolution := team.Resolution{Query: raw}

	if canonicalKey, ok := tables.Aliases[key]; ok {
		if entry, ok := tables.Canonical[canonicalKey]; ok {
			resolution.Team = entry
			resolution.Confidence = aliasConfidence
			resolution.Method = team.MethodAlias
			return resolution, nil
		}
	}

	preferred := preferredCountry(raw, tables.Markers)
	if preferred == "" {
		preferred = preferredCountry(hint, tables.Markers)
	}

	// Country markers inside the query ("barcelona ecuador") are context,
	// not part of the club name; lookups run on the key without them.
	lookupKey := key
	if preferred != "" {
		if stripped := stripMarkerTokens(key, preferred, tables.Markers[preferred]); stripped != "" {
			lookupKey = stripped
		}
	}

	if clubs, ok := tables.Conflicts[lookupKey]; ok {
		if picked, ok := pickConflictByCountry(clubs, preferred, tables.Canonical); ok {
			resolution.Team = picked
			resolution.Confidence = exactConfidence
			resolution.Method = team.MethodExact
			return resolution, nil
		}
		resolution.Ambiguous = true
		resolution.Suggestions = conflictSuggestions(clubs)
		return resolution, nil
	}

	if entry, ok := tables.Canonical[lookupKey]; ok {
		resolution.Team = entry
		resolution.Confidence = exactConfidence
		resolution.Method = team.MethodExact
		return resolution, nil
	}

	if entry, score, ok := fuzzyMatch(lookupKey, preferred, tables.Canonical); ok {
		resolution.Team = entry
		resolution.Confidence = score
		resolution.Method = team.MethodFuzzy
		return resolution, nil
	}

	if s.directory != nil {
		remote, err := s.resolveRemote(ctx, raw, lookupKey, preferred)
		if err != nil {
			s.logger.WarnContext(ctx, "remote team search failed", "query", raw, "error", err)
		} else if remote.Method == team.MethodRemote || remote.Ambiguous {
			remote.Query = raw
			return remote, nil
		}
	}

	return resolution, fmt.Errorf("%w: %q", ErrTeamUnresolved, raw)
}

// ResolvePair resolves both sides of a fixture under one shared hint.
// Pair confidence is the mean of the sides; an ambiguous side contributes
// zero and surfaces through its Resolution, not through the error.
func (s *TeamResolverService) ResolvePair(ctx context.Context, homeQuery, awayQuery, hint string) (team.PairResolution, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamResolverService.ResolvePair")
	defer span.End()

	home, homeErr := s.Resolve(ctx, homeQuery, hint)
	away, awayErr := s.Resolve(ctx, awayQuery, hint)

	// Both sides resolve before any failure is reported, so the caller
	// can fix both names in one round trip.
	switch {
	case homeErr != nil && awayErr != nil:
		return team.PairResolution{}, fmt.Errorf("resolve home team: %w; resolve away team: %w", homeErr, awayErr)
	case homeErr != nil:
		return team.PairResolution{}, fmt.Errorf("resolve home team: %w", homeErr)
	case awayErr != nil:
		return team.PairResolution{}, fmt.Errorf("resolve away team: %w", awayErr)
	}

	return team.PairResolution{
		Home:       home,
		Away:       away,
		Confidence: (home.Confidence + away.Confidence) / 2,
	}, nil
}

// Refresh forces a table reload regardless of TTL.
func (s *TeamResolverService) Refresh(ctx context.Context) error {
	loaded, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load resolver tables: %w", err)
	}
	s.snapshot.Store(&tableSnapshot{tables: loaded, loadedAt: s.now()})
	return nil
}

func (s *TeamResolverService) tables(ctx context.Context) (team.Tables, error) {
	snap := s.snapshot.Load()
	if snap != nil && (s.ttl <= 0 || s.now().Sub(snap.loadedAt) < s.ttl) {
		return snap.tables, nil
	}

	fresh, err, _ := s.refresh.Do("tables", func() (*tableSnapshot, error) {
		current := s.snapshot.Load()
		if current != nil && s.ttl > 0 && s.now().Sub(current.loadedAt) < s.ttl {
			return current, nil
		}

		loaded, loadErr := s.repo.Load(ctx)
		if loadErr != nil {
			return nil, loadErr
		}

		next := &tableSnapshot{tables: loaded, loadedAt: s.now()}
		s.snapshot.Store(next)
		return next, nil
	})
	if err != nil {
		// A stale snapshot beats no answer; refresh will be retried on
		// the next call.
		if snap != nil {
			s.logger.WarnContext(ctx, "resolver table refresh failed, serving stale snapshot", "error", err)
			return snap.tables, nil
		}
		return team.Tables{}, fmt.Errorf("load resolver tables: %w", err)
	}

	return fresh.tables, nil
}

func (s *TeamResolverService) resolveRemote(ctx context.Context, raw, key, preferred string) (team.Resolution, error) {
	candidates, err := s.searchCache.GetOrLoad(ctx, key, func(ctx context.Context) ([]ProviderTeam, error) {
		return s.directory.SearchTeams(ctx, raw)
	})
	if err != nil {
		return team.Resolution{}, err
	}
	if len(candidates) == 0 {
		return team.Resolution{}, nil
	}

	type scored struct {
		candidate ProviderTeam
		score     float64
	}

	ranked := make([]scored, 0, len(candidates))
	for _, candidate := range candidates {
		score := textnorm.Similarity(key, textnorm.TeamKey(candidate.Name))
		if preferred != "" && strings.EqualFold(candidate.Country, preferred) {
			score += countryBonus
		}
		if score > remoteConfidenceCap {
			score = remoteConfidenceCap
		}
		ranked = append(ranked, scored{candidate: candidate, score: score})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	best := ranked[0]
	if best.score >= remoteAcceptThreshold {
		return team.Resolution{
			Team: team.Team{
				ID:      best.candidate.ID,
				Name:    best.candidate.Name,
				Country: best.candidate.Country,
			},
			Confidence: best.score,
			Method:     team.MethodRemote,
		}, nil
	}

	suggestions := make([]team.Suggestion, 0, maxSuggestions)
	for _, item := range ranked {
		if len(suggestions) == maxSuggestions {
			break
		}
		suggestions = append(suggestions, team.Suggestion{
			TeamID:  item.candidate.ID,
			Name:    item.candidate.Name,
			Country: item.candidate.Country,
		})
	}

	return team.Resolution{Ambiguous: true, Suggestions: suggestions}, nil
}

func stripMarkerTokens(key, country string, markers []string) string {
	drop := make(map[string]struct{})
	for _, field := range strings.Fields(textnorm.FoldASCII(country)) {
		drop[field] = struct{}{}
	}
	for _, marker := range markers {
		for _, field := range strings.Fields(marker) {
			drop[field] = struct{}{}
		}
	}

	fields := strings.Fields(key)
	kept := make([]string, 0, len(fields))
	for _, field := range fields {
		if _, ok := drop[field]; ok {
			continue
		}
		kept = append(kept, field)
	}
	return strings.Join(kept, " ")
}

func preferredCountry(raw string, markers map[string][]string) string {
	if len(markers) == 0 {
		return ""
	}
	folded := textnorm.FoldASCII(raw)

	countries := make([]string, 0, len(markers))
	for country := range markers {
		countries = append(countries, country)
	}
	sort.Strings(countries)

	for _, country := range countries {
		for _, marker := range markers[country] {
			if marker != "" && strings.Contains(folded, marker) {
				return country
			}
		}
	}
	return ""
}

func pickConflictByCountry(clubs []team.Conflict, preferred string, canonical map[string]team.Team) (team.Team, bool) {
	if preferred == "" {
		return team.Team{}, false
	}
	for _, club := range clubs {
		if !strings.EqualFold(club.Country, preferred) {
			continue
		}
		if club.TeamID > 0 {
			return team.Team{ID: club.TeamID, Name: club.Name, Country: club.Country}, true
		}
		if entry, ok := canonical[textnorm.TeamKey(club.Name)]; ok && strings.EqualFold(entry.Country, preferred) {
			return entry, true
		}
	}
	return team.Team{}, false
}

func conflictSuggestions(clubs []team.Conflict) []team.Suggestion {
	out := make([]team.Suggestion, 0, maxSuggestions)
	for _, club := range clubs {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, team.Suggestion{
			TeamID:  club.TeamID,
			Name:    club.Name,
			Country: club.Country,
		})
	}
	return out
}

func fuzzyMatch(key, preferred string, canonical map[string]team.Team) (team.Team, float64, bool) {
	var (
		best      team.Team
		bestScore float64
	)

	keys := make([]string, 0, len(canonical))
	for candidate := range canonical {
		keys = append(keys, candidate)
	}
	sort.Strings(keys)

	for _, candidate := range keys {
		score := textnorm.Similarity(key, candidate)
		if score > bestScore {
			bestScore = score
			best = canonical[candidate]
		}
	}

	threshold := fuzzyThreshold
	if preferred != "" && strings.EqualFold(best.Country, preferred) {
		threshold = fuzzyCountryThreshold
	}
	if bestScore >= threshold {
		return best, bestScore, true
	}
	return team.Team{}, 0, false
}
