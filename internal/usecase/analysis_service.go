package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/betfaro/engine/internal/domain/analysis"
	"github.com/betfaro/engine/internal/domain/audit"
	"github.com/betfaro/engine/internal/domain/team"
	"github.com/betfaro/engine/internal/platform/id"
	"github.com/betfaro/engine/internal/platform/logging"
)

// TeamResolver is the slice of the resolver the analysis pipeline needs.
type TeamResolver interface {
	Resolve(ctx context.Context, query, hint string) (team.Resolution, error)
	ResolvePair(ctx context.Context, homeQuery, awayQuery, hint string) (team.PairResolution, error)
}

// TeamAnalysis is the full validated output for one team: the fixture set
// that survived validation, the statistics computed from it, the form
// string and the consistency report that gated delivery.
type TeamAnalysis struct {
	Resolution team.Resolution            `json:"resolution"`
	Set        analysis.FixtureSet        `json:"fixture_set"`
	Stats      analysis.TeamStats         `json:"stats"`
	Form       string                     `json:"form"`
	Check      analysis.ConsistencyReport `json:"consistency"`
}

// MatchAnalysis pairs both sides of an upcoming fixture.
type MatchAnalysis struct {
	Home           TeamAnalysis `json:"home"`
	Away           TeamAnalysis `json:"away"`
	PairConfidence float64      `json:"pair_confidence"`
	GeneratedAt    time.Time    `json:"generated_at"`
}

type AnalysisServiceConfig struct {
	DefaultSampleSize int
	MaxSampleSize     int
}

// AnalysisService runs the whole pipeline for a team or a match: resolve,
// fetch, validate, aggregate, self-audit, record. A failed consistency
// check blocks delivery; there is no flag to bypass it.
type AnalysisService struct {
	resolver TeamResolver
	provider FixtureProvider
	sink     audit.Sink
	ids      id.Generator
	logger   *logging.Logger
	cfg      AnalysisServiceConfig
	now      func() time.Time
}

func NewAnalysisService(
	resolver TeamResolver,
	provider FixtureProvider,
	sink audit.Sink,
	ids id.Generator,
	cfg AnalysisServiceConfig,
	logger *logging.Logger,
) *AnalysisService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.DefaultSampleSize < 1 {
		cfg.DefaultSampleSize = 10
	}
	if cfg.MaxSampleSize < cfg.DefaultSampleSize {
		cfg.MaxSampleSize = cfg.DefaultSampleSize
	}

	return &AnalysisService{
		resolver: resolver,
		provider: provider,
		sink:     sink,
		ids:      ids,
		logger:   logger,
		cfg:      cfg,
		now:      time.Now,
	}
}

// AnalyzeTeam resolves one query and produces its audited analysis. The
// hint is free context text forwarded to the resolver's country bias.
func (s *AnalysisService) AnalyzeTeam(ctx context.Context, query, hint string, sampleSize int) (TeamAnalysis, error) {
	ctx, span := startUsecaseSpan(ctx, "AnalysisService.AnalyzeTeam")
	defer span.End()

	n, err := s.sampleSize(sampleSize)
	if err != nil {
		return TeamAnalysis{}, err
	}

	resolution, err := s.resolver.Resolve(ctx, query, hint)
	if err != nil {
		return TeamAnalysis{}, err
	}
	if resolution.Ambiguous {
		return TeamAnalysis{Resolution: resolution}, fmt.Errorf("%w: %q", ErrTeamAmbiguous, strings.TrimSpace(query))
	}

	return s.analyzeResolved(ctx, resolution, n)
}

// AnalyzeMatch analyzes both sides of an upcoming fixture. Both names are
// resolved up front, so a failure or ambiguity on either side is reported
// in full before any fixture is fetched; only then do the two fetch and
// validate pipelines run concurrently.
func (s *AnalysisService) AnalyzeMatch(ctx context.Context, homeQuery, awayQuery, hint string, sampleSize int) (MatchAnalysis, error) {
	ctx, span := startUsecaseSpan(ctx, "AnalysisService.AnalyzeMatch")
	defer span.End()

	n, err := s.sampleSize(sampleSize)
	if err != nil {
		return MatchAnalysis{}, err
	}

	pair, err := s.resolver.ResolvePair(ctx, homeQuery, awayQuery, hint)
	if err != nil {
		return MatchAnalysis{}, err
	}
	if pair.Home.Ambiguous || pair.Away.Ambiguous {
		return MatchAnalysis{
				Home:           TeamAnalysis{Resolution: pair.Home},
				Away:           TeamAnalysis{Resolution: pair.Away},
				PairConfidence: pair.Confidence,
			},
			fmt.Errorf("%w: %s", ErrTeamAmbiguous, strings.Join(ambiguousQueries(pair), ", "))
	}

	var home, away TeamAnalysis

	workers := pool.New().WithContext(ctx).WithCancelOnError()
	workers.Go(func(ctx context.Context) error {
		result, err := s.analyzeResolved(ctx, pair.Home, n)
		if err != nil {
			return fmt.Errorf("home side: %w", err)
		}
		home = result
		return nil
	})
	workers.Go(func(ctx context.Context) error {
		result, err := s.analyzeResolved(ctx, pair.Away, n)
		if err != nil {
			return fmt.Errorf("away side: %w", err)
		}
		away = result
		return nil
	})
	if err := workers.Wait(); err != nil {
		return MatchAnalysis{}, err
	}

	return MatchAnalysis{
		Home:           home,
		Away:           away,
		PairConfidence: pair.Confidence,
		GeneratedAt:    s.now().UTC(),
	}, nil
}

func ambiguousQueries(pair team.PairResolution) []string {
	queries := make([]string, 0, 2)
	if pair.Home.Ambiguous {
		queries = append(queries, strconv.Quote(pair.Home.Query))
	}
	if pair.Away.Ambiguous {
		queries = append(queries, strconv.Quote(pair.Away.Query))
	}
	return queries
}

// fetchMultiplier over-fetches raw fixtures so exclusions (friendlies,
// unfinished, duplicates) do not starve the sample below n.
const fetchMultiplier = 2

func (s *AnalysisService) analyzeResolved(ctx context.Context, resolution team.Resolution, n int) (TeamAnalysis, error) {
	teamID := resolution.Team.ID

	records, err := s.provider.LastFixtures(ctx, teamID, n*fetchMultiplier)
	if err != nil {
		return TeamAnalysis{}, fmt.Errorf("fetch fixtures for team_id=%d: %w", teamID, err)
	}

	set := analysis.Validate(records, teamID, n, s.now())
	result := TeamAnalysis{Resolution: resolution, Set: set}

	if !set.Valid {
		s.audit(ctx, result, false)
		return result, fmt.Errorf("%w: team_id=%d has %d valid fixtures, need %d",
			ErrDataInsufficient, teamID, set.Len(), analysis.MinFixtures)
	}

	result.Stats = analysis.Aggregate(set, teamID)
	result.Form = analysis.Form(set, teamID, analysis.FormWindow)
	result.Check = analysis.CheckConsistency(set, teamID, result.Stats, result.Form)

	s.audit(ctx, result, result.Check.Valid)

	if !result.Check.Valid {
		s.logger.ErrorContext(ctx, "analysis blocked by consistency check",
			"team_id", teamID,
			"issues", result.Check.Issues,
		)
		return TeamAnalysis{Resolution: resolution, Set: set, Check: result.Check},
			fmt.Errorf("%w: team_id=%d: %s", ErrConsistencyViolation, teamID, strings.Join(result.Check.Issues, "; "))
	}

	return result, nil
}

func (s *AnalysisService) sampleSize(requested int) (int, error) {
	if requested == 0 {
		return s.cfg.DefaultSampleSize, nil
	}
	if requested < 1 {
		return 0, fmt.Errorf("%w: sample size must be at least 1", ErrInvalidInput)
	}
	if requested > s.cfg.MaxSampleSize {
		return 0, fmt.Errorf("%w: sample size %d exceeds maximum %d", ErrInvalidInput, requested, s.cfg.MaxSampleSize)
	}
	return requested, nil
}

func (s *AnalysisService) audit(ctx context.Context, result TeamAnalysis, consistent bool) {
	if s.sink == nil {
		return
	}

	recordID := ""
	if s.ids != nil {
		generated, err := s.ids.NewID()
		if err != nil {
			s.logger.WarnContext(ctx, "generate audit id failed", "error", err)
		} else {
			recordID = generated
		}
	}

	record := audit.Record{
		ID:         recordID,
		Time:       s.now().UTC(),
		TeamID:     result.Resolution.Team.ID,
		TeamName:   result.Resolution.Team.Name,
		Requested:  result.Set.Requested,
		FixtureIDs: result.Set.FixtureIDs,
		Exclusions: result.Set.Exclusions,
		Stats:      result.Stats,
		Form:       result.Form,
		Consistent: consistent,
		Issues:     result.Check.Issues,
	}

	if err := s.sink.Write(ctx, record); err != nil {
		s.logger.WarnContext(ctx, "write audit record failed",
			"team_id", record.TeamID,
			"error", err,
		)
	}
}
