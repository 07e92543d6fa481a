package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/betfaro/engine/internal/platform/logging"
)

const (
	BatchStatusPassed       = "passed"
	BatchStatusBlocked      = "blocked"
	BatchStatusInsufficient = "insufficient"
	BatchStatusAmbiguous    = "ambiguous"
	BatchStatusUnresolved   = "unresolved"
	BatchStatusFailed       = "failed"
)

// TeamAnalyzer is the slice of the analysis pipeline the batch runner needs.
type TeamAnalyzer interface {
	AnalyzeTeam(ctx context.Context, query, hint string, sampleSize int) (TeamAnalysis, error)
}

// BatchItemResult is the outcome for one queried team.
type BatchItemResult struct {
	Query      string `json:"query"`
	TeamID     int64  `json:"team_id,omitempty"`
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// BatchResult summarizes a quality-assurance sweep over many teams.
type BatchResult struct {
	Items      []BatchItemResult `json:"items"`
	Total      int               `json:"total"`
	Passed     int               `json:"passed"`
	Failed     int               `json:"failed"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
}

// BatchService runs the analysis pipeline over a list of team queries on
// a bounded worker pool. It exists to exercise the engine against the
// whole curated table in one pass and surface teams whose data blocks or
// fails the self-audit.
type BatchService struct {
	analyzer TeamAnalyzer
	workers  int
	logger   *logging.Logger
	now      func() time.Time
}

func NewBatchService(analyzer TeamAnalyzer, workers int, logger *logging.Logger) *BatchService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers < 1 {
		workers = 1
	}

	return &BatchService{
		analyzer: analyzer,
		workers:  workers,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *BatchService) Run(ctx context.Context, queries []string, sampleSize int) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "BatchService.Run")
	defer span.End()

	result := BatchResult{StartedAt: s.now().UTC()}
	if len(queries) == 0 {
		result.FinishedAt = result.StartedAt
		return result, nil
	}

	type indexed struct {
		index int
		item  BatchItemResult
	}

	results := make(chan indexed, len(queries))
	var passedCount atomic.Int32

	workerPool, err := ants.NewPool(s.workers)
	if err != nil {
		return BatchResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var workers sync.WaitGroup
	for i, query := range queries {
		i, query := i, query
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			item := s.runOne(ctx, query, sampleSize)
			item.DurationMs = time.Since(start).Milliseconds()
			if item.Status == BatchStatusPassed {
				passedCount.Add(1)
			}
			results <- indexed{index: i, item: item}
		}); err != nil {
			workers.Done()
			return BatchResult{}, fmt.Errorf("submit query to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	rows := make([]indexed, 0, len(queries))
	for row := range results {
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].index < rows[j].index })

	for _, row := range rows {
		result.Items = append(result.Items, row.item)
	}
	result.Total = len(result.Items)
	result.Passed = int(passedCount.Load())
	result.Failed = result.Total - result.Passed
	result.FinishedAt = s.now().UTC()

	return result, nil
}

func (s *BatchService) runOne(ctx context.Context, query string, sampleSize int) BatchItemResult {
	item := BatchItemResult{Query: query}

	analyzed, err := s.analyzer.AnalyzeTeam(ctx, query, "", sampleSize)
	item.TeamID = analyzed.Resolution.Team.ID

	switch {
	case err == nil:
		item.Status = BatchStatusPassed
	case errors.Is(err, ErrConsistencyViolation):
		item.Status = BatchStatusBlocked
		item.Message = err.Error()
	case errors.Is(err, ErrDataInsufficient):
		item.Status = BatchStatusInsufficient
		item.Message = err.Error()
	case errors.Is(err, ErrTeamAmbiguous):
		item.Status = BatchStatusAmbiguous
		item.Message = err.Error()
	case errors.Is(err, ErrTeamUnresolved):
		item.Status = BatchStatusUnresolved
		item.Message = err.Error()
	default:
		item.Status = BatchStatusFailed
		item.Message = err.Error()
	}

	if err != nil {
		s.logger.WarnContext(ctx, "batch item did not pass",
			"query", query,
			"status", item.Status,
			"error", err,
		)
	}

	return item
}
