package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/betfaro/engine/internal/domain/team"
	"github.com/betfaro/engine/internal/platform/logging"
	"github.com/betfaro/engine/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

// AnalysisRunner is the slice of the analysis service the handlers need.
type AnalysisRunner interface {
	AnalyzeTeam(ctx context.Context, query, hint string, sampleSize int) (usecase.TeamAnalysis, error)
	AnalyzeMatch(ctx context.Context, homeQuery, awayQuery, hint string, sampleSize int) (usecase.MatchAnalysis, error)
}

// TeamResolver resolves free-text team names against the curated tables.
type TeamResolver interface {
	Resolve(ctx context.Context, query, hint string) (team.Resolution, error)
	Refresh(ctx context.Context) error
}

type Handler struct {
	analysisService AnalysisRunner
	resolverService TeamResolver
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(analysisService AnalysisRunner, resolverService TeamResolver, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		analysisService: analysisService,
		resolverService: resolverService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

type matchAnalysisRequest struct {
	TeamA      string `json:"team_a" validate:"required,min=2,max=120"`
	TeamB      string `json:"team_b" validate:"required,min=2,max=120"`
	Context    string `json:"context" validate:"omitempty,max=120"`
	SampleSize int    `json:"sample_size" validate:"omitempty,min=1,max=50"`
}

func (h *Handler) AnalyzeMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AnalyzeMatch")
	defer span.End()

	var req matchAnalysisRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.analysisService.AnalyzeMatch(ctx, req.TeamA, req.TeamB, req.Context, req.SampleSize)
	if err != nil {
		h.logger.WarnContext(ctx, "match analysis failed",
			"team_a", req.TeamA,
			"team_b", req.TeamB,
			"error", err,
		)
		if errors.Is(err, usecase.ErrTeamAmbiguous) {
			writeErrorWithData(ctx, w, err, matchSuggestions(result))
			return
		}
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

type teamAnalysisRequest struct {
	Team       string `json:"team" validate:"required,min=2,max=120"`
	Context    string `json:"context" validate:"omitempty,max=120"`
	SampleSize int    `json:"sample_size" validate:"omitempty,min=1,max=50"`
}

func (h *Handler) AnalyzeTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AnalyzeTeam")
	defer span.End()

	var req teamAnalysisRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.analysisService.AnalyzeTeam(ctx, req.Team, req.Context, req.SampleSize)
	if err != nil {
		h.logger.WarnContext(ctx, "team analysis failed", "team", req.Team, "error", err)
		if errors.Is(err, usecase.ErrTeamAmbiguous) {
			writeErrorWithData(ctx, w, err, map[string]any{
				"suggestions": result.Resolution.Suggestions,
			})
			return
		}
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

type resolveTeamRequest struct {
	Query   string `json:"query" validate:"required,min=2,max=120"`
	Context string `json:"context" validate:"omitempty,max=120"`
}

func (h *Handler) ResolveTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResolveTeam")
	defer span.End()

	var req resolveTeamRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	resolution, err := h.resolverService.Resolve(ctx, req.Query, req.Context)
	if err != nil {
		h.logger.WarnContext(ctx, "team resolution failed", "query", req.Query, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, resolution)
}

func (h *Handler) RefreshTables(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshTables")
	defer span.End()

	if err := h.resolverService.Refresh(ctx); err != nil {
		h.logger.ErrorContext(ctx, "table refresh failed", "error", err)
		writeError(ctx, w, fmt.Errorf("%w: refresh resolution tables: %v", usecase.ErrDependencyUnavailable, err))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "refreshed"})
}

func (h *Handler) decodeAndValidate(ctx context.Context, r *http.Request, payload any) error {
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestBodyBytes))
	if err := decoder.Decode(payload); err != nil {
		return fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// matchSuggestions pulls the per-side suggestion lists out of an
// ambiguous match result, keyed by the original query text.
func matchSuggestions(result usecase.MatchAnalysis) map[string][]team.Suggestion {
	out := make(map[string][]team.Suggestion)
	for _, side := range []team.Resolution{result.Home.Resolution, result.Away.Resolution} {
		if side.Ambiguous {
			out[side.Query] = side.Suggestions
		}
	}
	return out
}
