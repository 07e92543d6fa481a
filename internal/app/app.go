// Package app wires configuration, infrastructure and services into a
// runnable HTTP server.
package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	_ "github.com/lib/pq"

	"github.com/betfaro/engine/external/apifootball"
	"github.com/betfaro/engine/internal/config"
	domaudit "github.com/betfaro/engine/internal/domain/audit"
	"github.com/betfaro/engine/internal/domain/team"
	infraaudit "github.com/betfaro/engine/internal/infrastructure/audit"
	"github.com/betfaro/engine/internal/infrastructure/repository/memory"
	"github.com/betfaro/engine/internal/infrastructure/repository/postgres"
	"github.com/betfaro/engine/internal/interfaces/httpapi"
	idgen "github.com/betfaro/engine/internal/platform/id"
	"github.com/betfaro/engine/internal/platform/logging"
	"github.com/betfaro/engine/internal/platform/resilience"
	"github.com/betfaro/engine/internal/usecase"
)

// Components carries the wired services plus the handles main needs for
// shutdown.
type Components struct {
	Server   *http.Server
	Analysis *usecase.AnalysisService
	Resolver *usecase.TeamResolverService
	Batch    *usecase.BatchService
	Audit    domaudit.Sink
	DB       *sqlx.DB
}

func (c *Components) Close() error {
	var firstErr error
	if c.Audit != nil {
		if err := c.Audit.Close(); err != nil {
			firstErr = err
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func Build(cfg config.Config, logger *logging.Logger) (*Components, error) {
	if logger == nil {
		logger = logging.Default()
	}

	components := &Components{}

	tableRepo, db, err := buildTeamRepository(cfg)
	if err != nil {
		return nil, err
	}
	components.DB = db

	providerClient := apifootball.NewClient(apifootball.ClientConfig{
		BaseURL:    cfg.APIFootballBaseURL,
		Token:      cfg.APIFootballToken,
		Timeout:    cfg.APIFootballTimeout,
		MaxRetries: cfg.APIFootballMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.APIFootballCircuitEnabled,
			FailureThreshold: cfg.APIFootballCircuitFailureCount,
			OpenTimeout:      cfg.APIFootballCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.APIFootballCircuitHalfOpenMax,
		},
	})

	sink, err := buildAuditSink(cfg)
	if err != nil {
		_ = components.Close()
		return nil, err
	}
	components.Audit = sink

	resolver := usecase.NewTeamResolverService(
		tableRepo,
		providerClient,
		cfg.ResolverTableTTL,
		cfg.ProviderCacheTTL,
		logger,
	)
	components.Resolver = resolver

	analysis := usecase.NewAnalysisService(
		resolver,
		providerClient,
		sink,
		idgen.NewTimeRandomGenerator(),
		usecase.AnalysisServiceConfig{
			DefaultSampleSize: cfg.DefaultSampleSize,
			MaxSampleSize:     cfg.MaxSampleSize,
		},
		logger,
	)
	components.Analysis = analysis
	components.Batch = usecase.NewBatchService(analysis, cfg.BatchWorkers, logger)

	handler := httpapi.NewHandler(analysis, resolver, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		_ = components.Close()
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	components.Server = server

	return components, nil
}

func buildTeamRepository(cfg config.Config) (team.Repository, *sqlx.DB, error) {
	if !cfg.DBEnabled {
		return memory.NewSeededTeamRepository(), nil, nil
	}

	dsn := normalizeDatabaseURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(databaseName(dsn)),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	return postgres.NewTeamRepository(db), db, nil
}

func buildAuditSink(cfg config.Config) (domaudit.Sink, error) {
	if !cfg.AuditEnabled {
		return infraaudit.NopSink{}, nil
	}

	sink, err := infraaudit.NewJSONLSink(cfg.AuditPath)
	if err != nil {
		return nil, fmt.Errorf("open audit sink: %w", err)
	}
	return sink, nil
}
