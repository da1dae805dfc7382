// Package app assembles the judging engine: database, event bus, module
// services, job queue and HTTP servers.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"

	"github.com/hack-arena/hackarena-judging/api"
	"github.com/hack-arena/hackarena-judging/app/eventbus"
	judgeservice "github.com/hack-arena/hackarena-judging/app/modules/judge/application"
	rankingservice "github.com/hack-arena/hackarena-judging/app/modules/ranking/application"
	rankingqueue "github.com/hack-arena/hackarena-judging/app/modules/ranking/infrastructure/queue"
	scoreservice "github.com/hack-arena/hackarena-judging/app/modules/score/application"
	"github.com/hack-arena/hackarena-judging/app/observability/metrics"
	"github.com/hack-arena/hackarena-judging/config"
	"github.com/hack-arena/hackarena-judging/db/bundb"
)

// App holds every long-lived component of the judging engine.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	DB       *bundb.DBService
	EventBus eventbus.EventBus
	Registry *prometheus.Registry

	JudgeService   *judgeservice.JudgeService
	ScoreService   *scoreservice.ScoreService
	RankingService *rankingservice.RankingService
	RankingQueue   *rankingqueue.Service

	apiServer     *http.Server
	metricsServer *http.Server
}

// NewApp wires the full application from configuration.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("service", "hackarena-judging"),
		slog.String("env", cfg.Observability.Environment),
	)

	dbService, err := bundb.NewBunDBService(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	bus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	tracer := otel.Tracer("hackarena-judging")
	db := dbService.GetDB()

	judgeSvc := judgeservice.NewJudgeService(
		dbService.JudgeDB,
		dbService.CatalogDB,
		dbService.ScoreDB,
		bus,
		logger,
		metrics.NewPrometheusOperations(registry, "judge"),
		tracer,
		db,
	)

	scoreSvc := scoreservice.NewScoreService(
		dbService.ScoreDB,
		dbService.CatalogDB,
		dbService.JudgeDB,
		bus,
		logger,
		metrics.NewPrometheusOperations(registry, "score"),
		tracer,
		db,
	)

	rankingSvc := rankingservice.NewRankingService(
		dbService.RankingDB,
		dbService.CatalogDB,
		bus,
		logger,
		metrics.NewPrometheusOperations(registry, "ranking"),
		tracer,
		db,
	)

	queue, err := rankingqueue.NewService(ctx, db, logger, cfg.Postgres.DSN, rankingSvc)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ranking queue: %w", err)
	}
	rankingSvc.SetScheduler(queue)

	router := api.NewRouter(cfg.HTTP, logger, judgeSvc, scoreSvc, rankingSvc)

	return &App{
		Config:         cfg,
		Logger:         logger,
		DB:             dbService,
		EventBus:       bus,
		Registry:       registry,
		JudgeService:   judgeSvc,
		ScoreService:   scoreSvc,
		RankingService: rankingSvc,
		RankingQueue:   queue,
		apiServer: &http.Server{
			Addr:         cfg.HTTP.Address,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		metricsServer: &http.Server{
			Addr:    cfg.Observability.MetricsAddress,
			Handler: api.NewMetricsHandler(registry),
		},
	}, nil
}

// Run starts the queue workers and both HTTP listeners, then blocks until
// the context is canceled.
func (a *App) Run(ctx context.Context) error {
	if err := a.RankingQueue.Start(ctx); err != nil {
		return fmt.Errorf("failed to start ranking queue: %w", err)
	}

	errCh := make(chan error, 2)

	go func() {
		a.Logger.InfoContext(ctx, "API server listening", slog.String("address", a.apiServer.Addr))
		if err := a.apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("api server: %w", err)
		}
	}()

	go func() {
		a.Logger.InfoContext(ctx, "Metrics server listening", slog.String("address", a.metricsServer.Addr))
		if err := a.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("metrics server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Shutdown stops the servers, queue, event bus and database in order.
func (a *App) Shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := a.apiServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warn("API server shutdown failed", slog.Any("error", err))
	}
	if err := a.metricsServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warn("Metrics server shutdown failed", slog.Any("error", err))
	}
	if err := a.RankingQueue.Stop(shutdownCtx); err != nil {
		a.Logger.Warn("Ranking queue shutdown failed", slog.Any("error", err))
	}
	if err := a.EventBus.Close(); err != nil {
		a.Logger.Warn("Event bus close failed", slog.Any("error", err))
	}
	if err := a.DB.GetDB().Close(); err != nil {
		a.Logger.Warn("Database close failed", slog.Any("error", err))
	}
}
