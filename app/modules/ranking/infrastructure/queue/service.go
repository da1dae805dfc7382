package rankingqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/uptrace/bun"

	rankingservice "github.com/hack-arena/hackarena-judging/app/modules/ranking/application"
	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
)

const rankingQueue = "ranking"

// QueueService schedules and runs deferred ranking recalculations.
type QueueService interface {
	rankingservice.Scheduler

	// CancelCompetitionJobs cancels pending ranking runs for a competition.
	CancelCompetitionJobs(ctx context.Context, competitionID sharedtypes.CompetitionID) error
	// GetScheduledJobs lists pending ranking runs for a competition.
	GetScheduledJobs(ctx context.Context, competitionID sharedtypes.CompetitionID) ([]JobInfo, error)
	// HealthCheck verifies the queue service is healthy.
	HealthCheck(ctx context.Context) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

var _ QueueService = (*Service)(nil)

// Service is the River-backed implementation of QueueService.
type Service struct {
	client *river.Client[pgx.Tx]
	pool   *pgxpool.Pool
	logger *slog.Logger
	db     *bun.DB
}

// NewService builds the River client on its own pgx pool (River does not run
// on database/sql) and registers the ranking run worker.
func NewService(ctx context.Context, bunDB *bun.DB, logger *slog.Logger, dsn string, ranking rankingservice.Service) (*Service, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewRankingRunWorker(logger, ranking))

	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
			rankingQueue:       {MaxWorkers: 5},
		},
		Workers: workers,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	logger.InfoContext(ctx, "Ranking queue service initialized")
	return &Service{
		client: riverClient,
		pool:   pool,
		logger: logger,
		db:     bunDB,
	}, nil
}

// Start starts the River queue service.
func (s *Service) Start(ctx context.Context) error {
	if err := s.client.Start(ctx); err != nil {
		return fmt.Errorf("failed to start River client: %w", err)
	}
	s.logger.InfoContext(ctx, "Ranking queue service started")
	return nil
}

// Stop stops the River queue service and releases its pool.
func (s *Service) Stop(ctx context.Context) error {
	if err := s.client.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.pool.Close()
	s.logger.InfoContext(ctx, "Ranking queue service stopped")
	return nil
}

// ScheduleRankingRun enqueues a ranking run for runAt. Duplicate scheduling
// for the same competition collapses into one job via River's uniqueness.
func (s *Service) ScheduleRankingRun(ctx context.Context, competitionID sharedtypes.CompetitionID, runAt time.Time) error {
	job := RankingRunJob{CompetitionID: competitionID.String()}

	jobResult, err := s.client.Insert(ctx, job, &river.InsertOpts{
		Queue:       rankingQueue,
		ScheduledAt: runAt,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to schedule ranking run: %w", err)
	}

	s.logger.InfoContext(ctx, "Ranking run scheduled",
		slog.String("competition_id", competitionID.String()),
		slog.Time("run_at", runAt),
		slog.Int64("job_id", jobResult.Job.ID),
	)
	return nil
}

// CancelCompetitionJobs cancels every pending ranking run for the competition.
func (s *Service) CancelCompetitionJobs(ctx context.Context, competitionID sharedtypes.CompetitionID) error {
	type riverJobRow struct {
		ID int64 `bun:"id"`
	}

	var jobs []riverJobRow
	err := s.db.NewSelect().
		Table("river_job").
		Column("id").
		Where("kind = ?", RankingRunJob{}.Kind()).
		Where("state IN (?, ?)", "available", "scheduled").
		Where("args->>'competition_id' = ?", competitionID.String()).
		Scan(ctx, &jobs)
	if err != nil {
		return fmt.Errorf("failed to query jobs for cancellation: %w", err)
	}

	for _, job := range jobs {
		if _, err := s.client.JobCancel(ctx, job.ID); err != nil {
			s.logger.WarnContext(ctx, "Failed to cancel ranking job",
				slog.Int64("job_id", job.ID), slog.Any("error", err))
		}
	}
	return nil
}

// GetScheduledJobs lists pending ranking runs for the competition.
func (s *Service) GetScheduledJobs(ctx context.Context, competitionID sharedtypes.CompetitionID) ([]JobInfo, error) {
	type riverJobRow struct {
		ID          int64      `bun:"id"`
		Kind        string     `bun:"kind"`
		State       string     `bun:"state"`
		ScheduledAt *time.Time `bun:"scheduled_at"`
		Attempt     int16      `bun:"attempt"`
		MaxAttempts int16      `bun:"max_attempts"`
	}

	var jobs []riverJobRow
	err := s.db.NewSelect().
		Table("river_job").
		Column("id", "kind", "state", "scheduled_at", "attempt", "max_attempts").
		Where("kind = ?", RankingRunJob{}.Kind()).
		Where("args->>'competition_id' = ?", competitionID.String()).
		Order("scheduled_at ASC NULLS LAST").
		Scan(ctx, &jobs)
	if err != nil {
		return nil, fmt.Errorf("failed to query scheduled jobs: %w", err)
	}

	result := make([]JobInfo, len(jobs))
	for i, job := range jobs {
		scheduledAt := ""
		if job.ScheduledAt != nil {
			scheduledAt = job.ScheduledAt.Format(time.RFC3339)
		}
		result[i] = JobInfo{
			ID:            job.ID,
			Kind:          job.Kind,
			CompetitionID: competitionID.String(),
			State:         job.State,
			ScheduledAt:   scheduledAt,
			Attempt:       int(job.Attempt),
			MaxAttempts:   int(job.MaxAttempts),
		}
	}
	return result, nil
}

// HealthCheck verifies the queue tables are reachable.
func (s *Service) HealthCheck(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("river client is nil")
	}

	var count int
	err := s.db.NewSelect().
		Table("river_job").
		ColumnExpr("COUNT(*)").
		Scan(ctx, &count)
	if err != nil {
		return fmt.Errorf("queue health check failed: %w", err)
	}
	return nil
}
