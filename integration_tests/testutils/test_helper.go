package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"

	judgeservice "github.com/hack-arena/hackarena-judging/app/modules/judge/application"
	rankingservice "github.com/hack-arena/hackarena-judging/app/modules/ranking/application"
	scoreservice "github.com/hack-arena/hackarena-judging/app/modules/score/application"
	"github.com/hack-arena/hackarena-judging/app/observability/metrics"
	"github.com/hack-arena/hackarena-judging/db/bundb"
	"github.com/hack-arena/hackarena-judging/integration_tests/containers"
)

// RecordingEventBus captures published subjects in place of a NATS connection.
type RecordingEventBus struct {
	mu       sync.Mutex
	Subjects []string
}

func (b *RecordingEventBus) Publish(_ context.Context, subject string, _ *message.Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Subjects = append(b.Subjects, subject)
	return nil
}

func (b *RecordingEventBus) Close() error { return nil }

// Reset clears the captured subjects between test cases.
func (b *RecordingEventBus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Subjects = nil
}

// Published returns a copy of the captured subjects.
func (b *RecordingEventBus) Published() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.Subjects))
	copy(out, b.Subjects)
	return out
}

// TestEnvironment bundles a migrated container database with fully wired
// module services.
type TestEnvironment struct {
	Ctx         context.Context
	PgContainer *postgres.PostgresContainer
	ConnStr     string
	DB          *bun.DB
	DBService   *bundb.DBService
	EventBus    *RecordingEventBus

	JudgeService   *judgeservice.JudgeService
	ScoreService   *scoreservice.ScoreService
	RankingService *rankingservice.RankingService
}

// RequireIntegration skips the test unless RUN_INTEGRATION_TESTS is set.
// Container-backed tests need a Docker daemon, which CI units don't have.
func RequireIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv("RUN_INTEGRATION_TESTS") == "" {
		t.Skip("set RUN_INTEGRATION_TESTS to run container-backed tests")
	}
}

// NewTestEnvironment starts a Postgres container, migrates it and wires the
// three module services against it.
func NewTestEnvironment(t *testing.T) (*TestEnvironment, error) {
	t.Helper()
	ctx := context.Background()

	pgContainer, pgConnStr, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to setup postgres container: %w", err)
	}

	sqlDB, err := sql.Open("pgx", pgConnStr)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to open sql DB connection: %w", err)
	}

	db := bundb.BunDB(sqlDB)

	if err := RunMigrations(ctx, db, pgConnStr); err != nil {
		_ = db.Close()
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	dbService := bundb.NewTestDBService(db)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("integration")
	bus := &RecordingEventBus{}

	env := &TestEnvironment{
		Ctx:         ctx,
		PgContainer: pgContainer,
		ConnStr:     pgConnStr,
		DB:          db,
		DBService:   dbService,
		EventBus:    bus,
		JudgeService: judgeservice.NewJudgeService(
			dbService.JudgeDB, dbService.CatalogDB, dbService.ScoreDB,
			bus, logger, metrics.NoopOperations{}, tracer, db,
		),
		ScoreService: scoreservice.NewScoreService(
			dbService.ScoreDB, dbService.CatalogDB, dbService.JudgeDB,
			bus, logger, metrics.NoopOperations{}, tracer, db,
		),
		RankingService: rankingservice.NewRankingService(
			dbService.RankingDB, dbService.CatalogDB,
			bus, logger, metrics.NoopOperations{}, tracer, db,
		),
	}

	t.Cleanup(func() {
		_ = db.Close()
		_ = pgContainer.Terminate(ctx)
	})

	return env, nil
}

// Clean truncates every table and drops captured events between test cases.
func (env *TestEnvironment) Clean(t *testing.T) {
	t.Helper()
	if err := CleanupDatabase(env.Ctx, env.DB); err != nil {
		t.Fatalf("failed to clean database: %v", err)
	}
	env.EventBus.Reset()
}
