package judgeservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/hack-arena/hackarena-judging/app/eventbus"
	competitiondb "github.com/hack-arena/hackarena-judging/app/modules/competition/infrastructure/repositories"
	judgedb "github.com/hack-arena/hackarena-judging/app/modules/judge/infrastructure/repositories"
	"github.com/hack-arena/hackarena-judging/app/observability/metrics"
	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
	"github.com/hack-arena/hackarena-judging/pkg/results"
)

// ScoreCounter is the slice of the score repository the judge registry needs
// for removal safety. Declared here so this module does not import the score
// module's persistence package.
type ScoreCounter interface {
	CountScoresByJudge(ctx context.Context, db bun.IDB, judgeID sharedtypes.JudgeID) (int, error)
}

// JudgeService implements the judge registry.
type JudgeService struct {
	repo     judgedb.Repository
	catalog  competitiondb.Repository
	scores   ScoreCounter
	eventBus eventbus.EventBus
	logger   *slog.Logger
	metrics  metrics.Operations
	tracer   trace.Tracer
	db       *bun.DB
}

// NewJudgeService creates a new JudgeService.
func NewJudgeService(
	repo judgedb.Repository,
	catalog competitiondb.Repository,
	scores ScoreCounter,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
	operationMetrics metrics.Operations,
	tracer trace.Tracer,
	db *bun.DB,
) *JudgeService {
	return &JudgeService{
		repo:     repo,
		catalog:  catalog,
		scores:   scores,
		eventBus: eventBus,
		logger:   logger,
		metrics:  operationMetrics,
		tracer:   tracer,
		db:       db,
	}
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics and panic recovery.
func withTelemetry[S any, F any](
	s *JudgeService,
	ctx context.Context,
	operationName string,
	competitionID sharedtypes.CompetitionID,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("competition_id", competitionID.String()),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("operation", operationName),
				slog.String("competition_id", competitionID.String()),
				slog.Any("error", err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName)
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			slog.String("operation", operationName),
			slog.String("competition_id", competitionID.String()),
			slog.Any("error", wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			slog.String("operation", operationName),
			slog.String("competition_id", competitionID.String()),
			slog.Any("failure", *result.Failure),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, operationName+" completed successfully",
			slog.String("operation", operationName),
			slog.String("competition_id", competitionID.String()),
		)
		s.metrics.RecordOperationSuccess(ctx, operationName)
	}

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *JudgeService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})

	return result, err
}

// publishEvent publishes best-effort; a publish failure is logged and never
// fails the primary operation.
func (s *JudgeService) publishEvent(ctx context.Context, subject string, payload any) {
	msg, err := eventbus.NewJSONMessage(subject, payload)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to build event message",
			slog.String("subject", subject), slog.Any("error", err))
		return
	}
	if err := s.eventBus.Publish(ctx, subject, msg); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish event",
			slog.String("subject", subject), slog.Any("error", err))
	}
}
