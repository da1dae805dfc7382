package scoreservice

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
	scoredomain "github.com/hack-arena/hackarena-judging/app/modules/score/domain"
	scoredb "github.com/hack-arena/hackarena-judging/app/modules/score/infrastructure/repositories"
	"github.com/hack-arena/hackarena-judging/app/observability/metrics"
	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
	"github.com/hack-arena/hackarena-judging/pkg/results"
)

// JudgeLookup is the slice of the judge registry the score recorder needs:
// resolving the caller to an assignment and resolving a score's owner.
type JudgeLookup interface {
	GetJudge(ctx context.Context, db bun.IDB, id sharedtypes.JudgeID) (*judgedb.Judge, error)
	GetJudgeByPerson(ctx context.Context, db bun.IDB, competitionID sharedtypes.CompetitionID, personID sharedtypes.PersonID) (*judgedb.Judge, error)
}

// ScoreService implements the score recorder. Every mutation recomputes the
// owning submission's aggregate inside the same transaction, so the stored
// aggregate can never drift from the score set.
type ScoreService struct {
	repo     scoredb.Repository
	catalog  competitiondb.Repository
	judges   JudgeLookup
	eventBus eventbus.EventBus
	logger   *slog.Logger
	metrics  metrics.Operations
	tracer   trace.Tracer
	db       *bun.DB
}

// NewScoreService creates a new ScoreService.
func NewScoreService(
	repo scoredb.Repository,
	catalog competitiondb.Repository,
	judges JudgeLookup,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
	operationMetrics metrics.Operations,
	tracer trace.Tracer,
	db *bun.DB,
) *ScoreService {
	return &ScoreService{
		repo:     repo,
		catalog:  catalog,
		judges:   judges,
		eventBus: eventBus,
		logger:   logger,
		metrics:  operationMetrics,
		tracer:   tracer,
		db:       db,
	}
}

// ScoreMutation is the success payload of every score mutation: the affected
// score plus the submission's aggregate as recomputed in the same transaction.
type ScoreMutation struct {
	Score     *scoredb.Score
	Aggregate *float64
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics and panic
// recovery. keyName/key identify the entity the operation is addressed to
// (submission_id for submit/list, score_id for update/delete).
func withTelemetry[S any, F any](
	s *ScoreService,
	ctx context.Context,
	operationName string,
	keyName string,
	key fmt.Stringer,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String(keyName, key.String()),
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
				slog.String(keyName, key.String()),
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
			slog.String(keyName, key.String()),
			slog.Any("error", wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			slog.String("operation", operationName),
			slog.String(keyName, key.String()),
			slog.Any("failure", *result.Failure),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, operationName+" completed successfully",
			slog.String("operation", operationName),
			slog.String(keyName, key.String()),
		)
		s.metrics.RecordOperationSuccess(ctx, operationName)
	}

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *ScoreService,
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

// checkJudgingPhase resolves the submission's competition and verifies it is
// accepting score mutations. The first return is the business failure (nil
// when the gate passes); the second is an infrastructure error.
func (s *ScoreService) checkJudgingPhase(ctx context.Context, db bun.IDB, submissionID sharedtypes.SubmissionID) (error, error) {
	submission, err := s.catalog.GetSubmission(ctx, db, submissionID)
	if err != nil {
		return nil, err
	}
	competition, err := s.catalog.GetCompetition(ctx, db, submission.CompetitionID)
	if err != nil {
		return nil, err
	}
	if competition.Status != sharedtypes.CompetitionJudging {
		return ErrCompetitionNotJudging, nil
	}
	return nil, nil
}

// recomputeAggregate rereads the submission's full score set, folds it, and
// persists the result. Runs on the caller's transaction: if it fails, the
// score write that triggered it rolls back too.
func (s *ScoreService) recomputeAggregate(ctx context.Context, db bun.IDB, submissionID sharedtypes.SubmissionID) (*float64, error) {
	set, err := s.repo.GetScoreSet(ctx, db, submissionID)
	if err != nil {
		return nil, err
	}
	aggregate := scoredomain.Aggregate(set)
	if err := s.catalog.UpdateSubmissionAggregate(ctx, db, submissionID, aggregate); err != nil {
		return nil, err
	}
	return aggregate, nil
}

// publishEvent publishes best-effort; a publish failure is logged and never
// fails the primary operation.
func (s *ScoreService) publishEvent(ctx context.Context, subject string, payload any) {
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
