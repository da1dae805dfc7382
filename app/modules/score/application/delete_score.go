package scoreservice

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/bun"

	scoreevents "github.com/hack-arena/hackarena-judging/app/modules/score/domain/events"
	scoredb "github.com/hack-arena/hackarena-judging/app/modules/score/infrastructure/repositories"
	sharedevents "github.com/hack-arena/hackarena-judging/app/shared/events"
	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
	"github.com/hack-arena/hackarena-judging/pkg/results"
)

// DeleteScore retracts a recorded score. Only the judge who recorded it may
// retract it, and only while the competition is in its judging phase. The
// aggregate is recomputed in the same transaction; removing the last score
// clears the aggregate back to null rather than zero.
func (s *ScoreService) DeleteScore(
	ctx context.Context,
	scoreID sharedtypes.ScoreID,
	callerPersonID sharedtypes.PersonID,
) (results.OperationResult[*ScoreMutation, error], error) {
	deleteTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*ScoreMutation, error], error) {
		score, err := s.repo.GetScore(ctx, db, scoreID)
		if err != nil {
			if errors.Is(err, scoredb.ErrNotFound) {
				return results.FailureResult[*ScoreMutation, error](ErrScoreNotFound), nil
			}
			return results.OperationResult[*ScoreMutation, error]{}, err
		}

		if failure, err := s.checkJudgingPhase(ctx, db, score.SubmissionID); err != nil {
			return results.OperationResult[*ScoreMutation, error]{}, err
		} else if failure != nil {
			return results.FailureResult[*ScoreMutation, error](failure), nil
		}

		owner, err := s.judges.GetJudge(ctx, db, score.JudgeID)
		if err != nil {
			return results.OperationResult[*ScoreMutation, error]{}, err
		}
		if owner.PersonID != callerPersonID {
			return results.FailureResult[*ScoreMutation, error](ErrNotScoreOwner), nil
		}

		if err := s.repo.DeleteScore(ctx, db, scoreID); err != nil {
			if errors.Is(err, scoredb.ErrNotFound) {
				return results.FailureResult[*ScoreMutation, error](ErrScoreNotFound), nil
			}
			return results.OperationResult[*ScoreMutation, error]{}, err
		}

		aggregate, err := s.recomputeAggregate(ctx, db, score.SubmissionID)
		if err != nil {
			return results.OperationResult[*ScoreMutation, error]{}, err
		}

		return results.SuccessResult[*ScoreMutation, error](&ScoreMutation{Score: score, Aggregate: aggregate}), nil
	}

	result, err := withTelemetry(s, ctx, "DeleteScore", "score_id", scoreID, func(ctx context.Context) (results.OperationResult[*ScoreMutation, error], error) {
		return runInTx(s, ctx, deleteTx)
	})

	if err == nil && result.IsSuccess() {
		mutation := *result.Success
		score := mutation.Score
		s.publishEvent(ctx, scoreevents.TopicScoreDeleted, scoreevents.ScoreDeletedPayload{
			ScoreID:      score.ID,
			SubmissionID: score.SubmissionID,
			JudgeID:      score.JudgeID,
			CriterionID:  score.CriterionID,
		})
		s.publishEvent(ctx, scoreevents.TopicSubmissionScored, scoreevents.SubmissionScoredPayload{
			SubmissionID: score.SubmissionID,
			Aggregate:    mutation.Aggregate,
		})
		s.publishEvent(ctx, sharedevents.TopicAuditRecord, sharedevents.AuditRecordPayload{
			Action:     "score.deleted",
			ActorID:    callerPersonID.String(),
			EntityType: "score",
			EntityID:   score.ID.String(),
			Details:    map[string]string{"submission_id": score.SubmissionID.String()},
			OccurredAt: time.Now().UTC(),
		})
	}

	return result, err
}
