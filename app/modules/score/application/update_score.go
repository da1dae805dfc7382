package scoreservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	scoreevents "github.com/hack-arena/hackarena-judging/app/modules/score/domain/events"
	scoredb "github.com/hack-arena/hackarena-judging/app/modules/score/infrastructure/repositories"
	sharedevents "github.com/hack-arena/hackarena-judging/app/shared/events"
	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
	"github.com/hack-arena/hackarena-judging/pkg/results"
)

// UpdateScore revises a recorded score's value and/or feedback. Only the
// judge who recorded the score may revise it, the competition must still be
// in its judging phase, and the new value is checked against the criterion's
// bounds again. The aggregate is recomputed in the same transaction.
func (s *ScoreService) UpdateScore(
	ctx context.Context,
	scoreID sharedtypes.ScoreID,
	callerPersonID sharedtypes.PersonID,
	newValue *float64,
	newFeedback *string,
) (results.OperationResult[*ScoreMutation, error], error) {
	updateTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*ScoreMutation, error], error) {
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

		if newValue != nil {
			criterion, err := s.catalog.GetCriterion(ctx, db, score.CriterionID)
			if err != nil {
				return results.OperationResult[*ScoreMutation, error]{}, err
			}
			if *newValue < 0 || *newValue > criterion.MaxScore {
				return results.FailureResult[*ScoreMutation, error](
					fmt.Errorf("%w: got %v, allowed [0, %v]", ErrScoreOutOfRange, *newValue, criterion.MaxScore)), nil
			}
			score.Value = *newValue
		}
		if newFeedback != nil {
			score.Feedback = newFeedback
		}
		score.UpdatedAt = time.Now().UTC()

		if err := s.repo.UpdateScore(ctx, db, score); err != nil {
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

	result, err := withTelemetry(s, ctx, "UpdateScore", "score_id", scoreID, func(ctx context.Context) (results.OperationResult[*ScoreMutation, error], error) {
		return runInTx(s, ctx, updateTx)
	})

	if err == nil && result.IsSuccess() {
		mutation := *result.Success
		score := mutation.Score
		s.publishEvent(ctx, scoreevents.TopicScoreUpdated, scoreevents.ScoreUpdatedPayload{
			ScoreID:      score.ID,
			SubmissionID: score.SubmissionID,
			JudgeID:      score.JudgeID,
			CriterionID:  score.CriterionID,
			Value:        score.Value,
			UpdatedAt:    score.UpdatedAt,
		})
		s.publishEvent(ctx, scoreevents.TopicSubmissionScored, scoreevents.SubmissionScoredPayload{
			SubmissionID: score.SubmissionID,
			Aggregate:    mutation.Aggregate,
		})
		s.publishEvent(ctx, sharedevents.TopicAuditRecord, sharedevents.AuditRecordPayload{
			Action:     "score.updated",
			ActorID:    callerPersonID.String(),
			EntityType: "score",
			EntityID:   score.ID.String(),
			Details:    map[string]string{"submission_id": score.SubmissionID.String()},
			OccurredAt: time.Now().UTC(),
		})
	}

	return result, err
}
