package judgeservice

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/bun"

	judgeevents "github.com/hack-arena/hackarena-judging/app/modules/judge/domain/events"
	judgedb "github.com/hack-arena/hackarena-judging/app/modules/judge/infrastructure/repositories"
	sharedevents "github.com/hack-arena/hackarena-judging/app/shared/events"
	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
	"github.com/hack-arena/hackarena-judging/pkg/results"
)

// RemoveJudge removes a judge assignment. Judges with recorded scores cannot
// be removed; the score count is re-checked inside the same transaction as
// the delete, so a racing score submission makes the removal fail rather
// than leaving orphaned scores.
func (s *JudgeService) RemoveJudge(
	ctx context.Context,
	competitionID sharedtypes.CompetitionID,
	personID sharedtypes.PersonID,
) (results.OperationResult[*judgedb.Judge, error], error) {
	removeTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*judgedb.Judge, error], error) {
		judge, err := s.repo.GetJudgeByPerson(ctx, db, competitionID, personID)
		if err != nil {
			if errors.Is(err, judgedb.ErrNotFound) {
				return results.FailureResult[*judgedb.Judge, error](ErrAssignmentNotFound), nil
			}
			return results.OperationResult[*judgedb.Judge, error]{}, err
		}

		scoreCount, err := s.scores.CountScoresByJudge(ctx, db, judge.ID)
		if err != nil {
			return results.OperationResult[*judgedb.Judge, error]{}, err
		}
		if scoreCount > 0 {
			return results.FailureResult[*judgedb.Judge, error](ErrHasRecordedScores), nil
		}

		if err := s.repo.DeleteJudge(ctx, db, judge.ID); err != nil {
			if errors.Is(err, judgedb.ErrNotFound) {
				return results.FailureResult[*judgedb.Judge, error](ErrAssignmentNotFound), nil
			}
			return results.OperationResult[*judgedb.Judge, error]{}, err
		}

		return results.SuccessResult[*judgedb.Judge, error](judge), nil
	}

	result, err := withTelemetry(s, ctx, "RemoveJudge", competitionID, func(ctx context.Context) (results.OperationResult[*judgedb.Judge, error], error) {
		return runInTx(s, ctx, removeTx)
	})

	if err == nil && result.IsSuccess() {
		judge := *result.Success
		s.publishEvent(ctx, judgeevents.TopicJudgeRemoved, judgeevents.JudgeRemovedPayload{
			JudgeID:       judge.ID,
			CompetitionID: judge.CompetitionID,
			PersonID:      judge.PersonID,
		})
		s.publishEvent(ctx, sharedevents.TopicAuditRecord, sharedevents.AuditRecordPayload{
			Action:     "judge.removed",
			ActorID:    personID.String(),
			EntityType: "judge",
			EntityID:   judge.ID.String(),
			Details:    map[string]string{"competition_id": competitionID.String()},
			OccurredAt: time.Now().UTC(),
		})
	}

	return result, err
}
