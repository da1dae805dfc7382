package judgeservice

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/bun"

	competitiondb "github.com/hack-arena/hackarena-judging/app/modules/competition/infrastructure/repositories"
	judgeevents "github.com/hack-arena/hackarena-judging/app/modules/judge/domain/events"
	judgedb "github.com/hack-arena/hackarena-judging/app/modules/judge/infrastructure/repositories"
	sharedevents "github.com/hack-arena/hackarena-judging/app/shared/events"
	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
	"github.com/hack-arena/hackarena-judging/pkg/results"
)

// AssignJudge assigns a person as a judge for a competition. The person must
// exist, hold a judge-capable role, and not already be assigned. Duplicate
// detection is left to the unique constraint so two concurrent assigns
// resolve to exactly one success.
func (s *JudgeService) AssignJudge(
	ctx context.Context,
	competitionID sharedtypes.CompetitionID,
	personID sharedtypes.PersonID,
) (results.OperationResult[*judgedb.Judge, error], error) {
	assignTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*judgedb.Judge, error], error) {
		if _, err := s.catalog.GetCompetition(ctx, db, competitionID); err != nil {
			if errors.Is(err, competitiondb.ErrCompetitionNotFound) {
				return results.FailureResult[*judgedb.Judge, error](ErrCompetitionNotFound), nil
			}
			return results.OperationResult[*judgedb.Judge, error]{}, err
		}

		person, err := s.catalog.GetPerson(ctx, db, personID)
		if err != nil {
			if errors.Is(err, competitiondb.ErrPersonNotFound) {
				return results.FailureResult[*judgedb.Judge, error](ErrPersonNotFound), nil
			}
			return results.OperationResult[*judgedb.Judge, error]{}, err
		}

		if !person.Role.CanJudge() {
			return results.FailureResult[*judgedb.Judge, error](ErrNotEligible), nil
		}

		judge := &judgedb.Judge{
			CompetitionID: competitionID,
			PersonID:      personID,
			AssignedAt:    time.Now().UTC(),
		}
		if err := s.repo.CreateJudge(ctx, db, judge); err != nil {
			if errors.Is(err, judgedb.ErrDuplicateAssignment) {
				return results.FailureResult[*judgedb.Judge, error](ErrAlreadyAssigned), nil
			}
			return results.OperationResult[*judgedb.Judge, error]{}, err
		}

		return results.SuccessResult[*judgedb.Judge, error](judge), nil
	}

	result, err := withTelemetry(s, ctx, "AssignJudge", competitionID, func(ctx context.Context) (results.OperationResult[*judgedb.Judge, error], error) {
		return runInTx(s, ctx, assignTx)
	})

	if err == nil && result.IsSuccess() {
		judge := *result.Success
		s.publishEvent(ctx, judgeevents.TopicJudgeAssigned, judgeevents.JudgeAssignedPayload{
			JudgeID:       judge.ID,
			CompetitionID: judge.CompetitionID,
			PersonID:      judge.PersonID,
			AssignedAt:    judge.AssignedAt,
		})
		s.publishEvent(ctx, sharedevents.TopicAuditRecord, sharedevents.AuditRecordPayload{
			Action:     "judge.assigned",
			ActorID:    personID.String(),
			EntityType: "judge",
			EntityID:   judge.ID.String(),
			Details:    map[string]string{"competition_id": competitionID.String()},
			OccurredAt: time.Now().UTC(),
		})
	}

	return result, err
}
