package scoreservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	competitiondb "github.com/hack-arena/hackarena-judging/app/modules/competition/infrastructure/repositories"
	judgedb "github.com/hack-arena/hackarena-judging/app/modules/judge/infrastructure/repositories"
	scoreevents "github.com/hack-arena/hackarena-judging/app/modules/score/domain/events"
	scoredb "github.com/hack-arena/hackarena-judging/app/modules/score/infrastructure/repositories"
	sharedevents "github.com/hack-arena/hackarena-judging/app/shared/events"
	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
	"github.com/hack-arena/hackarena-judging/pkg/results"
)

// xpPerScore is credited to a judge for each score they record.
const xpPerScore = 10

// SubmitScore records one judge's rating of a submission against a criterion
// and recomputes the submission's aggregate in the same transaction.
//
// Validation order: submission existence and finalization first, then the
// competition's judging phase, then criterion ownership and bounds, then
// caller eligibility (assignment and conflict of interest), then uniqueness.
// Uniqueness itself is decided by the database index, so concurrent duplicate
// submits resolve to one winner.
func (s *ScoreService) SubmitScore(
	ctx context.Context,
	submissionID sharedtypes.SubmissionID,
	callerPersonID sharedtypes.PersonID,
	criterionID sharedtypes.CriterionID,
	value float64,
	feedback *string,
) (results.OperationResult[*ScoreMutation, error], error) {
	var judge *judgedb.Judge

	submitTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*ScoreMutation, error], error) {
		submission, err := s.catalog.GetSubmission(ctx, db, submissionID)
		if err != nil {
			if errors.Is(err, competitiondb.ErrSubmissionNotFound) {
				return results.FailureResult[*ScoreMutation, error](ErrSubmissionNotFound), nil
			}
			return results.OperationResult[*ScoreMutation, error]{}, err
		}

		if submission.Status != sharedtypes.SubmissionFinalized {
			return results.FailureResult[*ScoreMutation, error](ErrSubmissionNotFinalized), nil
		}

		competition, err := s.catalog.GetCompetition(ctx, db, submission.CompetitionID)
		if err != nil {
			return results.OperationResult[*ScoreMutation, error]{}, err
		}
		if competition.Status != sharedtypes.CompetitionJudging {
			return results.FailureResult[*ScoreMutation, error](ErrCompetitionNotJudging), nil
		}

		criterion, err := s.catalog.GetCriterion(ctx, db, criterionID)
		if err != nil {
			if errors.Is(err, competitiondb.ErrCriterionNotFound) {
				return results.FailureResult[*ScoreMutation, error](ErrUnknownCriterion), nil
			}
			return results.OperationResult[*ScoreMutation, error]{}, err
		}
		if criterion.CompetitionID != submission.CompetitionID {
			return results.FailureResult[*ScoreMutation, error](ErrUnknownCriterion), nil
		}

		if value < 0 || value > criterion.MaxScore {
			return results.FailureResult[*ScoreMutation, error](
				fmt.Errorf("%w: got %v, allowed [0, %v]", ErrScoreOutOfRange, value, criterion.MaxScore)), nil
		}

		judge, err = s.judges.GetJudgeByPerson(ctx, db, submission.CompetitionID, callerPersonID)
		if err != nil {
			if errors.Is(err, judgedb.ErrNotFound) {
				return results.FailureResult[*ScoreMutation, error](ErrNotAJudge), nil
			}
			return results.OperationResult[*ScoreMutation, error]{}, err
		}

		isMember, err := s.catalog.IsTeamMember(ctx, db, submission.TeamID, callerPersonID)
		if err != nil {
			return results.OperationResult[*ScoreMutation, error]{}, err
		}
		if isMember {
			return results.FailureResult[*ScoreMutation, error](ErrConflictOfInterest), nil
		}

		now := time.Now().UTC()
		score := &scoredb.Score{
			SubmissionID: submissionID,
			JudgeID:      judge.ID,
			CriterionID:  criterionID,
			Value:        value,
			Feedback:     feedback,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.repo.CreateScore(ctx, db, score); err != nil {
			if errors.Is(err, scoredb.ErrDuplicateScore) {
				return results.FailureResult[*ScoreMutation, error](ErrAlreadyScored), nil
			}
			return results.OperationResult[*ScoreMutation, error]{}, err
		}

		aggregate, err := s.recomputeAggregate(ctx, db, submissionID)
		if err != nil {
			return results.OperationResult[*ScoreMutation, error]{}, err
		}

		return results.SuccessResult[*ScoreMutation, error](&ScoreMutation{Score: score, Aggregate: aggregate}), nil
	}

	result, err := withTelemetry(s, ctx, "SubmitScore", "submission_id", submissionID, func(ctx context.Context) (results.OperationResult[*ScoreMutation, error], error) {
		return runInTx(s, ctx, submitTx)
	})

	if err == nil && result.IsSuccess() {
		mutation := *result.Success
		score := mutation.Score
		s.publishEvent(ctx, scoreevents.TopicScoreRecorded, scoreevents.ScoreRecordedPayload{
			ScoreID:      score.ID,
			SubmissionID: score.SubmissionID,
			JudgeID:      score.JudgeID,
			CriterionID:  score.CriterionID,
			Value:        score.Value,
			RecordedAt:   score.CreatedAt,
		})
		s.publishEvent(ctx, scoreevents.TopicSubmissionScored, scoreevents.SubmissionScoredPayload{
			SubmissionID: score.SubmissionID,
			Aggregate:    mutation.Aggregate,
		})
		s.publishEvent(ctx, sharedevents.TopicAuditRecord, sharedevents.AuditRecordPayload{
			Action:     "score.recorded",
			ActorID:    callerPersonID.String(),
			EntityType: "score",
			EntityID:   score.ID.String(),
			Details: map[string]string{
				"submission_id": submissionID.String(),
				"criterion_id":  criterionID.String(),
			},
			OccurredAt: time.Now().UTC(),
		})
		s.publishEvent(ctx, sharedevents.TopicXPAward, sharedevents.XPAwardPayload{
			PersonID:      callerPersonID,
			CompetitionID: judge.CompetitionID,
			Points:        xpPerScore,
			Reason:        "score recorded",
		})
	}

	return result, err
}
