package scoreservice

import (
	"context"
	"errors"

	competitiondb "github.com/hack-arena/hackarena-judging/app/modules/competition/infrastructure/repositories"
	scoredb "github.com/hack-arena/hackarena-judging/app/modules/score/infrastructure/repositories"
	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
	"github.com/hack-arena/hackarena-judging/pkg/results"
)

// ListScores returns a submission's scores ordered by criterion display
// order, then recording time.
func (s *ScoreService) ListScores(
	ctx context.Context,
	submissionID sharedtypes.SubmissionID,
) (results.OperationResult[[]scoredb.Score, error], error) {
	return withTelemetry(s, ctx, "ListScores", "submission_id", submissionID, func(ctx context.Context) (results.OperationResult[[]scoredb.Score, error], error) {
		if _, err := s.catalog.GetSubmission(ctx, nil, submissionID); err != nil {
			if errors.Is(err, competitiondb.ErrSubmissionNotFound) {
				return results.FailureResult[[]scoredb.Score, error](ErrSubmissionNotFound), nil
			}
			return results.OperationResult[[]scoredb.Score, error]{}, err
		}

		scores, err := s.repo.ListScoresForSubmission(ctx, nil, submissionID)
		if err != nil {
			return results.OperationResult[[]scoredb.Score, error]{}, err
		}
		return results.SuccessResult[[]scoredb.Score, error](scores), nil
	})
}
