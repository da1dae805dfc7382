package scoreservice

import (
	"context"

	scoredb "github.com/hack-arena/hackarena-judging/app/modules/score/infrastructure/repositories"
	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
	"github.com/hack-arena/hackarena-judging/pkg/results"
)

// Service is the score recorder contract exposed to transport layers.
type Service interface {
	SubmitScore(ctx context.Context, submissionID sharedtypes.SubmissionID, callerPersonID sharedtypes.PersonID, criterionID sharedtypes.CriterionID, value float64, feedback *string) (results.OperationResult[*ScoreMutation, error], error)
	UpdateScore(ctx context.Context, scoreID sharedtypes.ScoreID, callerPersonID sharedtypes.PersonID, newValue *float64, newFeedback *string) (results.OperationResult[*ScoreMutation, error], error)
	DeleteScore(ctx context.Context, scoreID sharedtypes.ScoreID, callerPersonID sharedtypes.PersonID) (results.OperationResult[*ScoreMutation, error], error)
	ListScores(ctx context.Context, submissionID sharedtypes.SubmissionID) (results.OperationResult[[]scoredb.Score, error], error)
}

var _ Service = (*ScoreService)(nil)
