package scoredb

import (
	"context"

	"github.com/uptrace/bun"

	scoredomain "github.com/hack-arena/hackarena-judging/app/modules/score/domain"
	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
)

// Repository is the score persistence contract. All methods accept bun.IDB
// so score writes and the aggregate recomputation share one transaction.
//
// Error semantics:
//   - ErrNotFound: score does not exist
//   - ErrDuplicateScore: unique (submission, judge, criterion) violated
//   - other errors: infrastructure failures
type Repository interface {
	// CreateScore inserts a new score.
	CreateScore(ctx context.Context, db bun.IDB, score *Score) error

	// GetScore retrieves a score by ID.
	GetScore(ctx context.Context, db bun.IDB, id sharedtypes.ScoreID) (*Score, error)

	// UpdateScore overwrites value, feedback and updated_at of an existing score.
	UpdateScore(ctx context.Context, db bun.IDB, score *Score) error

	// DeleteScore removes a score by ID.
	DeleteScore(ctx context.Context, db bun.IDB, id sharedtypes.ScoreID) error

	// ListScoresForSubmission returns all of a submission's scores ordered by
	// criterion display order, then by score creation time.
	ListScoresForSubmission(ctx context.Context, db bun.IDB, submissionID sharedtypes.SubmissionID) ([]Score, error)

	// GetScoreSet returns the submission's scores joined with criterion
	// max score and weight, ready for aggregation.
	GetScoreSet(ctx context.Context, db bun.IDB, submissionID sharedtypes.SubmissionID) ([]scoredomain.WeightedScore, error)

	// CountScoresByJudge reports how many scores a judge has recorded.
	CountScoresByJudge(ctx context.Context, db bun.IDB, judgeID sharedtypes.JudgeID) (int, error)
}
