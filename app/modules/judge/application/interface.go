package judgeservice

import (
	"context"

	judgedb "github.com/hack-arena/hackarena-judging/app/modules/judge/infrastructure/repositories"
	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
	"github.com/hack-arena/hackarena-judging/pkg/results"
)

// Service is the judge registry contract exposed to transport layers.
type Service interface {
	AssignJudge(ctx context.Context, competitionID sharedtypes.CompetitionID, personID sharedtypes.PersonID) (results.OperationResult[*judgedb.Judge, error], error)
	RemoveJudge(ctx context.Context, competitionID sharedtypes.CompetitionID, personID sharedtypes.PersonID) (results.OperationResult[*judgedb.Judge, error], error)
	ListJudges(ctx context.Context, competitionID sharedtypes.CompetitionID) (results.OperationResult[[]judgedb.Judge, error], error)
}

var _ Service = (*JudgeService)(nil)
