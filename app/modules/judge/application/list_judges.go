package judgeservice

import (
	"context"
	"errors"

	"github.com/uptrace/bun"

	competitiondb "github.com/hack-arena/hackarena-judging/app/modules/competition/infrastructure/repositories"
	judgedb "github.com/hack-arena/hackarena-judging/app/modules/judge/infrastructure/repositories"
	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
	"github.com/hack-arena/hackarena-judging/pkg/results"
)

// ListJudges returns all judge assignments for a competition, oldest first.
func (s *JudgeService) ListJudges(
	ctx context.Context,
	competitionID sharedtypes.CompetitionID,
) (results.OperationResult[[]judgedb.Judge, error], error) {
	return withTelemetry(s, ctx, "ListJudges", competitionID, func(ctx context.Context) (results.OperationResult[[]judgedb.Judge, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]judgedb.Judge, error], error) {
			if _, err := s.catalog.GetCompetition(ctx, db, competitionID); err != nil {
				if errors.Is(err, competitiondb.ErrCompetitionNotFound) {
					return results.FailureResult[[]judgedb.Judge, error](ErrCompetitionNotFound), nil
				}
				return results.OperationResult[[]judgedb.Judge, error]{}, err
			}

			judges, err := s.repo.ListJudges(ctx, db, competitionID)
			if err != nil {
				return results.OperationResult[[]judgedb.Judge, error]{}, err
			}
			return results.SuccessResult[[]judgedb.Judge, error](judges), nil
		})
	})
}
