package rankingservice

import (
	"context"

	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
	"github.com/hack-arena/hackarena-judging/pkg/results"
)

// Service is the ranking calculator contract exposed to transport layers and
// the job queue.
type Service interface {
	CalculateRankings(ctx context.Context, competitionID sharedtypes.CompetitionID) (results.OperationResult[*RankingRun, error], error)
	GetLeaderboard(ctx context.Context, competitionID sharedtypes.CompetitionID) (results.OperationResult[[]LeaderboardEntry, error], error)
	ExportLeaderboard(ctx context.Context, competitionID sharedtypes.CompetitionID) (results.OperationResult[[]byte, error], error)
	RenderLeaderboardChart(ctx context.Context, competitionID sharedtypes.CompetitionID) (results.OperationResult[[]byte, error], error)
	ScheduleRankingRun(ctx context.Context, competitionID sharedtypes.CompetitionID, expr string) (results.OperationResult[*ScheduledRun, error], error)
}

var _ Service = (*RankingService)(nil)
