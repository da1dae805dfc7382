package rankingservice

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/uptrace/bun"

	competitiondb "github.com/hack-arena/hackarena-judging/app/modules/competition/infrastructure/repositories"
	rankingdomain "github.com/hack-arena/hackarena-judging/app/modules/ranking/domain"
	rankingevents "github.com/hack-arena/hackarena-judging/app/modules/ranking/domain/events"
	rankingdb "github.com/hack-arena/hackarena-judging/app/modules/ranking/infrastructure/repositories"
	sharedevents "github.com/hack-arena/hackarena-judging/app/shared/events"
	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
	"github.com/hack-arena/hackarena-judging/pkg/results"
)

// RankingRun is the result of one ranking calculation.
type RankingRun struct {
	CompetitionID sharedtypes.CompetitionID
	RankedCount   int
	Standings     []rankingdomain.Standing
}

// CalculateRankings recomputes the competition's dense ranking from the
// current aggregates. All rank writes happen in one transaction: ranks are
// cleared first so submissions that fell out of the rankable set lose their
// stale position, then the new dense ranks are applied. An empty rankable
// set is a successful run that ranks nothing.
func (s *RankingService) CalculateRankings(
	ctx context.Context,
	competitionID sharedtypes.CompetitionID,
) (results.OperationResult[*RankingRun, error], error) {
	rankTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*RankingRun, error], error) {
		competition, err := s.catalog.GetCompetition(ctx, db, competitionID)
		if err != nil {
			if errors.Is(err, competitiondb.ErrCompetitionNotFound) {
				return results.FailureResult[*RankingRun, error](ErrCompetitionNotFound), nil
			}
			return results.OperationResult[*RankingRun, error]{}, err
		}
		if competition.Status == sharedtypes.CompetitionOpen {
			return results.FailureResult[*RankingRun, error](ErrJudgingNotStarted), nil
		}

		if err := s.repo.ClearRanks(ctx, db, competitionID); err != nil {
			return results.OperationResult[*RankingRun, error]{}, err
		}

		submissions, err := s.repo.ListRankable(ctx, db, competitionID)
		if err != nil {
			return results.OperationResult[*RankingRun, error]{}, err
		}

		aggregates := make([]float64, len(submissions))
		for i, sub := range submissions {
			aggregates[i] = *sub.AggregateScore
		}
		ranks := rankingdomain.DenseRanks(aggregates)

		assignments := make([]rankingdb.RankAssignment, len(submissions))
		standings := make([]rankingdomain.Standing, len(submissions))
		for i, sub := range submissions {
			assignments[i] = rankingdb.RankAssignment{SubmissionID: sub.ID, Rank: ranks[i]}
			standings[i] = rankingdomain.Standing{
				SubmissionID: sub.ID,
				Aggregate:    aggregates[i],
				Rank:         ranks[i],
			}
		}

		if err := s.repo.ApplyRanks(ctx, db, assignments); err != nil {
			return results.OperationResult[*RankingRun, error]{}, err
		}

		run := &RankingRun{
			CompetitionID: competitionID,
			RankedCount:   len(standings),
			Standings:     standings,
		}
		return results.SuccessResult[*RankingRun, error](run), nil
	}

	result, err := withTelemetry(s, ctx, "CalculateRankings", competitionID, func(ctx context.Context) (results.OperationResult[*RankingRun, error], error) {
		return runInTx(s, ctx, rankTx)
	})

	if err == nil && result.IsSuccess() {
		run := *result.Success
		now := time.Now().UTC()
		s.publishEvent(ctx, rankingevents.TopicLeaderboardUpdated, rankingevents.LeaderboardUpdatedPayload{
			CompetitionID: competitionID,
			RankedCount:   run.RankedCount,
			UpdatedAt:     now,
		})
		s.publishEvent(ctx, sharedevents.TopicAuditRecord, sharedevents.AuditRecordPayload{
			Action:     "leaderboard.updated",
			EntityType: "competition",
			EntityID:   competitionID.String(),
			Details:    map[string]string{"ranked_count": strconv.Itoa(run.RankedCount)},
			OccurredAt: now,
		})
	}

	return result, err
}
