package rankingservice

import (
	"context"
	"errors"

	competitiondb "github.com/hack-arena/hackarena-judging/app/modules/competition/infrastructure/repositories"
	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
	"github.com/hack-arena/hackarena-judging/pkg/results"
)

// LeaderboardEntry is one row of the public leaderboard.
type LeaderboardEntry struct {
	Rank         int                      `json:"rank"`
	SubmissionID sharedtypes.SubmissionID `json:"submission_id"`
	Title        string                   `json:"title"`
	TeamName     string                   `json:"team_name,omitempty"`
	Aggregate    float64                  `json:"aggregate"`
}

// GetLeaderboard returns the competition's current standings in rank order.
// An unranked competition yields an empty leaderboard, not a failure.
func (s *RankingService) GetLeaderboard(
	ctx context.Context,
	competitionID sharedtypes.CompetitionID,
) (results.OperationResult[[]LeaderboardEntry, error], error) {
	return withTelemetry(s, ctx, "GetLeaderboard", competitionID, func(ctx context.Context) (results.OperationResult[[]LeaderboardEntry, error], error) {
		if _, err := s.catalog.GetCompetition(ctx, nil, competitionID); err != nil {
			if errors.Is(err, competitiondb.ErrCompetitionNotFound) {
				return results.FailureResult[[]LeaderboardEntry, error](ErrCompetitionNotFound), nil
			}
			return results.OperationResult[[]LeaderboardEntry, error]{}, err
		}

		submissions, err := s.repo.ListLeaderboard(ctx, nil, competitionID)
		if err != nil {
			return results.OperationResult[[]LeaderboardEntry, error]{}, err
		}

		entries := make([]LeaderboardEntry, 0, len(submissions))
		for _, sub := range submissions {
			entry := LeaderboardEntry{
				SubmissionID: sub.ID,
				Title:        sub.Title,
			}
			if sub.Rank != nil {
				entry.Rank = *sub.Rank
			}
			if sub.AggregateScore != nil {
				entry.Aggregate = *sub.AggregateScore
			}
			if sub.Team != nil {
				entry.TeamName = sub.Team.Name
			}
			entries = append(entries, entry)
		}
		return results.SuccessResult[[]LeaderboardEntry, error](entries), nil
	})
}
