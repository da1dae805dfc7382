package rankingservice

import (
	"bytes"
	"context"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
	"github.com/hack-arena/hackarena-judging/pkg/results"
)

// chartTopN caps the bar chart at the leaderboard's head; a hundred bars on
// an 800px canvas is unreadable.
const chartTopN = 10

// RenderLeaderboardChart produces a PNG bar chart of the competition's top
// standings for embedding in announcements.
func (s *RankingService) RenderLeaderboardChart(
	ctx context.Context,
	competitionID sharedtypes.CompetitionID,
) (results.OperationResult[[]byte, error], error) {
	return withTelemetry(s, ctx, "RenderLeaderboardChart", competitionID, func(ctx context.Context) (results.OperationResult[[]byte, error], error) {
		lbResult, err := s.GetLeaderboard(ctx, competitionID)
		if err != nil {
			return results.OperationResult[[]byte, error]{}, err
		}
		if lbResult.IsFailure() {
			return results.FailureResult[[]byte, error](*lbResult.Failure), nil
		}

		entries := *lbResult.Success
		if len(entries) == 0 {
			return results.FailureResult[[]byte, error](ErrEmptyLeaderboard), nil
		}
		if len(entries) > chartTopN {
			entries = entries[:chartTopN]
		}

		data, err := renderLeaderboardPNG(entries)
		if err != nil {
			return results.OperationResult[[]byte, error]{}, err
		}
		return results.SuccessResult[[]byte, error](data), nil
	})
}

// truncateLabel shortens long titles by runes so multi-byte characters are
// never cut in half.
func truncateLabel(label string) string {
	runes := []rune(label)
	if len(runes) > 16 {
		return string(runes[:15]) + "…"
	}
	return label
}

func renderLeaderboardPNG(entries []LeaderboardEntry) ([]byte, error) {
	bars := make([]chart.Value, len(entries))
	for i, entry := range entries {
		bars[i] = chart.Value{
			Label: fmt.Sprintf("#%d %s", entry.Rank, truncateLabel(entry.Title)),
			Value: entry.Aggregate,
		}
	}

	graph := chart.BarChart{
		Title:    "Leaderboard",
		Width:    800,
		Height:   400,
		BarWidth: 50,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render leaderboard chart: %w", err)
	}
	return buf.Bytes(), nil
}
