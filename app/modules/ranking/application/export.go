package rankingservice

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
	"github.com/hack-arena/hackarena-judging/pkg/results"
)

const exportSheet = "Leaderboard"

// ExportLeaderboard renders the current standings as an XLSX workbook for
// organizers. An unranked competition exports as a failure instead of an
// empty workbook.
func (s *RankingService) ExportLeaderboard(
	ctx context.Context,
	competitionID sharedtypes.CompetitionID,
) (results.OperationResult[[]byte, error], error) {
	return withTelemetry(s, ctx, "ExportLeaderboard", competitionID, func(ctx context.Context) (results.OperationResult[[]byte, error], error) {
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

		data, err := renderLeaderboardXLSX(entries)
		if err != nil {
			return results.OperationResult[[]byte, error]{}, err
		}
		return results.SuccessResult[[]byte, error](data), nil
	})
}

func renderLeaderboardXLSX(entries []LeaderboardEntry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", exportSheet)

	headers := []string{"Rank", "Submission", "Team", "Score"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header %q: %w", h, err)
		}
	}

	for row, entry := range entries {
		values := []any{entry.Rank, entry.Title, entry.TeamName, entry.Aggregate}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("failed to compute cell: %w", err)
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
