package rankingqueue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/riverqueue/river"

	rankingservice "github.com/hack-arena/hackarena-judging/app/modules/ranking/application"
	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
)

// RankingRunWorker executes scheduled ranking runs.
type RankingRunWorker struct {
	river.WorkerDefaults[RankingRunJob]

	logger  *slog.Logger
	ranking rankingservice.Service
}

// NewRankingRunWorker creates a worker bound to the ranking service.
func NewRankingRunWorker(logger *slog.Logger, ranking rankingservice.Service) *RankingRunWorker {
	return &RankingRunWorker{logger: logger, ranking: ranking}
}

func (w *RankingRunWorker) Work(ctx context.Context, job *river.Job[RankingRunJob]) error {
	id, err := uuid.Parse(job.Args.CompetitionID)
	if err != nil {
		// A malformed ID never becomes valid; failing permanently beats
		// burning retries.
		return river.JobCancel(fmt.Errorf("invalid competition id %q: %w", job.Args.CompetitionID, err))
	}
	competitionID := sharedtypes.CompetitionID(id)

	w.logger.InfoContext(ctx, "Executing scheduled ranking run",
		slog.String("competition_id", competitionID.String()),
		slog.Int64("job_id", job.ID),
	)

	result, err := w.ranking.CalculateRankings(ctx, competitionID)
	if err != nil {
		return fmt.Errorf("scheduled ranking run failed: %w", err)
	}
	if result.IsFailure() {
		// Business failures (competition deleted since scheduling) are
		// terminal for this job.
		return river.JobCancel(fmt.Errorf("scheduled ranking run rejected: %w", *result.Failure))
	}

	w.logger.InfoContext(ctx, "Scheduled ranking run completed",
		slog.String("competition_id", competitionID.String()),
		slog.Int("ranked_count", (*result.Success).RankedCount),
	)
	return nil
}
