package rankingservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	competitiondb "github.com/hack-arena/hackarena-judging/app/modules/competition/infrastructure/repositories"
	rankingevents "github.com/hack-arena/hackarena-judging/app/modules/ranking/domain/events"
	sharedevents "github.com/hack-arena/hackarena-judging/app/shared/events"
	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
	"github.com/hack-arena/hackarena-judging/pkg/results"
)

// ScheduledRun is the outcome of scheduling a future ranking run.
type ScheduledRun struct {
	CompetitionID sharedtypes.CompetitionID
	RunAt         time.Time
}

// ScheduleRankingRun enqueues a ranking run at a future time described in
// plain language ("tomorrow at 5pm", "in 2 hours") or RFC 3339. Parsing is
// relative to now in UTC.
func (s *RankingService) ScheduleRankingRun(
	ctx context.Context,
	competitionID sharedtypes.CompetitionID,
	expr string,
) (results.OperationResult[*ScheduledRun, error], error) {
	result, err := withTelemetry(s, ctx, "ScheduleRankingRun", competitionID, func(ctx context.Context) (results.OperationResult[*ScheduledRun, error], error) {
		competition, err := s.catalog.GetCompetition(ctx, nil, competitionID)
		if err != nil {
			if errors.Is(err, competitiondb.ErrCompetitionNotFound) {
				return results.FailureResult[*ScheduledRun, error](ErrCompetitionNotFound), nil
			}
			return results.OperationResult[*ScheduledRun, error]{}, err
		}
		if competition.Status == sharedtypes.CompetitionOpen {
			return results.FailureResult[*ScheduledRun, error](ErrJudgingNotStarted), nil
		}

		now := time.Now().UTC()
		runAt, err := parseRunTime(expr, now)
		if err != nil {
			return results.FailureResult[*ScheduledRun, error](err), nil
		}
		if !runAt.After(now) {
			return results.FailureResult[*ScheduledRun, error](
				fmt.Errorf("%w: %s", ErrScheduleInPast, runAt.Format(time.RFC3339))), nil
		}

		if s.scheduler == nil {
			return results.OperationResult[*ScheduledRun, error]{}, errors.New("no scheduler attached")
		}
		if err := s.scheduler.ScheduleRankingRun(ctx, competitionID, runAt); err != nil {
			return results.OperationResult[*ScheduledRun, error]{}, err
		}

		return results.SuccessResult[*ScheduledRun, error](&ScheduledRun{
			CompetitionID: competitionID,
			RunAt:         runAt,
		}), nil
	})

	if err == nil && result.IsSuccess() {
		run := *result.Success
		s.publishEvent(ctx, rankingevents.TopicLeaderboardScheduled, rankingevents.LeaderboardScheduledPayload{
			CompetitionID: run.CompetitionID,
			RunAt:         run.RunAt,
		})
		s.publishEvent(ctx, sharedevents.TopicAuditRecord, sharedevents.AuditRecordPayload{
			Action:     "leaderboard.scheduled",
			EntityType: "competition",
			EntityID:   competitionID.String(),
			Details:    map[string]string{"run_at": run.RunAt.Format(time.RFC3339)},
			OccurredAt: time.Now().UTC(),
		})
	}

	return result, err
}

// parseRunTime accepts RFC 3339 first, then natural language.
func parseRunTime(expr string, base time.Time) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, expr); err == nil {
		return t.UTC(), nil
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	r, err := w.Parse(expr, base)
	if err != nil || r == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnparsableSchedule, expr)
	}
	return r.Time.UTC(), nil
}
