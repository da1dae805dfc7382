package scoreservice

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"

	competitiondb "github.com/hack-arena/hackarena-judging/app/modules/competition/infrastructure/repositories"
	judgedb "github.com/hack-arena/hackarena-judging/app/modules/judge/infrastructure/repositories"
	scoredb "github.com/hack-arena/hackarena-judging/app/modules/score/infrastructure/repositories"
	"github.com/hack-arena/hackarena-judging/app/observability/metrics"
	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
)

func TestScoreService_UpdateScore(t *testing.T) {
	competitionID := sharedtypes.CompetitionID(uuid.New())
	submissionID := sharedtypes.SubmissionID(uuid.New())
	personID := sharedtypes.PersonID(uuid.New())
	criterionID := sharedtypes.CriterionID(uuid.New())
	judgeID := sharedtypes.JudgeID(uuid.New())
	scoreID := sharedtypes.ScoreID(uuid.New())

	existingScore := func(f *FakeScoreRepo) {
		f.GetScoreFunc = func(ctx context.Context, db bun.IDB, id sharedtypes.ScoreID) (*scoredb.Score, error) {
			return &scoredb.Score{
				ID:           id,
				SubmissionID: submissionID,
				JudgeID:      judgeID,
				CriterionID:  criterionID,
				Value:        5,
			}, nil
		}
	}
	ownedByCaller := func(f *FakeJudgeLookup) {
		f.GetJudgeFunc = func(ctx context.Context, db bun.IDB, id sharedtypes.JudgeID) (*judgedb.Judge, error) {
			return &judgedb.Judge{ID: id, CompetitionID: competitionID, PersonID: personID}, nil
		}
	}
	criterionMax10 := func(f *FakeCatalogRepo) {
		f.GetCriterionFunc = func(ctx context.Context, db bun.IDB, id sharedtypes.CriterionID) (*competitiondb.Criterion, error) {
			return &competitiondb.Criterion{ID: id, CompetitionID: competitionID, MaxScore: 10, Weight: 1}, nil
		}
	}
	competitionInPhase := func(f *FakeCatalogRepo, status sharedtypes.CompetitionStatus) {
		f.GetSubmissionFunc = func(ctx context.Context, db bun.IDB, id sharedtypes.SubmissionID) (*competitiondb.Submission, error) {
			return &competitiondb.Submission{ID: id, CompetitionID: competitionID, Status: sharedtypes.SubmissionFinalized}, nil
		}
		f.GetCompetitionFunc = func(ctx context.Context, db bun.IDB, id sharedtypes.CompetitionID) (*competitiondb.Competition, error) {
			return &competitiondb.Competition{ID: id, Status: status}, nil
		}
	}

	floatPtr := func(v float64) *float64 { return &v }
	strPtr := func(s string) *string { return &s }

	t.Run("owner revises value and feedback", func(t *testing.T) {
		svc, deps := newTestService()
		existingScore(deps.repo)
		ownedByCaller(deps.judges)
		criterionMax10(deps.catalog)
		competitionInPhase(deps.catalog, sharedtypes.CompetitionJudging)

		res, err := svc.UpdateScore(context.Background(), scoreID, personID, floatPtr(9), strPtr("much improved"))
		require.NoError(t, err)
		require.True(t, res.IsSuccess())

		mutation := *res.Success
		assert.Equal(t, 9.0, mutation.Score.Value)
		require.NotNil(t, mutation.Score.Feedback)
		assert.Equal(t, "much improved", *mutation.Score.Feedback)
		assert.False(t, mutation.Score.UpdatedAt.IsZero())
		assert.Equal(t, []string{"GetScore", "UpdateScore", "GetScoreSet"}, deps.repo.Trace())
		assert.Contains(t, deps.eventBus.Published(), "score.updated")
		assert.Contains(t, deps.eventBus.Published(), "submission.scored")
	})

	t.Run("feedback-only update skips bounds check", func(t *testing.T) {
		svc, deps := newTestService()
		existingScore(deps.repo)
		ownedByCaller(deps.judges)
		competitionInPhase(deps.catalog, sharedtypes.CompetitionJudging)
		// No GetCriterionFunc: the default returns ErrCriterionNotFound, so
		// reaching it would fail the operation.

		res, err := svc.UpdateScore(context.Background(), scoreID, personID, nil, strPtr("typo fixed"))
		require.NoError(t, err)
		require.True(t, res.IsSuccess())
		assert.Equal(t, 5.0, (*res.Success).Score.Value)
	})

	t.Run("unknown score", func(t *testing.T) {
		svc, _ := newTestService()

		res, err := svc.UpdateScore(context.Background(), scoreID, personID, floatPtr(9), nil)
		require.NoError(t, err)
		require.True(t, res.IsFailure())
		assert.ErrorIs(t, *res.Failure, ErrScoreNotFound)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		svc, deps := newTestService()
		existingScore(deps.repo)
		competitionInPhase(deps.catalog, sharedtypes.CompetitionJudging)
		deps.judges.GetJudgeFunc = func(ctx context.Context, db bun.IDB, id sharedtypes.JudgeID) (*judgedb.Judge, error) {
			return &judgedb.Judge{ID: id, CompetitionID: competitionID, PersonID: sharedtypes.PersonID(uuid.New())}, nil
		}

		res, err := svc.UpdateScore(context.Background(), scoreID, personID, floatPtr(9), nil)
		require.NoError(t, err)
		require.True(t, res.IsFailure())
		assert.ErrorIs(t, *res.Failure, ErrNotScoreOwner)
		assert.NotContains(t, deps.repo.Trace(), "UpdateScore")
	})

	t.Run("new value out of range is rejected", func(t *testing.T) {
		svc, deps := newTestService()
		existingScore(deps.repo)
		ownedByCaller(deps.judges)
		criterionMax10(deps.catalog)
		competitionInPhase(deps.catalog, sharedtypes.CompetitionJudging)

		res, err := svc.UpdateScore(context.Background(), scoreID, personID, floatPtr(11), nil)
		require.NoError(t, err)
		require.True(t, res.IsFailure())
		assert.ErrorIs(t, *res.Failure, ErrScoreOutOfRange)
		assert.Empty(t, deps.eventBus.Published())
	})

	t.Run("closed competition freezes scores", func(t *testing.T) {
		svc, deps := newTestService()
		existingScore(deps.repo)
		ownedByCaller(deps.judges)
		criterionMax10(deps.catalog)
		competitionInPhase(deps.catalog, sharedtypes.CompetitionClosed)

		res, err := svc.UpdateScore(context.Background(), scoreID, personID, floatPtr(9), nil)
		require.NoError(t, err)
		require.True(t, res.IsFailure())
		assert.ErrorIs(t, *res.Failure, ErrCompetitionNotJudging)
		assert.NotContains(t, deps.repo.Trace(), "UpdateScore")
		assert.Empty(t, deps.eventBus.Published())
	})

	t.Run("logs carry the score id", func(t *testing.T) {
		var logBuf bytes.Buffer
		deps := &testDeps{
			repo:     NewFakeScoreRepo(),
			catalog:  &FakeCatalogRepo{},
			judges:   &FakeJudgeLookup{},
			eventBus: &FakeEventBus{},
		}
		svc := NewScoreService(
			deps.repo,
			deps.catalog,
			deps.judges,
			deps.eventBus,
			slog.New(slog.NewJSONHandler(&logBuf, nil)),
			metrics.NoopOperations{},
			noop.NewTracerProvider().Tracer("test"),
			nil,
		)
		existingScore(deps.repo)
		ownedByCaller(deps.judges)
		criterionMax10(deps.catalog)
		competitionInPhase(deps.catalog, sharedtypes.CompetitionJudging)

		_, err := svc.UpdateScore(context.Background(), scoreID, personID, floatPtr(9), nil)
		require.NoError(t, err)

		logged := logBuf.String()
		assert.Contains(t, logged, scoreID.String())
		assert.NotContains(t, logged, uuid.Nil.String())
	})
}
