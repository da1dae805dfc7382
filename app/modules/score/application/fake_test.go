package scoreservice

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	competitiondb "github.com/hack-arena/hackarena-judging/app/modules/competition/infrastructure/repositories"
	judgedb "github.com/hack-arena/hackarena-judging/app/modules/judge/infrastructure/repositories"
	scoredomain "github.com/hack-arena/hackarena-judging/app/modules/score/domain"
	scoredb "github.com/hack-arena/hackarena-judging/app/modules/score/infrastructure/repositories"
	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
)

// ------------------------
// Fake Score Repo
// ------------------------

type FakeScoreRepo struct {
	trace []string

	CreateScoreFunc             func(ctx context.Context, db bun.IDB, score *scoredb.Score) error
	GetScoreFunc                func(ctx context.Context, db bun.IDB, id sharedtypes.ScoreID) (*scoredb.Score, error)
	UpdateScoreFunc             func(ctx context.Context, db bun.IDB, score *scoredb.Score) error
	DeleteScoreFunc             func(ctx context.Context, db bun.IDB, id sharedtypes.ScoreID) error
	ListScoresForSubmissionFunc func(ctx context.Context, db bun.IDB, submissionID sharedtypes.SubmissionID) ([]scoredb.Score, error)
	GetScoreSetFunc             func(ctx context.Context, db bun.IDB, submissionID sharedtypes.SubmissionID) ([]scoredomain.WeightedScore, error)
	CountScoresByJudgeFunc      func(ctx context.Context, db bun.IDB, judgeID sharedtypes.JudgeID) (int, error)
}

func NewFakeScoreRepo() *FakeScoreRepo {
	return &FakeScoreRepo{trace: []string{}}
}

func (f *FakeScoreRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeScoreRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeScoreRepo) CreateScore(ctx context.Context, db bun.IDB, score *scoredb.Score) error {
	f.record("CreateScore")
	if f.CreateScoreFunc != nil {
		return f.CreateScoreFunc(ctx, db, score)
	}
	return nil
}

func (f *FakeScoreRepo) GetScore(ctx context.Context, db bun.IDB, id sharedtypes.ScoreID) (*scoredb.Score, error) {
	f.record("GetScore")
	if f.GetScoreFunc != nil {
		return f.GetScoreFunc(ctx, db, id)
	}
	return nil, scoredb.ErrNotFound
}

func (f *FakeScoreRepo) UpdateScore(ctx context.Context, db bun.IDB, score *scoredb.Score) error {
	f.record("UpdateScore")
	if f.UpdateScoreFunc != nil {
		return f.UpdateScoreFunc(ctx, db, score)
	}
	return nil
}

func (f *FakeScoreRepo) DeleteScore(ctx context.Context, db bun.IDB, id sharedtypes.ScoreID) error {
	f.record("DeleteScore")
	if f.DeleteScoreFunc != nil {
		return f.DeleteScoreFunc(ctx, db, id)
	}
	return nil
}

func (f *FakeScoreRepo) ListScoresForSubmission(ctx context.Context, db bun.IDB, submissionID sharedtypes.SubmissionID) ([]scoredb.Score, error) {
	f.record("ListScoresForSubmission")
	if f.ListScoresForSubmissionFunc != nil {
		return f.ListScoresForSubmissionFunc(ctx, db, submissionID)
	}
	return []scoredb.Score{}, nil
}

func (f *FakeScoreRepo) GetScoreSet(ctx context.Context, db bun.IDB, submissionID sharedtypes.SubmissionID) ([]scoredomain.WeightedScore, error) {
	f.record("GetScoreSet")
	if f.GetScoreSetFunc != nil {
		return f.GetScoreSetFunc(ctx, db, submissionID)
	}
	return []scoredomain.WeightedScore{}, nil
}

func (f *FakeScoreRepo) CountScoresByJudge(ctx context.Context, db bun.IDB, judgeID sharedtypes.JudgeID) (int, error) {
	f.record("CountScoresByJudge")
	if f.CountScoresByJudgeFunc != nil {
		return f.CountScoresByJudgeFunc(ctx, db, judgeID)
	}
	return 0, nil
}

var _ scoredb.Repository = (*FakeScoreRepo)(nil)

// ------------------------
// Fake Catalog Repo
// ------------------------

type FakeCatalogRepo struct {
	GetCompetitionFunc            func(ctx context.Context, db bun.IDB, id sharedtypes.CompetitionID) (*competitiondb.Competition, error)
	GetPersonFunc                 func(ctx context.Context, db bun.IDB, id sharedtypes.PersonID) (*competitiondb.Person, error)
	GetSubmissionFunc             func(ctx context.Context, db bun.IDB, id sharedtypes.SubmissionID) (*competitiondb.Submission, error)
	GetCriterionFunc              func(ctx context.Context, db bun.IDB, id sharedtypes.CriterionID) (*competitiondb.Criterion, error)
	ListCriteriaFunc              func(ctx context.Context, db bun.IDB, competitionID sharedtypes.CompetitionID) ([]competitiondb.Criterion, error)
	IsTeamMemberFunc              func(ctx context.Context, db bun.IDB, teamID sharedtypes.TeamID, personID sharedtypes.PersonID) (bool, error)
	UpdateSubmissionAggregateFunc func(ctx context.Context, db bun.IDB, id sharedtypes.SubmissionID, aggregate *float64) error
}

func (f *FakeCatalogRepo) GetCompetition(ctx context.Context, db bun.IDB, id sharedtypes.CompetitionID) (*competitiondb.Competition, error) {
	if f.GetCompetitionFunc != nil {
		return f.GetCompetitionFunc(ctx, db, id)
	}
	return nil, competitiondb.ErrCompetitionNotFound
}

func (f *FakeCatalogRepo) GetPerson(ctx context.Context, db bun.IDB, id sharedtypes.PersonID) (*competitiondb.Person, error) {
	if f.GetPersonFunc != nil {
		return f.GetPersonFunc(ctx, db, id)
	}
	return nil, competitiondb.ErrPersonNotFound
}

func (f *FakeCatalogRepo) GetSubmission(ctx context.Context, db bun.IDB, id sharedtypes.SubmissionID) (*competitiondb.Submission, error) {
	if f.GetSubmissionFunc != nil {
		return f.GetSubmissionFunc(ctx, db, id)
	}
	return nil, competitiondb.ErrSubmissionNotFound
}

func (f *FakeCatalogRepo) GetCriterion(ctx context.Context, db bun.IDB, id sharedtypes.CriterionID) (*competitiondb.Criterion, error) {
	if f.GetCriterionFunc != nil {
		return f.GetCriterionFunc(ctx, db, id)
	}
	return nil, competitiondb.ErrCriterionNotFound
}

func (f *FakeCatalogRepo) ListCriteria(ctx context.Context, db bun.IDB, competitionID sharedtypes.CompetitionID) ([]competitiondb.Criterion, error) {
	if f.ListCriteriaFunc != nil {
		return f.ListCriteriaFunc(ctx, db, competitionID)
	}
	return []competitiondb.Criterion{}, nil
}

func (f *FakeCatalogRepo) IsTeamMember(ctx context.Context, db bun.IDB, teamID sharedtypes.TeamID, personID sharedtypes.PersonID) (bool, error) {
	if f.IsTeamMemberFunc != nil {
		return f.IsTeamMemberFunc(ctx, db, teamID, personID)
	}
	return false, nil
}

func (f *FakeCatalogRepo) UpdateSubmissionAggregate(ctx context.Context, db bun.IDB, id sharedtypes.SubmissionID, aggregate *float64) error {
	if f.UpdateSubmissionAggregateFunc != nil {
		return f.UpdateSubmissionAggregateFunc(ctx, db, id, aggregate)
	}
	return nil
}

var _ competitiondb.Repository = (*FakeCatalogRepo)(nil)

// ------------------------
// Fake Judge Lookup
// ------------------------

type FakeJudgeLookup struct {
	GetJudgeFunc         func(ctx context.Context, db bun.IDB, id sharedtypes.JudgeID) (*judgedb.Judge, error)
	GetJudgeByPersonFunc func(ctx context.Context, db bun.IDB, competitionID sharedtypes.CompetitionID, personID sharedtypes.PersonID) (*judgedb.Judge, error)
}

func (f *FakeJudgeLookup) GetJudge(ctx context.Context, db bun.IDB, id sharedtypes.JudgeID) (*judgedb.Judge, error) {
	if f.GetJudgeFunc != nil {
		return f.GetJudgeFunc(ctx, db, id)
	}
	return nil, judgedb.ErrNotFound
}

func (f *FakeJudgeLookup) GetJudgeByPerson(ctx context.Context, db bun.IDB, competitionID sharedtypes.CompetitionID, personID sharedtypes.PersonID) (*judgedb.Judge, error) {
	if f.GetJudgeByPersonFunc != nil {
		return f.GetJudgeByPersonFunc(ctx, db, competitionID, personID)
	}
	return nil, judgedb.ErrNotFound
}

var _ JudgeLookup = (*FakeJudgeLookup)(nil)

// ------------------------
// Fake Event Bus
// ------------------------

type FakeEventBus struct {
	mu        sync.Mutex
	published []string
}

func (f *FakeEventBus) Publish(ctx context.Context, subject string, msg *message.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, subject)
	return nil
}

func (f *FakeEventBus) Close() error { return nil }

func (f *FakeEventBus) Published() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.published))
	copy(out, f.published)
	return out
}
