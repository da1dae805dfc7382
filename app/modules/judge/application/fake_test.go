package judgeservice

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	competitiondb "github.com/hack-arena/hackarena-judging/app/modules/competition/infrastructure/repositories"
	judgedb "github.com/hack-arena/hackarena-judging/app/modules/judge/infrastructure/repositories"
	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
)

// ------------------------
// Fake Judge Repo
// ------------------------

type FakeJudgeRepo struct {
	trace []string

	CreateJudgeFunc      func(ctx context.Context, db bun.IDB, judge *judgedb.Judge) error
	GetJudgeFunc         func(ctx context.Context, db bun.IDB, id sharedtypes.JudgeID) (*judgedb.Judge, error)
	GetJudgeByPersonFunc func(ctx context.Context, db bun.IDB, competitionID sharedtypes.CompetitionID, personID sharedtypes.PersonID) (*judgedb.Judge, error)
	ListJudgesFunc       func(ctx context.Context, db bun.IDB, competitionID sharedtypes.CompetitionID) ([]judgedb.Judge, error)
	DeleteJudgeFunc      func(ctx context.Context, db bun.IDB, id sharedtypes.JudgeID) error
}

func NewFakeJudgeRepo() *FakeJudgeRepo {
	return &FakeJudgeRepo{trace: []string{}}
}

func (f *FakeJudgeRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeJudgeRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeJudgeRepo) CreateJudge(ctx context.Context, db bun.IDB, judge *judgedb.Judge) error {
	f.record("CreateJudge")
	if f.CreateJudgeFunc != nil {
		return f.CreateJudgeFunc(ctx, db, judge)
	}
	return nil
}

func (f *FakeJudgeRepo) GetJudge(ctx context.Context, db bun.IDB, id sharedtypes.JudgeID) (*judgedb.Judge, error) {
	f.record("GetJudge")
	if f.GetJudgeFunc != nil {
		return f.GetJudgeFunc(ctx, db, id)
	}
	return nil, judgedb.ErrNotFound
}

func (f *FakeJudgeRepo) GetJudgeByPerson(ctx context.Context, db bun.IDB, competitionID sharedtypes.CompetitionID, personID sharedtypes.PersonID) (*judgedb.Judge, error) {
	f.record("GetJudgeByPerson")
	if f.GetJudgeByPersonFunc != nil {
		return f.GetJudgeByPersonFunc(ctx, db, competitionID, personID)
	}
	return nil, judgedb.ErrNotFound
}

func (f *FakeJudgeRepo) ListJudges(ctx context.Context, db bun.IDB, competitionID sharedtypes.CompetitionID) ([]judgedb.Judge, error) {
	f.record("ListJudges")
	if f.ListJudgesFunc != nil {
		return f.ListJudgesFunc(ctx, db, competitionID)
	}
	return []judgedb.Judge{}, nil
}

func (f *FakeJudgeRepo) DeleteJudge(ctx context.Context, db bun.IDB, id sharedtypes.JudgeID) error {
	f.record("DeleteJudge")
	if f.DeleteJudgeFunc != nil {
		return f.DeleteJudgeFunc(ctx, db, id)
	}
	return nil
}

var _ judgedb.Repository = (*FakeJudgeRepo)(nil)

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
// Fake Score Counter
// ------------------------

type FakeScoreCounter struct {
	CountScoresByJudgeFunc func(ctx context.Context, db bun.IDB, judgeID sharedtypes.JudgeID) (int, error)
}

func (f *FakeScoreCounter) CountScoresByJudge(ctx context.Context, db bun.IDB, judgeID sharedtypes.JudgeID) (int, error) {
	if f.CountScoresByJudgeFunc != nil {
		return f.CountScoresByJudgeFunc(ctx, db, judgeID)
	}
	return 0, nil
}

var _ ScoreCounter = (*FakeScoreCounter)(nil)

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
