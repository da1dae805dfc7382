package rankingservice

import (
	"context"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	competitiondb "github.com/hack-arena/hackarena-judging/app/modules/competition/infrastructure/repositories"
	rankingdb "github.com/hack-arena/hackarena-judging/app/modules/ranking/infrastructure/repositories"
	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
)

// ------------------------
// Fake Ranking Repo
// ------------------------

type FakeRankingRepo struct {
	trace []string

	ListRankableFunc    func(ctx context.Context, db bun.IDB, competitionID sharedtypes.CompetitionID) ([]competitiondb.Submission, error)
	ClearRanksFunc      func(ctx context.Context, db bun.IDB, competitionID sharedtypes.CompetitionID) error
	ApplyRanksFunc      func(ctx context.Context, db bun.IDB, assignments []rankingdb.RankAssignment) error
	ListLeaderboardFunc func(ctx context.Context, db bun.IDB, competitionID sharedtypes.CompetitionID) ([]competitiondb.Submission, error)
}

func NewFakeRankingRepo() *FakeRankingRepo {
	return &FakeRankingRepo{trace: []string{}}
}

func (f *FakeRankingRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRankingRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRankingRepo) ListRankable(ctx context.Context, db bun.IDB, competitionID sharedtypes.CompetitionID) ([]competitiondb.Submission, error) {
	f.record("ListRankable")
	if f.ListRankableFunc != nil {
		return f.ListRankableFunc(ctx, db, competitionID)
	}
	return []competitiondb.Submission{}, nil
}

func (f *FakeRankingRepo) ClearRanks(ctx context.Context, db bun.IDB, competitionID sharedtypes.CompetitionID) error {
	f.record("ClearRanks")
	if f.ClearRanksFunc != nil {
		return f.ClearRanksFunc(ctx, db, competitionID)
	}
	return nil
}

func (f *FakeRankingRepo) ApplyRanks(ctx context.Context, db bun.IDB, assignments []rankingdb.RankAssignment) error {
	f.record("ApplyRanks")
	if f.ApplyRanksFunc != nil {
		return f.ApplyRanksFunc(ctx, db, assignments)
	}
	return nil
}

func (f *FakeRankingRepo) ListLeaderboard(ctx context.Context, db bun.IDB, competitionID sharedtypes.CompetitionID) ([]competitiondb.Submission, error) {
	f.record("ListLeaderboard")
	if f.ListLeaderboardFunc != nil {
		return f.ListLeaderboardFunc(ctx, db, competitionID)
	}
	return []competitiondb.Submission{}, nil
}

var _ rankingdb.Repository = (*FakeRankingRepo)(nil)

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
// Fake Scheduler
// ------------------------

type FakeScheduler struct {
	mu        sync.Mutex
	scheduled []time.Time

	ScheduleRankingRunFunc func(ctx context.Context, competitionID sharedtypes.CompetitionID, runAt time.Time) error
}

func (f *FakeScheduler) ScheduleRankingRun(ctx context.Context, competitionID sharedtypes.CompetitionID, runAt time.Time) error {
	f.mu.Lock()
	f.scheduled = append(f.scheduled, runAt)
	f.mu.Unlock()
	if f.ScheduleRankingRunFunc != nil {
		return f.ScheduleRankingRunFunc(ctx, competitionID, runAt)
	}
	return nil
}

func (f *FakeScheduler) Scheduled() []time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]time.Time, len(f.scheduled))
	copy(out, f.scheduled)
	return out
}

var _ Scheduler = (*FakeScheduler)(nil)

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
