package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	competitiondb "github.com/hack-arena/hackarena-judging/app/modules/competition/infrastructure/repositories"
	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
)

// TestDataGenerator seeds catalog rows for integration tests. Data the engine
// treats as read-only (people, competitions, criteria, teams, submissions) is
// inserted directly; judge and score rows go through the services under test.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	db    *bun.DB
}

// NewTestDataGenerator creates a generator with an optional seed for
// reproducible runs.
func NewTestDataGenerator(db *bun.DB, seed ...uint64) *TestDataGenerator {
	var s uint64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = uint64(time.Now().UnixNano())
	}
	return &TestDataGenerator{faker: gofakeit.New(s), db: db}
}

// SeedPerson inserts a person with the given role.
func (g *TestDataGenerator) SeedPerson(ctx context.Context, t *testing.T, role sharedtypes.Role) *competitiondb.Person {
	t.Helper()
	person := &competitiondb.Person{
		ID:          sharedtypes.PersonID(uuid.New()),
		DisplayName: g.faker.Name(),
		Role:        role,
	}
	if _, err := g.db.NewInsert().Model(person).Exec(ctx); err != nil {
		t.Fatalf("failed to seed person: %v", err)
	}
	return person
}

// SeedCompetition inserts a competition with the given status.
func (g *TestDataGenerator) SeedCompetition(ctx context.Context, t *testing.T, status sharedtypes.CompetitionStatus) *competitiondb.Competition {
	t.Helper()
	competition := &competitiondb.Competition{
		ID:     sharedtypes.CompetitionID(uuid.New()),
		Name:   g.faker.AppName(),
		Status: status,
	}
	if _, err := g.db.NewInsert().Model(competition).Exec(ctx); err != nil {
		t.Fatalf("failed to seed competition: %v", err)
	}
	return competition
}

// SeedCriterion inserts a weighted criterion for the competition.
func (g *TestDataGenerator) SeedCriterion(ctx context.Context, t *testing.T, competitionID sharedtypes.CompetitionID, maxScore, weight float64, displayOrder int) *competitiondb.Criterion {
	t.Helper()
	criterion := &competitiondb.Criterion{
		ID:            sharedtypes.CriterionID(uuid.New()),
		CompetitionID: competitionID,
		Name:          g.faker.BuzzWord(),
		MaxScore:      maxScore,
		Weight:        weight,
		DisplayOrder:  displayOrder,
	}
	if _, err := g.db.NewInsert().Model(criterion).Exec(ctx); err != nil {
		t.Fatalf("failed to seed criterion: %v", err)
	}
	return criterion
}

// SeedTeam inserts a team with the given members.
func (g *TestDataGenerator) SeedTeam(ctx context.Context, t *testing.T, competitionID sharedtypes.CompetitionID, memberIDs ...sharedtypes.PersonID) *competitiondb.Team {
	t.Helper()
	team := &competitiondb.Team{
		ID:            sharedtypes.TeamID(uuid.New()),
		CompetitionID: competitionID,
		Name:          g.faker.PetName(),
	}
	if _, err := g.db.NewInsert().Model(team).Exec(ctx); err != nil {
		t.Fatalf("failed to seed team: %v", err)
	}
	for _, personID := range memberIDs {
		member := &competitiondb.TeamMember{TeamID: team.ID, PersonID: personID}
		if _, err := g.db.NewInsert().Model(member).Exec(ctx); err != nil {
			t.Fatalf("failed to seed team member: %v", err)
		}
	}
	return team
}

// SeedSubmission inserts a submission for the team.
func (g *TestDataGenerator) SeedSubmission(ctx context.Context, t *testing.T, competitionID sharedtypes.CompetitionID, teamID sharedtypes.TeamID, status sharedtypes.SubmissionStatus) *competitiondb.Submission {
	t.Helper()
	submission := &competitiondb.Submission{
		ID:            sharedtypes.SubmissionID(uuid.New()),
		CompetitionID: competitionID,
		TeamID:        teamID,
		Title:         g.faker.Sentence(3),
		Status:        status,
	}
	if _, err := g.db.NewInsert().Model(submission).Exec(ctx); err != nil {
		t.Fatalf("failed to seed submission: %v", err)
	}
	return submission
}
