package judgedb

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
)

// Repository defines the contract for judge assignment persistence.
//
// Error semantics:
//   - ErrNotFound: assignment does not exist
//   - ErrDuplicateAssignment: (competition, person) pairing already exists
//   - other errors: infrastructure failures
type Repository interface {
	// CreateJudge inserts a new assignment. Returns ErrDuplicateAssignment
	// when the unique (competition_id, person_id) constraint fires.
	CreateJudge(ctx context.Context, db bun.IDB, judge *Judge) error

	// GetJudge retrieves an assignment by its ID.
	GetJudge(ctx context.Context, db bun.IDB, id sharedtypes.JudgeID) (*Judge, error)

	// GetJudgeByPerson retrieves the assignment for a person in a competition.
	GetJudgeByPerson(ctx context.Context, db bun.IDB, competitionID sharedtypes.CompetitionID, personID sharedtypes.PersonID) (*Judge, error)

	// ListJudges returns all assignments for a competition, oldest first.
	ListJudges(ctx context.Context, db bun.IDB, competitionID sharedtypes.CompetitionID) ([]Judge, error)

	// DeleteJudge removes an assignment. Returns ErrNotFound when no row matched.
	DeleteJudge(ctx context.Context, db bun.IDB, id sharedtypes.JudgeID) error
}
