package competitiondb

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
)

// Repository is the catalog read model the judging engine depends on, plus
// the two submission columns the engine owns (aggregate_score, rank).
// All methods accept bun.IDB so they join the caller's transaction.
//
// Error semantics:
//   - ErrCompetitionNotFound / ErrPersonNotFound / ErrSubmissionNotFound /
//     ErrCriterionNotFound: record does not exist
//   - ErrNoRowsAffected: UPDATE matched no rows
//   - other errors: infrastructure failures
type Repository interface {
	// GetCompetition retrieves a competition by ID.
	GetCompetition(ctx context.Context, db bun.IDB, id sharedtypes.CompetitionID) (*Competition, error)

	// GetPerson retrieves a person from the identity read model.
	GetPerson(ctx context.Context, db bun.IDB, id sharedtypes.PersonID) (*Person, error)

	// GetSubmission retrieves a submission by ID.
	GetSubmission(ctx context.Context, db bun.IDB, id sharedtypes.SubmissionID) (*Submission, error)

	// GetCriterion retrieves a criterion by ID.
	GetCriterion(ctx context.Context, db bun.IDB, id sharedtypes.CriterionID) (*Criterion, error)

	// ListCriteria returns a competition's criteria ordered by display order.
	ListCriteria(ctx context.Context, db bun.IDB, competitionID sharedtypes.CompetitionID) ([]Criterion, error)

	// IsTeamMember reports whether the person belongs to the team.
	IsTeamMember(ctx context.Context, db bun.IDB, teamID sharedtypes.TeamID, personID sharedtypes.PersonID) (bool, error)

	// UpdateSubmissionAggregate overwrites the submission's aggregate score.
	// A nil aggregate clears it (submission has no current scores).
	UpdateSubmissionAggregate(ctx context.Context, db bun.IDB, id sharedtypes.SubmissionID, aggregate *float64) error
}
