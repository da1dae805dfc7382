package rankingdb

import (
	"context"

	"github.com/uptrace/bun"

	competitiondb "github.com/hack-arena/hackarena-judging/app/modules/competition/infrastructure/repositories"
	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
)

// RankAssignment is one submission's new rank, produced by a ranking run.
type RankAssignment struct {
	SubmissionID sharedtypes.SubmissionID
	Rank         int
}

// Repository reads and writes the ranking view over the submissions table.
// The ranking module owns the rank column; everything else on a submission
// belongs to the catalog.
type Repository interface {
	// ListRankable returns a competition's finalized submissions that carry
	// an aggregate, ordered by aggregate descending and creation time
	// ascending. That ordering is the ranking order: ties are broken in
	// favor of the earlier submission for display purposes, while both
	// still share the same dense rank.
	ListRankable(ctx context.Context, db bun.IDB, competitionID sharedtypes.CompetitionID) ([]competitiondb.Submission, error)

	// ClearRanks nulls every rank in the competition so submissions that
	// dropped out of the rankable set do not keep a stale position.
	ClearRanks(ctx context.Context, db bun.IDB, competitionID sharedtypes.CompetitionID) error

	// ApplyRanks persists the assignments produced by a ranking run.
	ApplyRanks(ctx context.Context, db bun.IDB, assignments []RankAssignment) error

	// ListLeaderboard returns ranked submissions in leaderboard order.
	ListLeaderboard(ctx context.Context, db bun.IDB, competitionID sharedtypes.CompetitionID) ([]competitiondb.Submission, error)
}
