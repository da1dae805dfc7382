package rankingdb

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	competitiondb "github.com/hack-arena/hackarena-judging/app/modules/competition/infrastructure/repositories"
	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
)

// RankingDBImpl implements Repository over Postgres via bun.
type RankingDBImpl struct {
	DB *bun.DB
}

var _ Repository = (*RankingDBImpl)(nil)

func (r *RankingDBImpl) idb(db bun.IDB) bun.IDB {
	if db != nil {
		return db
	}
	return r.DB
}

func (r *RankingDBImpl) ListRankable(ctx context.Context, db bun.IDB, competitionID sharedtypes.CompetitionID) ([]competitiondb.Submission, error) {
	var submissions []competitiondb.Submission
	err := r.idb(db).NewSelect().
		Model(&submissions).
		Where("s.competition_id = ?", competitionID).
		Where("s.status = ?", sharedtypes.SubmissionFinalized).
		Where("s.aggregate_score IS NOT NULL").
		Order("s.aggregate_score DESC", "s.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rankable submissions for competition %s: %w", competitionID, err)
	}
	return submissions, nil
}

func (r *RankingDBImpl) ClearRanks(ctx context.Context, db bun.IDB, competitionID sharedtypes.CompetitionID) error {
	_, err := r.idb(db).NewUpdate().
		Model((*competitiondb.Submission)(nil)).
		Set("rank = NULL").
		Where("competition_id = ?", competitionID).
		Where("rank IS NOT NULL").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear ranks for competition %s: %w", competitionID, err)
	}
	return nil
}

func (r *RankingDBImpl) ApplyRanks(ctx context.Context, db bun.IDB, assignments []RankAssignment) error {
	for _, a := range assignments {
		_, err := r.idb(db).NewUpdate().
			Model((*competitiondb.Submission)(nil)).
			Set("rank = ?", a.Rank).
			Where("id = ?", a.SubmissionID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to set rank %d on submission %s: %w", a.Rank, a.SubmissionID, err)
		}
	}
	return nil
}

func (r *RankingDBImpl) ListLeaderboard(ctx context.Context, db bun.IDB, competitionID sharedtypes.CompetitionID) ([]competitiondb.Submission, error) {
	var submissions []competitiondb.Submission
	err := r.idb(db).NewSelect().
		Model(&submissions).
		Relation("Team").
		Where("s.competition_id = ?", competitionID).
		Where("s.rank IS NOT NULL").
		Order("s.rank ASC", "s.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaderboard for competition %s: %w", competitionID, err)
	}
	return submissions, nil
}
