package scoredb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	scoredomain "github.com/hack-arena/hackarena-judging/app/modules/score/domain"
	"github.com/hack-arena/hackarena-judging/app/shared/pgerrs"
	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
)

// ScoreDBImpl implements Repository over Postgres via bun.
type ScoreDBImpl struct {
	DB *bun.DB
}

var _ Repository = (*ScoreDBImpl)(nil)

func (r *ScoreDBImpl) idb(db bun.IDB) bun.IDB {
	if db != nil {
		return db
	}
	return r.DB
}

func (r *ScoreDBImpl) CreateScore(ctx context.Context, db bun.IDB, score *Score) error {
	_, err := r.idb(db).NewInsert().
		Model(score).
		Exec(ctx)
	if err != nil {
		if pgerrs.IsUniqueViolation(err) {
			return ErrDuplicateScore
		}
		return fmt.Errorf("failed to insert score: %w", err)
	}
	return nil
}

func (r *ScoreDBImpl) GetScore(ctx context.Context, db bun.IDB, id sharedtypes.ScoreID) (*Score, error) {
	var score Score
	err := r.idb(db).NewSelect().
		Model(&score).
		Where("sc.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch score %s: %w", id, err)
	}
	return &score, nil
}

func (r *ScoreDBImpl) UpdateScore(ctx context.Context, db bun.IDB, score *Score) error {
	res, err := r.idb(db).NewUpdate().
		Model(score).
		Column("value", "feedback", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update score %s: %w", score.ID, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ScoreDBImpl) DeleteScore(ctx context.Context, db bun.IDB, id sharedtypes.ScoreID) error {
	res, err := r.idb(db).NewDelete().
		Model((*Score)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete score %s: %w", id, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ScoreDBImpl) ListScoresForSubmission(ctx context.Context, db bun.IDB, submissionID sharedtypes.SubmissionID) ([]Score, error) {
	var scores []Score
	err := r.idb(db).NewSelect().
		Model(&scores).
		Join("JOIN criteria AS cr ON cr.id = sc.criterion_id").
		Where("sc.submission_id = ?", submissionID).
		Order("cr.display_order ASC", "sc.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores for submission %s: %w", submissionID, err)
	}
	return scores, nil
}

func (r *ScoreDBImpl) GetScoreSet(ctx context.Context, db bun.IDB, submissionID sharedtypes.SubmissionID) ([]scoredomain.WeightedScore, error) {
	var set []scoredomain.WeightedScore
	err := r.idb(db).NewSelect().
		Model((*Score)(nil)).
		ColumnExpr("sc.criterion_id AS criterion_id").
		ColumnExpr("sc.value AS value").
		ColumnExpr("cr.max_score AS max_score").
		ColumnExpr("cr.weight AS weight").
		Join("JOIN criteria AS cr ON cr.id = sc.criterion_id").
		Where("sc.submission_id = ?", submissionID).
		Scan(ctx, &set)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch score set for submission %s: %w", submissionID, err)
	}
	return set, nil
}

func (r *ScoreDBImpl) CountScoresByJudge(ctx context.Context, db bun.IDB, judgeID sharedtypes.JudgeID) (int, error) {
	count, err := r.idb(db).NewSelect().
		Model((*Score)(nil)).
		Where("sc.judge_id = ?", judgeID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count scores for judge %s: %w", judgeID, err)
	}
	return count, nil
}
