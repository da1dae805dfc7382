package judgedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/hack-arena/hackarena-judging/app/shared/pgerrs"
	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
)

// JudgeDBImpl implements Repository over Postgres via bun.
type JudgeDBImpl struct {
	DB *bun.DB
}

var _ Repository = (*JudgeDBImpl)(nil)

func (r *JudgeDBImpl) idb(db bun.IDB) bun.IDB {
	if db != nil {
		return db
	}
	return r.DB
}

func (r *JudgeDBImpl) CreateJudge(ctx context.Context, db bun.IDB, judge *Judge) error {
	_, err := r.idb(db).NewInsert().
		Model(judge).
		Exec(ctx)
	if err != nil {
		if pgerrs.IsUniqueViolation(err) {
			return ErrDuplicateAssignment
		}
		return fmt.Errorf("failed to insert judge assignment: %w", err)
	}
	return nil
}

func (r *JudgeDBImpl) GetJudge(ctx context.Context, db bun.IDB, id sharedtypes.JudgeID) (*Judge, error) {
	var judge Judge
	err := r.idb(db).NewSelect().
		Model(&judge).
		Where("j.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch judge %s: %w", id, err)
	}
	return &judge, nil
}

func (r *JudgeDBImpl) GetJudgeByPerson(ctx context.Context, db bun.IDB, competitionID sharedtypes.CompetitionID, personID sharedtypes.PersonID) (*Judge, error) {
	var judge Judge
	err := r.idb(db).NewSelect().
		Model(&judge).
		Where("j.competition_id = ?", competitionID).
		Where("j.person_id = ?", personID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch judge for person %s in competition %s: %w", personID, competitionID, err)
	}
	return &judge, nil
}

func (r *JudgeDBImpl) ListJudges(ctx context.Context, db bun.IDB, competitionID sharedtypes.CompetitionID) ([]Judge, error) {
	var judges []Judge
	err := r.idb(db).NewSelect().
		Model(&judges).
		Where("j.competition_id = ?", competitionID).
		Order("j.assigned_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list judges for competition %s: %w", competitionID, err)
	}
	return judges, nil
}

func (r *JudgeDBImpl) DeleteJudge(ctx context.Context, db bun.IDB, id sharedtypes.JudgeID) error {
	res, err := r.idb(db).NewDelete().
		Model((*Judge)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete judge %s: %w", id, err)
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
