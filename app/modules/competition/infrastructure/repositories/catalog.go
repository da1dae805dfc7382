package competitiondb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
)

// CatalogDBImpl implements Repository over Postgres via bun.
type CatalogDBImpl struct {
	DB *bun.DB
}

var _ Repository = (*CatalogDBImpl)(nil)

func (r *CatalogDBImpl) idb(db bun.IDB) bun.IDB {
	if db != nil {
		return db
	}
	return r.DB
}

func (r *CatalogDBImpl) GetCompetition(ctx context.Context, db bun.IDB, id sharedtypes.CompetitionID) (*Competition, error) {
	var competition Competition
	err := r.idb(db).NewSelect().
		Model(&competition).
		Where("c.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCompetitionNotFound
		}
		return nil, fmt.Errorf("failed to fetch competition %s: %w", id, err)
	}
	return &competition, nil
}

func (r *CatalogDBImpl) GetPerson(ctx context.Context, db bun.IDB, id sharedtypes.PersonID) (*Person, error) {
	var person Person
	err := r.idb(db).NewSelect().
		Model(&person).
		Where("p.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPersonNotFound
		}
		return nil, fmt.Errorf("failed to fetch person %s: %w", id, err)
	}
	return &person, nil
}

func (r *CatalogDBImpl) GetSubmission(ctx context.Context, db bun.IDB, id sharedtypes.SubmissionID) (*Submission, error) {
	var submission Submission
	err := r.idb(db).NewSelect().
		Model(&submission).
		Where("s.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to fetch submission %s: %w", id, err)
	}
	return &submission, nil
}

func (r *CatalogDBImpl) GetCriterion(ctx context.Context, db bun.IDB, id sharedtypes.CriterionID) (*Criterion, error) {
	var criterion Criterion
	err := r.idb(db).NewSelect().
		Model(&criterion).
		Where("cr.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCriterionNotFound
		}
		return nil, fmt.Errorf("failed to fetch criterion %s: %w", id, err)
	}
	return &criterion, nil
}

func (r *CatalogDBImpl) ListCriteria(ctx context.Context, db bun.IDB, competitionID sharedtypes.CompetitionID) ([]Criterion, error) {
	var criteria []Criterion
	err := r.idb(db).NewSelect().
		Model(&criteria).
		Where("cr.competition_id = ?", competitionID).
		Order("cr.display_order ASC", "cr.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list criteria for competition %s: %w", competitionID, err)
	}
	return criteria, nil
}

func (r *CatalogDBImpl) IsTeamMember(ctx context.Context, db bun.IDB, teamID sharedtypes.TeamID, personID sharedtypes.PersonID) (bool, error) {
	exists, err := r.idb(db).NewSelect().
		Model((*TeamMember)(nil)).
		Where("tm.team_id = ?", teamID).
		Where("tm.person_id = ?", personID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check team membership: %w", err)
	}
	return exists, nil
}

func (r *CatalogDBImpl) UpdateSubmissionAggregate(ctx context.Context, db bun.IDB, id sharedtypes.SubmissionID, aggregate *float64) error {
	res, err := r.idb(db).NewUpdate().
		Model((*Submission)(nil)).
		Set("aggregate_score = ?", aggregate).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update aggregate for submission %s: %w", id, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
