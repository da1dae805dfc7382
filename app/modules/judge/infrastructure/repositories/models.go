package judgedb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
)

// Judge is a (competition, person) pairing. The (competition_id, person_id)
// unique index is the authority on duplicate assignment; the service surfaces
// constraint violations as a conflict rather than pre-checking under race.
type Judge struct {
	bun.BaseModel `bun:"table:judges,alias:j"`

	ID            sharedtypes.JudgeID       `bun:"id,pk,type:uuid" json:"id"`
	CompetitionID sharedtypes.CompetitionID `bun:"competition_id,notnull,type:uuid" json:"competition_id"`
	PersonID      sharedtypes.PersonID      `bun:"person_id,notnull,type:uuid" json:"person_id"`
	AssignedAt    time.Time                 `bun:"assigned_at,notnull,default:current_timestamp" json:"assigned_at"`
}

var _ bun.BeforeInsertHook = (*Judge)(nil)

func (j *Judge) BeforeInsert(ctx context.Context, _ *bun.InsertQuery) error {
	if uuid.UUID(j.ID) == uuid.Nil {
		j.ID = sharedtypes.JudgeID(uuid.New())
	}
	return nil
}
