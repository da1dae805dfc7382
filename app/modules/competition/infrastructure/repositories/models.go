package competitiondb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
)

// Competition identifies the event and gates scoring/ranking by status.
type Competition struct {
	bun.BaseModel `bun:"table:competitions,alias:c"`

	ID        sharedtypes.CompetitionID     `bun:"id,pk,type:uuid" json:"id"`
	Name      string                        `bun:"name,notnull" json:"name"`
	Status    sharedtypes.CompetitionStatus `bun:"status,notnull,default:'open'" json:"status"`
	CreatedAt time.Time                     `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// Criterion is a weighted judging dimension owned by one competition.
// Weights are not required to sum to 1 across a competition; aggregation
// normalizes by the sum of scored-criteria weights.
type Criterion struct {
	bun.BaseModel `bun:"table:criteria,alias:cr"`

	ID            sharedtypes.CriterionID   `bun:"id,pk,type:uuid" json:"id"`
	CompetitionID sharedtypes.CompetitionID `bun:"competition_id,notnull,type:uuid" json:"competition_id"`
	Name          string                    `bun:"name,notnull" json:"name"`
	MaxScore      float64                   `bun:"max_score,notnull" json:"max_score"`
	Weight        float64                   `bun:"weight,notnull" json:"weight"`
	DisplayOrder  int                       `bun:"display_order,notnull,default:0" json:"display_order"`
	CreatedAt     time.Time                 `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// Team belongs to one competition.
type Team struct {
	bun.BaseModel `bun:"table:teams,alias:t"`

	ID            sharedtypes.TeamID        `bun:"id,pk,type:uuid" json:"id"`
	CompetitionID sharedtypes.CompetitionID `bun:"competition_id,notnull,type:uuid" json:"competition_id"`
	Name          string                    `bun:"name,notnull" json:"name"`
	CreatedAt     time.Time                 `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`

	Members []*TeamMember `bun:"rel:has-many,join:id=team_id" json:"-"`
}

// TeamMember links a person to a team; used by the conflict-of-interest check.
type TeamMember struct {
	bun.BaseModel `bun:"table:team_members,alias:tm"`

	ID       int64                `bun:"id,pk,autoincrement" json:"id"`
	TeamID   sharedtypes.TeamID   `bun:"team_id,notnull,type:uuid" json:"team_id"`
	PersonID sharedtypes.PersonID `bun:"person_id,notnull,type:uuid" json:"person_id"`

	Team *Team `bun:"rel:belongs-to,join:team_id=id" json:"-"`
}

// Person is the engine's read model of the identity provider: id, display
// name and role capability.
type Person struct {
	bun.BaseModel `bun:"table:persons,alias:p"`

	ID          sharedtypes.PersonID `bun:"id,pk,type:uuid" json:"id"`
	DisplayName string               `bun:"display_name,notnull" json:"display_name"`
	Role        sharedtypes.Role     `bun:"role,notnull,default:'participant'" json:"role"`
	CreatedAt   time.Time            `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// Submission belongs to one competition and one team. The engine owns the
// aggregate_score and rank columns; everything else is written by the CRUD
// store upstream. Aggregate is nullable on purpose: "no scores yet" is not
// the same thing as a zero rating.
type Submission struct {
	bun.BaseModel `bun:"table:submissions,alias:s"`

	ID             sharedtypes.SubmissionID     `bun:"id,pk,type:uuid" json:"id"`
	CompetitionID  sharedtypes.CompetitionID    `bun:"competition_id,notnull,type:uuid" json:"competition_id"`
	TeamID         sharedtypes.TeamID           `bun:"team_id,notnull,type:uuid" json:"team_id"`
	Title          string                       `bun:"title,notnull" json:"title"`
	Status         sharedtypes.SubmissionStatus `bun:"status,notnull,default:'draft'" json:"status"`
	AggregateScore *float64                     `bun:"aggregate_score" json:"aggregate_score"`
	Rank           *int                         `bun:"rank" json:"rank"`
	CreatedAt      time.Time                    `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`

	Team *Team `bun:"rel:belongs-to,join:team_id=id" json:"-"`
}

var _ bun.BeforeInsertHook = (*Competition)(nil)

func (c *Competition) BeforeInsert(ctx context.Context, _ *bun.InsertQuery) error {
	if uuid.UUID(c.ID) == uuid.Nil {
		c.ID = sharedtypes.CompetitionID(uuid.New())
	}
	return nil
}

var _ bun.BeforeInsertHook = (*Submission)(nil)

func (s *Submission) BeforeInsert(ctx context.Context, _ *bun.InsertQuery) error {
	if uuid.UUID(s.ID) == uuid.Nil {
		s.ID = sharedtypes.SubmissionID(uuid.New())
	}
	return nil
}
