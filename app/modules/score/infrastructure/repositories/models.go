package scoredb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
)

// Score is one judge's rating of one submission against one criterion.
// The (submission_id, judge_id, criterion_id) triple is unique; re-rating
// goes through UPDATE, never a second INSERT.
type Score struct {
	bun.BaseModel `bun:"table:scores,alias:sc"`

	ID           sharedtypes.ScoreID      `bun:"id,pk,type:uuid" json:"id"`
	SubmissionID sharedtypes.SubmissionID `bun:"submission_id,notnull,type:uuid" json:"submission_id"`
	JudgeID      sharedtypes.JudgeID      `bun:"judge_id,notnull,type:uuid" json:"judge_id"`
	CriterionID  sharedtypes.CriterionID  `bun:"criterion_id,notnull,type:uuid" json:"criterion_id"`
	Value        float64                  `bun:"value,notnull" json:"value"`
	Feedback     *string                  `bun:"feedback" json:"feedback,omitempty"`
	CreatedAt    time.Time                `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time                `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

var _ bun.BeforeInsertHook = (*Score)(nil)

func (s *Score) BeforeInsert(ctx context.Context, _ *bun.InsertQuery) error {
	if uuid.UUID(s.ID) == uuid.Nil {
		s.ID = sharedtypes.ScoreID(uuid.New())
	}
	return nil
}
