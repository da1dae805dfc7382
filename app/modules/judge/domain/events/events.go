// Package judgeevents defines the subjects and payloads the judge module
// publishes for external consumers.
package judgeevents

import (
	"time"

	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
)

const (
	TopicJudgeAssigned = "judge.assigned"
	TopicJudgeRemoved  = "judge.removed"
)

// JudgeAssignedPayload announces a new judge assignment.
type JudgeAssignedPayload struct {
	JudgeID       sharedtypes.JudgeID       `json:"judge_id"`
	CompetitionID sharedtypes.CompetitionID `json:"competition_id"`
	PersonID      sharedtypes.PersonID      `json:"person_id"`
	AssignedAt    time.Time                 `json:"assigned_at"`
}

// JudgeRemovedPayload announces a judge assignment removal.
type JudgeRemovedPayload struct {
	JudgeID       sharedtypes.JudgeID       `json:"judge_id"`
	CompetitionID sharedtypes.CompetitionID `json:"competition_id"`
	PersonID      sharedtypes.PersonID      `json:"person_id"`
}
