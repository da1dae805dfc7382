// Package scoreevents defines the subjects and payloads the score module
// publishes for external consumers.
package scoreevents

import (
	"time"

	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
)

const (
	TopicScoreRecorded = "score.recorded"
	TopicScoreUpdated  = "score.updated"
	TopicScoreDeleted  = "score.deleted"

	// TopicSubmissionScored carries the recomputed aggregate after any score
	// mutation, for live leaderboard consumers.
	TopicSubmissionScored = "submission.scored"
)

// ScoreRecordedPayload announces a newly recorded score.
type ScoreRecordedPayload struct {
	ScoreID      sharedtypes.ScoreID      `json:"score_id"`
	SubmissionID sharedtypes.SubmissionID `json:"submission_id"`
	JudgeID      sharedtypes.JudgeID      `json:"judge_id"`
	CriterionID  sharedtypes.CriterionID  `json:"criterion_id"`
	Value        float64                  `json:"value"`
	RecordedAt   time.Time                `json:"recorded_at"`
}

// ScoreUpdatedPayload announces a revised score.
type ScoreUpdatedPayload struct {
	ScoreID      sharedtypes.ScoreID      `json:"score_id"`
	SubmissionID sharedtypes.SubmissionID `json:"submission_id"`
	JudgeID      sharedtypes.JudgeID      `json:"judge_id"`
	CriterionID  sharedtypes.CriterionID  `json:"criterion_id"`
	Value        float64                  `json:"value"`
	UpdatedAt    time.Time                `json:"updated_at"`
}

// ScoreDeletedPayload announces a retracted score.
type ScoreDeletedPayload struct {
	ScoreID      sharedtypes.ScoreID      `json:"score_id"`
	SubmissionID sharedtypes.SubmissionID `json:"submission_id"`
	JudgeID      sharedtypes.JudgeID      `json:"judge_id"`
	CriterionID  sharedtypes.CriterionID  `json:"criterion_id"`
}

// SubmissionScoredPayload carries a submission's fresh aggregate. Aggregate
// is null when the submission no longer has any scores.
type SubmissionScoredPayload struct {
	SubmissionID sharedtypes.SubmissionID `json:"submission_id"`
	Aggregate    *float64                 `json:"aggregate"`
}
