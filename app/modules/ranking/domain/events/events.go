// Package rankingevents defines the subjects and payloads the ranking module
// publishes for external consumers.
package rankingevents

import (
	"time"

	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
)

const (
	TopicLeaderboardUpdated   = "leaderboard.updated"
	TopicLeaderboardScheduled = "leaderboard.scheduled"
)

// LeaderboardUpdatedPayload announces a completed ranking run.
type LeaderboardUpdatedPayload struct {
	CompetitionID sharedtypes.CompetitionID `json:"competition_id"`
	RankedCount   int                       `json:"ranked_count"`
	UpdatedAt     time.Time                 `json:"updated_at"`
}

// LeaderboardScheduledPayload announces a future ranking run.
type LeaderboardScheduledPayload struct {
	CompetitionID sharedtypes.CompetitionID `json:"competition_id"`
	RunAt         time.Time                 `json:"run_at"`
}
