// Package sharedevents holds event subjects and payloads consumed by
// collaborators outside the judging engine (audit sink, XP service,
// real-time leaderboard UIs). All of these are best-effort publishes.
package sharedevents

import (
	"time"

	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
)

const (
	// TopicAuditRecord is the append-only audit trail subject.
	TopicAuditRecord = "audit.record"

	// TopicXPAward notifies the rewards system that points were earned.
	TopicXPAward = "xp.award"
)

// AuditRecordPayload is one append-only audit entry.
type AuditRecordPayload struct {
	Action     string            `json:"action"`
	ActorID    string            `json:"actor_id,omitempty"`
	EntityType string            `json:"entity_type"`
	EntityID   string            `json:"entity_id"`
	Details    map[string]string `json:"details,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// XPAwardPayload asks the rewards system to credit points.
type XPAwardPayload struct {
	PersonID      sharedtypes.PersonID      `json:"person_id"`
	CompetitionID sharedtypes.CompetitionID `json:"competition_id"`
	Points        int                       `json:"points"`
	Reason        string                    `json:"reason"`
}
