// Package sharedtypes holds the identifier and enum types shared across
// modules so module packages never import each other's domain packages.
package sharedtypes

import (
	"database/sql/driver"

	"github.com/google/uuid"
)

// CompetitionID identifies a competition (hackathon event).
type CompetitionID uuid.UUID

func (id CompetitionID) String() string                { return uuid.UUID(id).String() }
func (id CompetitionID) Value() (driver.Value, error)  { return uuid.UUID(id).Value() }
func (id *CompetitionID) Scan(src any) error           { return (*uuid.UUID)(id).Scan(src) }
func (id CompetitionID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id *CompetitionID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

// PersonID identifies a platform user, supplied by the identity provider.
type PersonID uuid.UUID

func (id PersonID) String() string                { return uuid.UUID(id).String() }
func (id PersonID) Value() (driver.Value, error)  { return uuid.UUID(id).Value() }
func (id *PersonID) Scan(src any) error           { return (*uuid.UUID)(id).Scan(src) }
func (id PersonID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id *PersonID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

// TeamID identifies a team within a competition.
type TeamID uuid.UUID

func (id TeamID) String() string                { return uuid.UUID(id).String() }
func (id TeamID) Value() (driver.Value, error)  { return uuid.UUID(id).Value() }
func (id *TeamID) Scan(src any) error           { return (*uuid.UUID)(id).Scan(src) }
func (id TeamID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id *TeamID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

// SubmissionID identifies a team's submission.
type SubmissionID uuid.UUID

func (id SubmissionID) String() string                { return uuid.UUID(id).String() }
func (id SubmissionID) Value() (driver.Value, error)  { return uuid.UUID(id).Value() }
func (id *SubmissionID) Scan(src any) error           { return (*uuid.UUID)(id).Scan(src) }
func (id SubmissionID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id *SubmissionID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

// JudgeID identifies a (competition, person) judge assignment.
type JudgeID uuid.UUID

func (id JudgeID) String() string                { return uuid.UUID(id).String() }
func (id JudgeID) Value() (driver.Value, error)  { return uuid.UUID(id).Value() }
func (id *JudgeID) Scan(src any) error           { return (*uuid.UUID)(id).Scan(src) }
func (id JudgeID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id *JudgeID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

// CriterionID identifies a judging criterion.
type CriterionID uuid.UUID

func (id CriterionID) String() string                { return uuid.UUID(id).String() }
func (id CriterionID) Value() (driver.Value, error)  { return uuid.UUID(id).Value() }
func (id *CriterionID) Scan(src any) error           { return (*uuid.UUID)(id).Scan(src) }
func (id CriterionID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id *CriterionID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

// ScoreID identifies a single (submission, judge, criterion) score.
type ScoreID uuid.UUID

func (id ScoreID) String() string                { return uuid.UUID(id).String() }
func (id ScoreID) Value() (driver.Value, error)  { return uuid.UUID(id).Value() }
func (id *ScoreID) Scan(src any) error           { return (*uuid.UUID)(id).Scan(src) }
func (id ScoreID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id *ScoreID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

// Role is the enumerated capability set for a person. Roles are a closed set;
// eligibility checks go through predicates rather than string comparison at
// call sites, so a typo'd role can never pass a check.
type Role string

const (
	RoleParticipant Role = "participant"
	RoleMentor      Role = "mentor"
	RoleJudge       Role = "judge"
	RoleOrganizer   Role = "organizer"
	RoleAdmin       Role = "admin"
)

// IsValid reports whether the role belongs to the closed set.
func (r Role) IsValid() bool {
	switch r {
	case RoleParticipant, RoleMentor, RoleJudge, RoleOrganizer, RoleAdmin:
		return true
	}
	return false
}

// CanJudge reports whether the role may be assigned as a competition judge.
func (r Role) CanJudge() bool {
	switch r {
	case RoleJudge, RoleOrganizer, RoleAdmin:
		return true
	}
	return false
}

// CompetitionStatus gates scoring and ranking operations: score mutations
// require the judging phase, and ranking runs require judging to have started.
type CompetitionStatus string

const (
	CompetitionOpen    CompetitionStatus = "open"
	CompetitionJudging CompetitionStatus = "judging"
	CompetitionClosed  CompetitionStatus = "closed"
)

// SubmissionStatus distinguishes drafts from scoreable submissions.
type SubmissionStatus string

const (
	SubmissionDraft     SubmissionStatus = "draft"
	SubmissionFinalized SubmissionStatus = "finalized"
)
