package judgeservice

import "errors"

// Domain errors for the judge registry. These are business-rule rejections
// surfaced to the caller with a specific kind; none of them are retryable.
var (
	// ErrCompetitionNotFound indicates the target competition does not exist.
	ErrCompetitionNotFound = errors.New("competition not found")

	// ErrPersonNotFound indicates the person is unknown to the identity read model.
	ErrPersonNotFound = errors.New("person not found")

	// ErrNotEligible indicates the person's role is not judge-capable.
	ErrNotEligible = errors.New("person does not hold a judge-capable role")

	// ErrAlreadyAssigned indicates the (competition, person) pairing already exists.
	ErrAlreadyAssigned = errors.New("person is already assigned as a judge")

	// ErrAssignmentNotFound indicates no such judge assignment exists.
	ErrAssignmentNotFound = errors.New("judge assignment not found")

	// ErrHasRecordedScores blocks removal of a judge with scoring history;
	// removing them would orphan scores and corrupt aggregates.
	ErrHasRecordedScores = errors.New("judge has recorded scores and cannot be removed")
)
