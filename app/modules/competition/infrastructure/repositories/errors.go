package competitiondb

import "errors"

// Sentinel errors for the catalog repository layer.
var (
	// ErrCompetitionNotFound indicates the competition does not exist.
	ErrCompetitionNotFound = errors.New("competition not found")

	// ErrPersonNotFound indicates the person does not exist in the identity read model.
	ErrPersonNotFound = errors.New("person not found")

	// ErrSubmissionNotFound indicates the submission does not exist.
	ErrSubmissionNotFound = errors.New("submission not found")

	// ErrCriterionNotFound indicates the criterion does not exist.
	ErrCriterionNotFound = errors.New("criterion not found")

	// ErrNoRowsAffected indicates an UPDATE matched no rows.
	ErrNoRowsAffected = errors.New("no rows affected")
)
