package judgedb

import "errors"

// Sentinel errors for the judge repository layer.
var (
	// ErrNotFound indicates the judge assignment does not exist.
	ErrNotFound = errors.New("judge assignment not found")

	// ErrDuplicateAssignment indicates the (competition, person) pairing
	// already exists; raised from the unique constraint so concurrent
	// assigns cannot both succeed.
	ErrDuplicateAssignment = errors.New("judge already assigned to competition")
)
