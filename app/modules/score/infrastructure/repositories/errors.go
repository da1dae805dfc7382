package scoredb

import "errors"

var (
	// ErrNotFound means no score row matched.
	ErrNotFound = errors.New("score not found")

	// ErrDuplicateScore means the (submission, judge, criterion) triple
	// already has a score; the unique index rejected the insert.
	ErrDuplicateScore = errors.New("score already recorded for this submission, judge and criterion")
)
