package scoreservice

import "errors"

// Business failure sentinels. These travel in the Failure side of an
// OperationResult; infrastructure faults are returned as plain errors.
var (
	ErrSubmissionNotFound     = errors.New("submission not found")
	ErrSubmissionNotFinalized = errors.New("submission is not finalized")
	ErrCompetitionNotJudging  = errors.New("competition is not in its judging phase")
	ErrUnknownCriterion       = errors.New("criterion does not belong to the submission's competition")
	ErrScoreOutOfRange        = errors.New("score value is outside the criterion's allowed range")
	ErrNotAJudge              = errors.New("caller is not an assigned judge for this competition")
	ErrConflictOfInterest     = errors.New("judges cannot score their own team's submission")
	ErrAlreadyScored          = errors.New("this judge already scored this criterion for this submission")
	ErrScoreNotFound          = errors.New("score not found")
	ErrNotScoreOwner          = errors.New("only the judge who recorded a score may modify it")
)
