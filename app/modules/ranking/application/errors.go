package rankingservice

import "errors"

// Business failure sentinels. These travel in the Failure side of an
// OperationResult; infrastructure faults are returned as plain errors.
var (
	ErrCompetitionNotFound = errors.New("competition not found")
	ErrJudgingNotStarted   = errors.New("competition has not entered its judging phase")
	ErrUnparsableSchedule  = errors.New("could not understand the schedule expression")
	ErrScheduleInPast      = errors.New("scheduled run time is in the past")
	ErrEmptyLeaderboard    = errors.New("competition has no ranked submissions yet")
)
