package rankingqueue

// RankingRunJob is a scheduled ranking recalculation for one competition.
type RankingRunJob struct {
	CompetitionID string `json:"competition_id"`
}

// Kind returns the job type identifier for River.
func (RankingRunJob) Kind() string { return "ranking_run" }

// JobInfo describes a scheduled job for monitoring.
type JobInfo struct {
	ID            int64  `json:"id"`
	Kind          string `json:"kind"`
	CompetitionID string `json:"competition_id"`
	State         string `json:"state"`
	ScheduledAt   string `json:"scheduled_at"`
	Attempt       int    `json:"attempt"`
	MaxAttempts   int    `json:"max_attempts"`
}
