// Package rankingdomain holds the pure ranking math. Like aggregation, it is
// deterministic so a ranking run can be replayed safely.
package rankingdomain

import "github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"

// Standing is one submission's position after a ranking run.
type Standing struct {
	SubmissionID sharedtypes.SubmissionID
	Aggregate    float64
	Rank         int
}

// DenseRanks assigns dense (1224-style) ranks to aggregates that are already
// ordered best to worst: equal aggregates share a rank, and the next distinct
// aggregate gets the next consecutive rank with no gap. [90, 90, 85] ranks
// as [1, 1, 2].
func DenseRanks(aggregates []float64) []int {
	ranks := make([]int, len(aggregates))
	rank := 0
	for i, a := range aggregates {
		if i == 0 || a != aggregates[i-1] {
			rank++
		}
		ranks[i] = rank
	}
	return ranks
}
