// Package scoredomain holds the pure aggregation math for submission scores.
// Everything here is deterministic and side-effect free so recomputation can
// be re-run any number of times with bit-identical output.
package scoredomain

import (
	"sort"

	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
)

// WeightedScore is the narrow read model aggregation works on: one recorded
// value joined with its criterion's max score and weight.
type WeightedScore struct {
	CriterionID sharedtypes.CriterionID
	Value       float64
	MaxScore    float64
	Weight      float64
}

// Aggregate computes a submission's weighted composite rating on a 0-100
// scale from its current score set.
//
//   - nil for an empty score set: a submission with no scores has no rating,
//     which is not the same thing as a zero rating.
//   - Per criterion, multiple judges' raw values are averaged (not summed),
//     then normalized: (mean / maxScore) * 100.
//   - The result is Σ(normalized_i * weight_i) / Σ(weight_i) over criteria
//     that have at least one score. Unscored criteria appear in neither the
//     numerator nor the denominator, so they never drag the rating toward zero.
//   - If every scored criterion carries weight 0 the denominator vanishes;
//     the rating is then 0 (scores exist, none of them count for anything).
//
// Criteria are folded in a canonical order, so recomputing the same score
// set always yields the exact same float.
func Aggregate(scores []WeightedScore) *float64 {
	if len(scores) == 0 {
		return nil
	}

	type criterionGroup struct {
		sum      float64
		count    int
		maxScore float64
		weight   float64
	}

	groups := make(map[sharedtypes.CriterionID]*criterionGroup)
	for _, s := range scores {
		g, ok := groups[s.CriterionID]
		if !ok {
			g = &criterionGroup{maxScore: s.MaxScore, weight: s.Weight}
			groups[s.CriterionID] = g
		}
		g.sum += s.Value
		g.count++
	}

	ids := make([]sharedtypes.CriterionID, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	var weightedSum, weightTotal float64
	for _, id := range ids {
		g := groups[id]
		mean := g.sum / float64(g.count)
		normalized := (mean / g.maxScore) * 100
		weightedSum += normalized * g.weight
		weightTotal += g.weight
	}

	var aggregate float64
	if weightTotal > 0 {
		aggregate = weightedSum / weightTotal
	}
	return &aggregate
}
