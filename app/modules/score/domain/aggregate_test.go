package scoredomain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
)

func TestAggregate_EmptySetHasNoRating(t *testing.T) {
	assert.Nil(t, Aggregate(nil))
	assert.Nil(t, Aggregate([]WeightedScore{}))
}

func TestAggregate_WeightedMeanOfMeans(t *testing.T) {
	criterionA := sharedtypes.CriterionID(uuid.New())
	criterionB := sharedtypes.CriterionID(uuid.New())

	// Criterion A: max 10, weight 0.6, scored 8 and 6 -> mean 7, normalized 70.
	// Criterion B: max 20, weight 0.4, scored 15 -> normalized 75.
	// Aggregate = (70*0.6 + 75*0.4) / (0.6+0.4) = 72.0
	scores := []WeightedScore{
		{CriterionID: criterionA, Value: 8, MaxScore: 10, Weight: 0.6},
		{CriterionID: criterionA, Value: 6, MaxScore: 10, Weight: 0.6},
		{CriterionID: criterionB, Value: 15, MaxScore: 20, Weight: 0.4},
	}

	got := Aggregate(scores)
	require.NotNil(t, got)
	assert.InDelta(t, 72.0, *got, 1e-12)
}

func TestAggregate_UnscoredCriterionIsExcluded(t *testing.T) {
	criterionA := sharedtypes.CriterionID(uuid.New())
	criterionB := sharedtypes.CriterionID(uuid.New())

	// A third criterion with weight 0.5 has no scores, so it never enters the
	// computation: the aggregate matches the two-criterion case exactly
	// instead of being diluted toward zero.
	scores := []WeightedScore{
		{CriterionID: criterionA, Value: 8, MaxScore: 10, Weight: 0.6},
		{CriterionID: criterionA, Value: 6, MaxScore: 10, Weight: 0.6},
		{CriterionID: criterionB, Value: 15, MaxScore: 20, Weight: 0.4},
	}

	got := Aggregate(scores)
	require.NotNil(t, got)
	assert.InDelta(t, 72.0, *got, 1e-12)
}

func TestAggregate_ZeroWeightContributesNothing(t *testing.T) {
	criterionA := sharedtypes.CriterionID(uuid.New())
	criterionB := sharedtypes.CriterionID(uuid.New())

	scores := []WeightedScore{
		{CriterionID: criterionA, Value: 10, MaxScore: 10, Weight: 0},
		{CriterionID: criterionB, Value: 15, MaxScore: 20, Weight: 0.4},
	}

	got := Aggregate(scores)
	require.NotNil(t, got)
	assert.InDelta(t, 75.0, *got, 1e-12)
}

func TestAggregate_AllZeroWeightsYieldZero(t *testing.T) {
	criterionA := sharedtypes.CriterionID(uuid.New())

	scores := []WeightedScore{
		{CriterionID: criterionA, Value: 10, MaxScore: 10, Weight: 0},
	}

	got := Aggregate(scores)
	require.NotNil(t, got, "scores exist, so the rating is not null")
	assert.Equal(t, 0.0, *got)
}

func TestAggregate_Idempotence(t *testing.T) {
	scores := make([]WeightedScore, 0, 30)
	for i := 0; i < 10; i++ {
		id := sharedtypes.CriterionID(uuid.New())
		scores = append(scores,
			WeightedScore{CriterionID: id, Value: float64(i), MaxScore: 10, Weight: 0.3},
			WeightedScore{CriterionID: id, Value: float64(i) / 3, MaxScore: 10, Weight: 0.3},
			WeightedScore{CriterionID: id, Value: 7.77, MaxScore: 10, Weight: 0.3},
		)
	}

	first := Aggregate(scores)
	require.NotNil(t, first)
	for i := 0; i < 100; i++ {
		again := Aggregate(scores)
		require.NotNil(t, again)
		// Bit-identical, not merely close.
		assert.Equal(t, *first, *again)
	}
}

func TestAggregate_FullPrecisionRetained(t *testing.T) {
	criterion := sharedtypes.CriterionID(uuid.New())

	// 2/3 of max must not be rounded.
	scores := []WeightedScore{
		{CriterionID: criterion, Value: 2, MaxScore: 3, Weight: 1},
	}

	got := Aggregate(scores)
	require.NotNil(t, got)
	assert.Equal(t, 2.0/3.0*100, *got)
}
