package sets

import (
	"math"
	"math/rand/v2"
	"slices"
)

// RowAssignment splits the row ordinals 1..N into two disjoint pools.
// Both pools are ascending.
type RowAssignment struct {
	Training   []int
	Validation []int
}

// PartitionRows assigns every row ordinal in 1..rows to exactly one pool:
// round(fraction*rows) rows drawn uniformly without replacement form the
// training pool and the rest the validation pool.
func PartitionRows(rng *rand.Rand, rows int, fraction float64) (*RowAssignment, error) {
	if fraction <= 0 || fraction >= 1 || math.IsNaN(fraction) {
		return nil, configErrorf("training_percent", "training fraction %v must be between 0 and 1, exclusive", fraction)
	}
	if rows < 1 {
		return nil, configErrorf("rows", "original file has no data rows")
	}

	trainingCount := int(math.Round(fraction * float64(rows)))
	if trainingCount == 0 || trainingCount == rows {
		return nil, configErrorf("training_percent",
			"training fraction %v of %d rows leaves one pool empty (%d training rows)", fraction, rows, trainingCount)
	}

	// Partial Fisher-Yates: the first trainingCount positions become the
	// training pool.
	ordinals := AllRows(rows)
	for i := 0; i < trainingCount; i++ {
		j := i + rng.IntN(rows-i)
		ordinals[i], ordinals[j] = ordinals[j], ordinals[i]
	}

	training := slices.Clone(ordinals[:trainingCount])
	validation := ordinals[trainingCount:]
	slices.Sort(training)
	slices.Sort(validation)

	return &RowAssignment{Training: training, Validation: validation}, nil
}

// AllRows returns 1..rows, the candidate range of every generic set.
func AllRows(rows int) []int {
	out := make([]int, rows)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
