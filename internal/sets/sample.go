package sets

import (
	"math/rand/v2"
	"slices"
)

// NewRand returns the single pseudo-random source used for a plan. Equal
// seeds give identical plans.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// sampleIndices draws k distinct indices from [0,n) uniformly, using Floyd's
// algorithm so the cost depends on k rather than n. The result is ascending.
func sampleIndices(rng *rand.Rand, n, k int) []int {
	picked := make(map[int]struct{}, k)
	out := make([]int, 0, k)
	for j := n - k; j < n; j++ {
		t := rng.IntN(j + 1)
		if _, dup := picked[t]; dup {
			t = j
		}
		picked[t] = struct{}{}
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// sampleFrom draws k distinct elements of pool. Because pool is ascending
// and the drawn indices are ascending, so is the result.
func sampleFrom(rng *rand.Rand, pool []int, k int) []int {
	idx := sampleIndices(rng, len(pool), k)
	out := make([]int, len(idx))
	for i, j := range idx {
		out[i] = pool[j]
	}
	return out
}

// sampleRange draws k distinct integers from 1..n, ascending.
func sampleRange(rng *rand.Rand, n, k int) []int {
	idx := sampleIndices(rng, n, k)
	for i := range idx {
		idx[i]++
	}
	return idx
}
