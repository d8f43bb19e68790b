package sets

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleIndices(t *testing.T) {
	rng := NewRand(7)

	tests := []struct {
		name string
		n, k int
	}{
		{"empty draw", 10, 0},
		{"single", 10, 1},
		{"half", 100, 50},
		{"everything", 25, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sampleIndices(rng, tt.n, tt.k)
			assert.Len(t, got, tt.k)
			assert.True(t, slices.IsSorted(got))
			for i, v := range got {
				assert.GreaterOrEqual(t, v, 0)
				assert.Less(t, v, tt.n)
				if i > 0 {
					assert.NotEqual(t, got[i-1], v, "duplicate index")
				}
			}
		})
	}
}

func TestSampleRange_FullDrawIsEveryOrdinal(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4, 5}, sampleRange(NewRand(1), 5, 5))
}

func TestSampleFrom_KeepsPoolOrder(t *testing.T) {
	pool := []int{3, 8, 12, 40, 41, 90}
	got := sampleFrom(NewRand(3), pool, 4)

	assert.Len(t, got, 4)
	assert.True(t, slices.IsSorted(got))
	for _, v := range got {
		assert.Contains(t, pool, v)
	}
}

func TestNewRand_Deterministic(t *testing.T) {
	a, b := NewRand(99), NewRand(99)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}
