package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSameSeedProducesSameStream(t *testing.T) {
	var seed Seed
	for i := range seed {
		seed[i] = byte(i)
	}
	a := New(seed)
	b := New(seed)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	var seedA, seedB Seed
	seedB[0] = 1
	a := New(seedA)
	b := New(seedB)
	assert.NotEqual(t, a.Uint64(), b.Uint64())
}

func TestIntNIsWithinBounds(t *testing.T) {
	var seed Seed
	seed[0] = 7
	r := New(seed)
	for i := 0; i < 1000; i++ {
		v := r.IntN(17)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 17)
	}
}

func TestShufflePermutes(t *testing.T) {
	var seed Seed
	r := New(seed)
	xs := []int{0, 1, 2, 3, 4, 5, 6, 7}
	r.Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })
	seen := map[int]bool{}
	for _, x := range xs {
		seen[x] = true
	}
	assert.Len(t, seen, 8)
}

func TestCloneReproducesFutureStream(t *testing.T) {
	var seed Seed
	seed[3] = 42
	r := New(seed)
	// Consume an irregular number of values first so pos lands mid-buffer,
	// and force at least one refill, before cloning.
	for i := 0; i < 37; i++ {
		r.Uint64()
	}
	clone := r.Clone()
	for i := 0; i < 200; i++ {
		assert.Equal(t, r.Uint64(), clone.Uint64())
	}
}

func TestCloneDoesNotDisturbOriginal(t *testing.T) {
	var seed Seed
	seed[0] = 9
	r := New(seed)
	r.Uint64()
	clone := r.Clone()
	clone.Uint64()
	clone.Uint64()

	independent := New(seed)
	independent.Uint64()
	assert.Equal(t, independent.Uint64(), r.Uint64())
}

func TestFloat64IsWithinUnitInterval(t *testing.T) {
	var seed Seed
	seed[0] = 11
	r := New(seed)
	for i := 0; i < 1000; i++ {
		v := r.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestRandomSeedIsNotAllZero(t *testing.T) {
	s, err := RandomSeed()
	assert.NoError(t, err)
	assert.NotEqual(t, Seed{}, s)
}
