package utils

import (
	"math/rand"
	"time"
)

// RandSource is a seedable random number generator. It is not safe for
// concurrent use; callers that run trials in parallel derive one stream
// per worker with NewStream.
type RandSource struct {
	seed int64
	rng  *rand.Rand
}

// NewRandSource creates a new random source with the given seed.
// A zero seed selects a time-based seed.
func NewRandSource(seed int64) *RandSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandSource{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed this source was created with.
func (r *RandSource) Seed() int64 {
	return r.seed
}

// NewStream derives an independent source from this source's seed and a
// stream index. Equal (seed, index) pairs always yield the same stream.
func (r *RandSource) NewStream(index int) *RandSource {
	const stride = 0x9E3779B9
	return NewRandSource(r.seed + int64(index+1)*stride)
}

// Float64 returns a random float64 in [0.0, 1.0)
func (r *RandSource) Float64() float64 {
	return r.rng.Float64()
}

// Intn returns a random int in [0, n)
func (r *RandSource) Intn(n int) int {
	return r.rng.Intn(n)
}

// Bool returns true with probability p
func (r *RandSource) Bool(p float64) bool {
	return r.rng.Float64() < p
}

// UniformFloat64 returns a uniformly distributed random number in [min, max)
func (r *RandSource) UniformFloat64(min, max float64) float64 {
	return min + r.rng.Float64()*(max-min)
}

// Sample returns k distinct indices drawn uniformly from [0, n).
// Panics if k > n, matching rand.Perm semantics for invalid input.
func (r *RandSource) Sample(n, k int) []int {
	if k > n {
		panic("utils: sample size exceeds population")
	}
	idx := r.rng.Perm(n)
	return idx[:k]
}
