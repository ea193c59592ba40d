package tagger

import (
	"math/rand/v2"
	"sync"
)

// Sampler picks a random subset of table indices for the object heuristic.
type Sampler interface {
	// Sample returns k distinct indices in [0, n) where lo <= k <= hi.
	Sample(n, lo, hi int) []int
}

// SamplerFunc adapts a function to the Sampler interface
type SamplerFunc func(n, lo, hi int) []int

// Sample calls f(n, lo, hi)
func (f SamplerFunc) Sample(n, lo, hi int) []int {
	return f(n, lo, hi)
}

// RandomSampler draws subsets uniformly. The zero value uses the
// process-wide generator.
type RandomSampler struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomSampler returns a sampler backed by the process-wide generator
func NewRandomSampler() *RandomSampler {
	return &RandomSampler{}
}

// NewSeededSampler returns a sampler with a reproducible sequence
func NewSeededSampler(seed uint64) *RandomSampler {
	return &RandomSampler{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Sample draws k uniformly from [lo, hi] and then k indices without replacement
func (s *RandomSampler) Sample(n, lo, hi int) []int {
	lo, hi = clampRange(lo, hi, n)
	if hi <= 0 {
		return nil
	}

	var perm []int
	var k int
	if s.rnd == nil {
		k = lo + rand.IntN(hi-lo+1)
		perm = rand.Perm(n)
	} else {
		s.mu.Lock()
		k = lo + s.rnd.IntN(hi-lo+1)
		perm = s.rnd.Perm(n)
		s.mu.Unlock()
	}
	return perm[:k]
}

func clampRange(lo, hi, n int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	if lo > hi {
		lo = hi
	}
	return lo, hi
}
