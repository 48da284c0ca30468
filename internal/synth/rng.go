package synth

import (
	"math/rand"
)

// rng wraps one explicit seeded generator per synthesis call. All stochastic
// layers draw whole vectors from it in a pinned order; reordering the draws
// changes output under the same seed even though distributions are unchanged.
type rng struct {
	r *rand.Rand
}

func newRNG(seed int64) *rng {
	return &rng{r: rand.New(rand.NewSource(seed))}
}

func (g *rng) normalVec(n int, sigma float64) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = g.r.NormFloat64() * sigma
	}
	return v
}

func (g *rng) uniformVec(n int, lo, hi float64) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = lo + g.r.Float64()*(hi-lo)
	}
	return v
}

func (g *rng) uniform(lo, hi float64) float64 {
	return lo + g.r.Float64()*(hi-lo)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
