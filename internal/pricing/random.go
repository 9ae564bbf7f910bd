package pricing

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// NormalSampler provides batches of normally distributed variates.
// It is the randomness capability injected into MonteCarloPrice and the
// smile calibrator; swapping in a seeded sampler makes both deterministic.
type NormalSampler interface {
	// Standard draws n independent standard-normal variates.
	Standard(n int) []float64

	// Normal draws n independent variates with the given mean and
	// standard deviation.
	Normal(mean, stddev float64, n int) []float64
}

// gonumSampler draws from gonum's normal distribution over a shared
// x/exp/rand source. Not safe for concurrent use; give each goroutine
// its own sampler.
type gonumSampler struct {
	src rand.Source
}

// NewSampler returns a sampler seeded with the given value. The same
// seed always reproduces the same draw sequence.
func NewSampler(seed uint64) NormalSampler {
	return &gonumSampler{src: rand.NewSource(seed)}
}

func (g *gonumSampler) Standard(n int) []float64 {
	return g.Normal(0, 1, n)
}

func (g *gonumSampler) Normal(mean, stddev float64, n int) []float64 {
	dist := distuv.Normal{Mu: mean, Sigma: stddev, Src: g.src}
	out := make([]float64, n)
	for i := range out {
		out[i] = dist.Rand()
	}
	return out
}
