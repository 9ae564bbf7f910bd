package pricing

import (
	"fmt"
	"math"
)

// MonteCarloPrice estimates the price of a European option by simulating
// n terminal prices of the underlying under geometric Brownian motion.
//
// Each scenario applies one standard-normal shock Z to the exact GBM
// solution at maturity,
//
//	S_T = S·exp((r − σ²/2)·T + σ·Z·√T)
//
// so there is no discretization error; the only error is statistical and
// shrinks as 1/√n. The result is the discounted mean payoff.
//
// Shocks come from src, which the caller injects (see NewSampler); a
// seeded sampler makes the estimate reproducible.
func MonteCarloPrice(S, K, T, r, sigma float64, n int, typ OptionType, src NormalSampler) (float64, error) {
	if err := validate(S, K, T, typ); err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: scenario count must be positive, got %d", ErrInvalidInput, n)
	}

	drift := (r - 0.5*sigma*sigma) * T
	diffusion := sigma * math.Sqrt(T)

	sum := 0.0
	for _, z := range src.Standard(n) {
		sT := S * math.Exp(drift+diffusion*z)
		if typ == Call {
			sum += math.Max(0, sT-K)
		} else {
			sum += math.Max(0, K-sT)
		}
	}

	return math.Exp(-r*T) * sum / float64(n), nil
}
