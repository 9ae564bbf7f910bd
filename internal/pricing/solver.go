package pricing

import (
	"fmt"
	"math"
)

// Newton-Raphson solver defaults. The tolerance is an absolute price
// difference, so it must be chosen on the currency scale of the market
// price being inverted.
const (
	DefaultTolerance     = 1e-5
	DefaultMaxIterations = 100

	initialGuess = 0.20
	vegaFloor    = 1e-8

	// Guardrails: a Newton step from a flat region can throw sigma
	// negative or absurdly high; each iterate is clamped back into a
	// sane band instead of letting the iteration wander off.
	sigmaMin = 1e-4
	sigmaMax = 5.0
)

// SolverConfig tunes the implied-volatility iteration. The zero value
// selects the package defaults.
type SolverConfig struct {
	Tolerance     float64 `json:"tolerance,omitempty"`      // absolute price tolerance, default 1e-5
	MaxIterations int     `json:"max_iterations,omitempty"` // default 100
}

func (cfg SolverConfig) withDefaults() SolverConfig {
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = DefaultTolerance
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	return cfg
}

// ImpliedVol recovers the volatility that makes the Black-Scholes price
// match marketPrice, using Newton-Raphson with the default tolerance and
// iteration budget.
func ImpliedVol(S, K, T, r, marketPrice float64, typ OptionType) (float64, error) {
	return ImpliedVolWithConfig(S, K, T, r, marketPrice, typ, SolverConfig{})
}

// ImpliedVolWithConfig runs Newton-Raphson on f(σ) = Price(σ) − marketPrice
// starting from σ = 0.20, stepping by diff/vega each iteration.
//
// Failure modes, both wrapped for errors.Is:
//   - ErrZeroVega when vega falls below the numeric floor, leaving the
//     step undefined. Checked before the convergence test, so a flat
//     price surface fails loudly rather than returning a stale iterate.
//   - ErrNoConvergence when the iteration budget runs out.
func ImpliedVolWithConfig(S, K, T, r, marketPrice float64, typ OptionType, cfg SolverConfig) (float64, error) {
	if err := validate(S, K, T, typ); err != nil {
		return 0, err
	}
	cfg = cfg.withDefaults()

	sigma := initialGuess

	for i := 0; i < cfg.MaxIterations; i++ {
		price, err := Price(S, K, T, r, sigma, typ)
		if err != nil {
			return 0, err
		}

		vega := Vega(S, K, T, r, sigma)
		if vega < vegaFloor {
			return 0, fmt.Errorf("%w: vega=%g at sigma=%g (iteration %d)", ErrZeroVega, vega, sigma, i)
		}

		diff := marketPrice - price
		if math.Abs(diff) < cfg.Tolerance {
			return sigma, nil
		}

		sigma += diff / vega

		if sigma < sigmaMin {
			sigma = sigmaMin
		}
		if sigma > sigmaMax {
			sigma = sigmaMax
		}
	}

	return 0, fmt.Errorf("%w after %d iterations (tol=%g)", ErrNoConvergence, cfg.MaxIterations, cfg.Tolerance)
}
