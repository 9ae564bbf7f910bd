// Package pricing implements European option valuation under the
// Black-Scholes-Merton model: the closed-form price, a Monte Carlo
// estimator over geometric Brownian motion, and a Newton-Raphson
// implied-volatility solver built on the closed form.
//
// All routines are pure: parameters in, price (or error) out. The only
// stateful collaborator is the NormalSampler that the Monte Carlo
// estimator draws its shocks from, and that is injected by the caller.
package pricing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// OptionType selects the payoff of a European option.
// Only Call and Put are accepted; anything else is rejected with
// ErrInvalidInput by every function that takes an OptionType.
type OptionType string

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)

func (typ OptionType) valid() bool {
	return typ == Call || typ == Put
}

// stdNormal is the statistics provider for Φ and φ.
var stdNormal = distuv.UnitNormal

// validate checks the shared preconditions of every pricing entry point.
func validate(S, K, T float64, typ OptionType) error {
	if S <= 0 || K <= 0 || T <= 0 {
		return fmt.Errorf("%w: spot, strike and maturity must be positive (S=%v K=%v T=%v)", ErrInvalidInput, S, K, T)
	}
	if !typ.valid() {
		return fmt.Errorf("%w: option type %q, want %q or %q", ErrInvalidInput, typ, Call, Put)
	}
	return nil
}

// d1 is the standardized log-moneyness term of the Black-Scholes formula.
// Callers guarantee sigma > 0 and T > 0.
func d1(S, K, T, r, sigma float64) float64 {
	return (math.Log(S/K) + (r+0.5*sigma*sigma)*T) / (sigma * math.Sqrt(T))
}

// Price calculates the Black-Scholes price of a European option.
//
// Parameters:
//   - S: spot price of the underlying asset
//   - K: strike price of the option
//   - T: time to expiry in years
//   - r: risk-free interest rate (annual)
//   - sigma: volatility of the underlying asset (annual, as a decimal)
//   - typ: Call or Put
//
// S, K and T must be strictly positive and typ must be Call or Put;
// otherwise ErrInvalidInput is returned. sigma may be zero or negative:
// in that degenerate limit the terminal price is the forward and the
// option is worth its discounted forward intrinsic value.
func Price(S, K, T, r, sigma float64, typ OptionType) (float64, error) {
	if err := validate(S, K, T, typ); err != nil {
		return 0, err
	}

	discK := K * math.Exp(-r*T)

	if sigma <= 0 {
		// zero-volatility limit: discounted forward payoff
		if typ == Call {
			return math.Max(0, S-discK), nil
		}
		return math.Max(0, discK-S), nil
	}

	dOne := d1(S, K, T, r, sigma)
	dTwo := dOne - sigma*math.Sqrt(T)

	if typ == Call {
		return S*stdNormal.CDF(dOne) - discK*stdNormal.CDF(dTwo), nil
	}
	return discK*stdNormal.CDF(-dTwo) - S*stdNormal.CDF(-dOne), nil
}

// Vega calculates the sensitivity of the Black-Scholes price to
// volatility, S·φ(d1)·√T. It is the same for calls and puts and is the
// Newton-Raphson step denominator inside ImpliedVol.
//
// Returns 0 if T or sigma is non-positive.
func Vega(S, K, T, r, sigma float64) float64 {
	if T <= 0 || sigma <= 0 {
		return 0
	}
	return S * stdNormal.Prob(d1(S, K, T, r, sigma)) * math.Sqrt(T)
}
