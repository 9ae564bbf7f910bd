// Package smile reconstructs an implied-volatility curve across a strike
// grid. Quotes come from a QuoteSource; the default synthetic source
// perturbs a base volatility and averages Black-Scholes call prices, so
// the calibrator can run without any market connectivity.
package smile

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/contactkeval/option-smile/internal/logger"
	"github.com/contactkeval/option-smile/internal/pricing"
)

// Point is one calibrated entry of a volatility smile. Vol is only
// meaningful when Err is nil; a failed solve keeps its strike slot with
// the error that caused it, so the curve stays positionally aligned
// with the strike grid.
type Point struct {
	Strike float64
	Vol    float64
	Err    error
}

// OK reports whether the solver produced a volatility for this strike.
func (p Point) OK() bool { return p.Err == nil }

// Curve is a volatility smile: one Point per strike, strikes ascending.
// Immutable after Calibrate returns.
type Curve []Point

// Strikes returns the strike grid in calibration order.
func (c Curve) Strikes() []float64 {
	out := make([]float64, len(c))
	for i, p := range c {
		out[i] = p.Strike
	}
	return out
}

// Failed counts the strikes whose solve did not converge.
func (c Curve) Failed() int {
	n := 0
	for _, p := range c {
		if !p.OK() {
			n++
		}
	}
	return n
}

// QuoteSource supplies an observed market price for a call at the given
// strike. The calibrator inverts whatever it returns; plugging in a
// live source instead of the synthetic one changes nothing downstream.
type QuoteSource interface {
	Quote(strike float64) (float64, error)
}

// syntheticSource fabricates quotes by drawing volatilities around a
// base level and averaging the resulting Black-Scholes call prices.
// Draws are not filtered: a negative or zero sample prices at the
// degenerate intrinsic limit, which is exactly the noise the calibrator
// is meant to absorb.
type syntheticSource struct {
	S, T, r float64
	baseVol float64
	stddev  float64
	n       int
	src     pricing.NormalSampler
}

// NewSyntheticSource returns a QuoteSource that samples vols from
// N(baseVol, stddev) and averages the call prices per strike, seeded
// for reproducibility.
func NewSyntheticSource(S, T, r, baseVol, stddev float64, quotes int, seed uint64) QuoteSource {
	return &syntheticSource{
		S: S, T: T, r: r,
		baseVol: baseVol,
		stddev:  stddev,
		n:       quotes,
		src:     pricing.NewSampler(seed),
	}
}

func (s *syntheticSource) Quote(strike float64) (float64, error) {
	vols := s.src.Normal(s.baseVol, s.stddev, s.n)

	prices := make([]float64, 0, len(vols))
	for _, sigma := range vols {
		p, err := pricing.Price(s.S, strike, s.T, s.r, sigma, pricing.Call)
		if err != nil {
			return 0, err
		}
		prices = append(prices, p)
	}
	return stat.Mean(prices, nil), nil
}

// Config tunes a calibration run. The zero value selects the defaults;
// Source overrides the synthetic quote source entirely.
type Config struct {
	Strikes         int     `json:"strikes,omitempty"`           // grid size, default 50
	QuotesPerStrike int     `json:"quotes_per_strike,omitempty"` // synthetic quotes averaged per strike, default 100
	VolStdDev       float64 `json:"vol_stddev,omitempty"`        // perturbation width, default 0.05
	Seed            uint64  `json:"seed,omitempty"`              // synthetic source seed

	Solver pricing.SolverConfig `json:"solver"`

	Source QuoteSource `json:"-"`
}

func (cfg Config) withDefaults() Config {
	if cfg.Strikes <= 0 {
		cfg.Strikes = 50
	}
	if cfg.QuotesPerStrike <= 0 {
		cfg.QuotesPerStrike = 100
	}
	if cfg.VolStdDev <= 0 {
		cfg.VolStdDev = 0.05
	}
	return cfg
}

// Calibrate builds a volatility smile for strikes evenly spaced over
// [0.8·S, 1.2·S] inclusive, ascending. Each strike's quote is inverted
// through the Newton-Raphson solver; a strike whose solve fails keeps a
// sentinel Point and the calibration moves on — one bad strike never
// aborts the curve.
func Calibrate(S, T, r, baseVol float64, cfg Config) (Curve, error) {
	if S <= 0 || T <= 0 {
		return nil, fmt.Errorf("%w: spot and maturity must be positive (S=%v T=%v)", pricing.ErrInvalidInput, S, T)
	}
	cfg = cfg.withDefaults()

	source := cfg.Source
	if source == nil {
		source = NewSyntheticSource(S, T, r, baseVol, cfg.VolStdDev, cfg.QuotesPerStrike, cfg.Seed)
	}

	low, high := 0.8*S, 1.2*S
	step := 0.0
	if cfg.Strikes > 1 {
		step = (high - low) / float64(cfg.Strikes-1)
	}

	curve := make(Curve, 0, cfg.Strikes)
	for i := 0; i < cfg.Strikes; i++ {
		K := low + float64(i)*step

		quote, err := source.Quote(K)
		if err != nil {
			logger.Debugf("smile: quote failed at K=%.4f: %v", K, err)
			curve = append(curve, Point{Strike: K, Err: err})
			continue
		}

		vol, err := pricing.ImpliedVolWithConfig(S, K, T, r, quote, pricing.Call, cfg.Solver)
		if err != nil {
			logger.Debugf("smile: solve failed at K=%.4f: %v", K, err)
			curve = append(curve, Point{Strike: K, Err: err})
			continue
		}

		curve = append(curve, Point{Strike: K, Vol: vol})
	}

	logger.Infof("smile: calibrated %d strikes (%d failed)", len(curve), curve.Failed())
	return curve, nil
}
