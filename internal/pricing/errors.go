package pricing

import "errors"

// Failure modes of the pricing and calibration routines.
//
// Callers distinguish them with errors.Is; every error returned from this
// package wraps exactly one of these sentinels.
var (
	// ErrInvalidInput reports an unknown option type or a non-positive
	// spot, strike, maturity, or scenario count.
	ErrInvalidInput = errors.New("invalid input")

	// ErrZeroVega reports that the Newton-Raphson step is undefined because
	// the price is locally insensitive to volatility. Retrying the same
	// inputs cannot succeed.
	ErrZeroVega = errors.New("zero vega")

	// ErrNoConvergence reports that the solver exhausted its iteration
	// budget without meeting the price tolerance.
	ErrNoConvergence = errors.New("implied vol did not converge")
)
