package features

import "errors"

// Sentinel errors for the failure modes a feature declaration can hit.
// All of them abort the whole extraction; no calculator substitutes a
// default or NaN for a detected misconfiguration. Callers match with
// errors.Is; the wrapped message carries the offending declaration's
// index, type and band.
var (
	// ErrUnknownFeatureType means the declaration's type tag matched no
	// registered calculator.
	ErrUnknownFeatureType = errors.New("unknown feature type")

	// ErrInvalidParameter means a declared parameter is out of range or
	// malformed (band out of range, sigma <= 0, month outside [0,11],
	// non-positive window size).
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrEmptyInterval means a consideration interval resolved to zero
	// length against the cube's time axis.
	ErrEmptyInterval = errors.New("empty consideration interval")

	// ErrInsufficientHistory means a lag-based feature found no time
	// step in its interval with enough history behind it.
	ErrInsufficientHistory = errors.New("insufficient history for lagged difference")
)
