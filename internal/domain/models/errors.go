package models

import "errors"

var (
	// ErrInvalidBar indicates a bar violates the OHLCV ordering invariant.
	// The whole series is rejected before any detector runs.
	ErrInvalidBar = errors.New("invalid bar")

	// ErrInsufficientData indicates a window shorter than an operation's
	// minimum. Detectors never surface it; they degrade to their neutral
	// defaults. Only explicit series operations (resampling) return it.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrUpstreamUnavailable indicates a resolution's bars could not be
	// supplied. The aggregator treats it as a local neutral default.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
