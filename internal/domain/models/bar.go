package models

import (
	"fmt"
	"math"
	"time"
)

// Bar represents one OHLCV observation for a fixed interval.
// Immutable once constructed; the analysis core never mutates bars.
type Bar struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// Bullish reports whether the bar closed above its open.
func (b Bar) Bullish() bool { return b.Close > b.Open }

// Bearish reports whether the bar closed below its open.
func (b Bar) Bearish() bool { return b.Close < b.Open }

// Body returns the absolute open-close distance.
func (b Bar) Body() float64 { return math.Abs(b.Close - b.Open) }

// Range returns the high-low distance.
func (b Bar) Range() float64 { return b.High - b.Low }

// UpperWick returns the distance from the body top to the high.
func (b Bar) UpperWick() float64 { return b.High - math.Max(b.Open, b.Close) }

// LowerWick returns the distance from the body bottom to the low.
func (b Bar) LowerWick() float64 { return math.Min(b.Open, b.Close) - b.Low }

// Validate checks the OHLCV ordering invariant:
// high >= max(open,close) >= min(open,close) >= low >= 0, volume >= 0,
// all fields finite.
func (b Bar) Validate() error {
	for _, v := range []float64{b.Open, b.High, b.Low, b.Close, b.Volume} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite field", ErrInvalidBar)
		}
	}
	if b.Low < 0 || b.Volume < 0 {
		return fmt.Errorf("%w: negative low or volume", ErrInvalidBar)
	}
	if b.High < math.Max(b.Open, b.Close) || b.Low > math.Min(b.Open, b.Close) {
		return fmt.Errorf("%w: high/low outside open/close range", ErrInvalidBar)
	}
	return nil
}

// ValidateBars rejects a whole series before any detector runs: every bar must
// satisfy the OHLCV invariant and timestamps must strictly increase.
func ValidateBars(bars []Bar) error {
	for i, b := range bars {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("bar %d: %w", i, err)
		}
		if i > 0 && !bars[i-1].Timestamp.Before(b.Timestamp) {
			return fmt.Errorf("%w: bar %d timestamp not increasing", ErrInvalidBar, i)
		}
	}
	return nil
}
