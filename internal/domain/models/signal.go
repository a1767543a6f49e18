package models

// Direction is the directional read of a signal.
type Direction string

const (
	Bullish Direction = "BULLISH"
	Bearish Direction = "BEARISH"
	Neutral Direction = "NEUTRAL"
)

// Strength grades how pronounced a detected signal is.
type Strength string

const (
	Strong   Strength = "STRONG"
	Moderate Strength = "MODERATE"
	Weak     Strength = "WEAK"
)

// Recommendation is the five-level action scale shared by the structure
// detector, the multi-horizon aggregator and the confidence engine.
type Recommendation string

const (
	StrongBuy  Recommendation = "STRONG_BUY"
	Buy        Recommendation = "BUY"
	Hold       Recommendation = "HOLD"
	Sell       Recommendation = "SELL"
	StrongSell Recommendation = "STRONG_SELL"
)

// Signal is one detected candlestick or chart pattern. Transient; recomputed
// on every call.
type Signal struct {
	Label       string
	Direction   Direction
	Strength    Strength
	Description string
}

// PressureClass buckets the buy/(buy+sell) pressure ratio.
type PressureClass string

const (
	PressureStrongBuyers  PressureClass = "STRONG_BUYERS"
	PressureBuyers        PressureClass = "BUYERS"
	PressureBalanced      PressureClass = "BALANCED"
	PressureSellers       PressureClass = "SELLERS"
	PressureStrongSellers PressureClass = "STRONG_SELLERS"
)

// PressureReport summarizes buyer/seller pressure over the recent window.
type PressureReport struct {
	BuyPressure  float64
	SellPressure float64
	Ratio        float64 // buy / (buy + sell), 0.5 when both are zero
	Class        PressureClass
}

// PatternReport aggregates the single-resolution pattern detectors.
type PatternReport struct {
	Candlestick []Signal
	Chart       []Signal
	Pressure    PressureReport
}
