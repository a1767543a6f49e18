package models

// Resolution is one of the six fixed analysis timeframes.
type Resolution string

const (
	Res5m  Resolution = "5m"
	Res15m Resolution = "15m"
	Res1h  Resolution = "1h"
	Res4h  Resolution = "4h"
	Res1d  Resolution = "1d"
	Res1w  Resolution = "1w"
)

// Resolutions lists the analysis timeframes finest to coarsest. The order is
// load-bearing: aggregation weights and heatmap rows follow it.
func Resolutions() []Resolution {
	return []Resolution{Res5m, Res15m, Res1h, Res4h, Res1d, Res1w}
}

// Weight returns the resolution's fixed aggregation weight. The six weights
// sum to exactly 1.0.
func (r Resolution) Weight() float64 {
	switch r {
	case Res5m:
		return 0.03
	case Res15m:
		return 0.07
	case Res1h:
		return 0.15
	case Res4h:
		return 0.20
	case Res1d:
		return 0.25
	case Res1w:
		return 0.30
	}
	return 0
}

// Minutes returns the bar interval in minutes.
func (r Resolution) Minutes() int {
	switch r {
	case Res5m:
		return 5
	case Res15m:
		return 15
	case Res1h:
		return 60
	case Res4h:
		return 240
	case Res1d:
		return 1440
	case Res1w:
		return 10080
	}
	return 0
}

// Valid reports whether r is one of the six supported resolutions.
func (r Resolution) Valid() bool { return r.Weight() > 0 }

// TrendClass is the five-level trend classification of a score.
type TrendClass string

const (
	TrendStrongBullish TrendClass = "STRONG_BULLISH"
	TrendBullish       TrendClass = "BULLISH"
	TrendNeutral       TrendClass = "NEUTRAL"
	TrendBearish       TrendClass = "BEARISH"
	TrendStrongBearish TrendClass = "STRONG_BEARISH"
)

// TimeframeSignal is one resolution's analysis snapshot.
type TimeframeSignal struct {
	Resolution  Resolution
	Trend       TrendClass
	Score       float64 // -100..100
	Oscillator  float64 // 0..100 RSI reading, 50 when unavailable
	MAState     Direction
	PriceAction Direction
	VolumeState Direction
	Confidence  float64 // 0..100
}

// HeatmapRow is one resolution's row in the indicator matrix.
type HeatmapRow struct {
	Resolution  Resolution
	Oscillator  Direction
	MACross     Direction
	PriceAction Direction
	Volume      Direction
	Trend       TrendClass
}

// MultiHorizonReport combines the six per-resolution signals.
type MultiHorizonReport struct {
	Signals        []TimeframeSignal // ordered finest to coarsest
	OverallTrend   TrendClass
	OverallScore   float64
	Confidence     float64
	Alignment      float64 // 0..100, fraction of resolutions agreeing
	Heatmap        []HeatmapRow
	Support        []float64 // ascending, nearest first is not guaranteed
	Resistance     []float64
	Recommendation Recommendation
}
