package models

import "time"

// TimeHorizon is the holding-period suggestion derived from which
// resolutions agree.
type TimeHorizon string

const (
	HorizonScalp      TimeHorizon = "SCALP"
	HorizonIntraday   TimeHorizon = "INTRADAY"
	HorizonSwing      TimeHorizon = "SWING"
	HorizonPositional TimeHorizon = "POSITIONAL"
)

// PositionSize is the suggested sizing tier.
type PositionSize string

const (
	SizeSmall  PositionSize = "SMALL"
	SizeMedium PositionSize = "MEDIUM"
	SizeLarge  PositionSize = "LARGE"
)

// ComponentScores holds the six normalized inputs of the confidence blend,
// each in [0,100].
type ComponentScores struct {
	Pattern      float64
	Structure    float64
	Horizon      float64
	Manipulation float64
	Volume       float64
	Momentum     float64
}

// TradeSetup is the derived entry/target/stop triple.
type TradeSetup struct {
	Entry      float64
	Target     float64
	StopLoss   float64
	RiskReward float64 // |target-entry| / |entry-stop|, 0 when undefined
}

// ConfidenceResult is the engine's final, self-contained output. AsOf is the
// caller-supplied as-of instant (last bar close); the engine never reads the
// wall clock, so identical input yields an identical result.
type ConfidenceResult struct {
	Symbol             string
	AsOf               time.Time
	OverallConfidence  float64 // 0..100
	RiskScore          float64 // 0..100
	ProbabilityBullish float64 // ProbabilityBullish + ProbabilityBearish = 100
	ProbabilityBearish float64
	SignalStrength     Strength
	Recommendation     Recommendation
	TimeHorizon        TimeHorizon
	Components         ComponentScores
	KeyFactors         []string
	Warnings           []string
	Opportunities      []string
	TradeSetup         TradeSetup
	PositionSize       PositionSize
}
