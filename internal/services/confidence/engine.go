package confidence

import (
	"fmt"
	"time"

	"TradeLens/internal/domain/models"
	"TradeLens/internal/domain/service"
	"TradeLens/internal/services/series"
)

// Component weights of the final blend; they sum to exactly 1.0.
const (
	weightPattern      = 0.15
	weightStructure    = 0.25
	weightHorizon      = 0.25
	weightManipulation = 0.20
	weightVolume       = 0.10
	weightMomentum     = 0.05

	riskCollapseAbove = 75
	volatilityWindow  = 20
)

// Engine fuses the component reports into one ConfidenceResult. Pure; the
// as-of instant is taken from the last bar, never from the wall clock.
type Engine struct{}

var _ service.ConfidenceEngine = (*Engine)(nil)

func NewEngine() *Engine { return &Engine{} }

func (e *Engine) Evaluate(symbol string, bars []models.Bar,
	patterns models.PatternReport,
	manipulation models.ManipulationReport,
	structure models.StructureReport,
	horizon models.MultiHorizonReport) models.ConfidenceResult {

	var asOf time.Time
	var price float64
	if len(bars) > 0 {
		asOf = bars[len(bars)-1].Timestamp
		price = bars[len(bars)-1].Close
	}

	comp := models.ComponentScores{
		Pattern:      patternScore(patterns),
		Structure:    structureScore(structure),
		Horizon:      horizonScore(horizon),
		Manipulation: manipulation.Strength,
		Volume:       volumeScore(bars),
		Momentum:     momentumScore(bars),
	}

	overall := comp.Pattern*weightPattern +
		comp.Structure*weightStructure +
		comp.Horizon*weightHorizon +
		comp.Manipulation*weightManipulation +
		comp.Volume*weightVolume +
		comp.Momentum*weightMomentum

	probBull := series.Clamp(50+(overall-50), 0, 100)
	volatility := series.Volatility(bars, volatilityWindow)
	risk := series.Clamp(100-0.7*overall+0.3*volatility, 0, 100)

	var verdict *models.ManipulationVerdict = manipulation.Verdict
	rec := recommendFrom(overall, probBull, risk, verdict)
	strength := signalStrength(overall)

	result := models.ConfidenceResult{
		Symbol:             symbol,
		AsOf:               asOf,
		OverallConfidence:  overall,
		RiskScore:          risk,
		ProbabilityBullish: probBull,
		ProbabilityBearish: 100 - probBull,
		SignalStrength:     strength,
		Recommendation:     rec,
		TimeHorizon:        timeHorizon(horizon),
		Components:         comp,
		TradeSetup:         buildSetup(price, probBull, volatility, structure, horizon),
		PositionSize:       positionSize(overall, risk, strength),
	}
	annotate(&result, patterns, manipulation, structure, horizon)
	return result
}

// recommendFrom maps the blended scores onto the five-level scale.
// Manipulation overrides win outright and survive the risk collapse; every
// numeric recommendation turns into HOLD when risk exceeds 75.
func recommendFrom(overall, probBull, risk float64, verdict *models.ManipulationVerdict) models.Recommendation {
	if verdict != nil {
		switch verdict.Type {
		case models.BullTrap, models.PumpAndDump:
			return models.StrongSell
		case models.BearTrap:
			return models.StrongBuy
		}
	}
	if risk > riskCollapseAbove {
		return models.Hold
	}
	switch {
	case probBull >= 80 && overall >= 65:
		return models.StrongBuy
	case probBull >= 65:
		return models.Buy
	case probBull <= 30 && overall <= 40:
		return models.StrongSell
	case probBull <= 40:
		return models.Sell
	}
	return models.Hold
}

func signalStrength(overall float64) models.Strength {
	switch {
	case overall >= 80 || overall <= 20:
		return models.Strong
	case overall >= 65 || overall <= 35:
		return models.Moderate
	}
	return models.Weak
}

// timeHorizon prefers the two heaviest resolutions: their agreement points
// to a positional or swing trade, agreement of the two lightest to an
// intraday one.
func timeHorizon(horizon models.MultiHorizonReport) models.TimeHorizon {
	byRes := make(map[models.Resolution]models.TimeframeSignal, len(horizon.Signals))
	for _, sig := range horizon.Signals {
		byRes[sig.Resolution] = sig
	}
	daily, weekly := byRes[models.Res1d], byRes[models.Res1w]
	if agree(daily.Trend, weekly.Trend) {
		if daily.Trend == models.TrendStrongBullish || daily.Trend == models.TrendStrongBearish {
			return models.HorizonPositional
		}
		return models.HorizonSwing
	}
	fast, faster := byRes[models.Res15m], byRes[models.Res5m]
	if agree(fast.Trend, faster.Trend) {
		if fast.Trend == models.TrendStrongBullish || fast.Trend == models.TrendStrongBearish {
			return models.HorizonScalp
		}
		return models.HorizonIntraday
	}
	return models.HorizonSwing
}

func agree(a, b models.TrendClass) bool {
	dir := func(t models.TrendClass) models.Direction {
		switch t {
		case models.TrendStrongBullish, models.TrendBullish:
			return models.Bullish
		case models.TrendStrongBearish, models.TrendBearish:
			return models.Bearish
		}
		return models.Neutral
	}
	return dir(a) != models.Neutral && dir(a) == dir(b)
}

func positionSize(overall, risk float64, strength models.Strength) models.PositionSize {
	switch {
	case overall > 80 && risk < 40 && strength == models.Strong:
		return models.SizeLarge
	case overall > 65 && risk < 60:
		return models.SizeMedium
	}
	return models.SizeSmall
}

// annotate fills the key factors, warnings and opportunities from the
// component reports.
func annotate(r *models.ConfidenceResult,
	patterns models.PatternReport,
	manipulation models.ManipulationReport,
	structure models.StructureReport,
	horizon models.MultiHorizonReport) {

	for _, s := range patterns.Candlestick {
		if s.Strength == models.Strong {
			r.KeyFactors = append(r.KeyFactors, fmt.Sprintf("%s pattern (%s)", s.Label, s.Direction))
		}
	}
	if structure.Structure != models.StructureRanging {
		r.KeyFactors = append(r.KeyFactors, fmt.Sprintf("market structure %s", structure.Structure))
	}
	if structure.BOS != nil {
		r.KeyFactors = append(r.KeyFactors, fmt.Sprintf("break of structure (%s)", structure.BOS.Direction))
	}
	if horizon.Alignment >= 66 {
		r.KeyFactors = append(r.KeyFactors, fmt.Sprintf("%.0f%% of timeframes aligned %s", horizon.Alignment, horizon.OverallTrend))
	}

	if v := manipulation.Verdict; v != nil {
		switch v.Type {
		case models.BullTrap, models.PumpAndDump, models.Distribution, models.FakeBreakout:
			r.Warnings = append(r.Warnings, fmt.Sprintf("%s detected: %s", v.Type, v.Description))
		case models.BearTrap, models.Accumulation, models.ShortSqueeze:
			r.Opportunities = append(r.Opportunities, fmt.Sprintf("%s detected: %s", v.Type, v.Description))
		}
	}
	if r.RiskScore > riskCollapseAbove {
		r.Warnings = append(r.Warnings, fmt.Sprintf("risk score %.0f, standing aside", r.RiskScore))
	}
	if structure.CHOCH != nil {
		r.Warnings = append(r.Warnings, fmt.Sprintf("change of character toward %s", structure.CHOCH.To))
	}
	for _, sweep := range structure.Sweeps {
		if sweep.Strength == models.Strong {
			r.Opportunities = append(r.Opportunities, fmt.Sprintf("liquidity sweep at %.2f (%s)", sweep.Level, sweep.Direction))
			break
		}
	}
}
