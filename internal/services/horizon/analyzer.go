package horizon

import (
	"math"

	talib "github.com/markcheno/go-talib"

	"TradeLens/internal/domain/models"
	"TradeLens/internal/services/series"
)

const (
	minBars    = 20
	rsiPeriod  = 14
	emaFast    = 9
	emaSlow    = 21
	paWindow   = 10
	volFast    = 5
	volFactor  = 1.2
	oscWeight  = 20
	maWeight   = 25
	paWeight   = 20
	volWeight  = 15
	trendHi    = 60
	trendLo    = 20
	bounceAddy = 10
)

// analyzeResolution builds one TimeframeSignal from one resolution's bars.
// Fewer than 20 bars yields the neutral zero-confidence default.
func analyzeResolution(res models.Resolution, bars []models.Bar) models.TimeframeSignal {
	sig := models.TimeframeSignal{
		Resolution:  res,
		Trend:       models.TrendNeutral,
		Oscillator:  50,
		MAState:     models.Neutral,
		PriceAction: models.Neutral,
		VolumeState: models.Neutral,
	}
	if len(bars) < minBars {
		return sig
	}
	closes := series.Closes(bars)
	score := 0.0

	// Oscillator: extremes read as reversal pressure, the midline band as
	// momentum, with a bounce bonus when the oversold bar already turned.
	if len(closes) > rsiPeriod {
		rsi := talib.Rsi(closes, rsiPeriod)
		sig.Oscillator = rsi[len(rsi)-1]
		osc := 0.0
		switch {
		case sig.Oscillator >= 70:
			osc = -oscWeight
		case sig.Oscillator <= 30:
			osc = oscWeight
			if bars[len(bars)-1].Bullish() {
				osc += bounceAddy
			}
		case sig.Oscillator >= 60:
			osc = 10
		case sig.Oscillator >= 52:
			osc = 5
		case sig.Oscillator <= 40:
			osc = -10
		case sig.Oscillator <= 48:
			osc = -5
		}
		score += osc
	}

	// Moving-average cross.
	if len(closes) > emaSlow {
		fast := talib.Ema(closes, emaFast)
		slow := talib.Ema(closes, emaSlow)
		f, s := fast[len(fast)-1], slow[len(slow)-1]
		switch {
		case f > s:
			sig.MAState = models.Bullish
			score += maWeight
		case f < s:
			sig.MAState = models.Bearish
			score -= maWeight
		}
	}

	// Price action: majority color of the last 10 bars.
	bull, bear := 0, 0
	for _, b := range bars[len(bars)-paWindow:] {
		if b.Bullish() {
			bull++
		} else if b.Bearish() {
			bear++
		}
	}
	switch {
	case bull > bear:
		sig.PriceAction = models.Bullish
		score += paWeight
	case bear > bull:
		sig.PriceAction = models.Bearish
		score -= paWeight
	}

	// Volume confirms only when elevated and aligned with the accumulated
	// sign; unaligned volume stays neutral.
	recent := series.AverageVolume(bars, volFast)
	base := series.AverageVolume(bars, minBars)
	if base > 0 && recent > base*volFactor {
		switch {
		case score > 0:
			sig.VolumeState = models.Bullish
			score += volWeight
		case score < 0:
			sig.VolumeState = models.Bearish
			score -= volWeight
		}
	}

	sig.Score = series.Clamp(score, -100, 100)
	sig.Trend = classifyTrend(sig.Score)
	sig.Confidence = math.Min(100, math.Abs(sig.Score)+10*float64(nonNeutral(sig)))
	return sig
}

func classifyTrend(score float64) models.TrendClass {
	switch {
	case score >= trendHi:
		return models.TrendStrongBullish
	case score >= trendLo:
		return models.TrendBullish
	case score <= -trendHi:
		return models.TrendStrongBearish
	case score <= -trendLo:
		return models.TrendBearish
	}
	return models.TrendNeutral
}

// oscDirection reads the oscillator value directionally: extremes are
// reversal pressure, the midline band is momentum.
func oscDirection(v float64) models.Direction {
	switch {
	case v >= 70:
		return models.Bearish
	case v <= 30:
		return models.Bullish
	case v >= 52:
		return models.Bullish
	case v <= 48:
		return models.Bearish
	}
	return models.Neutral
}

func nonNeutral(sig models.TimeframeSignal) int {
	n := 0
	if oscDirection(sig.Oscillator) != models.Neutral {
		n++
	}
	if sig.MAState != models.Neutral {
		n++
	}
	if sig.PriceAction != models.Neutral {
		n++
	}
	if sig.VolumeState != models.Neutral {
		n++
	}
	return n
}
