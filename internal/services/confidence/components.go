package confidence

import (
	"TradeLens/internal/domain/models"
	"TradeLens/internal/services/series"
)

// Component normalizers. Every score is directional on a 0-100 scale with 50
// meaning "no lean".

func patternScore(rep models.PatternReport) float64 {
	score := 50.0
	for _, s := range append(append([]models.Signal{}, rep.Candlestick...), rep.Chart...) {
		points := 5.0
		switch s.Strength {
		case models.Strong:
			points = 15
		case models.Moderate:
			points = 10
		}
		switch s.Direction {
		case models.Bullish:
			score += points
		case models.Bearish:
			score -= points
		}
	}
	score += (rep.Pressure.Ratio - 0.5) * 40
	return series.Clamp(score, 0, 100)
}

func structureScore(rep models.StructureReport) float64 {
	total := rep.BullScore + rep.BearScore
	if total == 0 {
		return 50
	}
	return series.Clamp(50+(rep.BullScore-rep.BearScore)/total*50, 0, 100)
}

func horizonScore(rep models.MultiHorizonReport) float64 {
	return series.Clamp((rep.OverallScore+100)/2, 0, 100)
}

// volumeScore reads recent volume elevation in the direction of the recent
// move: expanding volume on an advance is bullish, on a decline bearish.
func volumeScore(bars []models.Bar) float64 {
	if len(bars) < 20 {
		return 50
	}
	recent := series.AverageVolume(bars, 5)
	base := series.AverageVolume(bars, 20)
	if base == 0 {
		return 50
	}
	ratio := recent / base
	ref := bars[len(bars)-6].Close
	if ref <= 0 {
		return 50
	}
	sign := 1.0
	if bars[len(bars)-1].Close < ref {
		sign = -1
	}
	return series.Clamp(50+(ratio-1)*50*sign, 0, 100)
}

// momentumScore scales the 10-bar rate of change; a 10% move saturates.
func momentumScore(bars []models.Bar) float64 {
	if len(bars) < 11 {
		return 50
	}
	ref := bars[len(bars)-11].Close
	if ref <= 0 {
		return 50
	}
	roc := (bars[len(bars)-1].Close - ref) / ref
	return series.Clamp(50+roc*500, 0, 100)
}
