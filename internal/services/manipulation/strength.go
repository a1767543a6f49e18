package manipulation

import (
	"TradeLens/internal/domain/models"
)

// strength accumulates directional evidence from volume-confirmed large-body
// candles, weighted toward recent bars, into a 0-100 score centered at 50.
// It runs independently of the verdict rules.
func (d *Detector) strength(bars []models.Bar) (float64, models.Direction) {
	n := len(bars)
	avgVol := averageVolume(bars)
	avgBody := 0.0
	for _, b := range bars {
		avgBody += b.Body()
	}
	avgBody /= float64(n)
	if avgVol == 0 || avgBody == 0 {
		return 50, models.Neutral
	}

	score := 50.0
	for i, b := range bars {
		if b.Body() <= avgBody || b.Volume <= avgVol {
			continue
		}
		recency := float64(i+1) / float64(n)
		volRatio := b.Volume / avgVol
		if volRatio > 3 {
			volRatio = 3
		}
		points := 5 * recency * volRatio
		if b.Bullish() {
			score += points
		} else if b.Bearish() {
			score -= points
		}
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	switch {
	case score >= 60:
		return score, models.Bullish
	case score <= 40:
		return score, models.Bearish
	}
	return score, models.Neutral
}
