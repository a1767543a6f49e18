package structure

import (
	"TradeLens/internal/domain/models"
)

// classify labels a 20-bar window by counting two-bar-lag swing comparisons:
// 8 of 18 higher-high-and-higher-low pairs is BULLISH, the mirror is BEARISH,
// anything else RANGING.
func classify(window []models.Bar) models.MarketStructure {
	if len(window) < 3 {
		return models.StructureRanging
	}
	higher, lower := 0, 0
	for i := 2; i < len(window); i++ {
		prev, cur := window[i-2], window[i]
		if cur.High > prev.High && cur.Low > prev.Low {
			higher++
		}
		if cur.High < prev.High && cur.Low < prev.Low {
			lower++
		}
	}
	switch {
	case higher >= 8:
		return models.StructureBullish
	case lower >= 8:
		return models.StructureBearish
	}
	return models.StructureRanging
}

// breakOfStructure checks whether the current close cleared the swing
// extreme of the preceding 25 of the last 30 bars.
func breakOfStructure(bars []models.Bar) *models.BreakOfStructure {
	n := len(bars)
	if n < 30 {
		return nil
	}
	swingHigh, swingLow := extremes(bars[n-30 : n-5])
	last := bars[n-1]

	if last.Close > swingHigh {
		return &models.BreakOfStructure{
			Index:     n - 1,
			Timestamp: last.Timestamp,
			Level:     swingHigh,
			Direction: models.Bullish,
		}
	}
	if last.Close < swingLow {
		return &models.BreakOfStructure{
			Index:     n - 1,
			Timestamp: last.Timestamp,
			Level:     swingLow,
			Direction: models.Bearish,
		}
	}
	return nil
}

// changeOfCharacter compares the structure label of the 40-to-20-bars-ago
// window with the most recent 20 bars and reports a directional flip.
func changeOfCharacter(bars []models.Bar) *models.ChangeOfCharacter {
	n := len(bars)
	if n < 40 {
		return nil
	}
	prev := classify(bars[n-40 : n-20])
	cur := classify(bars[n-20:])
	if prev == cur || prev == models.StructureRanging || cur == models.StructureRanging {
		return nil
	}
	dir := models.Bullish
	if cur == models.StructureBearish {
		dir = models.Bearish
	}
	return &models.ChangeOfCharacter{
		Index:     n - 1,
		Timestamp: bars[n-1].Timestamp,
		From:      prev,
		To:        cur,
		Direction: dir,
	}
}
