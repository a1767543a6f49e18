package structure

import (
	"math"

	"TradeLens/internal/domain/models"
)

// liquiditySweeps flags bars that pierce the local 20-bar swing level while
// the next bar closes back on the opposite side, the classic stop hunt.
func (d *Detector) liquiditySweeps(bars []models.Bar) []models.LiquiditySweep {
	var out []models.LiquiditySweep
	for i := sweepLookback; i < len(bars)-1; i++ {
		window := bars[i-sweepLookback : i]
		swingHigh, swingLow := extremes(window)
		cur, next := bars[i], bars[i+1]

		if cur.Low < swingLow && next.Close > swingLow {
			out = append(out, models.LiquiditySweep{
				Index:     i,
				Timestamp: cur.Timestamp,
				Level:     swingLow,
				Direction: models.Bullish,
				Strength:  pierceStrength(swingLow, cur.Low),
			})
		}
		if cur.High > swingHigh && next.Close < swingHigh {
			out = append(out, models.LiquiditySweep{
				Index:     i,
				Timestamp: cur.Timestamp,
				Level:     swingHigh,
				Direction: models.Bearish,
				Strength:  pierceStrength(swingHigh, cur.High),
			})
		}
	}
	return lastN(out, maxEvents)
}

func pierceStrength(level, extreme float64) models.Strength {
	if level <= 0 {
		return models.Weak
	}
	depth := math.Abs(extreme-level) / level
	switch {
	case depth > 0.01:
		return models.Strong
	case depth > 0.005:
		return models.Moderate
	}
	return models.Weak
}

// orderBlocks finds the last opposite-colored bar immediately before three
// consecutive same-direction bars, tiering strength by how far the run moved
// past the block.
func (d *Detector) orderBlocks(bars []models.Bar) []models.OrderBlock {
	var out []models.OrderBlock
	for i := 0; i+3 < len(bars); i++ {
		block := bars[i]
		run := bars[i+1 : i+4]

		if block.Bearish() && run[0].Bullish() && run[1].Bullish() && run[2].Bullish() && block.High > 0 {
			move := (run[2].Close - block.High) / block.High
			if move > 0 {
				out = append(out, models.OrderBlock{
					Index:     i,
					Timestamp: block.Timestamp,
					High:      block.High,
					Low:       block.Low,
					Direction: models.Bullish,
					Strength:  d.blockStrength(move),
				})
			}
		}
		if block.Bullish() && run[0].Bearish() && run[1].Bearish() && run[2].Bearish() && block.Low > 0 {
			move := (block.Low - run[2].Close) / block.Low
			if move > 0 {
				out = append(out, models.OrderBlock{
					Index:     i,
					Timestamp: block.Timestamp,
					High:      block.High,
					Low:       block.Low,
					Direction: models.Bearish,
					Strength:  d.blockStrength(move),
				})
			}
		}
	}
	return lastN(out, maxEvents)
}

func (d *Detector) blockStrength(move float64) models.Strength {
	switch {
	case move > d.cfg.StrongBlockMove:
		return models.Strong
	case move > d.cfg.ModerateBlockMove:
		return models.Moderate
	}
	return models.Weak
}

// fairValueGaps finds three-bar imbalances wider than the configured minimum
// whose middle bar moved in the gap's direction.
func (d *Detector) fairValueGaps(bars []models.Bar) []models.FairValueGap {
	var out []models.FairValueGap
	for i := 1; i < len(bars)-1; i++ {
		prev, mid, next := bars[i-1], bars[i], bars[i+1]

		if prev.High > 0 && next.Low > prev.High*(1+d.cfg.GapMinRatio) && mid.Bullish() {
			out = append(out, models.FairValueGap{
				Index:     i,
				Timestamp: mid.Timestamp,
				Upper:     next.Low,
				Lower:     prev.High,
				Direction: models.Bullish,
			})
		}
		if next.High > 0 && prev.Low > next.High*(1+d.cfg.GapMinRatio) && mid.Bearish() {
			out = append(out, models.FairValueGap{
				Index:     i,
				Timestamp: mid.Timestamp,
				Upper:     prev.Low,
				Lower:     next.High,
				Direction: models.Bearish,
			})
		}
	}
	return lastN(out, maxEvents)
}

// institutionalCandles flags bars whose body and volume both dwarf the local
// 20-bar average.
func (d *Detector) institutionalCandles(bars []models.Bar) []models.InstitutionalCandle {
	var out []models.InstitutionalCandle
	start := len(bars) - classifyBars
	window := bars[start:]

	avgBody, avgVol := 0.0, 0.0
	for _, b := range window {
		avgBody += b.Body()
		avgVol += b.Volume
	}
	avgBody /= float64(len(window))
	avgVol /= float64(len(window))
	if avgBody == 0 || avgVol == 0 {
		return nil
	}
	for i, b := range window {
		if b.Body() > 2*avgBody && b.Volume > 2*avgVol {
			dir := models.Bullish
			if b.Bearish() {
				dir = models.Bearish
			}
			out = append(out, models.InstitutionalCandle{
				Index:       start + i,
				Timestamp:   b.Timestamp,
				Direction:   dir,
				VolumeRatio: b.Volume / avgVol,
			})
		}
	}
	return lastN(out, maxEvents)
}

// zonesFromBlocks projects order blocks into supply/demand zones: bearish
// blocks are supply, bullish blocks are demand.
func zonesFromBlocks(blocks []models.OrderBlock) []models.SupplyDemandZone {
	var out []models.SupplyDemandZone
	for _, b := range blocks {
		kind := models.ZoneDemand
		if b.Direction == models.Bearish {
			kind = models.ZoneSupply
		}
		out = append(out, models.SupplyDemandZone{
			Upper:    b.High,
			Lower:    b.Low,
			Kind:     kind,
			Strength: b.Strength,
		})
	}
	return lastN(out, maxZones)
}

func extremes(bars []models.Bar) (hi, lo float64) {
	hi, lo = math.Inf(-1), math.Inf(1)
	for _, b := range bars {
		hi = math.Max(hi, b.High)
		lo = math.Min(lo, b.Low)
	}
	return hi, lo
}

func lastN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[len(items)-n:]
	}
	return items
}
