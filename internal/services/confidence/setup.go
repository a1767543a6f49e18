package confidence

import (
	"math"

	"TradeLens/internal/domain/models"
)

// buildSetup derives the entry/target/stop triple. Entry defaults to the
// last price but snaps to the midpoint of a same-direction order block on
// the favorable side; target and stop default to volatility-scaled moves and
// are overridden by the nearest multi-horizon level.
func buildSetup(price, probBull, volatility float64,
	structure models.StructureReport,
	horizon models.MultiHorizonReport) models.TradeSetup {

	if price <= 0 {
		return models.TradeSetup{}
	}
	bullish := probBull >= 50

	entry := price
	if block := nearestBlock(structure.OrderBlocks, price, bullish); block != nil {
		entry = block.Midpoint()
	}

	// Default move: at least 2%, growing with realized volatility.
	move := math.Max(0.02, volatility/100*0.08)
	var target, stop float64
	if bullish {
		target = entry * (1 + 2*move)
		stop = entry * (1 - move)
		if r, ok := nearestAbove(horizon.Resistance, entry); ok {
			target = r
		}
		if s, ok := nearestBelow(horizon.Support, entry); ok {
			stop = s
		}
	} else {
		target = entry * (1 - 2*move)
		stop = entry * (1 + move)
		if s, ok := nearestBelow(horizon.Support, entry); ok {
			target = s
		}
		if r, ok := nearestAbove(horizon.Resistance, entry); ok {
			stop = r
		}
	}

	setup := models.TradeSetup{Entry: entry, Target: target, StopLoss: stop}
	if denom := math.Abs(entry - stop); denom > 0 {
		setup.RiskReward = math.Abs(target-entry) / denom
	}
	return setup
}

// nearestBlock returns the same-direction order block on the favorable side
// of price: below it for longs, above it for shorts.
func nearestBlock(blocks []models.OrderBlock, price float64, bullish bool) *models.OrderBlock {
	var best *models.OrderBlock
	for i := range blocks {
		b := &blocks[i]
		if bullish {
			if b.Direction != models.Bullish || b.Midpoint() >= price {
				continue
			}
			if best == nil || b.Midpoint() > best.Midpoint() {
				best = b
			}
		} else {
			if b.Direction != models.Bearish || b.Midpoint() <= price {
				continue
			}
			if best == nil || b.Midpoint() < best.Midpoint() {
				best = b
			}
		}
	}
	return best
}

func nearestAbove(levels []float64, ref float64) (float64, bool) {
	best, ok := 0.0, false
	for _, v := range levels {
		if v > ref && (!ok || v < best) {
			best, ok = v, true
		}
	}
	return best, ok
}

func nearestBelow(levels []float64, ref float64) (float64, bool) {
	best, ok := 0.0, false
	for _, v := range levels {
		if v < ref && (!ok || v > best) {
			best, ok = v, true
		}
	}
	return best, ok
}
