package pattern

import (
	"TradeLens/internal/domain/models"
)

// detectCandlestick tests the last two/three bars against the named
// reversal patterns. Every predicate is a closed-form function of the bars'
// OHLC geometry; no tunable parameters.
func detectCandlestick(bars []models.Bar) []models.Signal {
	if len(bars) < candlestickMinBars {
		return nil
	}
	var out []models.Signal
	a, b, c := bars[len(bars)-3], bars[len(bars)-2], bars[len(bars)-1]

	if bullishEngulfing(b, c) {
		out = append(out, models.Signal{
			Label:       "Bullish Engulfing",
			Direction:   models.Bullish,
			Strength:    models.Strong,
			Description: "current bullish body engulfs the prior bearish body",
		})
	}
	if bearishEngulfing(b, c) {
		out = append(out, models.Signal{
			Label:       "Bearish Engulfing",
			Direction:   models.Bearish,
			Strength:    models.Strong,
			Description: "current bearish body engulfs the prior bullish body",
		})
	}
	if morningStar(a, b, c) {
		out = append(out, models.Signal{
			Label:       "Morning Star",
			Direction:   models.Bullish,
			Strength:    models.Strong,
			Description: "long bearish bar, small-bodied pause, bullish close above the first midpoint",
		})
	}
	if eveningStar(a, b, c) {
		out = append(out, models.Signal{
			Label:       "Evening Star",
			Direction:   models.Bearish,
			Strength:    models.Strong,
			Description: "long bullish bar, small-bodied pause, bearish close below the first midpoint",
		})
	}
	if hammer(c) {
		out = append(out, models.Signal{
			Label:       "Hammer",
			Direction:   models.Bullish,
			Strength:    models.Moderate,
			Description: "long lower wick with body at the top of the range",
		})
	}
	if shootingStar(c) {
		out = append(out, models.Signal{
			Label:       "Shooting Star",
			Direction:   models.Bearish,
			Strength:    models.Moderate,
			Description: "long upper wick with body at the bottom of the range",
		})
	}
	if doji(c) {
		out = append(out, models.Signal{
			Label:       "Doji",
			Direction:   models.Neutral,
			Strength:    models.Weak,
			Description: "open and close nearly equal, indecision",
		})
	}
	if piercingLine(b, c) {
		out = append(out, models.Signal{
			Label:       "Piercing Line",
			Direction:   models.Bullish,
			Strength:    models.Moderate,
			Description: "bullish bar opens below the prior close and closes above the prior midpoint",
		})
	}
	if darkCloudCover(b, c) {
		out = append(out, models.Signal{
			Label:       "Dark Cloud Cover",
			Direction:   models.Bearish,
			Strength:    models.Moderate,
			Description: "bearish bar opens above the prior close and closes below the prior midpoint",
		})
	}
	return out
}

func bullishEngulfing(prev, cur models.Bar) bool {
	return prev.Bearish() && cur.Bullish() &&
		cur.Open <= prev.Close && cur.Close >= prev.Open
}

func bearishEngulfing(prev, cur models.Bar) bool {
	return prev.Bullish() && cur.Bearish() &&
		cur.Open >= prev.Close && cur.Close <= prev.Open
}

func morningStar(a, b, c models.Bar) bool {
	return a.Bearish() && a.Body() > 0 &&
		b.Body() < a.Body()*0.5 &&
		c.Bullish() && c.Close > (a.Open+a.Close)/2
}

func eveningStar(a, b, c models.Bar) bool {
	return a.Bullish() && a.Body() > 0 &&
		b.Body() < a.Body()*0.5 &&
		c.Bearish() && c.Close < (a.Open+a.Close)/2
}

func hammer(b models.Bar) bool {
	rng := b.Range()
	return rng > 0 && b.Body() > 0 &&
		b.LowerWick() >= 2*b.Body() &&
		b.UpperWick() <= b.Body()
}

func shootingStar(b models.Bar) bool {
	rng := b.Range()
	return rng > 0 && b.Body() > 0 &&
		b.UpperWick() >= 2*b.Body() &&
		b.LowerWick() <= b.Body()
}

func doji(b models.Bar) bool {
	rng := b.Range()
	return rng > 0 && b.Body() <= rng*0.1
}

func piercingLine(prev, cur models.Bar) bool {
	mid := (prev.Open + prev.Close) / 2
	return prev.Bearish() && cur.Bullish() &&
		cur.Open < prev.Close && cur.Close > mid && cur.Close < prev.Open
}

func darkCloudCover(prev, cur models.Bar) bool {
	mid := (prev.Open + prev.Close) / 2
	return prev.Bullish() && cur.Bearish() &&
		cur.Open > prev.Close && cur.Close < mid && cur.Close > prev.Open
}
