package pattern

import (
	"math"

	"TradeLens/internal/domain/models"
)

// detectChart scans the last 10-20 bars for trend runs, double tops/bottoms
// and breakouts.
func detectChart(bars []models.Bar) []models.Signal {
	if len(bars) < chartMinBars {
		return nil
	}
	var out []models.Signal

	if s, ok := trendRun(bars); ok {
		out = append(out, s)
	}
	if s, ok := doubleExtreme(bars); ok {
		out = append(out, s)
	}
	if s, ok := breakout(bars); ok {
		out = append(out, s)
	}
	return out
}

// trendRun counts higher-high/higher-low vs lower-high/lower-low agreement
// over the last 10 comparisons; 6 of 10 on one side is a trend.
func trendRun(bars []models.Bar) (models.Signal, bool) {
	window := bars
	if len(bars) > 11 {
		window = bars[len(bars)-11:] // 10 comparisons
	}
	up, down := 0, 0
	for i := 1; i < len(window); i++ {
		prev, cur := window[i-1], window[i]
		if cur.High > prev.High && cur.Low > prev.Low {
			up++
		}
		if cur.High < prev.High && cur.Low < prev.Low {
			down++
		}
	}
	switch {
	case up >= 6:
		return models.Signal{
			Label:       "Uptrend",
			Direction:   models.Bullish,
			Strength:    strengthFromCount(up),
			Description: "majority of recent bars printed higher highs and higher lows",
		}, true
	case down >= 6:
		return models.Signal{
			Label:       "Downtrend",
			Direction:   models.Bearish,
			Strength:    strengthFromCount(down),
			Description: "majority of recent bars printed lower highs and lower lows",
		}, true
	}
	return models.Signal{}, false
}

func strengthFromCount(n int) models.Strength {
	switch {
	case n >= 9:
		return models.Strong
	case n >= 7:
		return models.Moderate
	}
	return models.Weak
}

// doubleExtreme looks for two local extrema within 2% of each other over the
// last 20 bars: a double top (bearish) or double bottom (bullish).
func doubleExtreme(bars []models.Bar) (models.Signal, bool) {
	n := len(bars)
	lookback := 20
	if n < lookback {
		lookback = n
	}
	window := bars[n-lookback:]

	var highs, lows []int
	for i := 1; i < len(window)-1; i++ {
		if window[i].High > window[i-1].High && window[i].High > window[i+1].High {
			highs = append(highs, i)
		}
		if window[i].Low < window[i-1].Low && window[i].Low < window[i+1].Low {
			lows = append(lows, i)
		}
	}
	if len(highs) >= 2 {
		a := window[highs[len(highs)-2]].High
		b := window[highs[len(highs)-1]].High
		if a > 0 && math.Abs(a-b)/a <= 0.02 {
			return models.Signal{
				Label:       "Double Top",
				Direction:   models.Bearish,
				Strength:    models.Moderate,
				Description: "two recent swing highs within 2% of each other",
			}, true
		}
	}
	if len(lows) >= 2 {
		a := window[lows[len(lows)-2]].Low
		b := window[lows[len(lows)-1]].Low
		if a > 0 && math.Abs(a-b)/a <= 0.02 {
			return models.Signal{
				Label:       "Double Bottom",
				Direction:   models.Bullish,
				Strength:    models.Moderate,
				Description: "two recent swing lows within 2% of each other",
			}, true
		}
	}
	return models.Signal{}, false
}

// breakout fires when the last close clears the prior 19-bar extreme by more
// than 1%.
func breakout(bars []models.Bar) (models.Signal, bool) {
	n := len(bars)
	if n < 20 {
		return models.Signal{}, false
	}
	prior := bars[n-20 : n-1]
	hi, lo := prior[0].High, prior[0].Low
	for _, b := range prior {
		hi = math.Max(hi, b.High)
		lo = math.Min(lo, b.Low)
	}
	last := bars[n-1]
	if last.Close > hi*1.01 {
		return models.Signal{
			Label:       "Breakout",
			Direction:   models.Bullish,
			Strength:    models.Strong,
			Description: "close above the prior 19-bar high by more than 1%",
		}, true
	}
	if last.Close < lo*0.99 {
		return models.Signal{
			Label:       "Breakdown",
			Direction:   models.Bearish,
			Strength:    models.Strong,
			Description: "close below the prior 19-bar low by more than 1%",
		}, true
	}
	return models.Signal{}, false
}
