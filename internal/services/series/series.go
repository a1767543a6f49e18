package series

import (
	"fmt"
	"math"

	"TradeLens/internal/domain/models"
)

// Resample groups factor consecutive bars into one coarser bar: first open,
// last close, group extrema, summed volume. The coarse bar keeps the first
// fine bar's timestamp. A trailing partial group is dropped.
func Resample(bars []models.Bar, factor int) ([]models.Bar, error) {
	if factor <= 0 {
		return nil, fmt.Errorf("resample: factor must be positive, got %d", factor)
	}
	if len(bars) < factor {
		return nil, fmt.Errorf("resample: %w: have %d bars, need %d", models.ErrInsufficientData, len(bars), factor)
	}
	out := make([]models.Bar, 0, len(bars)/factor)
	for i := 0; i+factor <= len(bars); i += factor {
		group := bars[i : i+factor]
		b := models.Bar{
			Timestamp: group[0].Timestamp,
			Open:      group[0].Open,
			Close:     group[len(group)-1].Close,
			High:      group[0].High,
			Low:       group[0].Low,
		}
		for _, g := range group {
			b.High = math.Max(b.High, g.High)
			b.Low = math.Min(b.Low, g.Low)
			b.Volume += g.Volume
		}
		out = append(out, b)
	}
	return out, nil
}

// LogReturns computes r_t = ln(C_t / C_{t-1}).
// It returns a slice of length len(bars)-1, or nil if insufficient data.
func LogReturns(bars []models.Bar) []float64 {
	if len(bars) < 2 {
		return nil
	}
	out := make([]float64, 0, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		prev := bars[i-1].Close
		cur := bars[i].Close
		if prev <= 0 || cur <= 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, math.Log(cur/prev))
	}
	return out
}

// Volatility returns the sample standard deviation of the last window log
// returns, scaled to a 0-100 score. The scale saturates at a 10% per-bar
// sigma, which is extreme for any of the supported resolutions.
func Volatility(bars []models.Bar, window int) float64 {
	rets := LogReturns(bars)
	if window <= 1 || len(rets) < window {
		return 0
	}
	sum := 0.0
	sum2 := 0.0
	for i := len(rets) - window; i < len(rets); i++ {
		r := rets[i]
		sum += r
		sum2 += r * r
	}
	n := float64(window)
	mean := sum / n
	variance := (sum2 - n*mean*mean) / (n - 1)
	if variance < 0 {
		variance = 0
	}
	score := math.Sqrt(variance) / 0.10 * 100
	return math.Min(100, score)
}

// AverageVolume returns the mean volume over the last window bars, or 0 when
// the window cannot be filled.
func AverageVolume(bars []models.Bar, window int) float64 {
	if window <= 0 || len(bars) < window {
		return 0
	}
	sum := 0.0
	for i := len(bars) - window; i < len(bars); i++ {
		sum += bars[i].Volume
	}
	return sum / float64(window)
}

// Closes extracts the close prices, the shape indicator libraries consume.
func Closes(bars []models.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
