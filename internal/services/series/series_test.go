package series

import (
	"errors"
	"math"
	"testing"
	"time"

	"TradeLens/internal/domain/models"
)

func mkBars(n int, start float64) []models.Bar {
	ts := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]models.Bar, n)
	p := start
	for i := range bars {
		bars[i] = models.Bar{
			Timestamp: ts.Add(time.Duration(i) * time.Hour),
			Open:      p,
			High:      p + 2,
			Low:       p - 1,
			Close:     p + 1,
			Volume:    100,
		}
		p++
	}
	return bars
}

func TestResample(t *testing.T) {
	bars := mkBars(9, 100)
	out, err := Resample(bars, 4)
	if err != nil {
		t.Fatalf("Resample: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 coarse bars (trailing partial dropped), got %d", len(out))
	}
	first := out[0]
	if first.Open != bars[0].Open {
		t.Errorf("open = %v, want first group open %v", first.Open, bars[0].Open)
	}
	if first.Close != bars[3].Close {
		t.Errorf("close = %v, want last group close %v", first.Close, bars[3].Close)
	}
	if first.High != bars[3].High {
		t.Errorf("high = %v, want group max %v", first.High, bars[3].High)
	}
	if first.Low != bars[0].Low {
		t.Errorf("low = %v, want group min %v", first.Low, bars[0].Low)
	}
	if first.Volume != 400 {
		t.Errorf("volume = %v, want summed 400", first.Volume)
	}
	if !first.Timestamp.Equal(bars[0].Timestamp) {
		t.Errorf("timestamp = %v, want %v", first.Timestamp, bars[0].Timestamp)
	}
}

func TestResampleInsufficient(t *testing.T) {
	_, err := Resample(mkBars(3, 100), 4)
	if !errors.Is(err, models.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestLogReturns(t *testing.T) {
	bars := []models.Bar{
		{Close: 100}, {Close: 110}, {Close: 99},
	}
	rets := LogReturns(bars)
	if len(rets) != 2 {
		t.Fatalf("expected 2 returns, got %d", len(rets))
	}
	if math.Abs(rets[0]-math.Log(1.1)) > 1e-12 {
		t.Errorf("rets[0] = %v, want ln(1.1)", rets[0])
	}
	if LogReturns(bars[:1]) != nil {
		t.Errorf("single bar should yield nil returns")
	}
}

func TestVolatilityBounds(t *testing.T) {
	bars := mkBars(40, 100)
	v := Volatility(bars, 20)
	if v < 0 || v > 100 {
		t.Fatalf("volatility %v out of [0,100]", v)
	}
	if Volatility(mkBars(5, 100), 20) != 0 {
		t.Errorf("short window should yield 0")
	}
}

func TestAverageVolume(t *testing.T) {
	bars := mkBars(10, 100)
	if got := AverageVolume(bars, 5); got != 100 {
		t.Errorf("AverageVolume = %v, want 100", got)
	}
	if got := AverageVolume(bars, 20); got != 0 {
		t.Errorf("unfillable window should yield 0, got %v", got)
	}
}
