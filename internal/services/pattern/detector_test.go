package pattern

import (
	"testing"
	"time"

	"TradeLens/internal/domain/models"
)

func ts(i int) time.Time {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Hour)
}

func flat(i int, price float64) models.Bar {
	return models.Bar{Timestamp: ts(i), Open: price, High: price + 0.5, Low: price - 0.5, Close: price, Volume: 100}
}

func findSignal(signals []models.Signal, label string) (models.Signal, bool) {
	for _, s := range signals {
		if s.Label == label {
			return s, true
		}
	}
	return models.Signal{}, false
}

func TestBullishEngulfing(t *testing.T) {
	bars := []models.Bar{
		flat(0, 101),
		{Timestamp: ts(1), Open: 100, High: 101, Low: 90, Close: 92, Volume: 100},
		{Timestamp: ts(2), Open: 90, High: 106, Low: 89, Close: 105, Volume: 150},
	}
	d := NewDetector()
	report := d.Detect(bars)
	s, ok := findSignal(report.Candlestick, "Bullish Engulfing")
	if !ok {
		t.Fatalf("expected Bullish Engulfing, got %+v", report.Candlestick)
	}
	if s.Direction != models.Bullish || s.Strength != models.Strong {
		t.Errorf("got direction=%s strength=%s, want BULLISH/STRONG", s.Direction, s.Strength)
	}
}

func TestBearishEngulfing(t *testing.T) {
	bars := []models.Bar{
		flat(0, 99),
		{Timestamp: ts(1), Open: 100, High: 106, Low: 99, Close: 105, Volume: 100},
		{Timestamp: ts(2), Open: 106, High: 107, Low: 94, Close: 95, Volume: 150},
	}
	report := NewDetector().Detect(bars)
	if _, ok := findSignal(report.Candlestick, "Bearish Engulfing"); !ok {
		t.Fatalf("expected Bearish Engulfing, got %+v", report.Candlestick)
	}
}

func TestHammerAndDoji(t *testing.T) {
	hammerBar := models.Bar{Timestamp: ts(2), Open: 99.5, High: 100.2, Low: 95, Close: 100, Volume: 100}
	bars := []models.Bar{flat(0, 100), flat(1, 100), hammerBar}
	report := NewDetector().Detect(bars)
	if _, ok := findSignal(report.Candlestick, "Hammer"); !ok {
		t.Fatalf("expected Hammer, got %+v", report.Candlestick)
	}

	dojiBar := models.Bar{Timestamp: ts(2), Open: 100, High: 102, Low: 98, Close: 100.1, Volume: 100}
	bars[2] = dojiBar
	report = NewDetector().Detect(bars)
	s, ok := findSignal(report.Candlestick, "Doji")
	if !ok {
		t.Fatalf("expected Doji, got %+v", report.Candlestick)
	}
	if s.Direction != models.Neutral {
		t.Errorf("doji direction = %s, want NEUTRAL", s.Direction)
	}
}

func TestMorningStar(t *testing.T) {
	bars := []models.Bar{
		{Timestamp: ts(0), Open: 110, High: 110.5, Low: 99, Close: 100, Volume: 100}, // long bearish
		{Timestamp: ts(1), Open: 100, High: 101, Low: 98.5, Close: 99.5, Volume: 80}, // small body
		{Timestamp: ts(2), Open: 100, High: 109, Low: 99.5, Close: 108, Volume: 150}, // bullish above midpoint (105)
	}
	report := NewDetector().Detect(bars)
	if _, ok := findSignal(report.Candlestick, "Morning Star"); !ok {
		t.Fatalf("expected Morning Star, got %+v", report.Candlestick)
	}
}

func TestShortWindowIsEmpty(t *testing.T) {
	report := NewDetector().Detect([]models.Bar{flat(0, 100), flat(1, 100)})
	if len(report.Candlestick) != 0 || len(report.Chart) != 0 {
		t.Fatalf("expected empty signals on short input, got %+v", report)
	}
	if report.Pressure.Class != models.PressureBalanced || report.Pressure.Ratio != 0.5 {
		t.Errorf("expected balanced neutral pressure default, got %+v", report.Pressure)
	}
}

func TestUptrend(t *testing.T) {
	bars := make([]models.Bar, 0, 12)
	p := 100.0
	for i := 0; i < 12; i++ {
		bars = append(bars, models.Bar{
			Timestamp: ts(i), Open: p, High: p + 1.5, Low: p - 0.5, Close: p + 1, Volume: 100,
		})
		p += 1
	}
	report := NewDetector().Detect(bars)
	s, ok := findSignal(report.Chart, "Uptrend")
	if !ok {
		t.Fatalf("expected Uptrend, got %+v", report.Chart)
	}
	if s.Direction != models.Bullish {
		t.Errorf("uptrend direction = %s, want BULLISH", s.Direction)
	}
}

func TestBreakout(t *testing.T) {
	bars := make([]models.Bar, 0, 20)
	for i := 0; i < 19; i++ {
		bars = append(bars, flat(i, 100))
	}
	bars = append(bars, models.Bar{
		Timestamp: ts(19), Open: 100, High: 103.5, Low: 100, Close: 103, Volume: 300,
	})
	report := NewDetector().Detect(bars)
	if _, ok := findSignal(report.Chart, "Breakout"); !ok {
		t.Fatalf("expected Breakout above 1%% of the prior high, got %+v", report.Chart)
	}
}

func TestPressureClasses(t *testing.T) {
	tests := []struct {
		ratio float64
		want  models.PressureClass
	}{
		{0.70, models.PressureStrongBuyers},
		{0.60, models.PressureBuyers},
		{0.50, models.PressureBalanced},
		{0.40, models.PressureSellers},
		{0.30, models.PressureStrongSellers},
	}
	for _, tt := range tests {
		if got := classifyPressure(tt.ratio); got != tt.want {
			t.Errorf("classifyPressure(%v) = %s, want %s", tt.ratio, got, tt.want)
		}
	}
}

func TestPressureBuyersDominant(t *testing.T) {
	bars := make([]models.Bar, 0, 5)
	p := 100.0
	for i := 0; i < 5; i++ {
		// full-bodied green bars, no upper wick
		bars = append(bars, models.Bar{
			Timestamp: ts(i), Open: p, High: p + 2, Low: p - 0.2, Close: p + 2, Volume: 200,
		})
		p += 2
	}
	rep := NewDetector().Detect(bars)
	if rep.Pressure.Class != models.PressureStrongBuyers {
		t.Fatalf("expected STRONG_BUYERS, got %s (ratio %v)", rep.Pressure.Class, rep.Pressure.Ratio)
	}
}
