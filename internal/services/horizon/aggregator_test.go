package horizon

import (
	"math"
	"testing"
	"time"

	"TradeLens/internal/domain/models"
)

func ts(i int) time.Time {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Hour)
}

func TestWeightsSumToOne(t *testing.T) {
	sum := 0.0
	for _, res := range models.Resolutions() {
		sum += res.Weight()
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("resolution weights sum to %v, want 1.0", sum)
	}
}

func TestShortSeriesNeutralDefault(t *testing.T) {
	bars := make([]models.Bar, 5)
	for i := range bars {
		bars[i] = models.Bar{Timestamp: ts(i), Open: 100, High: 101, Low: 99, Close: 100, Volume: 100}
	}
	sig := analyzeResolution(models.Res1h, bars)
	if sig.Trend != models.TrendNeutral || sig.Score != 0 || sig.Confidence != 0 {
		t.Fatalf("expected neutral zero-confidence default, got %+v", sig)
	}
	if sig.Oscillator != 50 {
		t.Errorf("oscillator default = %v, want 50", sig.Oscillator)
	}
}

// steadyClimb returns bars climbing two steps up, one smaller step down, so
// the oscillator stays in the bullish band without going overbought.
func steadyClimb(n int) []models.Bar {
	bars := make([]models.Bar, n)
	p := 100.0
	for i := range bars {
		delta := 1.0
		if i%3 == 2 {
			delta = -1.2
		}
		vol := 100.0
		if i >= n-5 {
			vol = 300
		}
		open := p
		close := p + delta
		hi := math.Max(open, close) + 0.2
		lo := math.Min(open, close) - 0.2
		bars[i] = models.Bar{Timestamp: ts(i), Open: open, High: hi, Low: lo, Close: close, Volume: vol}
		p = close
	}
	return bars
}

func TestStrongBullishResolution(t *testing.T) {
	sig := analyzeResolution(models.Res1h, steadyClimb(30))
	if sig.Trend != models.TrendStrongBullish {
		t.Fatalf("trend = %s (score %v, rsi %v), want STRONG_BULLISH", sig.Trend, sig.Score, sig.Oscillator)
	}
	if sig.MAState != models.Bullish {
		t.Errorf("MA state = %s, want BULLISH", sig.MAState)
	}
	if sig.VolumeState != models.Bullish {
		t.Errorf("volume state = %s, want BULLISH", sig.VolumeState)
	}
	if sig.Score < -100 || sig.Score > 100 {
		t.Errorf("score %v out of [-100,100]", sig.Score)
	}
}

func TestFullAlignment(t *testing.T) {
	input := make(map[models.Resolution][]models.Bar)
	for _, res := range models.Resolutions() {
		input[res] = steadyClimb(30)
	}
	rep := NewAggregator().Analyze(input)
	if rep.Alignment != 100 {
		t.Fatalf("alignment = %v, want 100", rep.Alignment)
	}
	if rep.OverallTrend != models.TrendStrongBullish {
		t.Fatalf("overall trend = %s, want STRONG_BULLISH", rep.OverallTrend)
	}
	if rep.Recommendation != models.StrongBuy {
		t.Errorf("recommendation = %s, want STRONG_BUY", rep.Recommendation)
	}
	if rep.Confidence < 0 || rep.Confidence > 100 {
		t.Errorf("confidence %v out of [0,100]", rep.Confidence)
	}
	if len(rep.Heatmap) != 6 {
		t.Errorf("heatmap rows = %d, want 6", len(rep.Heatmap))
	}
}

func TestMissingResolutionsDegrade(t *testing.T) {
	input := map[models.Resolution][]models.Bar{
		models.Res1d: steadyClimb(30),
	}
	rep := NewAggregator().Analyze(input)
	if len(rep.Signals) != 6 {
		t.Fatalf("expected 6 resolved signals, got %d", len(rep.Signals))
	}
	neutral := 0
	for _, sig := range rep.Signals {
		if sig.Trend == models.TrendNeutral {
			neutral++
		}
	}
	if neutral != 5 {
		t.Errorf("expected 5 neutral defaults, got %d", neutral)
	}
	// 5 of 6 neutral dominates the alignment count
	if math.Abs(rep.Alignment-5.0/6.0*100) > 1e-9 {
		t.Errorf("alignment = %v, want %v", rep.Alignment, 5.0/6.0*100)
	}
}

func TestDeterministic(t *testing.T) {
	input := make(map[models.Resolution][]models.Bar)
	for _, res := range models.Resolutions() {
		input[res] = steadyClimb(40)
	}
	a := NewAggregator().Analyze(input)
	b := NewAggregator().Analyze(input)
	if a.OverallScore != b.OverallScore || a.Confidence != b.Confidence || a.Alignment != b.Alignment {
		t.Fatalf("aggregation not deterministic: %+v vs %+v", a, b)
	}
}
