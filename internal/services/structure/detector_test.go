package structure

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

func TestShortSeriesDefault(t *testing.T) {
	bars := make([]models.Bar, 10)
	for i := range bars {
		bars[i] = flat(i, 100)
	}
	rep := NewDetector(DefaultConfig()).Analyze(bars)
	if rep.Structure != models.StructureRanging {
		t.Errorf("structure = %s, want RANGING", rep.Structure)
	}
	if rep.Confidence != 0 {
		t.Errorf("confidence = %v, want 0", rep.Confidence)
	}
	if rep.Recommendation != models.Hold {
		t.Errorf("recommendation = %s, want HOLD", rep.Recommendation)
	}
	if len(rep.Sweeps) != 0 || len(rep.OrderBlocks) != 0 || len(rep.Gaps) != 0 {
		t.Errorf("expected empty event lists, got %+v", rep)
	}
}

func TestTrendingSeriesIsBullish(t *testing.T) {
	bars := make([]models.Bar, 60)
	p := 100.0
	for i := range bars {
		bars[i] = models.Bar{Timestamp: ts(i), Open: p, High: p + 1.2, Low: p - 0.3, Close: p + 1, Volume: 100}
		p += 1
	}
	rep := NewDetector(DefaultConfig()).Analyze(bars)
	if rep.Structure != models.StructureBullish {
		t.Fatalf("structure = %s, want BULLISH", rep.Structure)
	}
	if rep.BullScore <= rep.BearScore {
		t.Errorf("bull score %v should dominate bear score %v", rep.BullScore, rep.BearScore)
	}
	if rep.BOS == nil || rep.BOS.Direction != models.Bullish {
		t.Errorf("expected a bullish break of structure, got %+v", rep.BOS)
	}
	if rep.Recommendation != models.StrongBuy {
		t.Errorf("recommendation = %s, want STRONG_BUY", rep.Recommendation)
	}
}

func TestOrderBlockStrengthTiers(t *testing.T) {
	d := NewDetector(DefaultConfig())
	bars := []models.Bar{
		{Timestamp: ts(0), Open: 101, High: 101.5, Low: 99.5, Close: 100, Volume: 100}, // bearish block
		{Timestamp: ts(1), Open: 100, High: 102, Low: 100, Close: 102, Volume: 150},
		{Timestamp: ts(2), Open: 102, High: 104, Low: 102, Close: 104, Volume: 150},
		{Timestamp: ts(3), Open: 104, High: 106, Low: 104, Close: 106, Volume: 150},
	}
	blocks := d.orderBlocks(bars)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 order block, got %d", len(blocks))
	}
	b := blocks[0]
	if b.Direction != models.Bullish {
		t.Errorf("direction = %s, want BULLISH", b.Direction)
	}
	// net move (106-101.5)/101.5 ≈ 4.4% > 3%
	if b.Strength != models.Strong {
		t.Errorf("strength = %s, want STRONG", b.Strength)
	}
	if got := b.Midpoint(); got != (101.5+99.5)/2 {
		t.Errorf("midpoint = %v", got)
	}
}

func TestLiquiditySweep(t *testing.T) {
	d := NewDetector(DefaultConfig())
	bars := make([]models.Bar, 22)
	for i := 0; i < 20; i++ {
		bars[i] = flat(i, 100) // swing low 99.5
	}
	bars[20] = models.Bar{Timestamp: ts(20), Open: 100, High: 100.2, Low: 98, Close: 99, Volume: 200}
	bars[21] = models.Bar{Timestamp: ts(21), Open: 99, High: 101, Low: 99, Close: 100.5, Volume: 200}
	sweeps := d.liquiditySweeps(bars)
	if len(sweeps) == 0 {
		t.Fatal("expected a liquidity sweep")
	}
	s := sweeps[len(sweeps)-1]
	if s.Direction != models.Bullish {
		t.Errorf("direction = %s, want BULLISH", s.Direction)
	}
	if s.Level != 99.5 {
		t.Errorf("level = %v, want 99.5", s.Level)
	}
	if s.Strength != models.Strong { // pierce depth 1.5/99.5 > 1%
		t.Errorf("strength = %s, want STRONG", s.Strength)
	}
}

func TestFairValueGap(t *testing.T) {
	d := NewDetector(DefaultConfig())
	bars := []models.Bar{
		{Timestamp: ts(0), Open: 100, High: 100.5, Low: 99.5, Close: 100, Volume: 100},
		{Timestamp: ts(1), Open: 100, High: 103, Low: 100, Close: 103, Volume: 300},
		{Timestamp: ts(2), Open: 103, High: 104, Low: 101.5, Close: 103.5, Volume: 200},
	}
	gaps := d.fairValueGaps(bars)
	if len(gaps) != 1 {
		t.Fatalf("expected 1 gap, got %d", len(gaps))
	}
	g := gaps[0]
	if g.Direction != models.Bullish {
		t.Errorf("direction = %s, want BULLISH", g.Direction)
	}
	if g.Lower != 100.5 || g.Upper != 101.5 {
		t.Errorf("gap bounds = [%v,%v], want [100.5,101.5]", g.Lower, g.Upper)
	}
}

func TestChangeOfCharacter(t *testing.T) {
	bars := make([]models.Bar, 40)
	p := 100.0
	// 20 bars of higher highs and higher lows
	for i := 0; i < 20; i++ {
		bars[i] = models.Bar{Timestamp: ts(i), Open: p, High: p + 1, Low: p - 0.5, Close: p + 0.8, Volume: 100}
		p += 1
	}
	// then 20 bars of lower highs and lower lows
	for i := 20; i < 40; i++ {
		bars[i] = models.Bar{Timestamp: ts(i), Open: p, High: p + 1, Low: p - 0.5, Close: p - 0.8, Volume: 100}
		p -= 1
	}

	choch := changeOfCharacter(bars)
	if choch == nil {
		t.Fatal("expected a change of character")
	}
	if choch.From != models.StructureBullish || choch.To != models.StructureBearish {
		t.Errorf("flip = %s -> %s, want BULLISH -> BEARISH", choch.From, choch.To)
	}
	if choch.Direction != models.Bearish {
		t.Errorf("direction = %s, want BEARISH", choch.Direction)
	}
	if choch.Index != len(bars)-1 {
		t.Errorf("index = %d, want %d", choch.Index, len(bars)-1)
	}
}

func TestChangeOfCharacterNeedsBothTrends(t *testing.T) {
	bars := make([]models.Bar, 40)
	for i := range bars {
		bars[i] = flat(i, 100)
	}
	if choch := changeOfCharacter(bars); choch != nil {
		t.Fatalf("flat series should have no character change, got %+v", choch)
	}
}

func TestConfidenceZeroWhenNoEvidence(t *testing.T) {
	var rep models.StructureReport
	rep.Structure = models.StructureRanging
	NewDetector(DefaultConfig()).score(&rep)
	if rep.Confidence != 0 {
		t.Fatalf("confidence = %v, want 0 when both sums are 0", rep.Confidence)
	}
	if rep.Recommendation != models.Hold {
		t.Errorf("recommendation = %s, want HOLD", rep.Recommendation)
	}
}

func TestScoreMonotonicInStrongBlocks(t *testing.T) {
	d := NewDetector(DefaultConfig())
	base := models.StructureReport{
		Structure: models.StructureBullish,
		Sweeps: []models.LiquiditySweep{
			{Direction: models.Bearish, Strength: models.Strong},
		},
	}
	prev := -1.0
	for k := 0; k <= 5; k++ {
		rep := base
		rep.OrderBlocks = nil
		for j := 0; j < k; j++ {
			rep.OrderBlocks = append(rep.OrderBlocks, models.OrderBlock{
				Direction: models.Bullish, Strength: models.Strong,
			})
		}
		d.score(&rep)
		if rep.BullScore < prev {
			t.Fatalf("bull score decreased from %v to %v at k=%d", prev, rep.BullScore, k)
		}
		prev = rep.BullScore
	}
}

func TestRecommendRatio(t *testing.T) {
	tests := []struct {
		bull, bear float64
		want       models.Recommendation
	}{
		{0, 0, models.Hold},
		{60, 30, models.StrongBuy},
		{40, 30, models.Buy},
		{30, 60, models.StrongSell},
		{30, 40, models.Sell},
		{50, 0, models.StrongBuy},
		{0, 50, models.StrongSell},
	}
	for _, tt := range tests {
		if got := recommend(tt.bull, tt.bear); got != tt.want {
			t.Errorf("recommend(%v,%v) = %s, want %s", tt.bull, tt.bear, got, tt.want)
		}
	}
}
