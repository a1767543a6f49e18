package confidence

import (
	"math"
	"reflect"
	"testing"
	"time"

	"TradeLens/internal/domain/models"
)

func ts(i int) time.Time {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Hour)
}

func sampleBars(n int) []models.Bar {
	bars := make([]models.Bar, n)
	p := 100.0
	for i := range bars {
		delta := 0.5
		if i%4 == 3 {
			delta = -0.4
		}
		bars[i] = models.Bar{
			Timestamp: ts(i),
			Open:      p,
			High:      math.Max(p, p+delta) + 0.3,
			Low:       math.Min(p, p+delta) - 0.3,
			Close:     p + delta,
			Volume:    100 + float64(i%7)*10,
		}
		p += delta
	}
	return bars
}

func neutralInputs() (models.PatternReport, models.ManipulationReport, models.StructureReport, models.MultiHorizonReport) {
	return models.PatternReport{Pressure: models.PressureReport{Ratio: 0.5, Class: models.PressureBalanced}},
		models.ManipulationReport{Strength: 50, Sentiment: models.Neutral},
		models.StructureReport{Structure: models.StructureRanging, Recommendation: models.Hold},
		models.MultiHorizonReport{OverallTrend: models.TrendNeutral, Recommendation: models.Hold}
}

func TestRiskCollapseForcesHold(t *testing.T) {
	if got := recommendFrom(90, 85, 80, nil); got != models.Hold {
		t.Fatalf("recommendFrom(90,85,80) = %s, want HOLD", got)
	}
}

func TestManipulationOverrides(t *testing.T) {
	bullTrap := &models.ManipulationVerdict{Type: models.BullTrap}
	if got := recommendFrom(90, 85, 80, bullTrap); got != models.StrongSell {
		t.Fatalf("bull trap override = %s, want STRONG_SELL", got)
	}
	pump := &models.ManipulationVerdict{Type: models.PumpAndDump}
	if got := recommendFrom(50, 50, 50, pump); got != models.StrongSell {
		t.Fatalf("pump-and-dump override = %s, want STRONG_SELL", got)
	}
	bearTrap := &models.ManipulationVerdict{Type: models.BearTrap}
	if got := recommendFrom(20, 10, 80, bearTrap); got != models.StrongBuy {
		t.Fatalf("bear trap override = %s, want STRONG_BUY", got)
	}
}

func TestNumericRecommendationScale(t *testing.T) {
	tests := []struct {
		overall, probBull float64
		want              models.Recommendation
	}{
		{85, 85, models.StrongBuy},
		{70, 70, models.Buy},
		{50, 50, models.Hold},
		{38, 38, models.Sell},
		{25, 25, models.StrongSell},
	}
	for _, tt := range tests {
		if got := recommendFrom(tt.overall, tt.probBull, 50, nil); got != tt.want {
			t.Errorf("recommendFrom(%v,%v,50) = %s, want %s", tt.overall, tt.probBull, got, tt.want)
		}
	}
}

func TestProbabilitiesSumTo100(t *testing.T) {
	patterns, manip, structure, horizon := neutralInputs()
	res := NewEngine().Evaluate("BTCUSDT", sampleBars(40), patterns, manip, structure, horizon)
	if res.ProbabilityBullish+res.ProbabilityBearish != 100 {
		t.Fatalf("probabilities sum to %v, want exactly 100",
			res.ProbabilityBullish+res.ProbabilityBearish)
	}
	if res.OverallConfidence < 0 || res.OverallConfidence > 100 {
		t.Errorf("overall confidence %v out of [0,100]", res.OverallConfidence)
	}
	if res.RiskScore < 0 || res.RiskScore > 100 {
		t.Errorf("risk score %v out of [0,100]", res.RiskScore)
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	patterns, manip, structure, horizon := neutralInputs()
	bars := sampleBars(60)
	a := NewEngine().Evaluate("ETHUSDT", bars, patterns, manip, structure, horizon)
	b := NewEngine().Evaluate("ETHUSDT", bars, patterns, manip, structure, horizon)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("identical input produced different results:\n%+v\n%+v", a, b)
	}
	if !a.AsOf.Equal(bars[len(bars)-1].Timestamp) {
		t.Errorf("as-of = %v, want last bar close %v", a.AsOf, bars[len(bars)-1].Timestamp)
	}
}

func TestPositionSizeRules(t *testing.T) {
	tests := []struct {
		overall, risk float64
		strength      models.Strength
		want          models.PositionSize
	}{
		{85, 30, models.Strong, models.SizeLarge},
		{70, 50, models.Weak, models.SizeMedium},
		{85, 30, models.Moderate, models.SizeMedium}, // top tier needs STRONG
		{60, 50, models.Weak, models.SizeSmall},
		{70, 70, models.Weak, models.SizeSmall},
	}
	for _, tt := range tests {
		if got := positionSize(tt.overall, tt.risk, tt.strength); got != tt.want {
			t.Errorf("positionSize(%v,%v,%s) = %s, want %s", tt.overall, tt.risk, tt.strength, got, tt.want)
		}
	}
}

func TestSetupOrderBlockEntry(t *testing.T) {
	structure := models.StructureReport{
		OrderBlocks: []models.OrderBlock{
			{High: 96, Low: 94, Direction: models.Bullish},
			{High: 99, Low: 97, Direction: models.Bullish},
			{High: 104, Low: 102, Direction: models.Bearish},
		},
	}
	setup := buildSetup(100, 70, 20, structure, models.MultiHorizonReport{})
	if setup.Entry != 98 { // nearest bullish block below price
		t.Fatalf("entry = %v, want 98", setup.Entry)
	}
	if setup.Target <= setup.Entry || setup.StopLoss >= setup.Entry {
		t.Errorf("long setup inverted: %+v", setup)
	}
	if setup.RiskReward <= 0 {
		t.Errorf("risk-reward = %v, want > 0", setup.RiskReward)
	}
}

func TestSetupLevelOverrides(t *testing.T) {
	horizon := models.MultiHorizonReport{
		Support:    []float64{92, 97},
		Resistance: []float64{103, 110},
	}
	setup := buildSetup(100, 70, 0, models.StructureReport{}, horizon)
	if setup.Target != 103 {
		t.Errorf("target = %v, want nearest resistance 103", setup.Target)
	}
	if setup.StopLoss != 97 {
		t.Errorf("stop = %v, want nearest support 97", setup.StopLoss)
	}
	rr := math.Abs(103.0-100.0) / math.Abs(100.0-97.0)
	if math.Abs(setup.RiskReward-rr) > 1e-12 {
		t.Errorf("risk-reward = %v, want %v", setup.RiskReward, rr)
	}
}

func TestComponentScoresWithinRange(t *testing.T) {
	patterns := models.PatternReport{
		Candlestick: []models.Signal{{Label: "Bullish Engulfing", Direction: models.Bullish, Strength: models.Strong}},
		Pressure:    models.PressureReport{Ratio: 0.7, Class: models.PressureStrongBuyers},
	}
	structure := models.StructureReport{BullScore: 90, BearScore: 15}
	horizon := models.MultiHorizonReport{OverallScore: 70}

	for name, v := range map[string]float64{
		"pattern":   patternScore(patterns),
		"structure": structureScore(structure),
		"horizon":   horizonScore(horizon),
		"volume":    volumeScore(sampleBars(30)),
		"momentum":  momentumScore(sampleBars(30)),
	} {
		if v < 0 || v > 100 {
			t.Errorf("%s score %v out of [0,100]", name, v)
		}
	}
	if patternScore(patterns) <= 50 {
		t.Errorf("bullish pattern evidence should score above 50")
	}
	if structureScore(structure) <= 50 {
		t.Errorf("bullish structure should score above 50")
	}
}
