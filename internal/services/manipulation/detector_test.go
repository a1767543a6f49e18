package manipulation

import (
	"testing"
	"time"

	"TradeLens/internal/domain/models"
)

func ts(i int) time.Time {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Hour)
}

func TestShortWindowNoVerdict(t *testing.T) {
	bars := make([]models.Bar, 5)
	for i := range bars {
		bars[i] = models.Bar{Timestamp: ts(i), Open: 100, High: 101, Low: 99, Close: 100, Volume: 100}
	}
	rep := NewDetector(DefaultConfig()).Detect(bars)
	if rep.Verdict != nil {
		t.Fatalf("expected no verdict on short input, got %+v", rep.Verdict)
	}
	if rep.Strength != 50 || rep.Sentiment != models.Neutral {
		t.Errorf("expected neutral strength default, got %v/%s", rep.Strength, rep.Sentiment)
	}
}

func TestAccumulation(t *testing.T) {
	bars := make([]models.Bar, 20)
	for i := 0; i < 10; i++ {
		bars[i] = models.Bar{Timestamp: ts(i), Open: 100, High: 101, Low: 99, Close: 100, Volume: 50}
	}
	// quiet green bars on below-average volume
	for i := 10; i < 17; i++ {
		bars[i] = models.Bar{Timestamp: ts(i), Open: 100, High: 101, Low: 99.5, Close: 100.5, Volume: 50}
	}
	bars[17] = models.Bar{Timestamp: ts(17), Open: 100.5, High: 101, Low: 99.5, Close: 100, Volume: 100}
	bars[18] = models.Bar{Timestamp: ts(18), Open: 100, High: 101, Low: 99, Close: 99.5, Volume: 200}
	// tight final range with volume rising off the 3-bars-ago base
	bars[19] = models.Bar{Timestamp: ts(19), Open: 100, High: 100.4, Low: 100, Close: 100.2, Volume: 150}

	rep := NewDetector(DefaultConfig()).Detect(bars)
	if rep.Verdict == nil || rep.Verdict.Type != models.Accumulation {
		t.Fatalf("expected ACCUMULATION, got %+v", rep.Verdict)
	}
	if rep.Verdict.Action != models.ActionBuy {
		t.Errorf("action = %s, want BUY", rep.Verdict.Action)
	}
}

func TestDistribution(t *testing.T) {
	bars := make([]models.Bar, 20)
	for i := 0; i < 10; i++ {
		bars[i] = models.Bar{Timestamp: ts(i), Open: 100, High: 101, Low: 99, Close: 100, Volume: 50}
	}
	// rejection wicks: tiny body, long upper shadow
	for i := 10; i < 14; i++ {
		bars[i] = models.Bar{Timestamp: ts(i), Open: 100, High: 103, Low: 100, Close: 100.2, Volume: 50}
	}
	// heavy red bars under consecutively lower highs
	highs := []float64{103, 102.5, 102, 101.5, 101, 100.5}
	for i := 14; i < 20; i++ {
		h := highs[i-14]
		bars[i] = models.Bar{Timestamp: ts(i), Open: h - 0.2, High: h, Low: h - 1.4, Close: h - 1.2, Volume: 300}
	}

	rep := NewDetector(DefaultConfig()).Detect(bars)
	if rep.Verdict == nil || rep.Verdict.Type != models.Distribution {
		t.Fatalf("expected DISTRIBUTION, got %+v", rep.Verdict)
	}
	if rep.Verdict.Action != models.ActionSell {
		t.Errorf("action = %s, want SELL", rep.Verdict.Action)
	}
}

func TestBullTrap(t *testing.T) {
	bars := make([]models.Bar, 20)
	for i := 0; i < 17; i++ {
		bars[i] = models.Bar{Timestamp: ts(i), Open: 98, High: 100, Low: 97, Close: 98, Volume: 100}
	}
	// pierce the 100 resistance intrabar, then close back under it on heavy volume
	bars[17] = models.Bar{Timestamp: ts(17), Open: 98, High: 102, Low: 97.5, Close: 98.5, Volume: 300}
	bars[18] = models.Bar{Timestamp: ts(18), Open: 98.5, High: 99, Low: 97, Close: 98, Volume: 300}
	bars[19] = models.Bar{Timestamp: ts(19), Open: 98, High: 98.5, Low: 96.5, Close: 97.5, Volume: 300}

	rep := NewDetector(DefaultConfig()).Detect(bars)
	if rep.Verdict == nil {
		t.Fatal("expected a verdict")
	}
	if rep.Verdict.Type != models.BullTrap {
		t.Fatalf("verdict type = %s, want BULL_TRAP", rep.Verdict.Type)
	}
	if rep.Verdict.Action != models.ActionAvoid {
		t.Errorf("action = %s, want AVOID", rep.Verdict.Action)
	}
}

func TestBearTrap(t *testing.T) {
	bars := make([]models.Bar, 20)
	for i := 0; i < 17; i++ {
		bars[i] = models.Bar{Timestamp: ts(i), Open: 96, High: 96.5, Low: 95, Close: 96, Volume: 100}
	}
	bars[17] = models.Bar{Timestamp: ts(17), Open: 96, High: 96.2, Low: 94, Close: 95.5, Volume: 300}
	bars[18] = models.Bar{Timestamp: ts(18), Open: 95.5, High: 96, Low: 95.2, Close: 95.7, Volume: 300}
	bars[19] = models.Bar{Timestamp: ts(19), Open: 95.7, High: 96.1, Low: 95.4, Close: 95.8, Volume: 300}

	rep := NewDetector(DefaultConfig()).Detect(bars)
	if rep.Verdict == nil || rep.Verdict.Type != models.BearTrap {
		t.Fatalf("expected BEAR_TRAP, got %+v", rep.Verdict)
	}
	if rep.Verdict.Action != models.ActionBuy {
		t.Errorf("action = %s, want BUY", rep.Verdict.Action)
	}
}

func TestPumpAndDump(t *testing.T) {
	bars := make([]models.Bar, 12)
	for i := 0; i < 3; i++ {
		bars[i] = models.Bar{Timestamp: ts(i), Open: 100, High: 100, Low: 99, Close: 100, Volume: 100}
	}
	bars[3] = models.Bar{Timestamp: ts(3), Open: 100, High: 106, Low: 100, Close: 106, Volume: 500}
	p := 106.0
	for i := 4; i < 12; i++ {
		bars[i] = models.Bar{Timestamp: ts(i), Open: p, High: p, Low: p - 2.7, Close: p - 2.7, Volume: 100}
		p -= 2.7
	}
	rep := NewDetector(DefaultConfig()).Detect(bars)
	if rep.Verdict == nil || rep.Verdict.Type != models.PumpAndDump {
		t.Fatalf("expected PUMP_AND_DUMP, got %+v", rep.Verdict)
	}
}

func TestFakeBreakout(t *testing.T) {
	bars := make([]models.Bar, 18)
	for i := 0; i < 17; i++ {
		bars[i] = models.Bar{Timestamp: ts(i), Open: 100, High: 101, Low: 99, Close: 100, Volume: 200}
	}
	// fresh high on thin volume
	bars[17] = models.Bar{Timestamp: ts(17), Open: 100, High: 102, Low: 100, Close: 101.5, Volume: 50}
	rep := NewDetector(DefaultConfig()).Detect(bars)
	if rep.Verdict == nil || rep.Verdict.Type != models.FakeBreakout {
		t.Fatalf("expected FAKE_BREAKOUT, got %+v", rep.Verdict)
	}
}

func TestShortSqueeze(t *testing.T) {
	bars := make([]models.Bar, 20)
	for i := 0; i < 12; i++ {
		bars[i] = models.Bar{Timestamp: ts(i), Open: 100, High: 100.5, Low: 99.5, Close: 100, Volume: 100}
	}
	// >5% slide into a flat base
	bars[12] = models.Bar{Timestamp: ts(12), Open: 100, High: 100.5, Low: 99.5, Close: 100, Volume: 100}
	bars[13] = models.Bar{Timestamp: ts(13), Open: 100, High: 100, Low: 97, Close: 97, Volume: 100}
	bars[14] = models.Bar{Timestamp: ts(14), Open: 97, High: 97, Low: 94, Close: 94, Volume: 100}
	bars[15] = models.Bar{Timestamp: ts(15), Open: 94, High: 94.5, Low: 94, Close: 94, Volume: 100}
	bars[16] = models.Bar{Timestamp: ts(16), Open: 94, High: 94.5, Low: 94, Close: 94, Volume: 100}
	// >4% three-bar rally on better than 2x baseline volume
	bars[17] = models.Bar{Timestamp: ts(17), Open: 94, High: 95.6, Low: 94, Close: 95.5, Volume: 250}
	bars[18] = models.Bar{Timestamp: ts(18), Open: 95.5, High: 96.9, Low: 95.5, Close: 96.8, Volume: 250}
	bars[19] = models.Bar{Timestamp: ts(19), Open: 96.8, High: 98.1, Low: 96.8, Close: 98, Volume: 250}

	rep := NewDetector(DefaultConfig()).Detect(bars)
	if rep.Verdict == nil || rep.Verdict.Type != models.ShortSqueeze {
		t.Fatalf("expected SHORT_SQUEEZE, got %+v", rep.Verdict)
	}
	if rep.Verdict.Action != models.ActionWait {
		t.Errorf("action = %s, want WAIT", rep.Verdict.Action)
	}
}

func TestStrengthBullishEvidence(t *testing.T) {
	bars := make([]models.Bar, 12)
	for i := 0; i < 12; i++ {
		bars[i] = models.Bar{Timestamp: ts(i), Open: 100, High: 100.6, Low: 99.9, Close: 100.5, Volume: 100}
	}
	// recent volume-confirmed wide green bars
	for i := 9; i < 12; i++ {
		bars[i] = models.Bar{Timestamp: ts(i), Open: 100, High: 104, Low: 100, Close: 104, Volume: 400}
	}
	rep := NewDetector(DefaultConfig()).Detect(bars)
	if rep.Strength <= 50 {
		t.Fatalf("expected strength above 50, got %v", rep.Strength)
	}
	if rep.Sentiment != models.Bullish {
		t.Errorf("sentiment = %s, want BULLISH", rep.Sentiment)
	}
}

func TestRuleOrderIsStable(t *testing.T) {
	d := NewDetector(DefaultConfig())
	if len(d.rules) != 7 {
		t.Fatalf("expected 7 ordered rules, got %d", len(d.rules))
	}
}
