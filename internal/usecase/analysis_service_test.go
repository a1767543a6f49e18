package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"TradeLens/internal/domain/models"
	"TradeLens/internal/services/confidence"
	"TradeLens/internal/services/horizon"
	"TradeLens/internal/services/manipulation"
	"TradeLens/internal/services/pattern"
	"TradeLens/internal/services/structure"
	"TradeLens/pkg/logger"
)

type fakeStore struct {
	bars map[models.Resolution][]models.Bar
	err  error
}

func (f *fakeStore) GetBars(ctx context.Context, symbol string, from, to time.Time, res models.Resolution) ([]models.Bar, error) {
	return f.GetLatestNBars(ctx, symbol, 0, res)
}

func (f *fakeStore) GetLatestNBars(ctx context.Context, symbol string, n int, res models.Resolution) ([]models.Bar, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.bars[res], nil
}

func testService(store *fakeStore) *AnalysisService {
	log, _ := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	return NewAnalysisService(
		store,
		pattern.NewDetector(),
		manipulation.NewDetector(manipulation.DefaultConfig()),
		structure.NewDetector(structure.DefaultConfig()),
		horizon.NewAggregator(),
		confidence.NewEngine(),
		log,
	)
}

func storeBars(n int) []models.Bar {
	bars := make([]models.Bar, n)
	p := 100.0
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		bars[i] = models.Bar{
			Timestamp: start.Add(time.Duration(i) * time.Hour),
			Open:      p,
			High:      p + 1,
			Low:       p - 1,
			Close:     p + 0.5,
			Volume:    100,
		}
		p += 0.5
	}
	return bars
}

func TestAnalyzeProducesCompleteResult(t *testing.T) {
	store := &fakeStore{bars: map[models.Resolution][]models.Bar{
		models.Res5m:  storeBars(60),
		models.Res15m: storeBars(60),
		models.Res1h:  storeBars(60),
		models.Res1d:  storeBars(60),
	}}
	res, err := testService(store).Analyze(context.Background(), "BTCUSDT", 60)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Symbol != "BTCUSDT" {
		t.Errorf("symbol = %q", res.Symbol)
	}
	if res.ProbabilityBullish+res.ProbabilityBearish != 100 {
		t.Errorf("probabilities sum to %v", res.ProbabilityBullish+res.ProbabilityBearish)
	}
	if res.AsOf.IsZero() {
		t.Errorf("as-of timestamp not set")
	}
}

func TestAnalyzeFailsFastOnInvalidBars(t *testing.T) {
	bad := storeBars(60)
	bad[10].High = bad[10].Low - 1
	store := &fakeStore{bars: map[models.Resolution][]models.Bar{models.Res1h: bad}}
	_, err := testService(store).Analyze(context.Background(), "BTCUSDT", 60)
	if !errors.Is(err, models.ErrInvalidBar) {
		t.Fatalf("expected ErrInvalidBar, got %v", err)
	}
}

func TestHorizonDegradesOnStoreFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("clickhouse down")}
	rep, err := testService(store).Horizon(context.Background(), "BTCUSDT", 60)
	if err != nil {
		t.Fatalf("Horizon should degrade, not fail: %v", err)
	}
	if len(rep.Signals) != 6 {
		t.Fatalf("expected 6 signals, got %d", len(rep.Signals))
	}
	for _, sig := range rep.Signals {
		if sig.Trend != models.TrendNeutral || sig.Confidence != 0 {
			t.Errorf("%s should be the neutral default, got %+v", sig.Resolution, sig)
		}
	}
}

func TestBarsResamplesDerivedResolution(t *testing.T) {
	store := &fakeStore{bars: map[models.Resolution][]models.Bar{
		models.Res1h: storeBars(40),
	}}
	bars, err := testService(store).Bars(context.Background(), "BTCUSDT", models.Res4h, 10)
	if err != nil {
		t.Fatalf("Bars: %v", err)
	}
	if len(bars) != 10 {
		t.Fatalf("expected 10 resampled 4h bars, got %d", len(bars))
	}
	if got := bars[0].Volume; got != 400 {
		t.Errorf("resampled volume = %v, want 400", got)
	}
}
