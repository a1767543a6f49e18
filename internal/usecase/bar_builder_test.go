package usecase

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"TradeLens/internal/domain/models"
)

func TestBarBuilderRollover(t *testing.T) {
	b := NewBarBuilder(models.Res5m)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).Unix()

	if got := b.Add(&models.Trade{Symbol: "BTCUSDT", Timestamp: base, Price: 100, Volume: 1}); got != nil {
		t.Fatalf("first tick should not complete a bar, got %+v", got)
	}
	if got := b.Add(&models.Trade{Symbol: "BTCUSDT", Timestamp: base + 60, Price: 105, Volume: 2}); got != nil {
		t.Fatalf("same bucket tick should not complete a bar, got %+v", got)
	}
	if got := b.Add(&models.Trade{Symbol: "BTCUSDT", Timestamp: base + 120, Price: 95, Volume: 1}); got != nil {
		t.Fatalf("same bucket tick should not complete a bar, got %+v", got)
	}

	done := b.Add(&models.Trade{Symbol: "BTCUSDT", Timestamp: base + 301, Price: 99, Volume: 1})
	if done == nil {
		t.Fatal("crossing the bucket boundary should return the finished bar")
	}
	if done.Open != 100 || done.High != 105 || done.Low != 95 || done.Close != 95 {
		t.Errorf("finished bar OHLC = %v/%v/%v/%v, want 100/105/95/95",
			done.Open, done.High, done.Low, done.Close)
	}
	if done.Volume != 4 {
		t.Errorf("finished bar volume = %v, want 4", done.Volume)
	}
}

func TestBarBuilderPerSymbolBuckets(t *testing.T) {
	b := NewBarBuilder(models.Res5m)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).Unix()

	b.Add(&models.Trade{Symbol: "BTCUSDT", Timestamp: base, Price: 100, Volume: 1})
	b.Add(&models.Trade{Symbol: "ETHUSDT", Timestamp: base, Price: 10, Volume: 5})

	open := b.Flush()
	if len(open) != 2 {
		t.Fatalf("expected 2 open buckets, got %d", len(open))
	}
	if open["ETHUSDT"].Open != 10 {
		t.Errorf("ETHUSDT open = %v, want 10", open["ETHUSDT"].Open)
	}
	if len(b.Flush()) != 0 {
		t.Errorf("second flush should be empty")
	}
}

// The Kafka consumer calls Add from a worker pool, one worker per partition.
// Run with -race.
func TestBarBuilderConcurrentAdd(t *testing.T) {
	b := NewBarBuilder(models.Res5m)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).Unix()

	const workers = 4
	const ticks = 200

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			sym := fmt.Sprintf("SYM%dUSDT", w)
			for i := 0; i < ticks; i++ {
				b.Add(&models.Trade{
					Symbol:    sym,
					Timestamp: base + int64(i),
					Price:     100 + float64(i%7),
					Volume:    1,
				})
			}
		}(w)
	}
	wg.Wait()

	open := b.Flush()
	if len(open) != workers {
		t.Fatalf("expected %d open buckets, got %d", workers, len(open))
	}
	for sym, bar := range open {
		if bar.Volume != ticks {
			t.Errorf("%s volume = %v, want %v", sym, bar.Volume, float64(ticks))
		}
	}
}
