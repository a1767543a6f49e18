package usecase

import (
	"sync"
	"time"

	"TradeLens/internal/domain/models"
)

// BarBuilder aggregates a tick stream into fixed-interval bars, one open
// bucket per symbol. Safe for concurrent use; the Kafka consumer dispatches
// ticks from a worker pool, so buckets for different partitions are folded
// in parallel.
type BarBuilder struct {
	interval time.Duration

	mu   sync.Mutex
	open map[string]*models.Bar
}

func NewBarBuilder(res models.Resolution) *BarBuilder {
	return &BarBuilder{
		interval: time.Duration(res.Minutes()) * time.Minute,
		open:     make(map[string]*models.Bar),
	}
}

// Add folds one tick into the symbol's open bucket. When the tick starts a
// new bucket, the finished bar is returned for persistence.
func (b *BarBuilder) Add(t *models.Trade) *models.Bar {
	bucket := time.Unix(t.Timestamp, 0).UTC().Truncate(b.interval)

	b.mu.Lock()
	defer b.mu.Unlock()

	cur, ok := b.open[t.Symbol]
	if !ok || !cur.Timestamp.Equal(bucket) {
		b.open[t.Symbol] = &models.Bar{
			Timestamp: bucket,
			Open:      t.Price,
			High:      t.Price,
			Low:       t.Price,
			Close:     t.Price,
			Volume:    t.Volume,
		}
		if ok && cur.Timestamp.Before(bucket) {
			return cur
		}
		return nil
	}

	if t.Price > cur.High {
		cur.High = t.Price
	}
	if t.Price < cur.Low {
		cur.Low = t.Price
	}
	cur.Close = t.Price
	cur.Volume += t.Volume
	return nil
}

// Flush drains every open bucket, completed or not. Used on shutdown.
func (b *BarBuilder) Flush() map[string]models.Bar {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make(map[string]models.Bar, len(b.open))
	for sym, bar := range b.open {
		out[sym] = *bar
	}
	b.open = make(map[string]*models.Bar)
	return out
}
