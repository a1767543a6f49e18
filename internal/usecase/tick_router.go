package usecase

import (
	"context"
	"fmt"
	"time"

	"TradeLens/internal/domain/models"
	drepo "TradeLens/internal/domain/repository"
)

// TickRouter routes validated ticks to the configured backend: the Kafka
// topic the bar builder consumes, or ClickHouse directly.
type TickRouter struct {
	pub     drepo.Publisher
	store   drepo.Storage
	metrics drepo.Metrics
	backend string
}

// NewTickRouter creates a new TickRouter instance.
func NewTickRouter(pub drepo.Publisher, store drepo.Storage, metrics drepo.Metrics, backend string) *TickRouter {
	return &TickRouter{pub: pub, store: store, metrics: metrics, backend: backend}
}

// Route forwards a single tick to the configured backend.
func (r *TickRouter) Route(ctx context.Context, t *models.Trade) error {
	if t == nil {
		return fmt.Errorf("trade is nil")
	}

	start := time.Now()
	var err error
	switch r.backend {
	case "kafka":
		err = r.pub.Publish(ctx, t)
	case "clickhouse":
		err = r.store.Store(ctx, t)
	default:
		err = fmt.Errorf("unknown backend: %s", r.backend)
	}
	if err != nil {
		r.metrics.RecordError("route")
		return fmt.Errorf("route trade: %w", err)
	}

	r.metrics.RecordMessageSent(r.backend, t.Symbol)
	r.metrics.RecordLatency("route", time.Since(start).Seconds())
	return nil
}

// RouteBatch forwards multiple ticks in one backend call.
func (r *TickRouter) RouteBatch(ctx context.Context, trades []*models.Trade) error {
	if len(trades) == 0 {
		return nil
	}

	start := time.Now()
	var err error
	switch r.backend {
	case "kafka":
		err = r.pub.PublishBatch(ctx, trades)
	case "clickhouse":
		err = r.store.StoreBatch(ctx, trades)
	default:
		err = fmt.Errorf("unknown backend: %s", r.backend)
	}
	if err != nil {
		r.metrics.RecordError("route_batch")
		return fmt.Errorf("route batch: %w", err)
	}

	for _, t := range trades {
		r.metrics.RecordMessageSent(r.backend, t.Symbol)
	}
	r.metrics.RecordLatency("route_batch", time.Since(start).Seconds())
	return nil
}

// Close closes underlying resources if available.
func (r *TickRouter) Close() {
	if r.pub != nil {
		_ = r.pub.Close()
	}
	if r.store != nil {
		_ = r.store.Close()
	}
}
