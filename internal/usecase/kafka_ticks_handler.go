package usecase

import (
	"context"
	"encoding/json"
	"time"

	"TradeLens/internal/domain/models"
	domrepo "TradeLens/internal/domain/repository"
	pkgkafka "TradeLens/pkg/kafka"
)

// KafkaTicksHandler consumes tick messages, folds them into bars at the
// finest native resolution and persists completed bars. Coarser native
// resolutions are materialized views over this table.
type KafkaTicksHandler struct {
	topic   string
	storage domrepo.Storage
	metrics domrepo.Metrics
	builder *BarBuilder
}

func NewKafkaTicksHandler(topic string, storage domrepo.Storage, metrics domrepo.Metrics) *KafkaTicksHandler {
	return &KafkaTicksHandler{
		topic:   topic,
		storage: storage,
		metrics: metrics,
		builder: NewBarBuilder(models.Res5m),
	}
}

func (h *KafkaTicksHandler) Topic() string { return h.topic }

// incoming message schema: {symbol, t, c, v}
func (h *KafkaTicksHandler) Handle(ctx context.Context, b []byte) error {
	var m struct {
		Symbol string  `json:"symbol"`
		T      int64   `json:"t"`
		C      float64 `json:"c"`
		V      float64 `json:"v"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	if m.T > 1e11 { // ms
		m.T = m.T / 1000
	}
	// E2E latency from event time to now (approx)
	h.metrics.RecordLatency("ingest_e2e_seconds", time.Since(time.Unix(m.T, 0)).Seconds())

	trade := &models.Trade{Symbol: m.Symbol, Timestamp: m.T, Price: m.C, Volume: m.V}
	done := h.builder.Add(trade)
	if done == nil {
		return nil
	}

	start := time.Now()
	err := h.storage.StoreBars(ctx, m.Symbol, models.Res5m, []models.Bar{*done})
	h.metrics.RecordLatency("ch_insert_seconds", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	h.metrics.RecordMessageSent("clickhouse", m.Symbol)
	return nil
}

// Flush persists every open bucket; called on shutdown so a partial bar is
// not lost with the process.
func (h *KafkaTicksHandler) Flush(ctx context.Context) error {
	for sym, bar := range h.builder.Flush() {
		if err := h.storage.StoreBars(ctx, sym, models.Res5m, []models.Bar{bar}); err != nil {
			h.metrics.RecordError("consumer_flush")
			return err
		}
	}
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaTicksHandler)(nil)
