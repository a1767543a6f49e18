package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"TradeLens/internal/domain/models"
	domrepo "TradeLens/internal/domain/repository"
	pkgch "TradeLens/pkg/clickhouse"
)

const insertChunkSize = 2000

// ClickHouseStorage persists raw ticks and completed bars.
type ClickHouseStorage struct {
	client *pkgch.Client
	db     *sql.DB
}

func NewClickHouseStorage(client *pkgch.Client) *ClickHouseStorage {
	return &ClickHouseStorage{client: client, db: client.DB()}
}

// Init ensures the tick and bar tables (plus rollup views) exist.
func (s *ClickHouseStorage) Init(ctx context.Context) error {
	return s.client.InitSchema(ctx, schemaStatements())
}

func (s *ClickHouseStorage) Store(ctx context.Context, t *models.Trade) error {
	return s.StoreBatch(ctx, []*models.Trade{t})
}

// StoreBatch inserts ticks with chunked multi-row VALUES.
func (s *ClickHouseStorage) StoreBatch(ctx context.Context, trades []*models.Trade) error {
	for start := 0; start < len(trades); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(trades) {
			end = len(trades)
		}
		chunk := trades[start:end]

		var sb strings.Builder
		sb.WriteString("INSERT INTO tradelens.ticks (symbol, ts, price, volume) VALUES ")
		args := make([]interface{}, 0, len(chunk)*4)
		for i, t := range chunk {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("(?, ?, ?, ?)")
			args = append(args, t.Symbol, time.Unix(t.Timestamp, 0).UTC(), t.Price, t.Volume)
		}
		if _, err := s.db.ExecContext(ctx, sb.String(), args...); err != nil {
			return fmt.Errorf("insert ticks chunk [%d:%d]: %w", start, end, err)
		}
	}
	return nil
}

// StoreBars inserts completed bars into the native table for res. Coarser
// rollups are populated by materialized views off bars_5m.
func (s *ClickHouseStorage) StoreBars(ctx context.Context, symbol string, res models.Resolution, bars []models.Bar) error {
	table, err := tableForResolution(res)
	if err != nil {
		return err
	}
	for start := 0; start < len(bars); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(bars) {
			end = len(bars)
		}
		chunk := bars[start:end]

		var sb strings.Builder
		fmt.Fprintf(&sb, "INSERT INTO %s (symbol, bucket, open, high, low, close, volume) VALUES ", table)
		args := make([]interface{}, 0, len(chunk)*7)
		for i, b := range chunk {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("(?, ?, ?, ?, ?, ?, ?)")
			args = append(args, symbol, b.Timestamp, b.Open, b.High, b.Low, b.Close, b.Volume)
		}
		if _, err := s.db.ExecContext(ctx, sb.String(), args...); err != nil {
			return fmt.Errorf("insert bars chunk [%d:%d]: %w", start, end, err)
		}
	}
	return nil
}

// Query returns ticks for a symbol within [from, to], newest last.
func (s *ClickHouseStorage) Query(ctx context.Context, symbol string, from, to time.Time, limit int) ([]*models.Trade, error) {
	q := `
		SELECT symbol, ts, price, volume
		FROM tradelens.ticks
		WHERE symbol = ? AND ts >= ? AND ts <= ?
		ORDER BY ts ASC
		LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, q, symbol, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("query ticks: %w", err)
	}
	defer rows.Close()

	var out []*models.Trade
	for rows.Next() {
		var (
			t  models.Trade
			ts time.Time
		)
		if err := rows.Scan(&t.Symbol, &ts, &t.Price, &t.Volume); err != nil {
			return nil, fmt.Errorf("scan tick: %w", err)
		}
		t.Timestamp = ts.Unix()
		out = append(out, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func (s *ClickHouseStorage) Health(ctx context.Context) error {
	return s.client.Health(ctx)
}

// Close is a no-op; the pooled client owns the connection lifecycle.
func (s *ClickHouseStorage) Close() error { return nil }

func schemaStatements() []string {
	barTable := func(name string) string {
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS tradelens.%s (
				symbol LowCardinality(String),
				bucket DateTime,
				open   Float64,
				high   Float64,
				low    Float64,
				close  Float64,
				volume Float64
			) ENGINE = ReplacingMergeTree
			PARTITION BY toYYYYMM(bucket)
			ORDER BY (symbol, bucket)
		`, name)
	}
	rollup := func(name, interval string) string {
		return fmt.Sprintf(`
			CREATE MATERIALIZED VIEW IF NOT EXISTS tradelens.%s_mv
			TO tradelens.%s AS
			SELECT
				symbol,
				toStartOfInterval(bucket, INTERVAL %s) AS bucket,
				argMin(open, bucket)  AS open,
				max(high)             AS high,
				min(low)              AS low,
				argMax(close, bucket) AS close,
				sum(volume)           AS volume
			FROM tradelens.bars_5m
			GROUP BY symbol, bucket
		`, name, name, interval)
	}
	return []string{
		`CREATE DATABASE IF NOT EXISTS tradelens`,
		`
			CREATE TABLE IF NOT EXISTS tradelens.ticks (
				symbol LowCardinality(String),
				ts     DateTime64(3),
				price  Float64,
				volume Float64
			) ENGINE = MergeTree
			PARTITION BY toYYYYMMDD(ts)
			ORDER BY (symbol, ts)
			TTL toDateTime(ts) + INTERVAL 30 DAY
		`,
		barTable("bars_5m"),
		barTable("bars_15m"),
		barTable("bars_1h"),
		barTable("bars_1d"),
		rollup("bars_15m", "15 minute"),
		rollup("bars_1h", "1 hour"),
		rollup("bars_1d", "1 day"),
	}
}

var _ domrepo.Storage = (*ClickHouseStorage)(nil)
