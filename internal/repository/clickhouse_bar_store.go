package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"TradeLens/internal/domain/models"
	domrepo "TradeLens/internal/domain/repository"
	pkgch "TradeLens/pkg/clickhouse"
	applogger "TradeLens/pkg/logger"
)

// CHBarStore reads persisted bars from ClickHouse. Only native resolutions
// have tables; derived ones are resampled upstream.
type CHBarStore struct {
	db *sql.DB
	l  *applogger.Logger
}

func NewCHBarStore(ch *pkgch.Client) *CHBarStore {
	return &CHBarStore{db: ch.DB()}
}

// SetLogger injects a logger (optional).
func (s *CHBarStore) SetLogger(l *applogger.Logger) { s.l = l }

func tableForResolution(res models.Resolution) (string, error) {
	switch res {
	case models.Res5m:
		return "tradelens.bars_5m", nil
	case models.Res15m:
		return "tradelens.bars_15m", nil
	case models.Res1h:
		return "tradelens.bars_1h", nil
	case models.Res1d:
		return "tradelens.bars_1d", nil
	default:
		return "", fmt.Errorf("no native table for resolution %s", res)
	}
}

// GetBars returns bars in [from, to] in ascending bucket order.
func (s *CHBarStore) GetBars(ctx context.Context, symbol string, from, to time.Time, res models.Resolution) ([]models.Bar, error) {
	table, err := tableForResolution(res)
	if err != nil {
		return nil, err
	}
	q := fmt.Sprintf(`
		SELECT bucket, open, high, low, close, volume
		FROM %s
		WHERE symbol = ? AND bucket >= ? AND bucket <= ?
		ORDER BY bucket ASC
	`, table)

	rows, err := s.db.QueryContext(ctx, q, symbol, from, to)
	if err != nil {
		s.logErr("bars range query failed", symbol, res, err)
		return nil, fmt.Errorf("query bars: %w", err)
	}
	defer rows.Close()

	return s.scanBars(rows, symbol, res)
}

// GetLatestNBars returns the most recent n bars in ascending bucket order.
func (s *CHBarStore) GetLatestNBars(ctx context.Context, symbol string, n int, res models.Resolution) ([]models.Bar, error) {
	table, err := tableForResolution(res)
	if err != nil {
		return nil, err
	}
	q := fmt.Sprintf(`
		SELECT bucket, open, high, low, close, volume
		FROM %s
		WHERE symbol = ?
		ORDER BY bucket DESC
		LIMIT ?
	`, table)

	rows, err := s.db.QueryContext(ctx, q, symbol, n)
	if err != nil {
		s.logErr("latest bars query failed", symbol, res, err)
		return nil, fmt.Errorf("query latest bars: %w", err)
	}
	defer rows.Close()

	bars, err := s.scanBars(rows, symbol, res)
	if err != nil {
		return nil, err
	}
	// DESC for the LIMIT, ASC for the caller.
	for i, j := 0, len(bars)-1; i < j; i, j = i+1, j-1 {
		bars[i], bars[j] = bars[j], bars[i]
	}
	return bars, nil
}

func (s *CHBarStore) scanBars(rows *sql.Rows, symbol string, res models.Resolution) ([]models.Bar, error) {
	var bars []models.Bar
	for rows.Next() {
		var b models.Bar
		if err := rows.Scan(&b.Timestamp, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			s.logErr("bar scan failed", symbol, res, err)
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		s.logErr("bar rows failed", symbol, res, err)
		return nil, fmt.Errorf("rows: %w", err)
	}
	return bars, nil
}

func (s *CHBarStore) logErr(msg, symbol string, res models.Resolution, err error) {
	if s.l == nil {
		return
	}
	s.l.Error(msg,
		applogger.String("symbol", symbol),
		applogger.String("resolution", string(res)),
		applogger.Error(err),
	)
}

var _ domrepo.BarStore = (*CHBarStore)(nil)
