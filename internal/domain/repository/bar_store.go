package repository

import (
	"context"
	"time"

	"TradeLens/internal/domain/models"
)

// BarStore provides read-only access to persisted bars for the analysis core.
// Resolutions without a native table are resampled by the caller.
type BarStore interface {
	GetBars(ctx context.Context, symbol string, from, to time.Time, res models.Resolution) ([]models.Bar, error)
	GetLatestNBars(ctx context.Context, symbol string, n int, res models.Resolution) ([]models.Bar, error)
}

// NativeResolutions lists the resolutions the store persists directly.
// Coarser ones are derived by in-process resampling.
func NativeResolutions() []models.Resolution {
	return []models.Resolution{models.Res5m, models.Res15m, models.Res1h, models.Res1d}
}

// HasNative reports whether res is persisted directly.
func HasNative(res models.Resolution) bool {
	for _, r := range NativeResolutions() {
		if r == res {
			return true
		}
	}
	return false
}

// NormalizeResolution converts a raw string to a valid resolution (or 1h).
func NormalizeResolution(s string) models.Resolution {
	if s == "" {
		return models.Res1h
	}
	res := models.Resolution(s)
	if res.Valid() {
		return res
	}
	return models.Res1h
}
