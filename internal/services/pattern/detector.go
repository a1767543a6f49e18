package pattern

import (
	"TradeLens/internal/domain/models"
	"TradeLens/internal/domain/service"
)

const (
	candlestickMinBars = 3
	chartMinBars       = 10
	pressureMinBars    = 5
)

// Detector runs the candlestick, chart and pressure analyses over one series.
// Stateless; safe for concurrent use.
type Detector struct{}

var _ service.PatternDetector = (*Detector)(nil)

func NewDetector() *Detector { return &Detector{} }

// Detect returns every pattern found in the most recent bars. Windows shorter
// than a sub-detector's minimum yield that sub-detector's empty/neutral
// output, never an error.
func (d *Detector) Detect(bars []models.Bar) models.PatternReport {
	return models.PatternReport{
		Candlestick: detectCandlestick(bars),
		Chart:       detectChart(bars),
		Pressure:    analyzePressure(bars),
	}
}
