package service

import (
	"TradeLens/internal/domain/models"
)

// PatternDetector finds candlestick and chart patterns plus buyer/seller
// pressure over one bar series. Pure; short input yields empty/neutral output.
type PatternDetector interface {
	Detect(bars []models.Bar) models.PatternReport
}

// ManipulationDetector classifies at most one operator-behavior pattern and
// always computes the 0-100 strength score.
type ManipulationDetector interface {
	Detect(bars []models.Bar) models.ManipulationReport
}

// StructureDetector produces the market-structure report. Fewer than 50 bars
// yields the RANGING all-empty default.
type StructureDetector interface {
	Analyze(bars []models.Bar) models.StructureReport
}

// HorizonAnalyzer combines per-resolution trend analyses into one report.
// Missing or short series degrade to per-resolution neutral defaults.
type HorizonAnalyzer interface {
	Analyze(series map[models.Resolution][]models.Bar) models.MultiHorizonReport
}

// ConfidenceEngine fuses all component reports into the final result.
type ConfidenceEngine interface {
	Evaluate(symbol string, bars []models.Bar,
		patterns models.PatternReport,
		manipulation models.ManipulationReport,
		structure models.StructureReport,
		horizon models.MultiHorizonReport) models.ConfidenceResult
}
