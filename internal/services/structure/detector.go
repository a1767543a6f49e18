package structure

import (
	"TradeLens/internal/domain/models"
	"TradeLens/internal/domain/service"
)

const (
	minBars       = 50
	sweepLookback = 20
	classifyBars  = 20
	maxEvents     = 10
	maxZones      = 5
)

// Config carries the zone-strength and gap thresholds. Defaults are the
// shipped constants; deployments may override them from YAML.
type Config struct {
	StrongBlockMove   float64 `yaml:"strong_block_move"`   // net move past the block, fraction
	ModerateBlockMove float64 `yaml:"moderate_block_move"` //
	GapMinRatio       float64 `yaml:"gap_min_ratio"`       // minimum fair-value-gap width, fraction
}

func DefaultConfig() Config {
	return Config{
		StrongBlockMove:   0.03,
		ModerateBlockMove: 0.015,
		GapMinRatio:       0.003,
	}
}

// Detector derives liquidity and market-structure events from one series and
// folds them into a directional score. Stateless; safe for concurrent use.
type Detector struct {
	cfg Config
}

var _ service.StructureDetector = (*Detector)(nil)

func NewDetector(cfg Config) *Detector { return &Detector{cfg: cfg} }

// Analyze runs every structural detection over the series. Fewer than 50
// bars yields the all-empty RANGING default, never an error.
func (d *Detector) Analyze(bars []models.Bar) models.StructureReport {
	if len(bars) < minBars {
		return models.StructureReport{
			Structure:      models.StructureRanging,
			Confidence:     0,
			Recommendation: models.Hold,
		}
	}

	report := models.StructureReport{
		Structure:            classify(bars[len(bars)-classifyBars:]),
		Sweeps:               d.liquiditySweeps(bars),
		OrderBlocks:          d.orderBlocks(bars),
		Gaps:                 d.fairValueGaps(bars),
		InstitutionalCandles: d.institutionalCandles(bars),
		BOS:                  breakOfStructure(bars),
		CHOCH:                changeOfCharacter(bars),
	}
	report.Zones = zonesFromBlocks(report.OrderBlocks)
	d.score(&report)
	return report
}
