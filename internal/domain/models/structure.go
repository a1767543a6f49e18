package models

import "time"

// MarketStructure is the categorical label for the recent swing sequence.
type MarketStructure string

const (
	StructureBullish MarketStructure = "BULLISH"
	StructureBearish MarketStructure = "BEARISH"
	StructureRanging MarketStructure = "RANGING"
)

// LiquiditySweep records a pierce of a local swing level with the next bar
// closing back on the opposite side.
type LiquiditySweep struct {
	Index     int
	Timestamp time.Time
	Level     float64
	Direction Direction
	Strength  Strength
}

// OrderBlock is the last opposite-colored bar preceding a strong directional
// run, kept as a price zone.
type OrderBlock struct {
	Index     int
	Timestamp time.Time
	High      float64
	Low       float64
	Direction Direction
	Strength  Strength
}

// Midpoint returns the center of the block's price zone.
func (o OrderBlock) Midpoint() float64 { return (o.High + o.Low) / 2 }

// FairValueGap is a three-bar price imbalance left unfilled.
type FairValueGap struct {
	Index     int
	Timestamp time.Time
	Upper     float64
	Lower     float64
	Direction Direction
}

// BreakOfStructure marks a close beyond the prevailing swing extreme.
type BreakOfStructure struct {
	Index     int
	Timestamp time.Time
	Level     float64
	Direction Direction
}

// ChangeOfCharacter marks a flip of the market-structure label between the
// previous and the most recent classification window.
type ChangeOfCharacter struct {
	Index     int
	Timestamp time.Time
	From      MarketStructure
	To        MarketStructure
	Direction Direction
}

// InstitutionalCandle flags a bar whose body and volume dwarf the local
// average, read as large-participant activity.
type InstitutionalCandle struct {
	Index       int
	Timestamp   time.Time
	Direction   Direction
	VolumeRatio float64
}

// ZoneKind distinguishes supply from demand zones.
type ZoneKind string

const (
	ZoneSupply ZoneKind = "SUPPLY"
	ZoneDemand ZoneKind = "DEMAND"
)

// SupplyDemandZone is a price band that repeatedly rejected price.
type SupplyDemandZone struct {
	Upper    float64
	Lower    float64
	Kind     ZoneKind
	Strength Strength
}

// StructureReport aggregates every structural finding for one series along
// with the derived directional score and recommendation. Event lists are
// bounded to the most recent detections.
type StructureReport struct {
	Structure            MarketStructure
	Sweeps               []LiquiditySweep
	OrderBlocks          []OrderBlock
	Gaps                 []FairValueGap
	BOS                  *BreakOfStructure
	CHOCH                *ChangeOfCharacter
	InstitutionalCandles []InstitutionalCandle
	Zones                []SupplyDemandZone
	BullScore            float64
	BearScore            float64
	Confidence           float64 // 0..100, 0 when no evidence at all
	Recommendation       Recommendation
}
