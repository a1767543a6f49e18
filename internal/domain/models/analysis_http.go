package models

// AnalyzeRequest drives the full confidence pipeline for one symbol.
type AnalyzeRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
	N      int    `query:"n" json:"n" default:"300" validate:"gte=1,lte=5000"`
}

// PatternsRequest runs the single-resolution pattern detectors.
type PatternsRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
	Res    string `query:"res" json:"res" default:"1h" validate:"oneof=5m 15m 1h 4h 1d 1w"`
	N      int    `query:"n" json:"n" default:"60" validate:"gte=1,lte=5000"`
}

// ManipulationRequest runs the operator-behavior detector.
type ManipulationRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
	Res    string `query:"res" json:"res" default:"1h" validate:"oneof=5m 15m 1h 4h 1d 1w"`
	N      int    `query:"n" json:"n" default:"60" validate:"gte=1,lte=5000"`
}

// StructureRequest runs the market-structure detector.
type StructureRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
	Res    string `query:"res" json:"res" default:"1h" validate:"oneof=5m 15m 1h 4h 1d 1w"`
	N      int    `query:"n" json:"n" default:"200" validate:"gte=1,lte=5000"`
}

// HorizonRequest runs the six-resolution aggregation.
type HorizonRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
	N      int    `query:"n" json:"n" default:"300" validate:"gte=1,lte=5000"`
}

// BarsRequest reads raw bars from the store.
type BarsRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
	Res    string `query:"res" json:"res" default:"1h" validate:"oneof=5m 15m 1h 4h 1d 1w"`
	N      int    `query:"n" json:"n" default:"300" validate:"gte=1,lte=10000"`
}
