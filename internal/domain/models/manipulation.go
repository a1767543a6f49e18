package models

// ManipulationType identifies one of the operator-behavior patterns.
type ManipulationType string

const (
	Accumulation ManipulationType = "ACCUMULATION"
	Distribution ManipulationType = "DISTRIBUTION"
	BullTrap     ManipulationType = "BULL_TRAP"
	BearTrap     ManipulationType = "BEAR_TRAP"
	PumpAndDump  ManipulationType = "PUMP_AND_DUMP"
	FakeBreakout ManipulationType = "FAKE_BREAKOUT"
	ShortSqueeze ManipulationType = "SHORT_SQUEEZE"
)

// ConfidenceLevel is the categorical confidence attached to a verdict.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "HIGH"
	ConfidenceMedium ConfidenceLevel = "MEDIUM"
	ConfidenceLow    ConfidenceLevel = "LOW"
)

// Action is the suggested reaction to a manipulation verdict.
type Action string

const (
	ActionBuy   Action = "BUY"
	ActionSell  Action = "SELL"
	ActionAvoid Action = "AVOID"
	ActionWait  Action = "WAIT"
)

// ManipulationVerdict is the single winning verdict of the ordered detector
// list. At most one per call; detectors are mutually exclusive by priority.
type ManipulationVerdict struct {
	Type                 ManipulationType
	Confidence           ConfidenceLevel
	Action               Action
	Description          string
	SupportingIndicators []string
}

// ManipulationReport carries the optional verdict together with the
// always-computed strength score and its directional read.
type ManipulationReport struct {
	Verdict   *ManipulationVerdict // nil when no detector fired
	Strength  float64              // 0..100, computed regardless of Verdict
	Sentiment Direction
}
