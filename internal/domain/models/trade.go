package models

// Trade is one tick from the exchange stream, the raw input the ingestion
// pipeline turns into 1-minute bars. Timestamp is unix seconds.
type Trade struct {
	Symbol    string
	Timestamp int64
	Price     float64
	Volume    float64
}
