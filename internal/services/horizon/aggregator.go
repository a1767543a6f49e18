package horizon

import (
	"math"
	"sort"
	"sync"

	"TradeLens/internal/domain/models"
	"TradeLens/internal/domain/service"
	"TradeLens/internal/services/series"
)

// Aggregator runs the per-resolution analysis for the six fixed timeframes
// and folds them into one report. The six analyses are independent and run
// concurrently into fixed result slots; a missing or short series degrades
// to that resolution's neutral default.
type Aggregator struct{}

var _ service.HorizonAnalyzer = (*Aggregator)(nil)

func NewAggregator() *Aggregator { return &Aggregator{} }

func (a *Aggregator) Analyze(input map[models.Resolution][]models.Bar) models.MultiHorizonReport {
	resolutions := models.Resolutions()
	signals := make([]models.TimeframeSignal, len(resolutions))

	var wg sync.WaitGroup
	for i, res := range resolutions {
		wg.Add(1)
		go func(i int, res models.Resolution) {
			defer wg.Done()
			signals[i] = analyzeResolution(res, input[res])
		}(i, res)
	}
	wg.Wait()

	return combine(signals, input)
}

// combine is a pure weighted reduction over the six resolved signals.
func combine(signals []models.TimeframeSignal, input map[models.Resolution][]models.Bar) models.MultiHorizonReport {
	var score, confidence float64
	bull, bear, neutral := 0, 0, 0
	heatmap := make([]models.HeatmapRow, 0, len(signals))

	for _, sig := range signals {
		w := sig.Resolution.Weight()
		score += sig.Score * w
		confidence += sig.Confidence * w
		switch sig.Trend {
		case models.TrendStrongBullish, models.TrendBullish:
			bull++
		case models.TrendStrongBearish, models.TrendBearish:
			bear++
		default:
			neutral++
		}
		heatmap = append(heatmap, models.HeatmapRow{
			Resolution:  sig.Resolution,
			Oscillator:  oscDirection(sig.Oscillator),
			MACross:     sig.MAState,
			PriceAction: sig.PriceAction,
			Volume:      sig.VolumeState,
			Trend:       sig.Trend,
		})
	}

	dominant := bull
	if bear > dominant {
		dominant = bear
	}
	if neutral > dominant {
		dominant = neutral
	}
	support, resistance := keyLevels(input)

	trend := classifyTrend(score)
	return models.MultiHorizonReport{
		Signals:        signals,
		OverallTrend:   trend,
		OverallScore:   series.Clamp(score, -100, 100),
		Confidence:     math.Min(100, confidence),
		Alignment:      float64(dominant) / float64(len(signals)) * 100,
		Heatmap:        heatmap,
		Support:        support,
		Resistance:     resistance,
		Recommendation: trendRecommendation(trend),
	}
}

func trendRecommendation(t models.TrendClass) models.Recommendation {
	switch t {
	case models.TrendStrongBullish:
		return models.StrongBuy
	case models.TrendBullish:
		return models.Buy
	case models.TrendStrongBearish:
		return models.StrongSell
	case models.TrendBearish:
		return models.Sell
	}
	return models.Hold
}

// keyLevels collects each resolution's 20-bar swing extremes around the
// latest close: swing lows below price become support, swing highs above it
// resistance. Both lists are sorted ascending and deduplicated.
func keyLevels(input map[models.Resolution][]models.Bar) (support, resistance []float64) {
	var last float64
	if bars := input[models.Res5m]; len(bars) > 0 {
		last = bars[len(bars)-1].Close
	} else {
		for _, res := range models.Resolutions() {
			if bars := input[res]; len(bars) > 0 {
				last = bars[len(bars)-1].Close
				break
			}
		}
	}
	for _, res := range models.Resolutions() {
		bars := input[res]
		if len(bars) < minBars {
			continue
		}
		window := bars[len(bars)-minBars:]
		hi, lo := window[0].High, window[0].Low
		for _, b := range window {
			hi = math.Max(hi, b.High)
			lo = math.Min(lo, b.Low)
		}
		if last == 0 || lo < last {
			support = append(support, lo)
		}
		if last == 0 || hi > last {
			resistance = append(resistance, hi)
		}
	}
	sort.Float64s(support)
	sort.Float64s(resistance)
	return dedupe(support), dedupe(resistance)
}

func dedupe(levels []float64) []float64 {
	out := levels[:0]
	for i, v := range levels {
		if i == 0 || v != levels[i-1] {
			out = append(out, v)
		}
	}
	return out
}
