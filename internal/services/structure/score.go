package structure

import (
	"TradeLens/internal/domain/models"
)

// Directional weights of each evidence kind.
const (
	weightSweep         = 15
	weightStrongBlock   = 20
	weightGap           = 10
	weightStructure     = 25
	weightBOS           = 20
	weightCHOCH         = 25
	weightInstitutional = 10
)

// score folds the detected events into bullish/bearish sums, an overall
// confidence and a five-way recommendation.
func (d *Detector) score(r *models.StructureReport) {
	var bull, bear float64
	add := func(dir models.Direction, w float64) {
		switch dir {
		case models.Bullish:
			bull += w
		case models.Bearish:
			bear += w
		}
	}

	for _, s := range r.Sweeps {
		add(s.Direction, weightSweep)
	}
	for _, b := range r.OrderBlocks {
		if b.Strength == models.Strong {
			add(b.Direction, weightStrongBlock)
		}
	}
	for _, g := range r.Gaps {
		add(g.Direction, weightGap)
	}
	switch r.Structure {
	case models.StructureBullish:
		bull += weightStructure
	case models.StructureBearish:
		bear += weightStructure
	}
	if r.BOS != nil {
		add(r.BOS.Direction, weightBOS)
	}
	if r.CHOCH != nil {
		add(r.CHOCH.Direction, weightCHOCH)
	}
	for _, c := range r.InstitutionalCandles {
		add(c.Direction, weightInstitutional)
	}

	r.BullScore = bull
	r.BearScore = bear
	if bull+bear > 0 {
		dominant := bull
		if bear > bull {
			dominant = bear
		}
		r.Confidence = dominant / (bull + bear) * 100
	}
	r.Recommendation = recommend(bull, bear)
}

// recommend maps the ratio of the two sums onto the five-level scale:
// 1.5x dominance is a strong signal, any dominance a plain one.
func recommend(bull, bear float64) models.Recommendation {
	switch {
	case bull == 0 && bear == 0:
		return models.Hold
	case bear == 0 || bull >= bear*1.5:
		return models.StrongBuy
	case bull == 0 || bear >= bull*1.5:
		return models.StrongSell
	case bull > bear:
		return models.Buy
	case bear > bull:
		return models.Sell
	}
	return models.Hold
}
