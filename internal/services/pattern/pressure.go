package pattern

import (
	"TradeLens/internal/domain/models"
)

// analyzePressure accumulates buy and sell pressure over the last 5 bars from
// three terms per bar: the body's fraction of the range credited to the bar's
// color, the favorable wick fraction (lower wick buys, upper wick sells), and
// a volume-weighted body term. The buy/(buy+sell) ratio is thresholded at
// 0.65/0.55/0.45/0.35 into five classes.
func analyzePressure(bars []models.Bar) models.PressureReport {
	neutral := models.PressureReport{Ratio: 0.5, Class: models.PressureBalanced}
	if len(bars) < pressureMinBars {
		return neutral
	}
	window := bars[len(bars)-pressureMinBars:]

	avgVol := 0.0
	for _, b := range window {
		avgVol += b.Volume
	}
	avgVol /= float64(len(window))

	var buy, sell float64
	for _, b := range window {
		rng := b.Range()
		if rng <= 0 {
			continue
		}
		bodyFrac := b.Body() / rng
		volWeight := 1.0
		if avgVol > 0 {
			volWeight = b.Volume / avgVol
		}
		buy += b.LowerWick() / rng
		sell += b.UpperWick() / rng
		if b.Bullish() {
			buy += bodyFrac + 0.5*bodyFrac*volWeight
		} else if b.Bearish() {
			sell += bodyFrac + 0.5*bodyFrac*volWeight
		}
	}
	if buy+sell == 0 {
		return neutral
	}
	ratio := buy / (buy + sell)
	return models.PressureReport{
		BuyPressure:  buy,
		SellPressure: sell,
		Ratio:        ratio,
		Class:        classifyPressure(ratio),
	}
}

func classifyPressure(ratio float64) models.PressureClass {
	switch {
	case ratio >= 0.65:
		return models.PressureStrongBuyers
	case ratio >= 0.55:
		return models.PressureBuyers
	case ratio >= 0.45:
		return models.PressureBalanced
	case ratio >= 0.35:
		return models.PressureSellers
	}
	return models.PressureStrongSellers
}
