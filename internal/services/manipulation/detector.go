package manipulation

import (
	"fmt"
	"math"

	"TradeLens/internal/domain/models"
	"TradeLens/internal/domain/service"
)

const (
	minBars = 10
	maxBars = 20
)

// Detector runs the seven operator-behavior checks in a fixed priority
// order; the first one whose predicate holds wins. The checks are kept as an
// ordered rule list so the priority is explicit and each rule is testable on
// its own.
type Detector struct {
	cfg   Config
	rules []rule
}

type rule func(bars []models.Bar) *models.ManipulationVerdict

var _ service.ManipulationDetector = (*Detector)(nil)

func NewDetector(cfg Config) *Detector {
	d := &Detector{cfg: cfg}
	d.rules = []rule{
		d.accumulation,
		d.distribution,
		d.bullTrap,
		d.bearTrap,
		d.pumpAndDump,
		d.fakeBreakout,
		d.shortSqueeze,
	}
	return d
}

// Detect evaluates the rule list over the last bars (at most 20) and always
// computes the strength score, verdict or not. Fewer than 10 bars yields no
// verdict and a neutral score.
func (d *Detector) Detect(bars []models.Bar) models.ManipulationReport {
	if len(bars) > maxBars {
		bars = bars[len(bars)-maxBars:]
	}
	report := models.ManipulationReport{Strength: 50, Sentiment: models.Neutral}
	if len(bars) >= minBars {
		report.Strength, report.Sentiment = d.strength(bars)
		for _, r := range d.rules {
			if v := r(bars); v != nil {
				report.Verdict = v
				break
			}
		}
	}
	return report
}

// accumulation: quiet green bars on shrinking range with volume starting to
// rise, read as a large participant building a position.
func (d *Detector) accumulation(bars []models.Bar) *models.ManipulationVerdict {
	n := len(bars)
	last10 := bars[n-10:]
	avgVol := averageVolume(last10)
	avgRange := averageRange(last10)
	if avgVol == 0 || avgRange == 0 {
		return nil
	}
	quietGreen := 0
	for _, b := range last10 {
		if b.Bullish() && b.Volume < avgVol*d.cfg.LowVolumeRatio {
			quietGreen++
		}
	}
	cur := bars[n-1]
	tight := cur.Range() < avgRange*d.cfg.TightRangeRatio
	rising := bars[n-3].Volume > 0 && cur.Volume > bars[n-3].Volume*d.cfg.VolumeRiseRatio
	if quietGreen < d.cfg.LowVolumeGreenMin || !tight || !rising {
		return nil
	}
	return &models.ManipulationVerdict{
		Type:        models.Accumulation,
		Confidence:  models.ConfidenceMedium,
		Action:      models.ActionBuy,
		Description: "quiet green bars with tightening range and rising volume",
		SupportingIndicators: []string{
			fmt.Sprintf("low-volume green bars: %d/10", quietGreen),
			fmt.Sprintf("current range %.2f vs average %.2f", cur.Range(), avgRange),
			"3-bar volume rise above threshold",
		},
	}
}

// distribution: heavy red bars with long upper wicks under fading highs,
// read as position unloading into strength.
func (d *Detector) distribution(bars []models.Bar) *models.ManipulationVerdict {
	n := len(bars)
	last10 := bars[n-10:]
	avgVol := averageVolume(last10)
	if avgVol == 0 {
		return nil
	}
	heavyRed, wicked := 0, 0
	for _, b := range last10 {
		if b.Bearish() && b.Volume > avgVol*d.cfg.HighVolumeRatio {
			heavyRed++
		}
		if b.Body() > 0 && b.UpperWick() > b.Body()*d.cfg.UpperWickBodyRatio {
			wicked++
		}
	}
	fadingHighs := bars[n-1].High < bars[n-3].High && bars[n-2].High < bars[n-4].High
	if heavyRed < d.cfg.HighVolumeRedMin || wicked < d.cfg.WickBarMin || !fadingHighs {
		return nil
	}
	return &models.ManipulationVerdict{
		Type:        models.Distribution,
		Confidence:  models.ConfidenceMedium,
		Action:      models.ActionSell,
		Description: "high-volume selling with rejection wicks under lower highs",
		SupportingIndicators: []string{
			fmt.Sprintf("high-volume red bars: %d", heavyRed),
			fmt.Sprintf("long upper wicks: %d", wicked),
			"consecutive lower highs",
		},
	}
}

// bullTrap: an intrabar pierce of the recent resistance that failed to hold,
// on elevated volume.
func (d *Detector) bullTrap(bars []models.Bar) *models.ManipulationVerdict {
	n := len(bars)
	if n < 15 {
		return nil
	}
	resistance := maxHigh(bars[n-15 : n-5])
	if resistance <= 0 {
		return nil
	}
	pierced := false
	for _, b := range bars[n-5:] {
		if b.High > resistance*(1+d.cfg.TrapPierceRatio) {
			pierced = true
			break
		}
	}
	fellBack := bars[n-1].Close < resistance
	elevated := averageVolume(bars[n-3:]) > averageVolume(bars[n-15:])*d.cfg.TrapVolumeRatio
	if !pierced || !fellBack || !elevated {
		return nil
	}
	return &models.ManipulationVerdict{
		Type:        models.BullTrap,
		Confidence:  models.ConfidenceHigh,
		Action:      models.ActionAvoid,
		Description: "breakout above resistance reversed back below it on heavy volume",
		SupportingIndicators: []string{
			fmt.Sprintf("resistance %.2f pierced intrabar", resistance),
			"closes back below the level",
			"volume above recent average",
		},
	}
}

// bearTrap: the mirror image, a failed pierce of support.
func (d *Detector) bearTrap(bars []models.Bar) *models.ManipulationVerdict {
	n := len(bars)
	if n < 15 {
		return nil
	}
	support := minLow(bars[n-15 : n-5])
	if support <= 0 {
		return nil
	}
	pierced := false
	for _, b := range bars[n-5:] {
		if b.Low < support*(1-d.cfg.TrapPierceRatio) {
			pierced = true
			break
		}
	}
	recovered := bars[n-1].Close > support
	elevated := averageVolume(bars[n-3:]) > averageVolume(bars[n-15:])*d.cfg.TrapVolumeRatio
	if !pierced || !recovered || !elevated {
		return nil
	}
	return &models.ManipulationVerdict{
		Type:        models.BearTrap,
		Confidence:  models.ConfidenceHigh,
		Action:      models.ActionBuy,
		Description: "breakdown below support reversed back above it on heavy volume",
		SupportingIndicators: []string{
			fmt.Sprintf("support %.2f pierced intrabar", support),
			"closes back above the level",
			"volume above recent average",
		},
	}
}

// pumpAndDump: one outsized green bar followed by a sustained slide.
func (d *Detector) pumpAndDump(bars []models.Bar) *models.ManipulationVerdict {
	n := len(bars)
	for j := 0; j < n-2; j++ {
		b := bars[j]
		if b.Open <= 0 || (b.Close-b.Open)/b.Open <= d.cfg.PumpGainRatio {
			continue
		}
		after := n - 1 - j
		if after < 2 || bars[j].Close <= 0 {
			continue
		}
		declinePerBar := (bars[j].Close - bars[n-1].Close) / bars[j].Close / float64(after)
		if declinePerBar > d.cfg.DumpDeclineRatio {
			return &models.ManipulationVerdict{
				Type:        models.PumpAndDump,
				Confidence:  models.ConfidenceHigh,
				Action:      models.ActionSell,
				Description: "single-bar spike followed by a persistent decline",
				SupportingIndicators: []string{
					fmt.Sprintf("spike bar gain %.1f%%", (b.Close-b.Open)/b.Open*100),
					fmt.Sprintf("average decline %.1f%% per bar since", declinePerBar*100),
				},
			}
		}
	}
	return nil
}

// fakeBreakout: a fresh high printed on anemic volume.
func (d *Detector) fakeBreakout(bars []models.Bar) *models.ManipulationVerdict {
	n := len(bars)
	if n < 18 {
		return nil
	}
	prior := bars[n-18 : n-1]
	cur := bars[n-1]
	avgVol := averageVolume(prior)
	if avgVol == 0 {
		return nil
	}
	if cur.High <= maxHigh(prior) || cur.Volume >= avgVol*d.cfg.FakeBreakoutVolumeRatio {
		return nil
	}
	return &models.ManipulationVerdict{
		Type:        models.FakeBreakout,
		Confidence:  models.ConfidenceMedium,
		Action:      models.ActionAvoid,
		Description: "new high printed without volume participation",
		SupportingIndicators: []string{
			fmt.Sprintf("breakout volume %.0f vs average %.0f", cur.Volume, avgVol),
		},
	}
}

// shortSqueeze: a sharp earlier decline followed by a fast rally on a volume
// spike, read as forced covering.
func (d *Detector) shortSqueeze(bars []models.Bar) *models.ManipulationVerdict {
	n := len(bars)
	if n < 10 {
		return nil
	}
	before := bars[n-8 : n-3]
	if before[0].Close <= 0 {
		return nil
	}
	decline := (before[0].Close - before[len(before)-1].Close) / before[0].Close
	base := bars[n-4].Close
	if base <= 0 {
		return nil
	}
	rally := (bars[n-1].Close - base) / base
	spike := averageVolume(bars[:n-3]) > 0 &&
		averageVolume(bars[n-3:]) > averageVolume(bars[:n-3])*d.cfg.SqueezeVolumeSpike
	if decline <= d.cfg.SqueezeDeclineRatio || rally <= d.cfg.SqueezeRallyRatio || !spike {
		return nil
	}
	return &models.ManipulationVerdict{
		Type:        models.ShortSqueeze,
		Confidence:  models.ConfidenceMedium,
		Action:      models.ActionWait,
		Description: "sharp decline reversed by a fast rally on a volume spike",
		SupportingIndicators: []string{
			fmt.Sprintf("prior decline %.1f%%", decline*100),
			fmt.Sprintf("3-bar rally %.1f%%", rally*100),
			"volume spike above 2x baseline",
		},
	}
}

func averageVolume(bars []models.Bar) float64 {
	if len(bars) == 0 {
		return 0
	}
	sum := 0.0
	for _, b := range bars {
		sum += b.Volume
	}
	return sum / float64(len(bars))
}

func averageRange(bars []models.Bar) float64 {
	if len(bars) == 0 {
		return 0
	}
	sum := 0.0
	for _, b := range bars {
		sum += b.Range()
	}
	return sum / float64(len(bars))
}

func maxHigh(bars []models.Bar) float64 {
	hi := math.Inf(-1)
	for _, b := range bars {
		hi = math.Max(hi, b.High)
	}
	return hi
}

func minLow(bars []models.Bar) float64 {
	lo := math.Inf(1)
	for _, b := range bars {
		lo = math.Min(lo, b.Low)
	}
	return lo
}
