package manipulation

// Config carries the heuristic thresholds of the operator-behavior detectors.
// The defaults are the tuned constants the detectors shipped with; they are
// not statistically validated, so deployments may override them from YAML.
type Config struct {
	// Accumulation
	LowVolumeRatio    float64 `yaml:"low_volume_ratio"`
	LowVolumeGreenMin int     `yaml:"low_volume_green_min"`
	TightRangeRatio   float64 `yaml:"tight_range_ratio"`
	VolumeRiseRatio   float64 `yaml:"volume_rise_ratio"`

	// Distribution
	HighVolumeRatio    float64 `yaml:"high_volume_ratio"`
	HighVolumeRedMin   int     `yaml:"high_volume_red_min"`
	UpperWickBodyRatio float64 `yaml:"upper_wick_body_ratio"`
	WickBarMin         int     `yaml:"wick_bar_min"`

	// Bull/bear trap
	TrapPierceRatio float64 `yaml:"trap_pierce_ratio"`
	TrapVolumeRatio float64 `yaml:"trap_volume_ratio"`

	// Pump-and-dump
	PumpGainRatio    float64 `yaml:"pump_gain_ratio"`
	DumpDeclineRatio float64 `yaml:"dump_decline_ratio"`

	// Fake breakout
	FakeBreakoutVolumeRatio float64 `yaml:"fake_breakout_volume_ratio"`

	// Short squeeze
	SqueezeDeclineRatio float64 `yaml:"squeeze_decline_ratio"`
	SqueezeRallyRatio   float64 `yaml:"squeeze_rally_ratio"`
	SqueezeVolumeSpike  float64 `yaml:"squeeze_volume_spike"`
}

// DefaultConfig returns the shipped thresholds.
func DefaultConfig() Config {
	return Config{
		LowVolumeRatio:    0.8,
		LowVolumeGreenMin: 5,
		TightRangeRatio:   0.8,
		VolumeRiseRatio:   1.2,

		HighVolumeRatio:    1.3,
		HighVolumeRedMin:   3,
		UpperWickBodyRatio: 1.5,
		WickBarMin:         3,

		TrapPierceRatio: 0.01,
		TrapVolumeRatio: 1.5,

		PumpGainRatio:    0.05,
		DumpDeclineRatio: 0.02,

		FakeBreakoutVolumeRatio: 0.7,

		SqueezeDeclineRatio: 0.05,
		SqueezeRallyRatio:   0.04,
		SqueezeVolumeSpike:  2.0,
	}
}
