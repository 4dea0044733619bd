package config

// PenaltyConfig contains all tunables for the penalty shootout.
// Horizontal positions are goal units from the centre of the goal mouth,
// negative to the left.
type PenaltyConfig struct {
	Match  PenaltyMatchConfig  `yaml:"match"`
	Meter  MeterConfig         `yaml:"meter"`
	Shot   ShotConfig          `yaml:"shot"`
	Keeper KeeperConfig        `yaml:"keeper"`
	Timing PenaltyTimingConfig `yaml:"timing"`
}

// PenaltyMatchConfig defines shootout length.
type PenaltyMatchConfig struct {
	Attempts     int    `yaml:"attempts"`
	HighScoreKey string `yaml:"high_score_key"`
}

// MeterConfig drives the oscillating power meter.
type MeterConfig struct {
	Step       int `yaml:"step"`        // Power change per meter tick
	IntervalMs int `yaml:"interval_ms"` // Time between meter ticks
	Max        int `yaml:"max"`         // Meter bounces between 0 and Max
}

// ShotConfig decides where the ball goes.
type ShotConfig struct {
	SweetMin      int     `yaml:"sweet_min"`      // Power strictly above this...
	SweetMax      int     `yaml:"sweet_max"`      // ...and strictly below this is well struck
	SweetAccuracy float64 `yaml:"sweet_accuracy"` // Accuracy inside the sweet spot
	BaseAccuracy  float64 `yaml:"base_accuracy"`  // Accuracy outside it
	Spread        float64 `yaml:"spread"`         // Full horizontal scatter at zero accuracy
	MinPower      int     `yaml:"min_power"`      // Shots at or below this never score
}

// KeeperConfig defines the goalkeeper's dive.
type KeeperConfig struct {
	Reach      float64 `yaml:"reach"`       // Dive lands uniformly in [-Reach, Reach]
	SaveRadius float64 `yaml:"save_radius"` // Shots this close to the keeper are saved
}

// PenaltyTimingConfig sequences a shot, in milliseconds.
type PenaltyTimingConfig struct {
	DiveMs   int `yaml:"dive_ms"`   // Kick to keeper dive
	ResultMs int `yaml:"result_ms"` // Dive to verdict
	ResetMs  int `yaml:"reset_ms"`  // Verdict to the next shot
}

// Validate repairs values that would stall the shootout.
func (c PenaltyConfig) Validate() PenaltyConfig {
	def := DefaultPenaltyConfig()
	if c.Match.Attempts < 1 {
		c.Match.Attempts = 1
	}
	if c.Match.HighScoreKey == "" {
		c.Match.HighScoreKey = def.Match.HighScoreKey
	}
	if c.Meter.Max < 1 {
		c.Meter.Max = def.Meter.Max
	}
	if c.Meter.Step < 1 {
		c.Meter.Step = 1
	}
	if c.Meter.IntervalMs < 1 {
		c.Meter.IntervalMs = 1
	}
	c.Shot.SweetAccuracy = clampF(c.Shot.SweetAccuracy, 0, 1)
	c.Shot.BaseAccuracy = clampF(c.Shot.BaseAccuracy, 0, 1)
	if c.Shot.Spread < 0 {
		c.Shot.Spread = 0
	}
	if c.Keeper.Reach < 0 {
		c.Keeper.Reach = 0
	}
	c.Timing.DiveMs = max(c.Timing.DiveMs, 0)
	c.Timing.ResultMs = max(c.Timing.ResultMs, 0)
	c.Timing.ResetMs = max(c.Timing.ResetMs, 0)
	return c
}

// DefaultPenaltyConfig returns the built-in shootout tuning.
func DefaultPenaltyConfig() PenaltyConfig {
	return PenaltyConfig{
		Match: PenaltyMatchConfig{
			Attempts:     5,
			HighScoreKey: "penaltyHighScore",
		},
		Meter: MeterConfig{
			Step:       2,
			IntervalMs: 20,
			Max:        100,
		},
		Shot: ShotConfig{
			SweetMin:      40,
			SweetMax:      80,
			SweetAccuracy: 0.9,
			BaseAccuracy:  0.5,
			Spread:        100,
			MinPower:      20,
		},
		Keeper: KeeperConfig{
			Reach:      150,
			SaveRadius: 60,
		},
		Timing: PenaltyTimingConfig{
			DiveMs:   200,
			ResultMs: 1000,
			ResetMs:  1500,
		},
	}
}

// ApplyPenaltyPreset modifies the config based on a difficulty preset.
func ApplyPenaltyPreset(cfg *PenaltyConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Match.Attempts = 7
		cfg.Keeper.SaveRadius = 45
	case DifficultyHard:
		cfg.Keeper.SaveRadius = 75
		cfg.Shot.SweetMin = 50
		cfg.Shot.SweetMax = 70
	}
}
