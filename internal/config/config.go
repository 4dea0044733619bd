// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade.
package config

// CricketConfig contains all tunables for the TapCricket delivery engine.
// Positions are in pitch units measured down the screen from the bowler's end;
// durations are in milliseconds.
type CricketConfig struct {
	Pitch      PitchConfig      `yaml:"pitch"`
	Bowling    BowlingConfig    `yaml:"bowling"`
	Judge      JudgeConfig      `yaml:"judge"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Match      MatchConfig      `yaml:"match"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PitchConfig places the fixed landmarks of the ball's vertical path.
type PitchConfig struct {
	SpawnY         float64 `yaml:"spawn_y"`         // Release point at the bowler's end
	SpawnJitter    float64 `yaml:"spawn_jitter"`    // Random +/- offset applied to SpawnY
	CreaseY        float64 `yaml:"crease_y"`        // Popping crease, used to place the bounce
	BounceFraction float64 `yaml:"bounce_fraction"` // Share of spawn->crease distance before pitching
	BounceHeight   float64 `yaml:"bounce_height"`   // How far the ball kicks up after pitching
	ContactY       float64 `yaml:"contact_y"`       // Ideal contact line (the batter)
	PassY          float64 `yaml:"pass_y"`          // Where the ball passes the batter
	TerminusY      float64 `yaml:"terminus_y"`      // Off the playable path: delivery missed
	ZoneBefore     float64 `yaml:"zone_before"`     // Batting zone extent before ContactY
	ZoneAfter      float64 `yaml:"zone_after"`      // Batting zone extent after ContactY
}

// BowlingConfig controls the phase durations of a delivery.
// Flight time is BaseDurationMs - speed + DurationOffsetMs.
type BowlingConfig struct {
	BaseDurationMs   int     `yaml:"base_duration_ms"`
	DurationOffsetMs int     `yaml:"duration_offset_ms"`
	MinFlightMs      int     `yaml:"min_flight_ms"`
	ApproachShare    float64 `yaml:"approach_share"` // Share of flight time spent before pitching
	BounceMs         int     `yaml:"bounce_ms"`
	DriveMs          int     `yaml:"drive_ms"`  // Bounce point to pass line
	RunoffMs         int     `yaml:"runoff_ms"` // Pass line to terminus
}

// JudgeConfig defines the timing window: maxWindow = BaseWindow + difficulty*WindowScale.
// A negative WindowScale narrows the window for harder deliveries.
type JudgeConfig struct {
	BaseWindow   float64 `yaml:"base_window"`
	WindowScale  float64 `yaml:"window_scale"`
	HitThreshold float64 `yaml:"hit_threshold"` // Accuracy at or below this is a miss
}

// ScoringConfig defines the accuracy tiers that map to runs.
type ScoringConfig struct {
	PerfectAbove float64 `yaml:"perfect_above"`
	GoodAbove    float64 `yaml:"good_above"`
	GoodFactor   float64 `yaml:"good_factor"`
	OkFactor     float64 `yaml:"ok_factor"`
}

// MatchConfig defines match length and pacing between deliveries.
type MatchConfig struct {
	Attempts      int    `yaml:"attempts"`
	FirstBallMs   int    `yaml:"first_ball_ms"`
	CooldownMinMs int    `yaml:"cooldown_min_ms"`
	CooldownMaxMs int    `yaml:"cooldown_max_ms"`
	SafetyMs      int    `yaml:"safety_ms"` // Force a delivery if none spawned for this long
	HighScoreKey  string `yaml:"high_score_key"`
}

// DifficultyConfig defines the optional pace progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a match.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "deliveries", or "none"
	MaxAt int    `yaml:"max_at"` // Score/deliveries at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Pace added at max difficulty
}

// Validate repairs values that would make the engine unrunnable and returns
// the corrected config.
func (c CricketConfig) Validate() CricketConfig {
	if c.Match.Attempts < 1 {
		c.Match.Attempts = 1
	}
	if c.Match.CooldownMinMs < 0 {
		c.Match.CooldownMinMs = 0
	}
	if c.Match.CooldownMaxMs < c.Match.CooldownMinMs {
		c.Match.CooldownMaxMs = c.Match.CooldownMinMs
	}
	if c.Match.FirstBallMs < 0 {
		c.Match.FirstBallMs = 0
	}
	if c.Match.HighScoreKey == "" {
		c.Match.HighScoreKey = DefaultCricketConfig().Match.HighScoreKey
	}
	if c.Judge.BaseWindow <= 0 {
		c.Judge.BaseWindow = 1
	}
	if c.Bowling.MinFlightMs < 1 {
		c.Bowling.MinFlightMs = 1
	}
	if c.Bowling.ApproachShare <= 0 || c.Bowling.ApproachShare > 1 {
		c.Bowling.ApproachShare = DefaultCricketConfig().Bowling.ApproachShare
	}
	c.Bowling.BounceMs = max(c.Bowling.BounceMs, 0)
	c.Bowling.DriveMs = max(c.Bowling.DriveMs, 1)
	c.Bowling.RunoffMs = max(c.Bowling.RunoffMs, 1)
	if c.Pitch.PassY <= c.Pitch.ContactY {
		c.Pitch.PassY = c.Pitch.ContactY + 1
	}
	if c.Pitch.TerminusY <= c.Pitch.PassY {
		c.Pitch.TerminusY = c.Pitch.PassY + 1
	}
	c.Pitch.BounceFraction = clampF(c.Pitch.BounceFraction, 0, 1)
	return c
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)
