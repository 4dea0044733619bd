package config

import (
	_ "embed"
)

//go:embed defaults/cricket.yaml
var defaultCricketYAML []byte

//go:embed defaults/penalty.yaml
var defaultPenaltyYAML []byte

// DefaultCricketConfig returns the built-in TapCricket tuning.
func DefaultCricketConfig() CricketConfig {
	return CricketConfig{
		Pitch: PitchConfig{
			SpawnY:         400,
			SpawnJitter:    20,
			CreaseY:        720,
			BounceFraction: 0.65,
			BounceHeight:   30,
			ContactY:       660,
			PassY:          700,
			TerminusY:      950,
			ZoneBefore:     60,
			ZoneAfter:      40,
		},
		Bowling: BowlingConfig{
			BaseDurationMs:   800,
			DurationOffsetMs: 400,
			MinFlightMs:      200,
			ApproachShare:    0.7,
			BounceMs:         150,
			DriveMs:          200,
			RunoffMs:         300,
		},
		Judge: JudgeConfig{
			BaseWindow:   80,
			WindowScale:  20,
			HitThreshold: 0.1,
		},
		Scoring: ScoringConfig{
			PerfectAbove: 0.8,
			GoodAbove:    0.6,
			GoodFactor:   0.7,
			OkFactor:     0.3,
		},
		Match: MatchConfig{
			Attempts:      5,
			FirstBallMs:   2000,
			CooldownMinMs: 3000,
			CooldownMaxMs: 5000,
			SafetyMs:      8000,
			HighScoreKey:  "tapcricket_highscore",
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "none",
				MaxAt: 60,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "cricket":
		return defaultCricketYAML
	case "penalty":
		return defaultPenaltyYAML
	default:
		return nil
	}
}
